// Package settings manages operator-tunable settings for the core.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds the tunables the host passes into connector construction.
// A zero value is usable after Defaults() is applied; connectors never read
// process-wide state.
type Settings struct {
	// SNMP transport behavior
	SNMPTimeoutSeconds int `json:"snmp_timeout,omitempty"`
	SNMPRetries        int `json:"snmp_retries,omitempty"`
	SNMPMaxRepetitions int `json:"snmp_max_repetitions,omitempty"`

	// PortToggleDelaySeconds is the wait between admin-down and admin-up
	// when bouncing a port.
	PortToggleDelaySeconds int `json:"port_toggle_delay,omitempty"`

	// PoeToggleDelaySeconds is the wait between PoE disable and re-enable.
	PoeToggleDelaySeconds int `json:"poe_toggle_delay,omitempty"`

	// AlwaysAllowPoeToggle grants PoE toggle regardless of user/group/switch
	// settings.
	AlwaysAllowPoeToggle bool `json:"always_allow_poe_toggle,omitempty"`

	// Interfaces whose name matches this regex are shown but not manageable.
	IfaceHideRegexIfName string `json:"iface_hide_regex_ifname,omitempty"`

	// Interfaces whose description matches this regex are shown but not
	// manageable.
	IfaceHideRegexIfDescr string `json:"iface_hide_regex_ifdescr,omitempty"`

	// IfaceHideSpeedAbove hides interfaces faster than this (Mbps) from
	// management; 0 disables the rule.
	IfaceHideSpeedAbove int `json:"iface_hide_speed_above,omitempty"`

	// IfaceAliasNotAllowRegex rejects description edits matching it.
	IfaceAliasNotAllowRegex string `json:"iface_alias_not_allow_regex,omitempty"`

	// IfaceAliasKeepBeginningRegex preserves the matched prefix of the
	// existing description when it is edited.
	IfaceAliasKeepBeginningRegex string `json:"iface_alias_keep_beginning_regex,omitempty"`

	// Ethernet address display: "colon", "hyphen" or "cisco".
	EthFormat          string `json:"eth_format,omitempty"`
	EthFormatUppercase bool   `json:"eth_format_uppercase,omitempty"`

	// HideNoneEthernetInterfaces hides virtual/loopback/etc interfaces
	// entirely instead of just making them unmanageable.
	HideNoneEthernetInterfaces bool `json:"hide_none_ethernet_interfaces,omitempty"`

	// LogMaxAgeDays prunes audit entries older than this on query; 0 keeps
	// everything.
	LogMaxAgeDays int `json:"log_max_age,omitempty"`
}

const (
	DefaultSNMPTimeoutSeconds = 5
	DefaultSNMPRetries        = 3
	DefaultMaxRepetitions     = 25
	DefaultPortToggleDelay    = 5
	DefaultPoeToggleDelay     = 5
)

// Defaults returns a Settings with all transport tunables set to their
// documented defaults.
func Defaults() Settings {
	return Settings{
		SNMPTimeoutSeconds:     DefaultSNMPTimeoutSeconds,
		SNMPRetries:            DefaultSNMPRetries,
		SNMPMaxRepetitions:     DefaultMaxRepetitions,
		PortToggleDelaySeconds: DefaultPortToggleDelay,
		PoeToggleDelaySeconds:  DefaultPoeToggleDelay,
		EthFormat:              "colon",
	}
}

// Normalize fills zero transport tunables with their defaults. Settings
// loaded from a partial file stay usable.
func (s *Settings) Normalize() {
	if s.SNMPTimeoutSeconds <= 0 {
		s.SNMPTimeoutSeconds = DefaultSNMPTimeoutSeconds
	}
	if s.SNMPRetries <= 0 {
		s.SNMPRetries = DefaultSNMPRetries
	}
	if s.SNMPMaxRepetitions <= 0 {
		s.SNMPMaxRepetitions = DefaultMaxRepetitions
	}
	if s.PortToggleDelaySeconds <= 0 {
		s.PortToggleDelaySeconds = DefaultPortToggleDelay
	}
	if s.PoeToggleDelaySeconds <= 0 {
		s.PoeToggleDelaySeconds = DefaultPoeToggleDelay
	}
	if s.EthFormat == "" {
		s.EthFormat = "colon"
	}
}

// DefaultSettingsPath returns the default path for the settings file
func DefaultSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/tmp/openl2m_settings.json"
	}
	return filepath.Join(home, ".openl2m", "settings.json")
}

// Load reads settings from the default location
func Load() (Settings, error) {
	return LoadFrom(DefaultSettingsPath())
}

// LoadFrom reads settings from a specific path. A missing file yields
// defaults.
func LoadFrom(path string) (Settings, error) {
	s := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, err
	}

	if err := json.Unmarshal(data, &s); err != nil {
		return s, err
	}
	s.Normalize()

	return s, nil
}

// Save writes settings to a specific path
func (s Settings) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
