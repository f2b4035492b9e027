// Package inventory defines the persistent records the host stores about
// switches, groups, users and credential profiles, and loads them from
// YAML. Only field semantics matter to the core; the host may keep them in
// any store.
package inventory

import "github.com/openl2m/core/pkg/snmp"

// Per-switch MIB capability bits, discovered as branches produce data.
const (
	CapIfMib = 1 << iota
	CapQBridgeMib
	CapPoeMib
	CapLldpMib
	CapNetToMediaMib
)

// Switch is one managed device record.
type Switch struct {
	ID          int    `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	PrimaryIP4  string `yaml:"primary_ip4"`

	// Profile references by name; a switch without an SNMP profile cannot
	// get a connector.
	SnmpProfile string `yaml:"snmp_profile"`
	SSHProfile  string `yaml:"ssh_profile,omitempty"`

	ReadOnly       bool `yaml:"read_only,omitempty"`
	AllowPoeToggle bool `yaml:"allow_poe_toggle,omitempty"`
	EditIfDescr    bool `yaml:"edit_if_descr,omitempty"`

	// Discovered state, written back by connectors.
	SnmpHostname     string `yaml:"snmp_hostname,omitempty"`
	SnmpObjectID     string `yaml:"snmp_oid,omitempty"`
	SnmpCapabilities uint32 `yaml:"snmp_capabilities,omitempty"`

	// Operation counters.
	SnmpBulkReadCount int `yaml:"snmp_bulk_read_count,omitempty"`
	SnmpWriteCount    int `yaml:"snmp_write_count,omitempty"`
}

// HasCapability reports whether a capability bit has been discovered.
func (s *Switch) HasCapability(cap uint32) bool {
	return s.SnmpCapabilities&cap != 0
}

// SetCapability records a discovered capability bit.
func (s *Switch) SetCapability(cap uint32) {
	s.SnmpCapabilities |= cap
}

// Vlan is one vlan entitlement record. The name here may differ from the
// name defined on a switch; the switch name wins for display.
type Vlan struct {
	Name string `yaml:"name"`
	VID  int    `yaml:"vid"`
}

// VlanGroup is a named bundle of vlan entitlements.
type VlanGroup struct {
	Name  string `yaml:"name"`
	Vlans []Vlan `yaml:"vlans"`
}

// SwitchGroup grants a set of users access to a set of switches, bounded by
// vlan entitlements.
type SwitchGroup struct {
	Name           string   `yaml:"name"`
	ReadOnly       bool     `yaml:"read_only,omitempty"`
	AllowPoeToggle bool     `yaml:"allow_poe_toggle,omitempty"`
	EditIfDescr    bool     `yaml:"edit_if_descr,omitempty"`
	Switches       []string `yaml:"switches,omitempty"`
	Vlans          []Vlan   `yaml:"vlans,omitempty"`
	VlanGroups     []string `yaml:"vlan_groups,omitempty"`
	Users          []string `yaml:"users,omitempty"`
}

// UserProfile holds per-user policy restrictions.
type UserProfile struct {
	ReadOnly       bool `yaml:"read_only,omitempty"`
	AllowPoeToggle bool `yaml:"allow_poe_toggle,omitempty"`
	EditIfDescr    bool `yaml:"edit_if_descr,omitempty"`
}

// User is one operator account.
type User struct {
	Name        string      `yaml:"name"`
	IsSuperuser bool        `yaml:"is_superuser,omitempty"`
	Profile     UserProfile `yaml:"profile,omitempty"`
}

// SSHProfile holds credentials for the CLI fallback used by vendor
// variants whose save-config path is not reachable over SNMP.
type SSHProfile struct {
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password,omitempty"`
	Port     int    `yaml:"port,omitempty"`
}

// Inventory is the full record set.
type Inventory struct {
	Switches     map[string]*Switch       `yaml:"-"`
	Groups       map[string]*SwitchGroup  `yaml:"-"`
	Users        map[string]*User         `yaml:"-"`
	SnmpProfiles map[string]*snmp.Profile `yaml:"-"`
	SSHProfiles  map[string]*SSHProfile   `yaml:"-"`
	VlanGroups   map[string]*VlanGroup    `yaml:"-"`
}

// SnmpProfileFor resolves the profile bound to a switch, nil if unbound.
func (inv *Inventory) SnmpProfileFor(sw *Switch) *snmp.Profile {
	if sw == nil || sw.SnmpProfile == "" {
		return nil
	}
	return inv.SnmpProfiles[sw.SnmpProfile]
}

// SSHProfileFor resolves the SSH profile bound to a switch, nil if unbound.
func (inv *Inventory) SSHProfileFor(sw *Switch) *SSHProfile {
	if sw == nil || sw.SSHProfile == "" {
		return nil
	}
	return inv.SSHProfiles[sw.SSHProfile]
}

// GroupVlanIDs returns the vlan ids a group is entitled to, from its direct
// vlans plus all its vlan groups.
func (inv *Inventory) GroupVlanIDs(group *SwitchGroup) map[int]bool {
	vids := make(map[int]bool)
	if group == nil {
		return vids
	}
	for _, v := range group.Vlans {
		vids[v.VID] = true
	}
	for _, name := range group.VlanGroups {
		vg, ok := inv.VlanGroups[name]
		if !ok {
			continue
		}
		for _, v := range vg.Vlans {
			vids[v.VID] = true
		}
	}
	return vids
}
