package snmp

import (
	"errors"
	"fmt"
)

// SNMP protocol versions supported by profiles
const (
	Version2c = 2
	Version3  = 3
)

// SNMPv3 security levels
const (
	SecNoAuthNoPriv = "noAuthNoPriv"
	SecAuthNoPriv   = "authNoPriv"
	SecAuthPriv     = "authPriv"
)

// SNMPv3 authentication and privacy protocols
const (
	AuthMD5 = "MD5"
	AuthSHA = "SHA"
	PrivDES = "DES"
	PrivAES = "AES"
)

// DefaultPort is the SNMP agent UDP port
const DefaultPort = 161

// Profile holds the credentials and addressing needed to talk to one agent.
// A switch without a bound profile cannot get a connector.
type Profile struct {
	Name    string `yaml:"name"`
	Version int    `yaml:"version"`
	Port    uint16 `yaml:"port,omitempty"`

	// v2c
	Community string `yaml:"community,omitempty"`

	// v3 USM
	Username       string `yaml:"username,omitempty"`
	SecLevel       string `yaml:"sec_level,omitempty"`
	AuthProtocol   string `yaml:"auth_protocol,omitempty"`
	AuthPassphrase string `yaml:"auth_passphrase,omitempty"`
	PrivProtocol   string `yaml:"priv_protocol,omitempty"`
	PrivPassphrase string `yaml:"priv_passphrase,omitempty"`
}

// ErrBadProfile indicates the profile cannot produce a usable session
var ErrBadProfile = errors.New("invalid snmp profile")

// Validate checks the profile is internally consistent.
func (p *Profile) Validate() error {
	switch p.Version {
	case Version2c:
		if p.Community == "" {
			return fmt.Errorf("%w: v2c profile %q has no community", ErrBadProfile, p.Name)
		}
	case Version3:
		if p.Username == "" {
			return fmt.Errorf("%w: v3 profile %q has no username", ErrBadProfile, p.Name)
		}
		switch p.SecLevel {
		case SecNoAuthNoPriv:
		case SecAuthNoPriv, SecAuthPriv:
			if p.AuthProtocol != AuthMD5 && p.AuthProtocol != AuthSHA {
				return fmt.Errorf("%w: profile %q auth protocol %q", ErrBadProfile, p.Name, p.AuthProtocol)
			}
			if p.AuthPassphrase == "" {
				return fmt.Errorf("%w: profile %q has no auth passphrase", ErrBadProfile, p.Name)
			}
			if p.SecLevel == SecAuthPriv {
				if p.PrivProtocol != PrivDES && p.PrivProtocol != PrivAES {
					return fmt.Errorf("%w: profile %q priv protocol %q", ErrBadProfile, p.Name, p.PrivProtocol)
				}
				if p.PrivPassphrase == "" {
					return fmt.Errorf("%w: profile %q has no priv passphrase", ErrBadProfile, p.Name)
				}
			}
		default:
			return fmt.Errorf("%w: profile %q security level %q", ErrBadProfile, p.Name, p.SecLevel)
		}
	default:
		return fmt.Errorf("%w: profile %q version %d", ErrBadProfile, p.Name, p.Version)
	}
	return nil
}

// WalkFunc receives each (oid, value) pair of a branch walk. Returning an
// error stops the walk.
type WalkFunc func(oid string, value Value) error

// Client is the transport a connector drives. One client owns one UDP
// socket and serves one in-flight operation at a time.
type Client interface {
	// Connect opens the UDP socket and, for v3, runs USM discovery.
	Connect() error

	// Get reads a single OID. A missing object on a live agent returns an
	// error wrapping ErrNoSuchObject.
	Get(oid string) (Value, error)

	// GetMulti reads several OIDs in one request.
	GetMulti(oids []string) ([]PDU, error)

	// WalkBranch bulk-walks everything beneath the branch OID, invoking fn
	// per varbind, and returns the varbind count. A branch the agent does
	// not implement returns (0, nil).
	WalkBranch(branch string, fn WalkFunc) (int, error)

	// Set writes a single OID.
	Set(oid string, value Value) error

	// SetMulti writes several OIDs in one request; the agent applies them
	// as-if-simultaneously per RFC 3416.
	SetMulti(pdus []PDU) error

	// SetMaxRepetitions lowers the GetBulk max-repetitions, for agents that
	// return malformed large bulks.
	SetMaxRepetitions(n int)

	Close() error
}
