package connect

import (
	"strconv"
	"strings"

	"github.com/openl2m/core/pkg/snmp"
)

// Vendor is the variant hook set. The standards-based behavior covers most
// gear; a variant overrides only what its platform does differently:
// parsing proprietary OIDs, extra info, PoE index layout, and the
// save-config path.
type Vendor interface {
	Name() string

	// ParseOID runs before the standard dispatcher on every walked
	// varbind; returning true claims it.
	ParseOID(c *Connector, oid string, value snmp.Value) bool

	// VendorData gathers proprietary extras during the hardware walk.
	VendorData(c *Connector)

	// MapPoePortToInterface binds raw PSE port entries onto interfaces.
	MapPoePortToInterface(c *Connector)

	// CanChangeVlan reports whether vlan changes work over SNMP here.
	CanChangeVlan() bool

	// CanSaveConfig reports whether a write-mem equivalent exists.
	CanSaveConfig() bool

	// SaveConfig copies running to startup config.
	SaveConfig(c *Connector) error
}

// Standard is the pure standards-based variant and the embedding base for
// the vendor ones.
type Standard struct{}

// Name identifies the variant
func (Standard) Name() string { return "Standard SNMP" }

// ParseOID claims nothing; the default dispatcher handles it all
func (Standard) ParseOID(*Connector, string, snmp.Value) bool { return false }

// VendorData has nothing to add for generic gear
func (Standard) VendorData(*Connector) {}

// MapPoePortToInterface uses the standard name-suffix match
func (Standard) MapPoePortToInterface(c *Connector) {
	c.mapPoePortEntries()
}

// CanChangeVlan is true for any Q-BRIDGE implementation
func (Standard) CanChangeVlan() bool { return true }

// CanSaveConfig is false; saving needs a vendor mechanism
func (Standard) CanSaveConfig() bool { return false }

// SaveConfig is unsupported on the standard variant
func (Standard) SaveConfig(*Connector) error {
	return &PolicyError{Rule: "save_config", Detail: "not supported on standard snmp"}
}

// IANA private enterprise numbers of vendors we recognize in sysObjectID.
const (
	enterpriseCisco   = 9
	enterpriseHP      = 11
	enterpriseH3C     = 25506
	enterpriseJuniper = 2636
	enterpriseNetgear = 4526
	enterpriseHuawei  = 2011
	enterpriseExtreme = 1916
	enterpriseAruba   = 14823
)

var enterpriseNames = map[int]string{
	enterpriseCisco:   "Cisco",
	enterpriseHP:      "Hewlett-Packard",
	enterpriseH3C:     "H3C/Comware",
	enterpriseJuniper: "Juniper",
	enterpriseNetgear: "Netgear",
	enterpriseHuawei:  "Huawei",
	enterpriseExtreme: "Extreme Networks",
	enterpriseAruba:   "Aruba",
}

// enterpriseID extracts the private enterprise number from a sysObjectID.
func enterpriseID(objectID string) (int, bool) {
	suffix, ok := snmp.OidInBranch(snmp.OidEnterprises, objectID)
	if !ok {
		return 0, false
	}
	parts := strings.SplitN(suffix, ".", 2)
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	return id, true
}

// EnterpriseName returns the vendor name behind a sysObjectID, "Unknown"
// for an enterprise number not in the table, or "" when the object id is
// not beneath the enterprises arc.
func EnterpriseName(objectID string) string {
	id, ok := enterpriseID(objectID)
	if !ok {
		return ""
	}
	if name, found := enterpriseNames[id]; found {
		return name
	}
	return "Unknown"
}

// vendorForObjectID picks the variant for a discovered sysObjectID.
func vendorForObjectID(objectID string) Vendor {
	id, ok := enterpriseID(objectID)
	if !ok {
		return Standard{}
	}
	switch id {
	case enterpriseCisco:
		return Cisco{}
	case enterpriseHP, enterpriseAruba:
		return Procurve{}
	}
	return Standard{}
}
