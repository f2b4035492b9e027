package snmp

import "strings"

// Single-instance OIDs used for probes and drift checks
const (
	OidSysObjectID = ".1.3.6.1.2.1.1.2.0"
	OidSysName     = ".1.3.6.1.2.1.1.5.0"
	OidSysLocation = ".1.3.6.1.2.1.1.6.0"

	// OidEnterprises is the root of the private enterprise numbers, used to
	// derive the vendor from sysObjectID.
	OidEnterprises = ".1.3.6.1.4.1"
)

// MIB maps the symbolic branch names the walkers use onto their numeric
// OIDs. All walks and the standard sets go through this table; the probes
// use the single-instance constants above and vendor variants keep their
// own proprietary OIDs.
var MIB = map[string]string{
	// MIB-II system group
	"system": ".1.3.6.1.2.1.1",

	// IF-MIB, classic ifTable columns
	"ifIndex":       ".1.3.6.1.2.1.2.2.1.1",
	"ifDescr":       ".1.3.6.1.2.1.2.2.1.2",
	"ifType":        ".1.3.6.1.2.1.2.2.1.3",
	"ifMtu":         ".1.3.6.1.2.1.2.2.1.4",
	"ifSpeed":       ".1.3.6.1.2.1.2.2.1.5",
	"ifPhysAddress": ".1.3.6.1.2.1.2.2.1.6",
	"ifAdminStatus": ".1.3.6.1.2.1.2.2.1.7",
	"ifOperStatus":  ".1.3.6.1.2.1.2.2.1.8",

	// IF-MIB ifXTable columns
	"ifName":      ".1.3.6.1.2.1.31.1.1.1.1",
	"ifHighSpeed": ".1.3.6.1.2.1.31.1.1.1.15",
	"ifAlias":     ".1.3.6.1.2.1.31.1.1.1.18",

	// BRIDGE-MIB
	"dot1dBasePortIfIndex": ".1.3.6.1.2.1.17.1.4.1.2",
	"dot1dTpFdbPort":       ".1.3.6.1.2.1.17.4.3.1.2",

	// Q-BRIDGE-MIB
	"dot1qBase":                    ".1.3.6.1.2.1.17.7.1.1",
	"dot1qNumVlans":                ".1.3.6.1.2.1.17.7.1.1.4",
	"dot1qGvrpStatus":              ".1.3.6.1.2.1.17.7.1.1.5",
	"dot1qVlanCurrentEgressPorts":  ".1.3.6.1.2.1.17.7.1.4.2.1.4",
	"dot1qVlanCurrentUntaggedPorts": ".1.3.6.1.2.1.17.7.1.4.2.1.5",
	"dot1qVlanStatus":              ".1.3.6.1.2.1.17.7.1.4.2.1.6",
	"dot1qVlanStaticName":          ".1.3.6.1.2.1.17.7.1.4.3.1.1",
	"dot1qVlanStaticEgressPorts":   ".1.3.6.1.2.1.17.7.1.4.3.1.2",
	"dot1qVlanStaticUntaggedPorts": ".1.3.6.1.2.1.17.7.1.4.3.1.4",
	"dot1qVlanStaticRowStatus":     ".1.3.6.1.2.1.17.7.1.4.3.1.5",
	"dot1qPvid":                    ".1.3.6.1.2.1.17.7.1.4.5.1.1",
	"dot1qPortGvrpStatus":          ".1.3.6.1.2.1.17.7.1.4.5.1.4",

	// IEEE8021-Q-BRIDGE-MIB, the MVRP flag of 802.1Q-2011
	"ieee8021QBridgeMvrpEnabledStatus": ".1.3.111.2.802.1.1.4.1.1.1.1.6",

	// IP-MIB
	"ipAddrTable":             ".1.3.6.1.2.1.4.20.1",
	"ipAdEntIfIndex":          ".1.3.6.1.2.1.4.20.1.2",
	"ipAdEntNetMask":          ".1.3.6.1.2.1.4.20.1.3",
	"ipNetToMediaPhysAddress": ".1.3.6.1.2.1.4.22.1.2",

	// LLDP-MIB remote systems table
	"lldpRemChassisIdSubtype": ".1.0.8802.1.1.2.1.4.1.1.4",
	"lldpRemChassisId":        ".1.0.8802.1.1.2.1.4.1.1.5",
	"lldpRemPortId":           ".1.0.8802.1.1.2.1.4.1.1.7",
	"lldpRemPortDesc":         ".1.0.8802.1.1.2.1.4.1.1.8",
	"lldpRemSysName":          ".1.0.8802.1.1.2.1.4.1.1.9",
	"lldpRemSysDesc":          ".1.0.8802.1.1.2.1.4.1.1.10",
	"lldpRemSysCapEnabled":    ".1.0.8802.1.1.2.1.4.1.1.12",

	// ENTITY-MIB
	"entPhysicalClass":       ".1.3.6.1.2.1.47.1.1.1.1.5",
	"entPhysicalSoftwareRev": ".1.3.6.1.2.1.47.1.1.1.1.10",
	"entPhysicalSerialNum":   ".1.3.6.1.2.1.47.1.1.1.1.11",
	"entPhysicalModelName":   ".1.3.6.1.2.1.47.1.1.1.1.13",

	// POWER-ETHERNET-MIB
	"pethMainPseEntry":           ".1.3.6.1.2.1.105.1.3.1.1",
	"pethMainPsePower":           ".1.3.6.1.2.1.105.1.3.1.1.2",
	"pethMainPseOperStatus":      ".1.3.6.1.2.1.105.1.3.1.1.3",
	"pethMainPseConsumptionPower": ".1.3.6.1.2.1.105.1.3.1.1.4",
	"pethMainPseUsageThreshold":  ".1.3.6.1.2.1.105.1.3.1.1.5",
	"pethPsePortAdminEnable":     ".1.3.6.1.2.1.105.1.1.1.3",
	"pethPsePortDetectionStatus": ".1.3.6.1.2.1.105.1.1.1.6",
}

// BranchOID resolves a symbolic name, returning "" for unknown names.
func BranchOID(name string) string {
	return MIB[name]
}

// OidInBranch returns the index part of oid beneath branch, and whether the
// oid belongs to the branch at all. The branch must match at a component
// boundary: ".1.2.3" does not contain ".1.2.34.5".
func OidInBranch(branch, oid string) (string, bool) {
	prefix := branch + "."
	if len(oid) > len(prefix) && strings.HasPrefix(oid, prefix) {
		return oid[len(prefix):], true
	}
	return "", false
}
