package connect

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/openl2m/core/pkg/audit"
	"github.com/openl2m/core/pkg/model"
	"github.com/openl2m/core/pkg/snmp"
)

// parseFunc handles one walked (oid, value) pair. The return value reports
// whether the pair belongs to this parser, which decides caching.
type parseFunc func(oid string, value snmp.Value) bool

// dot1qGvrpStatus / ieee8021QBridgeMvrpEnabledStatus enabled value
const registrationEnabled = 1

// suffixInt resolves the single-integer index beneath a named branch.
func suffixInt(branch, oid string) (int, bool) {
	suffix, ok := snmp.OidInBranch(snmp.MIB[branch], oid)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// suffixString resolves the raw index beneath a named branch.
func suffixString(branch, oid string) (string, bool) {
	return snmp.OidInBranch(snmp.MIB[branch], oid)
}

// parseOID is the default dispatcher for the basic and hardware walks. It
// routes each varbind to the entity it populates by branch prefix.
func (c *Connector) parseOID(oid string, v snmp.Value) bool {
	if c.parseSystem(oid, v) {
		return true
	}
	if c.parseIfMib(oid, v) {
		return true
	}
	if c.parseQBridge(oid, v) {
		return true
	}
	if c.parseIPAddrTable(oid, v) {
		return true
	}
	if c.parseEntity(oid, v) {
		return true
	}
	if c.parsePoe(oid, v) {
		return true
	}
	return false
}

// parseSystem fills the System entity from the MIB-II system group.
func (c *Connector) parseSystem(oid string, v snmp.Value) bool {
	suffix, ok := snmp.OidInBranch(snmp.MIB["system"], oid)
	if !ok {
		return false
	}

	switch suffix {
	case "1.0":
		c.System.Description = v.StringVal()
	case "2.0":
		c.System.ObjectID = v.StringVal()
	case "3.0":
		// sysUpTime ticks are 1/100th seconds
		c.System.Uptime = time.Duration(v.IntVal()) * 10 * time.Millisecond
	case "4.0":
		c.System.Contact = v.StringVal()
	case "5.0":
		c.System.Name = v.StringVal()
	case "6.0":
		c.System.Location = v.StringVal()
	}
	// anything else in the group is cached unparsed
	return true
}

// parseIfMib fills interface shells and their IF-MIB attributes.
func (c *Connector) parseIfMib(oid string, v snmp.Value) bool {
	// ifIndex is special: the value is the index, and it creates the shell
	// every later column fills.
	if _, ok := suffixInt("ifIndex", oid); ok {
		ifIndex := int(v.IntVal())
		if ifIndex > 0 {
			c.Interfaces[ifIndex] = model.NewInterface(ifIndex)
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifDescr", oid); ok {
		// older name source; ifName overwrites it when present
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.Name = v.StringVal()
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifType", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.Type = int(v.IntVal())
			if iface.Type != model.IfTypeEthernet {
				// non-ethernet interfaces are never manageable
				iface.Manageable = false
			}
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifMtu", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.MTU = int(v.IntVal())
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifSpeed", oid); ok {
		// legacy speed in bps; ifHighSpeed is already Mbps and wins
		if iface, found := c.Interfaces[ifIndex]; found && iface.SpeedMbps == 0 {
			iface.SpeedMbps = int(v.IntVal() / 1000000)
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifPhysAddress", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.PhysAddr = c.formatMacBytes(v.Bytes)
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifAdminStatus", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.AdminStatus = int(v.IntVal())
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifOperStatus", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.OperStatus = int(v.IntVal())
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifName", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.Name = v.StringVal()
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifAlias", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.Alias = v.StringVal()
		}
		return true
	}

	if ifIndex, ok := suffixInt("ifHighSpeed", oid); ok {
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.SpeedMbps = int(v.IntVal())
		}
		return true
	}

	return false
}

// parseQBridge fills vlans, the bridge port map and per-port vlan state.
func (c *Connector) parseQBridge(oid string, v snmp.Value) bool {
	if _, ok := suffixString("dot1qNumVlans", oid); ok {
		c.System.VlanCount = int(v.IntVal())
		return true
	}

	if _, ok := suffixString("dot1qGvrpStatus", oid); ok {
		c.System.GvrpEnabled = v.IntVal() == registrationEnabled
		return true
	}

	if _, ok := suffixString("ieee8021QBridgeMvrpEnabledStatus", oid); ok {
		// kept separate from GVRP; they are different protocols
		c.System.MvrpEnabled = v.IntVal() == registrationEnabled
		return true
	}

	if portID, ok := suffixInt("dot1dBasePortIfIndex", oid); ok {
		ifIndex := int(v.IntVal())
		c.qbPortToIfIndex[portID] = ifIndex
		if iface, found := c.Interfaces[ifIndex]; found {
			iface.PortID = portID
		}
		return true
	}

	if portID, ok := suffixInt("dot1qPortGvrpStatus", oid); ok {
		ifIndex := c.ifIndexFromPortID(portID)
		if iface, found := c.Interfaces[ifIndex]; found && v.IntVal() == registrationEnabled {
			iface.GvrpEnabled = true
		}
		return true
	}

	if vid, ok := suffixInt("dot1qVlanStaticRowStatus", oid); ok {
		if _, found := c.Vlans[vid]; !found {
			c.Vlans[vid] = model.NewVlan(vid)
		}
		return true
	}

	if vid, ok := suffixInt("dot1qVlanStaticName", oid); ok {
		vlan := c.vlan(vid)
		vlan.Name = v.StringVal()
		return true
	}

	if vid, ok := suffixInt("dot1qVlanStaticEgressPorts", oid); ok {
		vlan := c.vlan(vid)
		vlan.StaticEgressPorts = model.PortListFromBytes(v.Bytes)
		return true
	}

	if _, ok := suffixString("dot1qVlanStaticUntaggedPorts", oid); ok {
		// read as part of the static table, currently unused
		return true
	}

	// dot1qVlanStatus is indexed <timemark>.<vid>
	if suffix, ok := suffixString("dot1qVlanStatus", oid); ok {
		if vid, err := timeFilteredVid(suffix); err == nil {
			c.vlan(vid).Status = int(v.IntVal())
		}
		return true
	}

	if portID, ok := suffixInt("dot1qPvid", oid); ok {
		c.parsePvid(portID, int(v.IntVal()))
		return true
	}

	// dot1qVlanCurrentEgressPorts is indexed <timemark>.<vid>
	if suffix, ok := suffixString("dot1qVlanCurrentEgressPorts", oid); ok {
		vid, err := timeFilteredVid(suffix)
		if err != nil {
			return true
		}
		vlan := c.vlan(vid)
		vlan.CurrentEgressPorts = model.PortListFromBytes(v.Bytes)
		for _, portID := range vlan.CurrentEgressPorts.Ports() {
			c.addVlanToInterface(portID, vid)
		}
		return true
	}

	if _, ok := suffixString("dot1qVlanCurrentUntaggedPorts", oid); ok {
		return true
	}

	return false
}

// parsePvid records a port's untagged vlan, or degrades the interface when
// the vlan is not defined on the switch.
func (c *Connector) parsePvid(portID, vid int) {
	ifIndex := c.ifIndexFromPortID(portID)
	iface, found := c.Interfaces[ifIndex]
	if !found {
		return
	}

	if vlan, defined := c.Vlans[vid]; defined {
		iface.UntaggedVlan = vid
		iface.UntaggedVlanName = vlan.Name
		return
	}

	iface.Disabled = true
	iface.DisabledReason = fmt.Sprintf("Undefined vlan %d", vid)
	warning := fmt.Sprintf("Undefined vlan %d on %s", vid, iface.Name)
	c.warnings = append(c.warnings, warning)
	c.auditInterface(audit.TypeError, audit.ActionUndefinedVlan, ifIndex, "ERROR: %s", warning)
}

// parseIPAddrTable handles both passes over the ipAddrTable: the ifIndex
// column builds the ip->interface bridge, the netmask column completes the
// addresses through it.
func (c *Connector) parseIPAddrTable(oid string, v snmp.Value) bool {
	if ip, ok := suffixString("ipAdEntIfIndex", oid); ok {
		ifIndex := int(v.IntVal())
		if iface, found := c.Interfaces[ifIndex]; found {
			c.ip4ToIfIndex[ip] = ifIndex
			iface.AddressesIP4[ip] = model.NewIP4Address(ip)
		}
		return true
	}

	if ip, ok := suffixString("ipAdEntNetMask", oid); ok {
		if ifIndex, found := c.ip4ToIfIndex[ip]; found {
			if iface, ok := c.Interfaces[ifIndex]; ok {
				if addr, ok := iface.AddressesIP4[ip]; ok {
					addr.SetNetmask(v.StringVal())
				}
			}
		}
		return true
	}

	// remaining ipAddrTable columns (address, bcast, reasm) are not used
	if _, ok := snmp.OidInBranch(snmp.MIB["ipAddrTable"], oid); ok {
		return true
	}

	return false
}

// parseEntity builds the stack member set from the ENTITY-MIB physical
// table.
func (c *Connector) parseEntity(oid string, v snmp.Value) bool {
	if devID, ok := suffixInt("entPhysicalClass", oid); ok {
		class := int(v.IntVal())
		if class == model.EntityClassStack || class == model.EntityClassChassis || class == model.EntityClassModule {
			c.StackMembers[devID] = model.NewStackMember(devID, class)
		}
		return true
	}

	if devID, ok := suffixInt("entPhysicalSerialNum", oid); ok {
		if member, found := c.StackMembers[devID]; found {
			member.Serial = v.StringVal()
		}
		return true
	}

	if devID, ok := suffixInt("entPhysicalSoftwareRev", oid); ok {
		if member, found := c.StackMembers[devID]; found {
			member.Version = v.StringVal()
		}
		return true
	}

	if devID, ok := suffixInt("entPhysicalModelName", oid); ok {
		if member, found := c.StackMembers[devID]; found {
			member.Model = v.StringVal()
		}
		return true
	}

	return false
}

// parsePoe fills the PSE aggregates and the raw port power entries. Port
// entries are mapped onto interfaces after the walk.
func (c *Connector) parsePoe(oid string, v snmp.Value) bool {
	if pseID, ok := suffixInt("pethMainPsePower", oid); ok {
		c.System.PoeCapable = true
		c.System.PoeMaxPower += int(v.IntVal())
		c.pse(pseID).MaxPower = int(v.IntVal())
		return true
	}

	if pseID, ok := suffixInt("pethMainPseOperStatus", oid); ok {
		c.System.PoeCapable = true
		c.System.PoeEnabled = int(v.IntVal())
		c.pse(pseID).Status = int(v.IntVal())
		return true
	}

	if pseID, ok := suffixInt("pethMainPseConsumptionPower", oid); ok {
		c.System.PoeCapable = true
		c.System.PoePowerConsumed += int(v.IntVal())
		c.pse(pseID).PowerConsumed = int(v.IntVal())
		return true
	}

	if pseID, ok := suffixInt("pethMainPseUsageThreshold", oid); ok {
		c.System.PoeCapable = true
		c.pse(pseID).Threshold = int(v.IntVal())
		return true
	}

	if peIndex, ok := suffixString("pethPsePortAdminEnable", oid); ok {
		c.poePortEntries[peIndex] = model.NewPoePort(peIndex, int(v.IntVal()))
		return true
	}

	if peIndex, ok := suffixString("pethPsePortDetectionStatus", oid); ok {
		if entry, found := c.poePortEntries[peIndex]; found {
			entry.DetectStatus = int(v.IntVal())
			entry.StatusName = model.PoeStatusName(entry.DetectStatus)
		}
		return true
	}

	return false
}

// vlan returns the vlan entry, creating it when a column arrives before the
// row status walk saw it.
func (c *Connector) vlan(vid int) *model.Vlan {
	vlan, found := c.Vlans[vid]
	if !found {
		vlan = model.NewVlan(vid)
		c.Vlans[vid] = vlan
	}
	return vlan
}

// pse returns the PSE entry, creating it on first sight.
func (c *Connector) pse(id int) *model.PoePSE {
	pse, found := c.System.PoePseDevices[id]
	if !found {
		pse = model.NewPoePSE(id)
		c.System.PoePseDevices[id] = pse
	}
	return pse
}

// timeFilteredVid splits a "<timemark>.<vid>" index and returns the vid.
func timeFilteredVid(suffix string) (int, error) {
	parts := strings.SplitN(suffix, ".", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("index %q is not <timemark>.<vid>", suffix)
	}
	return strconv.Atoi(parts[1])
}
