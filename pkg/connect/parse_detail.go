package connect

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/openl2m/core/pkg/inventory"
	"github.com/openl2m/core/pkg/model"
	"github.com/openl2m/core/pkg/snmp"
	"github.com/openl2m/core/pkg/util"
)

// parseBridgeEth handles the dot1dTpFdbPort walk: learned ethernet
// addresses per bridge port. The OID index is the address itself as six
// decimals; the value is the bridge port id (0 = known but portless).
func (c *Connector) parseBridgeEth(oid string, v snmp.Value) bool {
	ethDecimals, ok := suffixString("dot1dTpFdbPort", oid)
	if !ok {
		return false
	}

	portID := int(v.IntVal())
	if portID == 0 {
		return true
	}

	addr, err := util.DecimalsToEthernet(ethDecimals)
	if err != nil {
		util.WithSwitch(c.sw.Name).Debugf("Skipping malformed FDB index %q: %v", ethDecimals, err)
		return true
	}

	ifIndex := c.ifIndexFromPortID(portID)
	if iface, found := c.Interfaces[ifIndex]; found {
		key := util.FormatEthernet(addr, c.cfg.EthFormat, c.cfg.EthFormatUppercase)
		iface.EthAddresses[key] = model.NewEthernetAddress(addr)
		c.ethAddrCount++
	}
	return true
}

// parseNetToMedia handles the ipNetToMediaPhysAddress walk (the ARP
// table). The index is "<ifIndex>.<a.b.c.d>"; the value is the MAC. Found
// addresses are joined onto already-learned ethernet entries.
func (c *Connector) parseNetToMedia(oid string, v snmp.Value) bool {
	ifIP, ok := suffixString("ipNetToMediaPhysAddress", oid)
	if !ok {
		return false
	}
	c.sw.SetCapability(inventory.CapNetToMediaMib)

	parts := strings.SplitN(ifIP, ".", 2)
	if len(parts) != 2 {
		return true
	}
	ifIndex, err := strconv.Atoi(parts[0])
	if err != nil {
		return true
	}
	ip := parts[1]

	iface, found := c.Interfaces[ifIndex]
	if !found {
		return true
	}

	mac := c.formatMacBytes(v.Bytes)
	iface.Arp4[ip] = mac

	// join the IP onto the learned address wherever it was seen
	for _, other := range c.Interfaces {
		if entry, seen := other.EthAddresses[mac]; seen {
			entry.AddressIP4 = ip
		}
	}
	return true
}

// parseLldp handles the LLDP remote table columns. Every column is indexed
// by "<timemark>.<local-port>.<remote-index>"; the local port maps through
// the bridge port map when the agent implements Q-BRIDGE, and is the
// ifIndex itself when it does not.
func (c *Connector) parseLldp(oid string, v snmp.Value) bool {
	if key, ok := suffixString("lldpRemPortId", oid); ok {
		ifIndex, found := c.lldpIfIndex(key)
		if !found {
			return true
		}
		c.Interfaces[ifIndex].LldpNeighbors[key] = model.NewNeighborDevice(key, ifIndex)
		c.neighborCount++
		return true
	}

	if key, ok := suffixString("lldpRemPortDesc", oid); ok {
		if n := c.lldpNeighbor(key); n != nil {
			n.PortDescr = v.StringVal()
		}
		return true
	}

	if key, ok := suffixString("lldpRemSysName", oid); ok {
		if n := c.lldpNeighbor(key); n != nil {
			n.SysName = v.StringVal()
		}
		return true
	}

	if key, ok := suffixString("lldpRemSysDesc", oid); ok {
		if n := c.lldpNeighbor(key); n != nil {
			n.SysDescr = v.StringVal()
		}
		return true
	}

	if key, ok := suffixString("lldpRemSysCapEnabled", oid); ok {
		if n := c.lldpNeighbor(key); n != nil && len(v.Bytes) > 0 {
			n.Capabilities = v.Bytes[0]
		}
		return true
	}

	if key, ok := suffixString("lldpRemChassisIdSubtype", oid); ok {
		if n := c.lldpNeighbor(key); n != nil {
			subtype := int(v.IntVal())
			if n.ChassisType > 0 && n.ChassisType != subtype {
				c.addWarning("Chassis type for " + key + " changed between walks")
			}
			n.ChassisType = subtype
		}
		return true
	}

	if key, ok := suffixString("lldpRemChassisId", oid); ok {
		if n := c.lldpNeighbor(key); n != nil {
			n.ChassisString = c.formatChassisID(n.ChassisType, v.Bytes)
		}
		return true
	}

	return false
}

// lldpIfIndex resolves the local interface of an LLDP remote key.
func (c *Connector) lldpIfIndex(key string) (int, bool) {
	parts := strings.Split(key, ".")
	if len(parts) != 3 {
		return 0, false
	}
	localPort, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	ifIndex := c.ifIndexFromPortID(localPort)
	_, found := c.Interfaces[ifIndex]
	return ifIndex, found
}

// lldpNeighbor finds the neighbor a follow-up column belongs to, nil when
// the port-id column never created it.
func (c *Connector) lldpNeighbor(key string) *model.NeighborDevice {
	ifIndex, found := c.lldpIfIndex(key)
	if !found {
		return nil
	}
	return c.Interfaces[ifIndex].LldpNeighbors[key]
}

// formatChassisID renders a chassis id per its advertised subtype.
func (c *Connector) formatChassisID(subtype int, raw []byte) string {
	switch subtype {
	case model.ChassisTypeMacAddress:
		if len(raw) == 6 {
			var addr [6]byte
			copy(addr[:], raw)
			return util.FormatEthernet(addr, c.cfg.EthFormat, c.cfg.EthFormatUppercase)
		}
	case model.ChassisTypeNetAddress:
		// first octet is the IANA address family; 1 = IPv4
		if len(raw) == 5 && raw[0] == 1 {
			return strconv.Itoa(int(raw[1])) + "." + strconv.Itoa(int(raw[2])) + "." +
				strconv.Itoa(int(raw[3])) + "." + strconv.Itoa(int(raw[4]))
		}
	}
	for _, b := range raw {
		if b < 0x20 || b > 0x7e {
			return hex.EncodeToString(raw)
		}
	}
	return string(raw)
}

// formatMacBytes renders raw address bytes per the configured display
// format; odd lengths come out as plain hex.
func (c *Connector) formatMacBytes(raw []byte) string {
	if len(raw) != 6 {
		return hex.EncodeToString(raw)
	}
	var addr [6]byte
	copy(addr[:], raw)
	return util.FormatEthernet(addr, c.cfg.EthFormat, c.cfg.EthFormatUppercase)
}
