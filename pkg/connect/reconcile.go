package connect

import (
	"strings"

	"github.com/openl2m/core/pkg/util"
)

// ifIndexFromPortID maps a Q-Bridge bridge port id to the ifIndex. Agents
// that never produced the bridge port map use identity mapping.
func (c *Connector) ifIndexFromPortID(portID int) int {
	if len(c.qbPortToIfIndex) > 0 {
		if ifIndex, found := c.qbPortToIfIndex[portID]; found {
			return ifIndex
		}
	}
	return portID
}

// portIDFromIfIndex is the reverse mapping; 0 when the interface is not in
// the bridge.
func (c *Connector) portIDFromIfIndex(ifIndex int) int {
	if len(c.qbPortToIfIndex) == 0 {
		return ifIndex
	}
	for portID, idx := range c.qbPortToIfIndex {
		if idx == ifIndex {
			return portID
		}
	}
	return 0
}

// addVlanToInterface records that the bridge port carries a vlan. The
// port's own PVID is untagged membership and is not listed as tagged.
func (c *Connector) addVlanToInterface(portID, vid int) {
	ifIndex := c.ifIndexFromPortID(portID)
	iface, found := c.Interfaces[ifIndex]
	if !found {
		return
	}
	if iface.UntaggedVlan == vid {
		return
	}
	iface.AddTaggedVlan(vid)
}

// mapPoePortEntries binds the raw pethPsePortEntry records onto
// interfaces. The "<group>.<port>" index becomes a "<group>/<port>" name
// suffix; the first matching interface in ifIndex order wins, and an entry
// matching several interfaces is logged.
func (c *Connector) mapPoePortEntries() {
	for _, entry := range c.poePortEntries {
		suffix := strings.ReplaceAll(entry.Index, ".", "/")
		matched := 0
		for _, ifIndex := range c.InterfaceIndexes() {
			iface := c.Interfaces[ifIndex]
			if strings.HasSuffix(iface.Name, suffix) {
				if matched == 0 {
					iface.PoeEntry = entry
				}
				matched++
			}
		}
		if matched > 1 {
			util.WithSwitch(c.sw.Name).Warnf(
				"PoE entry %s matches %d interfaces, bound to the first", entry.Index, matched)
		}
	}
}
