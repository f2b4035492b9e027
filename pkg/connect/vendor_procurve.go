package connect

import "strings"

// Procurve covers HP/Aruba Procurve gear. Single-chassis models key their
// PSE ports as "1.<port>" while naming interfaces with the bare port
// number, which the standard suffix match cannot see.
type Procurve struct {
	Standard
}

// Name identifies the variant
func (Procurve) Name() string { return "HP Procurve SNMP" }

// MapPoePortToInterface tries the standard "<group>/<port>" suffix match
// first, then binds leftover entries by bare port number.
func (Procurve) MapPoePortToInterface(c *Connector) {
	c.mapPoePortEntries()

	for _, entry := range c.poePortEntries {
		bound := false
		for _, iface := range c.Interfaces {
			if iface.PoeEntry == entry {
				bound = true
				break
			}
		}
		if bound {
			continue
		}

		parts := strings.SplitN(entry.Index, ".", 2)
		if len(parts) != 2 {
			continue
		}
		port := parts[1]
		for _, ifIndex := range c.InterfaceIndexes() {
			iface := c.Interfaces[ifIndex]
			if iface.Name == port && iface.PoeEntry == nil {
				iface.PoeEntry = entry
				break
			}
		}
	}
}
