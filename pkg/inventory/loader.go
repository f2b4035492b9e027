package inventory

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openl2m/core/pkg/snmp"
)

// inventoryFile is the on-disk YAML shape: flat lists, indexed on load.
type inventoryFile struct {
	Switches     []*Switch       `yaml:"switches"`
	Groups       []*SwitchGroup  `yaml:"groups"`
	Users        []*User         `yaml:"users"`
	SnmpProfiles []*snmp.Profile `yaml:"snmp_profiles"`
	SSHProfiles  []*SSHProfile   `yaml:"ssh_profiles"`
	VlanGroups   []*VlanGroup    `yaml:"vlan_groups"`
}

// Load reads and validates an inventory file.
func Load(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	return Parse(data)
}

// Parse builds an Inventory from YAML bytes.
func Parse(data []byte) (*Inventory, error) {
	var file inventoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}

	inv := &Inventory{
		Switches:     make(map[string]*Switch),
		Groups:       make(map[string]*SwitchGroup),
		Users:        make(map[string]*User),
		SnmpProfiles: make(map[string]*snmp.Profile),
		SSHProfiles:  make(map[string]*SSHProfile),
		VlanGroups:   make(map[string]*VlanGroup),
	}

	for _, p := range file.SnmpProfiles {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := inv.SnmpProfiles[p.Name]; dup {
			return nil, fmt.Errorf("duplicate snmp profile %q", p.Name)
		}
		inv.SnmpProfiles[p.Name] = p
	}
	for _, p := range file.SSHProfiles {
		inv.SSHProfiles[p.Name] = p
	}
	for _, vg := range file.VlanGroups {
		inv.VlanGroups[vg.Name] = vg
	}
	for _, u := range file.Users {
		inv.Users[u.Name] = u
	}

	for _, sw := range file.Switches {
		if sw.Name == "" || sw.PrimaryIP4 == "" {
			return nil, fmt.Errorf("switch %q needs a name and primary_ip4", sw.Name)
		}
		if sw.SnmpProfile != "" {
			if _, ok := inv.SnmpProfiles[sw.SnmpProfile]; !ok {
				return nil, fmt.Errorf("switch %q references unknown snmp profile %q", sw.Name, sw.SnmpProfile)
			}
		}
		if sw.SSHProfile != "" {
			if _, ok := inv.SSHProfiles[sw.SSHProfile]; !ok {
				return nil, fmt.Errorf("switch %q references unknown ssh profile %q", sw.Name, sw.SSHProfile)
			}
		}
		if _, dup := inv.Switches[sw.Name]; dup {
			return nil, fmt.Errorf("duplicate switch %q", sw.Name)
		}
		inv.Switches[sw.Name] = sw
	}

	for _, g := range file.Groups {
		for _, name := range g.Switches {
			if _, ok := inv.Switches[name]; !ok {
				return nil, fmt.Errorf("group %q references unknown switch %q", g.Name, name)
			}
		}
		for _, name := range g.VlanGroups {
			if _, ok := inv.VlanGroups[name]; !ok {
				return nil, fmt.Errorf("group %q references unknown vlan group %q", g.Name, name)
			}
		}
		inv.Groups[g.Name] = g
	}

	return inv, nil
}
