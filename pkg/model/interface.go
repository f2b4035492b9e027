package model

// IF-MIB ifAdminStatus / ifOperStatus values
const (
	StatusUp      = 1
	StatusDown    = 2
	StatusTesting = 3

	// ifOperStatus only
	StatusUnknown        = 4
	StatusDormant        = 5
	StatusNotPresent     = 6
	StatusLowerLayerDown = 7
)

// IfTypeEthernet is ifType ethernetCsmacd; only these interfaces are ever
// manageable.
const IfTypeEthernet = 6

// Interface represents one switch port or logical interface, keyed by
// ifIndex.
type Interface struct {
	Index       int
	Name        string
	Type        int
	MTU         int
	AdminStatus int
	OperStatus  int
	// SpeedMbps comes from ifHighSpeed when available, else ifSpeed/1e6.
	SpeedMbps int
	PhysAddr  string
	// Alias is the operator-set description (IF-MIB ifAlias).
	Alias string

	// PortID is the dot1dBasePort for this interface, 0 when the interface
	// does not participate in the bridge.
	PortID int

	// Untagged VLAN (PVID) and its name as defined on the switch.
	UntaggedVlan     int
	UntaggedVlanName string
	// TaggedVlans are the vlans this port carries tagged; the PVID is never
	// listed here.
	TaggedVlans []int
	IsTagged    bool

	GvrpEnabled bool

	// Learned state, filled by the detailed walk.
	EthAddresses map[string]*EthernetAddress // keyed by formatted MAC
	Arp4         map[string]string           // ip -> formatted MAC
	LldpNeighbors map[string]*NeighborDevice // keyed by remote-index triplet

	// PoE port state, nil when the port has no PSE entry.
	PoeEntry *PoePort

	// Switch IPv4 addresses configured on this interface.
	AddressesIP4 map[string]*IP4Address

	// Policy flags, set by the authorization filter after each walk or
	// cache restore.
	Visible        bool
	Manageable     bool
	CanEditAlias   bool
	AllowPoeToggle bool

	// Diagnostics
	Disabled       bool
	DisabledReason string
}

// NewInterface creates an interface shell for an ifIndex
func NewInterface(index int) *Interface {
	return &Interface{
		Index:         index,
		EthAddresses:  make(map[string]*EthernetAddress),
		Arp4:          make(map[string]string),
		LldpNeighbors: make(map[string]*NeighborDevice),
		AddressesIP4:  make(map[string]*IP4Address),
		Visible:       true,
		Manageable:    true,
	}
}

// IsEthernet reports whether this is a physical ethernet port
func (i *Interface) IsEthernet() bool {
	return i.Type == IfTypeEthernet
}

// HasVlan reports whether the interface carries the vlan, tagged or as PVID.
func (i *Interface) HasVlan(vid int) bool {
	if i.UntaggedVlan == vid {
		return true
	}
	for _, v := range i.TaggedVlans {
		if v == vid {
			return true
		}
	}
	return false
}

// AddTaggedVlan appends a vlan to the tagged list once and marks the port
// tagged.
func (i *Interface) AddTaggedVlan(vid int) {
	for _, v := range i.TaggedVlans {
		if v == vid {
			return
		}
	}
	i.TaggedVlans = append(i.TaggedVlans, vid)
	i.IsTagged = true
}

// RemoveTaggedVlan drops a vlan from the tagged list.
func (i *Interface) RemoveTaggedVlan(vid int) {
	for n, v := range i.TaggedVlans {
		if v == vid {
			i.TaggedVlans = append(i.TaggedVlans[:n], i.TaggedVlans[n+1:]...)
			break
		}
	}
	if len(i.TaggedVlans) == 0 {
		i.IsTagged = false
	}
}

// StatusName returns the admin/oper status value as a display string
func StatusName(status int) string {
	switch status {
	case StatusUp:
		return "up"
	case StatusDown:
		return "down"
	case StatusTesting:
		return "testing"
	case StatusUnknown:
		return "unknown"
	case StatusDormant:
		return "dormant"
	case StatusNotPresent:
		return "notPresent"
	case StatusLowerLayerDown:
		return "lowerLayerDown"
	}
	return "invalid"
}
