package model

import "testing"

func TestInterface_TaggedVlans(t *testing.T) {
	iface := NewInterface(101)
	iface.UntaggedVlan = 10

	iface.AddTaggedVlan(20)
	iface.AddTaggedVlan(30)
	iface.AddTaggedVlan(20) // duplicate ignored

	if len(iface.TaggedVlans) != 2 {
		t.Fatalf("TaggedVlans = %v, want 2 entries", iface.TaggedVlans)
	}
	if !iface.IsTagged {
		t.Error("IsTagged should be true")
	}
	if !iface.HasVlan(10) || !iface.HasVlan(20) || !iface.HasVlan(30) {
		t.Error("HasVlan should cover PVID and tagged vlans")
	}
	if iface.HasVlan(40) {
		t.Error("HasVlan(40) should be false")
	}

	iface.RemoveTaggedVlan(20)
	iface.RemoveTaggedVlan(30)
	if iface.IsTagged {
		t.Error("IsTagged should clear when last tagged vlan is removed")
	}
}

func TestStatusName(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{StatusUp, "up"},
		{StatusDown, "down"},
		{StatusTesting, "testing"},
		{StatusLowerLayerDown, "lowerLayerDown"},
		{99, "invalid"},
	}
	for _, tt := range tests {
		if got := StatusName(tt.status); got != tt.want {
			t.Errorf("StatusName(%d) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestVlan_Status(t *testing.T) {
	v := NewVlan(10)
	v.Status = VlanStatusOther
	if !v.IsStatic() || v.StatusName() != "static" {
		t.Error("status 1 should be static")
	}
	v.Status = VlanStatusPermanent
	if !v.IsStatic() {
		t.Error("permanent should be static")
	}
	v.Status = VlanStatusDynamicGvrp
	if v.IsStatic() || v.StatusName() != "dynamic" {
		t.Error("dynamicGvrp should be dynamic")
	}
}

func TestIP4Address_PrefixLen(t *testing.T) {
	a := NewIP4Address("10.1.2.3")
	if a.PrefixLen() != -1 {
		t.Error("no netmask should yield -1")
	}
	if a.String() != "10.1.2.3" {
		t.Errorf("String() = %q", a.String())
	}

	a.SetNetmask("255.255.255.0")
	if a.PrefixLen() != 24 {
		t.Errorf("PrefixLen() = %d, want 24", a.PrefixLen())
	}
	if a.String() != "10.1.2.3/24" {
		t.Errorf("String() = %q", a.String())
	}

	a.SetNetmask("not-a-mask")
	if a.PrefixLen() != -1 {
		t.Error("bad netmask should yield -1")
	}
}

func TestStackMember_ClassName(t *testing.T) {
	if NewStackMember(1, EntityClassChassis).ClassName() != "chassis" {
		t.Error("chassis class name")
	}
	if NewStackMember(1, 99).ClassName() != "unknown" {
		t.Error("unknown class name")
	}
}

func TestNeighborDevice_Capabilities(t *testing.T) {
	n := NewNeighborDevice("0.1.1", 101)
	n.Capabilities = CapabilityBridge | CapabilityRouter
	if !n.HasCapability(CapabilityBridge) || !n.HasCapability(CapabilityRouter) {
		t.Error("bridge and router bits should be set")
	}
	if n.HasCapability(CapabilityPhone) {
		t.Error("phone bit should not be set")
	}
}
