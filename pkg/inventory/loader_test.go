package inventory

import (
	"strings"
	"testing"
)

const sampleInventory = `
snmp_profiles:
  - name: campus-v2
    version: 2
    community: private
  - name: campus-v3
    version: 3
    username: operator
    sec_level: authPriv
    auth_protocol: SHA
    auth_passphrase: authsecret
    priv_protocol: AES
    priv_passphrase: privsecret
ssh_profiles:
  - name: campus-ssh
    username: admin
    password: hunter2
vlan_groups:
  - name: user-vlans
    vlans:
      - {name: USERS, vid: 10}
      - {name: VOICE, vid: 20}
switches:
  - id: 1
    name: floor1-sw1
    primary_ip4: 10.0.0.11
    snmp_profile: campus-v2
    ssh_profile: campus-ssh
  - id: 2
    name: floor2-sw1
    primary_ip4: 10.0.0.12
    snmp_profile: campus-v3
    read_only: true
groups:
  - name: helpdesk
    switches: [floor1-sw1, floor2-sw1]
    vlan_groups: [user-vlans]
    vlans:
      - {name: PRINTERS, vid: 30}
users:
  - name: alice
    is_superuser: true
  - name: bob
    profile:
      read_only: true
`

func TestParse(t *testing.T) {
	inv, err := Parse([]byte(sampleInventory))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if len(inv.Switches) != 2 {
		t.Fatalf("Switches = %d, want 2", len(inv.Switches))
	}

	sw := inv.Switches["floor1-sw1"]
	if sw == nil {
		t.Fatal("floor1-sw1 not found")
	}
	if sw.PrimaryIP4 != "10.0.0.11" {
		t.Errorf("PrimaryIP4 = %q", sw.PrimaryIP4)
	}

	p := inv.SnmpProfileFor(sw)
	if p == nil || p.Name != "campus-v2" {
		t.Fatalf("SnmpProfileFor = %v", p)
	}
	if inv.SnmpProfileFor(inv.Switches["floor2-sw1"]).SecLevel != "authPriv" {
		t.Error("v3 profile sec level")
	}

	ssh := inv.SSHProfileFor(sw)
	if ssh == nil || ssh.Username != "admin" {
		t.Errorf("SSHProfileFor = %v", ssh)
	}
	if inv.SSHProfileFor(inv.Switches["floor2-sw1"]) != nil {
		t.Error("floor2 has no ssh profile")
	}

	if !inv.Users["alice"].IsSuperuser {
		t.Error("alice should be superuser")
	}
	if !inv.Users["bob"].Profile.ReadOnly {
		t.Error("bob should be read-only")
	}
}

func TestGroupVlanIDs(t *testing.T) {
	inv, err := Parse([]byte(sampleInventory))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	vids := inv.GroupVlanIDs(inv.Groups["helpdesk"])
	for _, vid := range []int{10, 20, 30} {
		if !vids[vid] {
			t.Errorf("vlan %d should be granted", vid)
		}
	}
	if vids[99] {
		t.Error("vlan 99 should not be granted")
	}

	if len(inv.GroupVlanIDs(nil)) != 0 {
		t.Error("nil group grants nothing")
	}
}

func TestParse_BadReferences(t *testing.T) {
	bad := strings.Replace(sampleInventory, "snmp_profile: campus-v2", "snmp_profile: nope", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("unknown snmp profile reference should fail")
	}

	bad = strings.Replace(sampleInventory, "vlan_groups: [user-vlans]", "vlan_groups: [nope]", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("unknown vlan group reference should fail")
	}
}

func TestParse_InvalidProfile(t *testing.T) {
	bad := strings.Replace(sampleInventory, "community: private", "community: \"\"", 1)
	if _, err := Parse([]byte(bad)); err == nil {
		t.Error("empty community should fail validation")
	}
}

func TestSwitchCapabilities(t *testing.T) {
	sw := &Switch{}
	if sw.HasCapability(CapQBridgeMib) {
		t.Error("new switch has no capabilities")
	}
	sw.SetCapability(CapQBridgeMib)
	sw.SetCapability(CapPoeMib)
	if !sw.HasCapability(CapQBridgeMib) || !sw.HasCapability(CapPoeMib) {
		t.Error("capability bits should be set")
	}
	if sw.HasCapability(CapLldpMib) {
		t.Error("lldp bit should not be set")
	}
}
