package connect

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/openl2m/core/pkg/audit"
	"github.com/openl2m/core/pkg/model"
	"github.com/openl2m/core/pkg/snmp"
)

// SetAdminStatus brings an interface administratively up or down. The set
// is retried once on a transient transport failure.
func (c *Connector) SetAdminStatus(ctx context.Context, ifIndex int, up bool) error {
	iface, found := c.Interfaces[ifIndex]
	if !found {
		return fmt.Errorf("interface %d not found", ifIndex)
	}
	if !c.canManage(iface) {
		return &PolicyError{Rule: "manageable", Detail: iface.Name}
	}
	if err := c.client.Connect(); err != nil {
		return err
	}

	status := model.StatusDown
	word := "down"
	if up {
		status = model.StatusUp
		word = "up"
	}

	oid := snmp.MIB["ifAdminStatus"] + "." + strconv.Itoa(ifIndex)
	err := c.client.Set(oid, snmp.IntValue(int64(status)))
	if err != nil && errors.Is(err, snmp.ErrTransport) {
		err = c.client.Set(oid, snmp.IntValue(int64(status)))
	}
	if err != nil {
		c.auditInterface(audit.TypeError, audit.ActionPortUpDown, ifIndex,
			"Failed to set %s admin %s: %v", iface.Name, word, err)
		return err
	}

	iface.AdminStatus = status
	c.noteWrite(ctx, oid, snmp.IntValue(int64(status)))
	c.auditInterface(audit.TypeChange, audit.ActionPortUpDown, ifIndex,
		"Interface %s admin %s", iface.Name, word)
	return nil
}

// BouncePort takes an interface down, waits the configured delay, and
// brings it back up. Useful to force a client re-negotiation.
func (c *Connector) BouncePort(ctx context.Context, ifIndex int) error {
	if err := c.SetAdminStatus(ctx, ifIndex, false); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Duration(c.cfg.PortToggleDelaySeconds) * time.Second):
	}

	return c.SetAdminStatus(ctx, ifIndex, true)
}

// SetAlias changes the interface description. When the existing alias
// matches the keep-beginning pattern, the matched prefix survives the
// edit; an alias matching the not-allow pattern is rejected before any
// set.
func (c *Connector) SetAlias(ctx context.Context, ifIndex int, newAlias string) error {
	iface, found := c.Interfaces[ifIndex]
	if !found {
		return fmt.Errorf("interface %d not found", ifIndex)
	}
	if !iface.CanEditAlias || !c.canManage(iface) {
		return &PolicyError{Rule: "edit_alias", Detail: iface.Name}
	}

	alias := strings.TrimSpace(newAlias)
	if c.cfg.IfaceAliasKeepBeginningRegex != "" {
		if re, err := regexp.Compile(c.cfg.IfaceAliasKeepBeginningRegex); err == nil {
			if kept := re.FindString(iface.Alias); kept != "" && !strings.HasPrefix(alias, kept) {
				alias = kept + " " + alias
			}
		}
	}
	if c.cfg.IfaceAliasNotAllowRegex != "" {
		if re, err := regexp.Compile(c.cfg.IfaceAliasNotAllowRegex); err == nil {
			if re.MatchString(alias) {
				return &PolicyError{Rule: "alias_not_allowed", Detail: alias}
			}
		}
	}

	if err := c.client.Connect(); err != nil {
		return err
	}
	oid := snmp.MIB["ifAlias"] + "." + strconv.Itoa(ifIndex)
	if err := c.client.Set(oid, snmp.StringValue(alias)); err != nil {
		c.auditInterface(audit.TypeError, audit.ActionAliasEdit, ifIndex,
			"Failed to set %s description: %v", iface.Name, err)
		return err
	}

	iface.Alias = alias
	c.noteWrite(ctx, oid, snmp.StringValue(alias))
	c.auditInterface(audit.TypeChange, audit.ActionAliasEdit, ifIndex,
		"Interface %s description set to %q", iface.Name, alias)
	return nil
}

// TogglePoe power-cycles the PSE port behind an interface: disable, wait
// the configured delay, enable. The enable is attempted even when the
// disable failed, so a port is not left dark by a transient error.
func (c *Connector) TogglePoe(ctx context.Context, ifIndex int) error {
	iface, found := c.Interfaces[ifIndex]
	if !found {
		return fmt.Errorf("interface %d not found", ifIndex)
	}
	if iface.PoeEntry == nil {
		return fmt.Errorf("interface %s has no PoE port", iface.Name)
	}
	if !iface.AllowPoeToggle {
		return &PolicyError{Rule: "poe_toggle", Detail: iface.Name}
	}

	if err := c.client.Connect(); err != nil {
		return err
	}

	oid := snmp.MIB["pethPsePortAdminEnable"] + "." + iface.PoeEntry.Index

	downErr := c.client.Set(oid, snmp.IntValue(model.PoePortDisabled))
	if downErr == nil {
		iface.PoeEntry.AdminStatus = model.PoePortDisabled
	}

	select {
	case <-ctx.Done():
		// still try to re-enable below
	case <-time.After(time.Duration(c.cfg.PoeToggleDelaySeconds) * time.Second):
	}

	upErr := c.client.Set(oid, snmp.IntValue(model.PoePortEnabled))
	if upErr == nil {
		iface.PoeEntry.AdminStatus = model.PoePortEnabled
		c.noteWrite(ctx, oid, snmp.IntValue(model.PoePortEnabled))
	}

	if downErr != nil || upErr != nil {
		err := errors.Join(downErr, upErr)
		c.auditInterface(audit.TypeError, audit.ActionPoeToggle, ifIndex,
			"PoE toggle on %s finished %s with error: %v",
			iface.Name, model.PoeStatusName(iface.PoeEntry.DetectStatus), err)
		return err
	}

	c.auditInterface(audit.TypeChange, audit.ActionPoeToggle, ifIndex,
		"PoE toggled on %s", iface.Name)
	return nil
}

// SetUntaggedVlan moves a port's untagged membership from oldVid to
// newVid. The device-side transaction is: write the PVID, then prune the
// port's bit from the old vlan's static egress list (read-modify-write of
// the bitmap, width preserved), then refresh the current egress state.
// Failures after the PVID write return a PartialUpdateError naming the
// last completed step; each write is idempotent, so a retry is safe.
func (c *Connector) SetUntaggedVlan(ctx context.Context, ifIndex, oldVid, newVid int) error {
	iface, found := c.Interfaces[ifIndex]
	if !found {
		return fmt.Errorf("interface %d not found", ifIndex)
	}
	if !c.vendor.CanChangeVlan() {
		return &PolicyError{Rule: "vendor_vlan_change", Detail: c.vendor.Name()}
	}
	if !c.canManage(iface) {
		return &PolicyError{Rule: "manageable", Detail: iface.Name}
	}
	if _, defined := c.Vlans[newVid]; !defined {
		return &PolicyError{Rule: "vlan_undefined", Detail: strconv.Itoa(newVid)}
	}
	if !c.allowedVlans[newVid] {
		return &PolicyError{Rule: "vlan_not_allowed", Detail: strconv.Itoa(newVid)}
	}

	portID := c.portIDFromIfIndex(ifIndex)
	if portID == 0 {
		return &NotBridgedError{IfIndex: ifIndex}
	}
	if err := c.client.Connect(); err != nil {
		return err
	}

	// step 1: the new PVID
	pvidOID := snmp.MIB["dot1qPvid"] + "." + strconv.Itoa(portID)
	if err := c.client.Set(pvidOID, snmp.UnsignedValue(uint32(newVid))); err != nil {
		c.auditInterface(audit.TypeError, audit.ActionVlanChange, ifIndex,
			"Failed to set %s untagged vlan %d: %v", iface.Name, newVid, err)
		return err
	}
	c.noteWrite(ctx, pvidOID, snmp.UnsignedValue(uint32(newVid)))

	// step 2: read the old vlan's writable egress list
	staticOID := snmp.MIB["dot1qVlanStaticEgressPorts"] + "." + strconv.Itoa(oldVid)
	value, err := c.client.Get(staticOID)
	if err != nil {
		return c.vlanChangePartial(ifIndex, "pvid written", err)
	}
	if value.Type != snmp.TypeOctetString {
		return c.vlanChangePartial(ifIndex, "pvid written",
			fmt.Errorf("%w: egress list for vlan %d is not an octet string", ErrDecode, oldVid))
	}

	// step 3: clear our port's bit and write the list back, byte width
	// intact
	ports := model.PortListFromBytes(value.Bytes)
	ports.Clear(portID)
	if err := c.client.Set(staticOID, snmp.OctetsValue(ports.Bytes())); err != nil {
		return c.vlanChangePartial(ifIndex, "pvid written", err)
	}
	c.noteWrite(ctx, staticOID, snmp.OctetsValue(ports.Bytes()))
	if vlan, ok := c.Vlans[oldVid]; ok {
		vlan.StaticEgressPorts = ports
	}

	// step 4: refresh current egress state for both vlans; the .0 index
	// asks the agent to skip its time filter
	for _, vid := range []int{oldVid, newVid} {
		currentOID := snmp.MIB["dot1qVlanCurrentEgressPorts"] + ".0." + strconv.Itoa(vid)
		value, err := c.client.Get(currentOID)
		if err != nil {
			if errors.Is(err, snmp.ErrNoSuchObject) {
				continue
			}
			return c.vlanChangePartial(ifIndex, "egress list pruned", err)
		}
		if vlan, ok := c.Vlans[vid]; ok && value.Type == snmp.TypeOctetString {
			vlan.CurrentEgressPorts = model.PortListFromBytes(value.Bytes)
			c.updateCachedOID(ctx, currentOID, cachedPDU{OID: currentOID, Value: value})
		}
	}

	// the device is done; bring the model in line
	iface.UntaggedVlan = newVid
	if vlan, ok := c.Vlans[newVid]; ok {
		iface.UntaggedVlanName = vlan.Name
	}
	iface.RemoveTaggedVlan(newVid)

	c.auditInterface(audit.TypeChange, audit.ActionVlanChange, ifIndex,
		"Interface %s untagged vlan %d -> %d", iface.Name, oldVid, newVid)
	return nil
}

func (c *Connector) vlanChangePartial(ifIndex int, lastGood string, err error) error {
	partial := &PartialUpdateError{Operation: "vlan change", LastGood: lastGood, Err: err}
	c.auditInterface(audit.TypeError, audit.ActionVlanChange, ifIndex, "%s", partial.Error())
	return partial
}

// SaveConfig asks the vendor variant to copy the running config to
// startup; the session's save-needed flag clears on success.
func (c *Connector) SaveConfig(ctx context.Context) error {
	if !c.vendor.CanSaveConfig() {
		return fmt.Errorf("%s does not support saving the config", c.vendor.Name())
	}
	if err := c.client.Connect(); err != nil {
		return err
	}
	if err := c.vendor.SaveConfig(c); err != nil {
		c.audit(audit.TypeError, audit.ActionSaveConfig, "Config save failed: %v", err)
		return err
	}
	c.SetSaveNeeded(ctx, false)
	c.audit(audit.TypeChange, audit.ActionSaveConfig, "Running config saved to startup")
	return nil
}

// ProbeRead verifies the profile can read the agent.
func (c *Connector) ProbeRead() error {
	if err := c.client.Connect(); err != nil {
		return err
	}
	_, err := c.client.Get(snmp.OidSysObjectID)
	return err
}

// ProbeWrite verifies the profile can write, by rewriting sysLocation with
// its own value.
func (c *Connector) ProbeWrite() error {
	if err := c.client.Connect(); err != nil {
		return err
	}
	value, err := c.client.Get(snmp.OidSysLocation)
	if err != nil {
		return err
	}
	return c.client.Set(snmp.OidSysLocation, value)
}

// noteWrite counts a successful device write, mirrors it into the raw
// cache and flags the unsaved-config state.
func (c *Connector) noteWrite(ctx context.Context, oid string, value snmp.Value) {
	c.sw.SnmpWriteCount++
	c.updateCachedOID(ctx, oid, cachedPDU{OID: oid, Value: value})
	c.SetSaveNeeded(ctx, true)
}
