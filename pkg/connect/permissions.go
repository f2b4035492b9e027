package connect

import (
	"regexp"

	"github.com/openl2m/core/pkg/model"
	"github.com/openl2m/core/pkg/util"
)

// setAllowedVlans computes the vlans this user may move ports onto: the
// group's entitlements intersected with what the switch defines. Superusers
// get every vlan on the switch; a read-only group grants nothing to anyone
// else.
func (c *Connector) setAllowedVlans() {
	c.allowedVlans = make(map[int]bool)

	if c.user.IsSuperuser {
		for vid := range c.Vlans {
			c.allowedVlans[vid] = true
		}
		return
	}
	if c.group == nil || c.group.ReadOnly {
		return
	}

	granted := map[int]bool{}
	if c.inv != nil {
		granted = c.inv.GroupVlanIDs(c.group)
	} else {
		for _, v := range c.group.Vlans {
			granted[v.VID] = true
		}
	}

	for vid := range c.Vlans {
		if granted[vid] {
			c.allowedVlans[vid] = true
		}
	}
}

// AllowedVlans returns the vlan ids the current user may assign.
func (c *Connector) AllowedVlans() map[int]bool {
	return c.allowedVlans
}

// setPermissions applies the layered policy to every interface, after each
// walk or cache restore. Hide rules only remove manageability; the port
// stays visible so operators can see state they cannot change.
func (c *Connector) setPermissions() {
	c.setAllowedVlans()

	var hideName, hideDescr *regexp.Regexp
	var err error
	if c.cfg.IfaceHideRegexIfName != "" {
		if hideName, err = regexp.Compile(c.cfg.IfaceHideRegexIfName); err != nil {
			util.Warnf("Bad IfaceHideRegexIfName %q: %v", c.cfg.IfaceHideRegexIfName, err)
		}
	}
	if c.cfg.IfaceHideRegexIfDescr != "" {
		if hideDescr, err = regexp.Compile(c.cfg.IfaceHideRegexIfDescr); err != nil {
			util.Warnf("Bad IfaceHideRegexIfDescr %q: %v", c.cfg.IfaceHideRegexIfDescr, err)
		}
	}

	groupReadOnly := c.group != nil && c.group.ReadOnly
	groupPoe := c.group != nil && c.group.AllowPoeToggle
	groupAlias := c.group != nil && c.group.EditIfDescr

	for _, iface := range c.Interfaces {
		// a read-only switch, group or user wins over everything,
		// superusers included
		if groupReadOnly || c.sw.ReadOnly || c.user.Profile.ReadOnly {
			iface.Manageable = false
		}

		if c.user.IsSuperuser {
			iface.Visible = true
			iface.AllowPoeToggle = true
			iface.CanEditAlias = true
			continue
		}

		if c.cfg.AlwaysAllowPoeToggle || c.sw.AllowPoeToggle || groupPoe || c.user.Profile.AllowPoeToggle {
			iface.AllowPoeToggle = true
		}
		if c.sw.EditIfDescr && groupAlias && c.user.Profile.EditIfDescr {
			iface.CanEditAlias = true
		}

		// only plain ethernet ports are manageable; optionally the rest
		// (vlan, loopback, lag interfaces) disappear entirely
		if !iface.IsEthernet() {
			if c.cfg.HideNoneEthernetInterfaces {
				iface.Visible = false
			}
			iface.Manageable = false
			continue
		}

		if hideName != nil && hideName.MatchString(iface.Name) {
			iface.Manageable = false
			continue
		}
		if hideDescr != nil && hideDescr.MatchString(iface.Alias) {
			iface.Manageable = false
			continue
		}
		if c.cfg.IfaceHideSpeedAbove > 0 && iface.SpeedMbps > c.cfg.IfaceHideSpeedAbove {
			iface.Manageable = false
			continue
		}

		if iface.UntaggedVlan > 0 && !c.allowedVlans[iface.UntaggedVlan] {
			iface.Manageable = false
			continue
		}
	}
}

// canManage is the mutation-side policy gate.
func (c *Connector) canManage(iface *model.Interface) bool {
	return iface.Manageable && !iface.Disabled
}
