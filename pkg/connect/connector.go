// Package connect implements the SNMP device abstraction layer: a
// per-switch connector that walks the standard MIBs into an in-memory
// model, caches it per user session, applies the authorization policy and
// performs the supported mutations.
package connect

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/openl2m/core/pkg/audit"
	"github.com/openl2m/core/pkg/inventory"
	"github.com/openl2m/core/pkg/model"
	"github.com/openl2m/core/pkg/settings"
	"github.com/openl2m/core/pkg/snmp"
	"github.com/openl2m/core/pkg/store"
	"github.com/openl2m/core/pkg/util"
)

// TimingEntry is the per-branch walk cost
type TimingEntry struct {
	Count   int           `json:"count"`
	Elapsed time.Duration `json:"elapsed"`
}

// MibTiming maps branch name to walk cost; the "Total" entry accumulates
// across branches.
type MibTiming map[string]TimingEntry

// Params carries everything a connector needs from the host.
type Params struct {
	SessionID string
	Store     store.SessionStore
	Inventory *inventory.Inventory
	Switch    *inventory.Switch
	Group     *inventory.SwitchGroup
	User      *inventory.User
	RemoteIP  string
	Settings  settings.Settings
	Sink      audit.Sink

	// Client overrides the gosnmp transport; used by tests and vendor
	// tooling.
	Client snmp.Client
}

// Connector drives one switch for one user session. It is not safe for
// concurrent use; every session builds its own.
type Connector struct {
	client snmp.Client
	sw     *inventory.Switch
	group  *inventory.SwitchGroup
	user   *inventory.User
	inv    *inventory.Inventory
	cfg    settings.Settings
	sink   audit.Sink
	vendor Vendor

	sessionID string
	sessions  store.SessionStore
	remoteIP  string

	// The device model, owned by this connector.
	System       *model.System
	Interfaces   map[int]*model.Interface
	Vlans        map[int]*model.Vlan
	StackMembers map[int]*model.StackMember

	// Index reconciliation state.
	poePortEntries  map[string]*model.PoePort
	qbPortToIfIndex map[int]int
	ip4ToIfIndex    map[string]int
	allowedVlans    map[int]bool

	// Raw walked data in walk order, for the session cache.
	oidCache []cachedPDU

	warnings []string
	timing   MibTiming

	basicReadTime time.Time
	basicDuration time.Duration
	hwInfoNeeded  bool
	basicLoaded   bool

	ethAddrCount  int
	neighborCount int
}

type cachedPDU struct {
	OID   string     `json:"oid"`
	Value snmp.Value `json:"value"`
}

// NewConnector builds a connector for one (session, switch, user, group)
// tuple. It fails with ErrConfiguration when the switch has no usable SNMP
// profile. The session's cached state for a different switch is cleared.
func NewConnector(ctx context.Context, p Params) (*Connector, error) {
	if p.Switch == nil {
		return nil, fmt.Errorf("%w: no switch record", ErrConfiguration)
	}
	if p.User == nil {
		return nil, fmt.Errorf("%w: no user", ErrConfiguration)
	}
	if p.Sink == nil {
		p.Sink = audit.NopSink{}
	}
	p.Settings.Normalize()

	client := p.Client
	if client == nil {
		var profile *snmp.Profile
		if p.Inventory != nil {
			profile = p.Inventory.SnmpProfileFor(p.Switch)
		}
		if profile == nil {
			return nil, fmt.Errorf("%w: switch %q has no snmp profile", ErrConfiguration, p.Switch.Name)
		}
		var err error
		client, err = snmp.NewUDPClient(p.Switch.PrimaryIP4, profile, p.Settings)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
		}
	}

	c := &Connector{
		client:          client,
		sw:              p.Switch,
		group:           p.Group,
		user:            p.User,
		inv:             p.Inventory,
		cfg:             p.Settings,
		sink:            p.Sink,
		vendor:          Standard{},
		sessionID:       p.SessionID,
		sessions:        p.Store,
		remoteIP:        p.RemoteIP,
		System:          model.NewSystem(),
		Interfaces:      make(map[int]*model.Interface),
		Vlans:           make(map[int]*model.Vlan),
		StackMembers:    make(map[int]*model.StackMember),
		poePortEntries:  make(map[string]*model.PoePort),
		qbPortToIfIndex: make(map[int]int),
		ip4ToIfIndex:    make(map[string]int),
		allowedVlans:    make(map[int]bool),
		timing:          MibTiming{"Total": {}},
		hwInfoNeeded:    true,
	}

	// A session follows the operator from switch to switch; stale state for
	// another switch must go.
	if c.sessions != nil && c.sessionID != "" {
		if id, ok := c.cachedSwitchID(ctx); ok && id != c.sw.ID {
			if err := c.sessions.Clear(ctx, c.sessionID); err != nil {
				util.WithSwitch(c.sw.Name).Warnf("Failed to clear stale session cache: %v", err)
			}
		}
	}

	return c, nil
}

// Close releases the transport
func (c *Connector) Close() error {
	return c.client.Close()
}

// GetBasic loads the basic model: system group, interfaces, vlans, port
// vlan membership, switch addresses and PoE state. The session cache is
// used when it holds this switch; otherwise the MIBs are walked and the
// cache refilled.
func (c *Connector) GetBasic(ctx context.Context) error {
	if c.basicLoaded {
		return nil
	}

	if c.restoreCache(ctx) {
		c.setPermissions()
		c.basicLoaded = true
		c.audit(audit.TypeView, audit.ActionViewBasic, "Basic info from session cache")
		return nil
	}

	if err := c.client.Connect(); err != nil {
		return err
	}

	c.basicReadTime = time.Now()

	c.getSystemData(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	c.getInterfaceData(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	c.getVlanData(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	c.getIP4Addresses(ctx)
	if err := ctx.Err(); err != nil {
		return err
	}
	c.getPoeData(ctx)

	c.basicDuration = time.Since(c.basicReadTime)

	c.vendor.MapPoePortToInterface(c)
	c.verifyVlanMembership()
	c.setPermissions()
	c.saveCache(ctx)
	c.basicLoaded = true

	c.audit(audit.TypeView, audit.ActionViewBasic,
		"Basic info walked in %.1fs", c.basicDuration.Seconds())
	return nil
}

// GetHardware walks the ENTITY-MIB for stack members, model names, serials
// and firmware revisions. Results are cached with the session.
func (c *Connector) GetHardware(ctx context.Context) error {
	if err := c.GetBasic(ctx); err != nil {
		return err
	}

	c.vendor.VendorData(c)

	for _, branch := range []string{
		"entPhysicalClass",
		"entPhysicalSerialNum",
		"entPhysicalSoftwareRev",
		"entPhysicalModelName",
	} {
		if _, err := c.walkBranch(ctx, branch, nil, true); err != nil {
			c.addWarning(fmt.Sprintf("Error getting '%s'", branch))
		}
	}

	c.hwInfoNeeded = false
	c.saveCache(ctx)
	c.audit(audit.TypeView, audit.ActionViewHardware, "Hardware details read")
	return nil
}

// GetDetails walks the live tables that are never cached: learned ethernet
// addresses, ARP and LLDP neighbors.
func (c *Connector) GetDetails(ctx context.Context) error {
	if err := c.GetBasic(ctx); err != nil {
		return err
	}

	if _, err := c.walkBranch(ctx, "dot1dTpFdbPort", c.parseBridgeEth, false); err != nil {
		c.addWarning("Error getting 'Bridge-EthernetAddresses' (dot1dTpFdbPort)")
	}

	c.getLldpData(ctx)

	// ARP last, so found addresses can be joined onto learned MACs.
	if _, err := c.walkBranch(ctx, "ipNetToMediaPhysAddress", c.parseNetToMedia, false); err != nil {
		c.addWarning("Error getting 'ARP-Table' (ipNetToMediaPhysAddress)")
	}

	c.audit(audit.TypeView, audit.ActionViewDetails,
		"Details read: %d ethernet addresses, %d neighbors", c.ethAddrCount, c.neighborCount)
	return nil
}

// GetInterface returns the interface for an ifIndex
func (c *Connector) GetInterface(ifIndex int) (*model.Interface, bool) {
	iface, ok := c.Interfaces[ifIndex]
	return iface, ok
}

// InterfaceIndexes returns all known ifIndex values in ascending order.
func (c *Connector) InterfaceIndexes() []int {
	indexes := make([]int, 0, len(c.Interfaces))
	for idx := range c.Interfaces {
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes
}

// GetVlan returns the vlan for an id
func (c *Connector) GetVlan(vid int) (*model.Vlan, bool) {
	v, ok := c.Vlans[vid]
	return v, ok
}

// Warnings returns the warnings accumulated by walks and mutations
func (c *Connector) Warnings() []string {
	return c.warnings
}

// MibTiming returns the per-branch walk costs
func (c *Connector) MibTiming() MibTiming {
	return c.timing
}

// Vendor returns the active vendor variant
func (c *Connector) Vendor() Vendor {
	return c.vendor
}

// BasicWalkDuration reports how long the last live basic walk took.
func (c *Connector) BasicWalkDuration() time.Duration {
	return c.basicDuration
}

// getSystemData walks the system group and checks for object-id or
// hostname drift against the switch record.
func (c *Connector) getSystemData(ctx context.Context) {
	if _, err := c.walkBranch(ctx, "system", nil, true); err != nil {
		c.addWarning("Error getting 'System-Mib' (system)")
		return
	}

	c.System.EnterpriseName = EnterpriseName(c.System.ObjectID)
	c.vendor = vendorForObjectID(c.System.ObjectID)

	if c.System.ObjectID != "" && c.sw.SnmpObjectID != c.System.ObjectID {
		c.sw.SnmpObjectID = c.System.ObjectID
		c.audit(audit.TypeWarning, audit.ActionNewObjectID,
			"New System ObjectID found: %s", c.System.ObjectID)
	}
	if c.System.Name != "" && c.sw.SnmpHostname != c.System.Name {
		c.sw.SnmpHostname = c.System.Name
		c.audit(audit.TypeWarning, audit.ActionNewHostname,
			"New System Hostname found: %s", c.System.Name)
	}
}

// getInterfaceData walks the IF-MIB branches we need rather than the whole
// table, preferring the ifXTable name and speed over their MIB-II twins.
func (c *Connector) getInterfaceData(ctx context.Context) {
	for _, branch := range []string{"ifIndex", "ifType", "ifMtu", "ifPhysAddress", "ifAdminStatus", "ifOperStatus"} {
		if _, err := c.walkBranch(ctx, branch, nil, true); err != nil {
			c.addWarning(fmt.Sprintf("Error getting 'Interfaces' (%s)", branch))
		}
	}

	count, err := c.walkBranch(ctx, "ifName", nil, true)
	if err != nil {
		c.addWarning("Error getting 'Interface-Names' (ifName)")
	}
	if count == 0 {
		if _, err := c.walkBranch(ctx, "ifDescr", nil, true); err != nil {
			c.addWarning("Error getting 'Interface-Descriptions' (ifDescr)")
		}
	} else {
		c.sw.SetCapability(inventory.CapIfMib)
	}

	if _, err := c.walkBranch(ctx, "ifAlias", nil, true); err != nil {
		c.addWarning("Error getting 'Interface-Alias' (ifAlias)")
	}

	count, err = c.walkBranch(ctx, "ifHighSpeed", nil, true)
	if err != nil {
		c.addWarning("Error getting 'Interface-HiSpeed' (ifHighSpeed)")
	}
	if count == 0 {
		if _, err := c.walkBranch(ctx, "ifSpeed", nil, true); err != nil {
			c.addWarning("Error getting 'Interface-Speed' (ifSpeed)")
		}
	}
}

// getVlanData reads the Q-BRIDGE state: base settings, port id map, vlan
// rows and names, per-port PVIDs and the egress membership bitmaps.
func (c *Connector) getVlanData(ctx context.Context) {
	if _, err := c.walkBranch(ctx, "dot1qBase", nil, true); err != nil {
		c.addWarning("Error getting 'Q-Bridge-Base' (dot1qBase)")
	}

	if c.System.VlanCount > 0 {
		if _, err := c.walkBranch(ctx, "dot1dBasePortIfIndex", nil, true); err != nil {
			c.addWarning("Error getting 'Q-Bridge-PortId-Map' (dot1dBasePortIfIndex)")
		}

		count, err := c.walkBranch(ctx, "dot1qVlanStaticRowStatus", nil, true)
		if err != nil {
			c.addWarning("Error getting 'Q-Bridge-Vlan-Rows' (dot1qVlanStaticRowStatus)")
		}
		if count > 0 {
			c.sw.SetCapability(inventory.CapQBridgeMib)
			if _, err := c.walkBranch(ctx, "dot1qVlanStaticName", nil, true); err != nil {
				c.addWarning("Error getting 'Q-Bridge-Vlan-Names' (dot1qVlanStaticName)")
			}
			if _, err := c.walkBranch(ctx, "dot1qVlanStatus", nil, true); err != nil {
				c.addWarning("Error getting 'Q-Bridge-Vlan-Status' (dot1qVlanStatus)")
			}
		} else {
			c.addWarning("No VLANs found at 'Q-Bridge-Vlan-Rows' (dot1qVlanStaticRowStatus)")
		}

		if _, err := c.walkBranch(ctx, "dot1qPvid", nil, true); err != nil {
			c.addWarning("Error getting 'Q-Bridge-Interface-PVID' (dot1qPvid)")
		}
		if _, err := c.walkBranch(ctx, "dot1qVlanCurrentEgressPorts", nil, true); err != nil {
			c.addWarning("Error getting 'Q-Bridge-Vlan-Egress-Interfaces' (dot1qVlanCurrentEgressPorts)")
		}

		if c.System.GvrpEnabled {
			if _, err := c.walkBranch(ctx, "dot1qPortGvrpStatus", nil, true); err != nil {
				c.addWarning("Error getting 'Q-Bridge-Port-GVRP' (dot1qPortGvrpStatus)")
			}
		}
	}

	// MVRP is the successor flag; track it regardless of the GVRP state.
	if _, err := c.walkBranch(ctx, "ieee8021QBridgeMvrpEnabledStatus", nil, true); err != nil {
		c.addWarning("Error getting 'Q-Bridge-MVRP' (ieee8021QBridgeMvrpEnabledStatus)")
	}
}

// getIP4Addresses reads the ipAddrTable for the switch's own addresses.
func (c *Connector) getIP4Addresses(ctx context.Context) {
	if _, err := c.walkBranch(ctx, "ipAddrTable", nil, true); err != nil {
		c.addWarning("Error getting 'IP-Address-Entries' (ipAddrTable)")
	}
}

// getPoeData reads the PSE units first; only when the switch has power
// supplies are the per-port tables worth walking.
func (c *Connector) getPoeData(ctx context.Context) {
	count, err := c.walkBranch(ctx, "pethMainPseEntry", nil, true)
	if err != nil {
		c.addWarning("Error getting 'PoE-PSE-Data' (pethMainPseEntry)")
		return
	}
	if count == 0 {
		return
	}
	c.sw.SetCapability(inventory.CapPoeMib)

	count, err = c.walkBranch(ctx, "pethPsePortAdminEnable", nil, true)
	if err != nil {
		c.addWarning("Error getting 'PoE-Port-Admin-Status' (pethPsePortAdminEnable)")
	}
	if count > 0 {
		if _, err := c.walkBranch(ctx, "pethPsePortDetectionStatus", nil, true); err != nil {
			c.addWarning("Error getting 'PoE-Port-Detect-Status' (pethPsePortDetectionStatus)")
		}
	}
}

// getLldpData walks the LLDP remote table columns. The port-id column
// creates the neighbor entries; the rest only fill them in, so they are
// skipped when no neighbors exist.
func (c *Connector) getLldpData(ctx context.Context) {
	count, err := c.walkBranch(ctx, "lldpRemPortId", c.parseLldp, false)
	if err != nil {
		c.addWarning("Error getting 'LLDP-Remote-Ports' (lldpRemPortId)")
		return
	}
	if count == 0 {
		return
	}
	c.sw.SetCapability(inventory.CapLldpMib)

	for _, branch := range []string{
		"lldpRemPortDesc",
		"lldpRemSysName",
		"lldpRemSysDesc",
		"lldpRemSysCapEnabled",
		"lldpRemChassisIdSubtype",
		"lldpRemChassisId",
	} {
		if _, err := c.walkBranch(ctx, branch, c.parseLldp, false); err != nil {
			c.addWarning(fmt.Sprintf("Error getting 'LLDP-Remote' (%s)", branch))
		}
	}
}

// walkBranch bulk-walks one named branch through a parser, recording the
// walk cost. With a nil parser the default dispatcher is used; cacheIt
// stores parsed varbinds for the session cache replay.
func (c *Connector) walkBranch(ctx context.Context, name string, parser parseFunc, cacheIt bool) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	branchOID := snmp.BranchOID(name)
	if branchOID == "" {
		c.addWarning(fmt.Sprintf("ERROR: invalid branch name '%s'", name))
		return 0, fmt.Errorf("unknown mib branch %q", name)
	}
	if parser == nil {
		parser = c.parseOID
	}

	start := time.Now()
	count, err := c.client.WalkBranch(branchOID, func(oid string, value snmp.Value) error {
		if c.vendor.ParseOID(c, oid, value) {
			if cacheIt {
				c.oidCache = append(c.oidCache, cachedPDU{OID: oid, Value: value})
			}
			return nil
		}
		if parser(oid, value) && cacheIt {
			c.oidCache = append(c.oidCache, cachedPDU{OID: oid, Value: value})
		}
		return nil
	})
	c.addTiming(name, count, time.Since(start))
	c.sw.SnmpBulkReadCount++

	if err != nil {
		util.WithSwitch(c.sw.Name).Warnf("Branch %s walk failed: %v", name, err)
		return count, err
	}
	return count, nil
}

// verifyVlanMembership flags interfaces whose tagged vlans are not defined
// on the switch. The PVID case is handled during the pvid parse.
func (c *Connector) verifyVlanMembership() {
	for _, iface := range c.Interfaces {
		for _, vid := range iface.TaggedVlans {
			if _, ok := c.Vlans[vid]; !ok {
				iface.Disabled = true
				iface.DisabledReason = fmt.Sprintf("Undefined vlan %d", vid)
				c.addWarning(fmt.Sprintf("Undefined vlan %d on %s", vid, iface.Name))
				break
			}
		}
	}
}

// addTiming records a branch walk cost and rolls it into the total.
func (c *Connector) addTiming(name string, count int, elapsed time.Duration) {
	c.timing[name] = TimingEntry{Count: count, Elapsed: elapsed}
	total := c.timing["Total"]
	total.Count += count
	total.Elapsed += elapsed
	c.timing["Total"] = total
}

// addWarning appends to the connector warning list and audit-logs it.
func (c *Connector) addWarning(warning string) {
	c.warnings = append(c.warnings, warning)
	c.audit(audit.TypeWarning, audit.ActionSnmpError, "%s", warning)
}

// audit emits an event through the host's sink.
func (c *Connector) audit(eventType audit.Type, action, format string, args ...interface{}) {
	event := audit.NewEvent(c.user.Name, c.sw.Name, eventType, action).
		WithRemoteIP(c.remoteIP).
		WithDescription(format, args...)
	if c.group != nil {
		event.WithGroup(c.group.Name)
	}
	if err := c.sink.Log(event); err != nil {
		util.WithSwitch(c.sw.Name).Warnf("Failed to write audit event: %v", err)
	}
}

func (c *Connector) auditInterface(eventType audit.Type, action string, ifIndex int, format string, args ...interface{}) {
	event := audit.NewEvent(c.user.Name, c.sw.Name, eventType, action).
		WithRemoteIP(c.remoteIP).
		WithInterface(ifIndex).
		WithDescription(format, args...)
	if c.group != nil {
		event.WithGroup(c.group.Name)
	}
	if err := c.sink.Log(event); err != nil {
		util.WithSwitch(c.sw.Name).Warnf("Failed to write audit event: %v", err)
	}
}
