package connect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openl2m/core/pkg/audit"
	"github.com/openl2m/core/pkg/model"
	"github.com/openl2m/core/pkg/settings"
	"github.com/openl2m/core/pkg/snmp"
	"github.com/openl2m/core/pkg/store"
)

func oid(branch, index string) string {
	return snmp.MIB[branch] + "." + index
}

// S4: the canonical vlan change transaction, set order and final model.
func TestSetUntaggedVlan(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	sink := &memorySink{}
	sessions := store.NewMemorySessionStore()
	c := newLabConnector(t, f, withSink(sink), withStore(sessions, "sess-1"))
	require.NoError(t, c.GetBasic(ctx))

	require.NoError(t, c.SetUntaggedVlan(ctx, 101, 10, 20))

	// exactly two sets, in transaction order
	require.Len(t, f.setLog, 2)
	assert.Equal(t, oid("dot1qPvid", "1"), f.setLog[0].OID)
	assert.Equal(t, snmp.TypeUnsigned32, f.setLog[0].Value.Type)
	assert.Equal(t, int64(20), f.setLog[0].Value.Int)

	assert.Equal(t, oid("dot1qVlanStaticEgressPorts", "10"), f.setLog[1].OID)
	assert.Equal(t, snmp.TypeOctetString, f.setLog[1].Value.Type)
	// bit 1 cleared, byte width preserved
	assert.Equal(t, []byte{0x00, 0x00}, f.setLog[1].Value.Bytes)

	// final model state
	iface := c.Interfaces[101]
	assert.Equal(t, 20, iface.UntaggedVlan)
	assert.Equal(t, "SERVERS", iface.UntaggedVlanName)
	assert.NotContains(t, iface.TaggedVlans, 20)

	assert.Equal(t, 2, c.sw.SnmpWriteCount)
	assert.True(t, c.IsSaveNeeded(ctx))
	require.Len(t, sink.byAction(audit.ActionVlanChange), 1)
}

// Idempotence: applying the same change twice clears an already-clear bit
// and converges to the same state.
func TestSetUntaggedVlan_Idempotent(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	c := newLabConnector(t, f)
	require.NoError(t, c.GetBasic(ctx))

	require.NoError(t, c.SetUntaggedVlan(ctx, 101, 10, 20))
	require.NoError(t, c.SetUntaggedVlan(ctx, 101, 10, 20))

	require.Len(t, f.setLog, 4)
	// second pass writes the same values again
	assert.Equal(t, f.setLog[0].Value, f.setLog[2].Value)
	assert.Equal(t, []byte{0x00, 0x00}, f.setLog[3].Value.Bytes)
	assert.Equal(t, 20, c.Interfaces[101].UntaggedVlan)
}

func TestSetUntaggedVlan_PartialFailure(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	f.failOnSet[oid("dot1qVlanStaticEgressPorts", "10")] =
		&snmp.TransportError{OID: oid("dot1qVlanStaticEgressPorts", "10"), Err: context.DeadlineExceeded}

	c := newLabConnector(t, f)
	require.NoError(t, c.GetBasic(ctx))

	err := c.SetUntaggedVlan(ctx, 101, 10, 20)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPartialUpdate)

	var partial *PartialUpdateError
	require.ErrorAs(t, err, &partial)
	assert.Equal(t, "pvid written", partial.LastGood)

	// the PVID write went through before the failure
	require.NotEmpty(t, f.setLog)
	assert.Equal(t, oid("dot1qPvid", "1"), f.setLog[0].OID)

	// a retry succeeds: both writes are idempotent
	require.NoError(t, c.SetUntaggedVlan(ctx, 101, 10, 20))
	assert.Equal(t, 20, c.Interfaces[101].UntaggedVlan)
}

func TestSetUntaggedVlan_Denied(t *testing.T) {
	ctx := context.Background()
	c := newLabConnector(t, labFixture())
	require.NoError(t, c.GetBasic(ctx))

	// undefined target vlan
	err := c.SetUntaggedVlan(ctx, 101, 10, 4000)
	assert.ErrorIs(t, err, ErrPolicyDenied)

	// interface outside the bridge
	err = c.SetUntaggedVlan(ctx, 200, 10, 20)
	assert.ErrorIs(t, err, ErrPolicyDenied) // vlan interface: not manageable

	// bridged lookup failure: drop 200 from manageability rules by faking
	// an ethernet port without a bridge port id
	c.Interfaces[200].Type = model.IfTypeEthernet
	c.Interfaces[200].Manageable = true
	c.Interfaces[200].UntaggedVlan = 10
	err = c.SetUntaggedVlan(ctx, 200, 10, 20)
	assert.ErrorIs(t, err, ErrNotBridged)
	var nb *NotBridgedError
	require.ErrorAs(t, err, &nb)
	assert.Equal(t, 200, nb.IfIndex)
}

func TestSetAdminStatus(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	sink := &memorySink{}
	c := newLabConnector(t, f, withSink(sink))
	require.NoError(t, c.GetBasic(ctx))

	require.NoError(t, c.SetAdminStatus(ctx, 101, false))
	assert.Equal(t, model.StatusDown, c.Interfaces[101].AdminStatus)

	last := f.setLog[len(f.setLog)-1]
	assert.Equal(t, oid("ifAdminStatus", "101"), last.OID)
	assert.Equal(t, int64(model.StatusDown), last.Value.Int)

	// idempotent: same set twice, same result
	require.NoError(t, c.SetAdminStatus(ctx, 101, false))
	assert.Equal(t, model.StatusDown, c.Interfaces[101].AdminStatus)

	require.Len(t, sink.byAction(audit.ActionPortUpDown), 2)
}

func TestSetAdminStatus_RetriesTransient(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	// first set fails with a transport error, retry succeeds
	f.failOnSet[oid("ifAdminStatus", "101")] =
		&snmp.TransportError{OID: oid("ifAdminStatus", "101"), Err: context.DeadlineExceeded}

	c := newLabConnector(t, f)
	require.NoError(t, c.GetBasic(ctx))

	require.NoError(t, c.SetAdminStatus(ctx, 101, true))
	assert.Equal(t, model.StatusUp, c.Interfaces[101].AdminStatus)
}

func TestBouncePort(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	c := newLabConnector(t, f)
	require.NoError(t, c.GetBasic(ctx))

	require.NoError(t, c.BouncePort(ctx, 101))

	adminOID := oid("ifAdminStatus", "101")
	var statusSets []int64
	for _, set := range f.setLog {
		if set.OID == adminOID {
			statusSets = append(statusSets, set.Value.Int)
		}
	}
	require.Len(t, statusSets, 2)
	assert.Equal(t, int64(model.StatusDown), statusSets[0])
	assert.Equal(t, int64(model.StatusUp), statusSets[1])
	assert.Equal(t, model.StatusUp, c.Interfaces[101].AdminStatus)
}

func TestSetAlias(t *testing.T) {
	ctx := context.Background()
	cfg := settings.Defaults()
	cfg.IfaceAliasKeepBeginningRegex = `^D\.\d+`
	cfg.IfaceAliasNotAllowRegex = `^Po|NOT ALLOWED`

	f := labFixture()
	c := newLabConnector(t, f, withSettings(cfg))
	require.NoError(t, c.GetBasic(ctx))

	c.Interfaces[101].Alias = "D.112 old printer"

	// the protected prefix survives the edit
	require.NoError(t, c.SetAlias(ctx, 101, "new printer"))
	assert.Equal(t, "D.112 new printer", c.Interfaces[101].Alias)

	last := f.setLog[len(f.setLog)-1]
	assert.Equal(t, oid("ifAlias", "101"), last.OID)
	assert.Equal(t, "D.112 new printer", last.Value.StringVal())

	// rejected content fails before any set
	setsBefore := len(f.setLog)
	err := c.SetAlias(ctx, 103, "NOT ALLOWED here")
	assert.ErrorIs(t, err, ErrPolicyDenied)
	assert.Len(t, f.setLog, setsBefore)
}

func TestTogglePoe(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	sink := &memorySink{}
	c := newLabConnector(t, f, withSink(sink))
	require.NoError(t, c.GetBasic(ctx))

	require.NoError(t, c.TogglePoe(ctx, 101))

	poeOID := oid("pethPsePortAdminEnable", "1.24")
	var poeSets []snmp.PDU
	for _, set := range f.setLog {
		if set.OID == poeOID {
			poeSets = append(poeSets, set)
		}
	}
	require.Len(t, poeSets, 2)
	assert.Equal(t, int64(model.PoePortDisabled), poeSets[0].Value.Int)
	assert.Equal(t, int64(model.PoePortEnabled), poeSets[1].Value.Int)
	assert.Equal(t, model.PoePortEnabled, c.Interfaces[101].PoeEntry.AdminStatus)
}

// The enable leg still runs when the disable failed.
func TestTogglePoe_EnableAfterFailedDisable(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	poeOID := oid("pethPsePortAdminEnable", "1.24")
	f.failOnSet[poeOID] = &snmp.TransportError{OID: poeOID, Err: context.DeadlineExceeded}

	c := newLabConnector(t, f)
	require.NoError(t, c.GetBasic(ctx))

	err := c.TogglePoe(ctx, 101)
	require.Error(t, err)

	// the second (enable) set still happened
	require.Len(t, f.setLog, 1)
	assert.Equal(t, int64(model.PoePortEnabled), f.setLog[0].Value.Int)
}

func TestTogglePoe_NoPoePort(t *testing.T) {
	ctx := context.Background()
	c := newLabConnector(t, labFixture())
	require.NoError(t, c.GetBasic(ctx))

	assert.Error(t, c.TogglePoe(ctx, 109))
}

func TestSaveConfig_Cisco(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	sessions := store.NewMemorySessionStore()
	c := newLabConnector(t, f, withStore(sessions, "sess-1"))
	require.NoError(t, c.GetBasic(ctx))
	require.Equal(t, "Cisco SNMP", c.Vendor().Name())

	// a change marks the unsaved state; saving clears it
	require.NoError(t, c.SetAdminStatus(ctx, 101, false))
	assert.True(t, c.IsSaveNeeded(ctx))

	require.NoError(t, c.SaveConfig(ctx))
	assert.False(t, c.IsSaveNeeded(ctx))

	last := f.setLog[len(f.setLog)-1]
	assert.Equal(t, oidCiscoWriteMem, last.OID)
	assert.Equal(t, int64(1), last.Value.Int)
}

func TestSaveConfig_UnsupportedVendor(t *testing.T) {
	ctx := context.Background()
	f := labFixture()
	c := newLabConnector(t, f)
	require.NoError(t, c.GetBasic(ctx))
	c.vendor = Standard{}

	assert.Error(t, c.SaveConfig(ctx))
}

func TestProbes(t *testing.T) {
	f := labFixture()
	f.getData[snmp.OidSysObjectID] = snmp.OIDValue(".1.3.6.1.4.1.9.1.1208")
	f.getData[snmp.OidSysLocation] = snmp.StringValue("lab closet")

	c := newLabConnector(t, f)
	require.NoError(t, c.ProbeRead())
	require.NoError(t, c.ProbeWrite())

	last := f.setLog[len(f.setLog)-1]
	assert.Equal(t, snmp.OidSysLocation, last.OID)
	assert.Equal(t, "lab closet", last.Value.StringVal())
}
