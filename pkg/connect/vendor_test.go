package connect

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openl2m/core/pkg/model"
	"github.com/openl2m/core/pkg/snmp"
)

func TestEnterpriseName(t *testing.T) {
	assert.Equal(t, "Cisco", EnterpriseName(".1.3.6.1.4.1.9.1.1208"))
	assert.Equal(t, "Hewlett-Packard", EnterpriseName(".1.3.6.1.4.1.11.2.3.7.11.119"))
	assert.Equal(t, "Unknown", EnterpriseName(".1.3.6.1.4.1.99999.1"))
	assert.Empty(t, EnterpriseName(".1.3.6.1.2.1.1"))
	assert.Empty(t, EnterpriseName(""))
}

func TestVendorForObjectID(t *testing.T) {
	assert.Equal(t, "Cisco SNMP", vendorForObjectID(".1.3.6.1.4.1.9.1.1208").Name())
	assert.Equal(t, "HP Procurve SNMP", vendorForObjectID(".1.3.6.1.4.1.11.2.3.7.11.119").Name())
	assert.Equal(t, "HP Procurve SNMP", vendorForObjectID(".1.3.6.1.4.1.14823.1.1.1").Name())
	assert.Equal(t, "Standard SNMP", vendorForObjectID(".1.3.6.1.4.1.2636.1.1").Name())
	assert.Equal(t, "Standard SNMP", vendorForObjectID("").Name())
}

// Procurve gear keys PSE ports "1.<port>" while naming interfaces with the
// bare port number.
func TestProcurve_PoeMapping(t *testing.T) {
	f := newFakeClient()
	f.addWalk("system", "2.0", snmp.OIDValue(".1.3.6.1.4.1.11.2.3.7.11.119"))
	f.addWalk("system", "5.0", snmp.StringValue("procurve-1"))
	for _, idx := range []string{"1", "2", "3"} {
		f.addWalk("ifIndex", idx, snmp.IntValue(int64(mustAtoi(idx))))
		f.addWalk("ifType", idx, snmp.IntValue(6))
		f.addWalk("ifName", idx, snmp.StringValue(idx))
	}
	f.addWalk("pethMainPsePower", "1", snmp.GaugeValue(190))
	f.addWalk("pethPsePortAdminEnable", "1.2", snmp.IntValue(model.PoePortEnabled))
	f.addWalk("pethPsePortDetectionStatus", "1.2", snmp.IntValue(model.PoeStatusDelivering))

	c := newLabConnector(t, f)
	require.NoError(t, c.GetBasic(context.Background()))
	require.Equal(t, "HP Procurve SNMP", c.Vendor().Name())

	// the suffix match cannot bind "1/2" to an interface named "2"; the
	// variant's fallback does
	require.NotNil(t, c.Interfaces[2].PoeEntry)
	assert.Equal(t, "1.2", c.Interfaces[2].PoeEntry.Index)
	assert.Nil(t, c.Interfaces[1].PoeEntry)
	assert.Nil(t, c.Interfaces[3].PoeEntry)
}

func TestStandard_SaveConfigUnsupported(t *testing.T) {
	err := Standard{}.SaveConfig(nil)
	assert.ErrorIs(t, err, ErrPolicyDenied)
	assert.False(t, Standard{}.CanSaveConfig())
	assert.True(t, Standard{}.CanChangeVlan())
}
