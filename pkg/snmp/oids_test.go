package snmp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOidInBranch(t *testing.T) {
	branch := MIB["ifType"]

	suffix, ok := OidInBranch(branch, branch+".101")
	assert.True(t, ok)
	assert.Equal(t, "101", suffix)

	// multi-part indexes come back whole
	suffix, ok = OidInBranch(MIB["dot1qVlanCurrentEgressPorts"], MIB["dot1qVlanCurrentEgressPorts"]+".0.10")
	assert.True(t, ok)
	assert.Equal(t, "0.10", suffix)

	// the branch itself is not in the branch
	_, ok = OidInBranch(branch, branch)
	assert.False(t, ok)

	// component boundaries matter: .1.2.3 does not contain .1.2.34
	_, ok = OidInBranch(".1.3.6.1.2.1.2.2.1.3", ".1.3.6.1.2.1.2.2.1.31.5")
	assert.False(t, ok)

	_, ok = OidInBranch(branch, ".1.3.6.1.9.9.9.1")
	assert.False(t, ok)
}

func TestBranchOID(t *testing.T) {
	assert.Equal(t, ".1.3.6.1.2.1.17.7.1.4.5.1.1", BranchOID("dot1qPvid"))
	assert.Empty(t, BranchOID("noSuchBranch"))
}

func TestProfileValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		ok      bool
	}{
		{"v2c", Profile{Name: "p", Version: Version2c, Community: "public"}, true},
		{"v2c no community", Profile{Name: "p", Version: Version2c}, false},
		{"v3 noauth", Profile{Name: "p", Version: Version3, Username: "op", SecLevel: SecNoAuthNoPriv}, true},
		{"v3 authNoPriv sha", Profile{
			Name: "p", Version: Version3, Username: "op", SecLevel: SecAuthNoPriv,
			AuthProtocol: AuthSHA, AuthPassphrase: "secret12",
		}, true},
		{"v3 authPriv aes", Profile{
			Name: "p", Version: Version3, Username: "op", SecLevel: SecAuthPriv,
			AuthProtocol: AuthMD5, AuthPassphrase: "secret12",
			PrivProtocol: PrivAES, PrivPassphrase: "secret34",
		}, true},
		{"v3 bad sec level", Profile{Name: "p", Version: Version3, Username: "op", SecLevel: "authMax"}, false},
		{"v3 missing priv pass", Profile{
			Name: "p", Version: Version3, Username: "op", SecLevel: SecAuthPriv,
			AuthProtocol: AuthSHA, AuthPassphrase: "secret12", PrivProtocol: PrivDES,
		}, false},
		{"v3 no user", Profile{Name: "p", Version: Version3, SecLevel: SecNoAuthNoPriv}, false},
		{"unsupported version", Profile{Name: "p", Version: 1, Community: "public"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrBadProfile)
			}
		})
	}
}

func TestValueConversions(t *testing.T) {
	v := IntValue(42)
	assert.True(t, v.IsNumeric())
	assert.Equal(t, int64(42), v.IntVal())
	assert.Equal(t, "42", v.StringVal())

	o := OctetsValue([]byte{0xA0, 0x00})
	assert.False(t, o.IsNumeric())
	assert.Equal(t, int64(0), o.IntVal())

	s := StringValue("GigabitEthernet1/0/1")
	assert.Equal(t, "GigabitEthernet1/0/1", s.StringVal())

	oid := OIDValue(".1.3.6.1.4.1.9.1.1")
	assert.Equal(t, ".1.3.6.1.4.1.9.1.1", oid.StringVal())
}
