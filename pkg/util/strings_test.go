package util

import "testing"

func TestFormatEthernet(t *testing.T) {
	addr := [6]byte{0x00, 0x1b, 0x2c, 0x3d, 0x4e, 0x5f}

	tests := []struct {
		format    string
		uppercase bool
		want      string
	}{
		{EthFormatColon, false, "00:1b:2c:3d:4e:5f"},
		{EthFormatColon, true, "00:1B:2C:3D:4E:5F"},
		{EthFormatHyphen, false, "00-1b-2c-3d-4e-5f"},
		{EthFormatCisco, false, "001b.2c3d.4e5f"},
		{"bogus", false, "00:1b:2c:3d:4e:5f"},
	}

	for _, tt := range tests {
		got := FormatEthernet(addr, tt.format, tt.uppercase)
		if got != tt.want {
			t.Errorf("FormatEthernet(%s, %v) = %q, want %q", tt.format, tt.uppercase, got, tt.want)
		}
	}
}

func TestParseEthernet_RoundTrip(t *testing.T) {
	addr := [6]byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x42}

	for _, format := range []string{EthFormatColon, EthFormatHyphen, EthFormatCisco} {
		s := FormatEthernet(addr, format, false)
		got, err := ParseEthernet(s)
		if err != nil {
			t.Fatalf("ParseEthernet(%q): %v", s, err)
		}
		if got != addr {
			t.Errorf("round trip via %s: got %v, want %v", format, got, addr)
		}
	}
}

func TestParseEthernet_Invalid(t *testing.T) {
	for _, s := range []string{"", "00:11:22", "zz:zz:zz:zz:zz:zz", "00:11:22:33:44:55:66"} {
		if _, err := ParseEthernet(s); err == nil {
			t.Errorf("ParseEthernet(%q) should fail", s)
		}
	}
}

func TestDecimalsToEthernet(t *testing.T) {
	got, err := DecimalsToEthernet("0.12.41.112.19.1")
	if err != nil {
		t.Fatalf("DecimalsToEthernet: %v", err)
	}
	want := [6]byte{0, 12, 41, 112, 19, 1}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}

	if _, err := DecimalsToEthernet("1.2.3"); err == nil {
		t.Error("short index should fail")
	}
	if _, err := DecimalsToEthernet("1.2.3.4.5.999"); err == nil {
		t.Error("out of range octet should fail")
	}
}
