package util

import (
	"fmt"
	"strings"
)

// Ethernet address display formats, settable via Settings.EthFormat.
const (
	EthFormatColon  = "colon"  // aa:bb:cc:dd:ee:ff
	EthFormatHyphen = "hyphen" // aa-bb-cc-dd-ee-ff
	EthFormatCisco  = "cisco"  // aabb.ccdd.eeff
)

// FormatEthernet renders a 6-byte MAC address in the requested format.
// Unknown formats fall back to colon notation.
func FormatEthernet(addr [6]byte, format string, uppercase bool) string {
	var s string
	switch format {
	case EthFormatHyphen:
		s = fmt.Sprintf("%02x-%02x-%02x-%02x-%02x-%02x",
			addr[0], addr[1], addr[2], addr[3], addr[4], addr[5])
	case EthFormatCisco:
		s = fmt.Sprintf("%02x%02x.%02x%02x.%02x%02x",
			addr[0], addr[1], addr[2], addr[3], addr[4], addr[5])
	default:
		s = fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x",
			addr[0], addr[1], addr[2], addr[3], addr[4], addr[5])
	}
	if uppercase {
		return strings.ToUpper(s)
	}
	return s
}

// ParseEthernet parses a MAC address in any of the supported display
// formats back into its 6 bytes.
func ParseEthernet(s string) ([6]byte, error) {
	var addr [6]byte
	clean := strings.NewReplacer(":", "", "-", "", ".", "").Replace(s)
	if len(clean) != 12 {
		return addr, fmt.Errorf("invalid ethernet address %q", s)
	}
	for i := 0; i < 6; i++ {
		var b byte
		if _, err := fmt.Sscanf(clean[i*2:i*2+2], "%02x", &b); err != nil {
			return addr, fmt.Errorf("invalid ethernet address %q: %w", s, err)
		}
		addr[i] = b
	}
	return addr, nil
}

// DecimalsToEthernet converts a dotted-decimal OID suffix such as
// "0.12.41.112.19.1" (the index form used by the bridge FDB tables)
// into the 6 address bytes.
func DecimalsToEthernet(decimals string) ([6]byte, error) {
	var addr [6]byte
	parts := strings.Split(decimals, ".")
	if len(parts) != 6 {
		return addr, fmt.Errorf("invalid ethernet OID index %q", decimals)
	}
	for i, p := range parts {
		var v int
		if _, err := fmt.Sscanf(p, "%d", &v); err != nil || v < 0 || v > 255 {
			return addr, fmt.Errorf("invalid ethernet OID index %q", decimals)
		}
		addr[i] = byte(v)
	}
	return addr, nil
}

// CapitalizeFirst returns s with the first letter uppercased.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
