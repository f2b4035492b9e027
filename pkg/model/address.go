package model

import (
	"fmt"
	"net"

	"github.com/openl2m/core/pkg/util"
)

// EthernetAddress is a learned MAC address on a port, optionally joined
// with an IPv4 address from the ARP tables.
type EthernetAddress struct {
	Address [6]byte
	// AddressIP4 is filled when the detailed walk finds this MAC in the
	// switch ARP table.
	AddressIP4 string
}

// NewEthernetAddress creates an entry for 6 address bytes
func NewEthernetAddress(addr [6]byte) *EthernetAddress {
	return &EthernetAddress{Address: addr}
}

// Format renders the address in the given display format.
func (e *EthernetAddress) Format(format string, uppercase bool) string {
	return util.FormatEthernet(e.Address, format, uppercase)
}

// IP4Address is one IPv4 address with netmask on a switch interface.
type IP4Address struct {
	Address string
	Netmask string
}

// NewIP4Address creates an address entry without a netmask yet
func NewIP4Address(address string) *IP4Address {
	return &IP4Address{Address: address}
}

// SetNetmask stores the netmask for the address
func (a *IP4Address) SetNetmask(netmask string) {
	a.Netmask = netmask
}

// PrefixLen returns the netmask as a prefix length, or -1 when no valid
// netmask is set.
func (a *IP4Address) PrefixLen() int {
	ip := net.ParseIP(a.Netmask)
	if ip == nil {
		return -1
	}
	v4 := ip.To4()
	if v4 == nil {
		return -1
	}
	ones, bits := net.IPv4Mask(v4[0], v4[1], v4[2], v4[3]).Size()
	if bits == 0 {
		return -1
	}
	return ones
}

// String renders the address in CIDR form when the netmask is known.
func (a *IP4Address) String() string {
	if plen := a.PrefixLen(); plen >= 0 {
		return fmt.Sprintf("%s/%d", a.Address, plen)
	}
	return a.Address
}
