// Package snmp provides the SNMP transport: typed get/set/walk operations
// over UDP with v2c community or v3 USM security, built on gosnmp.
package snmp

import (
	"fmt"

	"github.com/gosnmp/gosnmp"
)

// Type enumerates the ASN.1 value types the core handles.
type Type int

const (
	TypeNull Type = iota
	TypeInteger
	TypeOctetString
	TypeObjectIdentifier
	TypeIPAddress
	TypeCounter32
	TypeGauge32
	TypeTimeTicks
	TypeCounter64
	TypeUnsigned32
	TypeNoSuchObject
)

// Value is one typed SNMP value. Exactly one of Int, Bytes or Str is
// meaningful, selected by Type. Octet strings keep their exact bytes; they
// are never routed through a text encoding, which matters for PortList
// writes.
type Value struct {
	Type  Type
	Int   int64
	Bytes []byte
	Str   string
}

// IntValue returns an Integer value
func IntValue(v int64) Value {
	return Value{Type: TypeInteger, Int: v}
}

// UnsignedValue returns an Unsigned32 value
func UnsignedValue(v uint32) Value {
	return Value{Type: TypeUnsigned32, Int: int64(v)}
}

// GaugeValue returns a Gauge32 value
func GaugeValue(v uint32) Value {
	return Value{Type: TypeGauge32, Int: int64(v)}
}

// OctetsValue returns an OctetString value over the exact bytes given
func OctetsValue(b []byte) Value {
	return Value{Type: TypeOctetString, Bytes: b}
}

// StringValue returns an OctetString value for a display string
func StringValue(s string) Value {
	return Value{Type: TypeOctetString, Bytes: []byte(s)}
}

// OIDValue returns an ObjectIdentifier value
func OIDValue(oid string) Value {
	return Value{Type: TypeObjectIdentifier, Str: oid}
}

// IsNumeric reports whether the value carries an integer quantity.
func (v Value) IsNumeric() bool {
	switch v.Type {
	case TypeInteger, TypeCounter32, TypeGauge32, TypeTimeTicks,
		TypeCounter64, TypeUnsigned32:
		return true
	}
	return false
}

// IntVal returns the integer quantity, 0 for non-numeric values.
func (v Value) IntVal() int64 {
	if v.IsNumeric() {
		return v.Int
	}
	return 0
}

// StringVal returns the value as a display string.
func (v Value) StringVal() string {
	switch v.Type {
	case TypeOctetString:
		return string(v.Bytes)
	case TypeObjectIdentifier, TypeIPAddress:
		return v.Str
	}
	if v.IsNumeric() {
		return fmt.Sprintf("%d", v.Int)
	}
	return ""
}

// PDU is one (oid, value) pair in a walk result or a multi-OID set.
type PDU struct {
	OID   string
	Value Value
}

// fromSnmpPDU converts a gosnmp PDU into our tagged Value.
func fromSnmpPDU(pdu gosnmp.SnmpPDU) Value {
	switch pdu.Type {
	case gosnmp.Integer:
		return Value{Type: TypeInteger, Int: toInt64(pdu.Value)}
	case gosnmp.OctetString:
		b, _ := pdu.Value.([]byte)
		return Value{Type: TypeOctetString, Bytes: b}
	case gosnmp.ObjectIdentifier:
		s, _ := pdu.Value.(string)
		return Value{Type: TypeObjectIdentifier, Str: s}
	case gosnmp.IPAddress:
		s, _ := pdu.Value.(string)
		return Value{Type: TypeIPAddress, Str: s}
	case gosnmp.Counter32:
		return Value{Type: TypeCounter32, Int: toInt64(pdu.Value)}
	case gosnmp.Gauge32:
		return Value{Type: TypeGauge32, Int: toInt64(pdu.Value)}
	case gosnmp.TimeTicks:
		return Value{Type: TypeTimeTicks, Int: toInt64(pdu.Value)}
	case gosnmp.Counter64:
		return Value{Type: TypeCounter64, Int: toInt64(pdu.Value)}
	case gosnmp.Uinteger32:
		return Value{Type: TypeUnsigned32, Int: toInt64(pdu.Value)}
	case gosnmp.NoSuchObject, gosnmp.NoSuchInstance:
		return Value{Type: TypeNoSuchObject}
	}
	return Value{Type: TypeNull}
}

// toSnmpPDU converts back for a SET request.
func toSnmpPDU(oid string, v Value) gosnmp.SnmpPDU {
	switch v.Type {
	case TypeInteger:
		return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.Integer, Value: int(v.Int)}
	case TypeOctetString:
		return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.OctetString, Value: v.Bytes}
	case TypeObjectIdentifier:
		return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.ObjectIdentifier, Value: v.Str}
	case TypeIPAddress:
		return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.IPAddress, Value: v.Str}
	case TypeGauge32:
		return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.Gauge32, Value: uint32(v.Int)}
	case TypeTimeTicks:
		return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.TimeTicks, Value: uint32(v.Int)}
	case TypeUnsigned32:
		return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.Uinteger32, Value: uint32(v.Int)}
	}
	return gosnmp.SnmpPDU{Name: oid, Type: gosnmp.Null}
}

// toInt64 normalizes the numeric types gosnmp hands back.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int64:
		return n
	case uint:
		return int64(n)
	case uint32:
		return int64(n)
	case uint64:
		return int64(n)
	}
	return 0
}
