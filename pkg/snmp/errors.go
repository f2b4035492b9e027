package snmp

import (
	"errors"
	"fmt"
	"net"
	"strings"
)

// Sentinel errors for the transport failure classes
var (
	ErrTransport    = errors.New("snmp transport failure")
	ErrAuth         = errors.New("snmp authentication failure")
	ErrProtocol     = errors.New("snmp protocol error")
	ErrNoSuchObject = errors.New("no such object")
)

// TransportError wraps a network/timeout failure with the OID being worked
type TransportError struct {
	OID string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error at %s: %v", e.OID, e.Err)
}

func (e *TransportError) Unwrap() error {
	return ErrTransport
}

// AuthError indicates SNMP security negotiation failed (bad community,
// unknown USM user, wrong digest or decryption failure)
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return "snmp authentication failure: " + e.Detail
}

func (e *AuthError) Unwrap() error {
	return ErrAuth
}

// ProtocolError carries a non-zero error-status returned by the agent
type ProtocolError struct {
	OID    string
	Status string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("agent returned %s at %s", e.Status, e.OID)
}

func (e *ProtocolError) Unwrap() error {
	return ErrProtocol
}

// classifyError maps a gosnmp failure onto the error taxonomy. gosnmp
// reports USM failures as plain errors, so they are recognized by message.
func classifyError(oid string, err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &TransportError{OID: oid, Err: err}
	}

	msg := strings.ToLower(err.Error())
	for _, needle := range []string{
		"authentication", "usm", "unknown user", "wrong digest",
		"decryption", "incoming packet is not authentic",
	} {
		if strings.Contains(msg, needle) {
			return &AuthError{Detail: err.Error()}
		}
	}

	return &TransportError{OID: oid, Err: err}
}
