package connect

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by connectors and the mutation engine
var (
	// ErrConfiguration means the switch record cannot produce a connector
	// (typically: no SNMP profile bound). Not recoverable without
	// reconfiguration.
	ErrConfiguration = errors.New("switch configuration error")

	// ErrNotBridged means the interface has no Q-Bridge port id, so vlan
	// membership cannot be changed.
	ErrNotBridged = errors.New("interface not bridged")

	// ErrPolicyDenied means policy rejected the operation before any I/O.
	ErrPolicyDenied = errors.New("denied by policy")

	// ErrDecode means an agent returned a malformed value (bad bitmap,
	// short octet string); the affected entity is degraded, not the walk.
	ErrDecode = errors.New("malformed agent data")

	// ErrPartialUpdate means a multi-step mutation failed midway; device
	// state matches the last successful step.
	ErrPartialUpdate = errors.New("partial update")
)

// PolicyError reports which rule denied an operation
type PolicyError struct {
	Rule   string
	Detail string
}

func (e *PolicyError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("denied by policy (%s): %s", e.Rule, e.Detail)
	}
	return fmt.Sprintf("denied by policy (%s)", e.Rule)
}

func (e *PolicyError) Unwrap() error {
	return ErrPolicyDenied
}

// NotBridgedError identifies the interface without a bridge port
type NotBridgedError struct {
	IfIndex int
}

func (e *NotBridgedError) Error() string {
	return fmt.Sprintf("interface %d has no bridge port id", e.IfIndex)
}

func (e *NotBridgedError) Unwrap() error {
	return ErrNotBridged
}

// PartialUpdateError names the last step of a mutation that completed, so
// the caller can show the device's real state and retry idempotently.
type PartialUpdateError struct {
	Operation string
	LastGood  string
	Err       error
}

func (e *PartialUpdateError) Error() string {
	return fmt.Sprintf("%s partially applied (last successful step: %s): %v",
		e.Operation, e.LastGood, e.Err)
}

func (e *PartialUpdateError) Unwrap() error {
	return ErrPartialUpdate
}
