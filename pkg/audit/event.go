// Package audit provides append-only audit logging of operator activity
// against switches.
package audit

import (
	"fmt"
	"time"
)

// Type classifies an audit event
type Type string

const (
	TypeView    Type = "view"
	TypeChange  Type = "change"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeCommand Type = "command"
)

// Action codes emitted by the core
const (
	ActionViewBasic    = "view.basic"
	ActionViewDetails  = "view.details"
	ActionViewHardware = "view.hardware"

	ActionPortUpDown  = "port.admin_status"
	ActionAliasEdit   = "port.alias"
	ActionPoeToggle   = "port.poe_toggle"
	ActionVlanChange  = "port.vlan_change"
	ActionSaveConfig  = "switch.save_config"
	ActionCliCommand  = "switch.cli_command"

	ActionSnmpError     = "snmp.error"
	ActionUndefinedVlan = "snmp.undefined_vlan"
	ActionNewObjectID   = "snmp.new_object_id"
	ActionNewHostname   = "snmp.new_hostname"
)

// Event is one audit record
type Event struct {
	Timestamp   time.Time `json:"timestamp"`
	User        string    `json:"user"`
	RemoteIP    string    `json:"remote_ip,omitempty"`
	Group       string    `json:"group,omitempty"`
	Switch      string    `json:"switch"`
	IfIndex     int       `json:"if_index,omitempty"`
	Type        Type      `json:"type"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
}

// NewEvent creates an event stamped now
func NewEvent(user, switchName string, eventType Type, action string) *Event {
	return &Event{
		Timestamp: time.Now(),
		User:      user,
		Switch:    switchName,
		Type:      eventType,
		Action:    action,
	}
}

// WithGroup sets the group context
func (e *Event) WithGroup(group string) *Event {
	e.Group = group
	return e
}

// WithRemoteIP sets the operator's address
func (e *Event) WithRemoteIP(ip string) *Event {
	e.RemoteIP = ip
	return e
}

// WithInterface sets the interface context
func (e *Event) WithInterface(ifIndex int) *Event {
	e.IfIndex = ifIndex
	return e
}

// WithDescription sets the description
func (e *Event) WithDescription(format string, args ...interface{}) *Event {
	e.Description = fmt.Sprintf(format, args...)
	return e
}

// Filter defines criteria for querying audit events
type Filter struct {
	Switch    string
	User      string
	Type      Type
	Action    string
	StartTime time.Time
	EndTime   time.Time
	Limit     int
	Offset    int
}
