package log

import (
	"time"
)

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID uniquely identifies the network session (UUID).
	ConnectionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// NodeID is the drive node the event relates to.
	NodeID uint8 `cbor:"6,keyasint,omitempty"`

	// RemoteAddr is the peer address, if the transport has one.
	RemoteAddr string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Access    *AccessEvent      `cbor:"10,keyasint,omitempty"` // Register reads and writes
	Status    *StatusEvent      `cbor:"11,keyasint,omitempty"` // Status word updates
	Emergency *EmergencyEvent   `cbor:"12,keyasint,omitempty"` // Emergency codes
	State     *StateChangeEvent `cbor:"13,keyasint,omitempty"` // Drive/session state
	Error     *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message (drive to host).
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message (host to drive).
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which layer captured the event.
type Layer uint8

const (
	// LayerTransport is the network transport layer (raw register bytes).
	LayerTransport Layer = 0
	// LayerRegister is the typed register access layer.
	LayerRegister Layer = 1
	// LayerServo is the servo handle layer (state machine, motion).
	LayerServo Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerRegister:
		return "REGISTER"
	case LayerServo:
		return "SERVO"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryAccess indicates a register read or write.
	CategoryAccess Category = 0
	// CategoryStatus indicates a status word update.
	CategoryStatus Category = 1
	// CategoryEmergency indicates an emergency code.
	CategoryEmergency Category = 2
	// CategoryState indicates a state change.
	CategoryState Category = 3
	// CategoryError indicates an error event.
	CategoryError Category = 4
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryAccess:
		return "ACCESS"
	case CategoryStatus:
		return "STATUS"
	case CategoryEmergency:
		return "EMERGENCY"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// AccessEvent captures one register access at the transport layer.
type AccessEvent struct {
	// Address is the register address.
	Address uint32 `cbor:"1,keyasint"`

	// Write is true for writes, false for reads.
	Write bool `cbor:"2,keyasint,omitempty"`

	// Confirmed is true when a write was verified by reading back.
	Confirmed bool `cbor:"3,keyasint,omitempty"`

	// Data is the raw value bytes in canonical wire order.
	Data []byte `cbor:"4,keyasint,omitempty"`
}

// StatusEvent captures a status word update.
type StatusEvent struct {
	// Word is the raw status word.
	Word uint16 `cbor:"1,keyasint"`
}

// EmergencyEvent captures an emergency code reported by the drive.
type EmergencyEvent struct {
	// Code is the raw emergency code.
	Code uint32 `cbor:"1,keyasint"`
}

// StateChangeEvent captures drive and session lifecycle events.
type StateChangeEvent struct {
	// OldState is the previous state (may be empty).
	OldState string `cbor:"1,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"2,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"3,keyasint,omitempty"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
