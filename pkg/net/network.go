package net

import "errors"

// Network errors.
var (
	ErrClosed         = errors.New("network closed")
	ErrUnknownAddress = errors.New("unknown register address")
	ErrWriteMismatch  = errors.New("written value does not verify")
)

// Protocol identifies the field-bus protocol family of a network.
type Protocol uint8

const (
	// ProtocolSerial is a serial (USB/RS-485) field bus.
	ProtocolSerial Protocol = iota

	// ProtocolEth is an Ethernet field bus.
	ProtocolEth

	// ProtocolVirtual is the in-memory loopback bus.
	ProtocolVirtual
)

// String returns the protocol name.
func (p Protocol) String() string {
	switch p {
	case ProtocolSerial:
		return "serial"
	case ProtocolEth:
		return "eth"
	case ProtocolVirtual:
		return "virtual"
	default:
		return "unknown"
	}
}

// StatusCallback receives raw status words reported by a drive.
type StatusCallback func(word uint16)

// EmergencyCallback receives raw emergency codes reported by a drive.
type EmergencyCallback func(code uint32)

// Network is the abstract register transport. Implementations must be safe
// for concurrent use; several servo handles may share one network.
type Network interface {
	// Protocol reports the field-bus protocol family.
	Protocol() Protocol

	// Read reads size raw bytes from a register of the given node.
	// The returned bytes are in canonical wire order.
	Read(node uint8, addr uint32, size int) ([]byte, error)

	// Write writes raw bytes to a register of the given node. When confirm
	// is set the transport verifies the write by reading the value back.
	Write(node uint8, addr uint32, data []byte, confirm bool) error

	// StatusSubscribe registers a callback for status words of the given
	// node and returns its subscription slot.
	StatusSubscribe(node uint8, cb StatusCallback) (int, error)

	// StatusUnsubscribe removes a status subscription. Out-of-range slots
	// are ignored.
	StatusUnsubscribe(slot int)

	// EmergencySubscribe registers a callback for emergency codes of the
	// given node and returns its subscription slot.
	EmergencySubscribe(node uint8, cb EmergencyCallback) (int, error)

	// EmergencyUnsubscribe removes an emergency subscription. Out-of-range
	// slots are ignored.
	EmergencyUnsubscribe(slot int)

	// Close shuts the network down. Further calls fail with ErrClosed.
	Close() error
}
