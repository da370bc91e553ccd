package servo

import (
	"fmt"

	"github.com/servolink-protocol/servolink-go/pkg/net"
)

// State is the decoded operating state of a drive.
type State uint8

const (
	// StateNotReady means the drive is not ready to switch on.
	StateNotReady State = iota

	// StateDisabled means switch on is disabled.
	StateDisabled

	// StateReady means the drive is ready to switch on.
	StateReady

	// StateSwitchedOn means the drive is switched on.
	StateSwitchedOn

	// StateEnabled means operation is enabled.
	StateEnabled

	// StateQuickStop means a quick stop is active.
	StateQuickStop

	// StateFaultReaction means a fault reaction is active.
	StateFaultReaction

	// StateFault means the drive is faulted.
	StateFault
)

// String returns the state name.
func (s State) String() string {
	names := []string{
		"not ready to switch on",
		"switch on disabled",
		"ready to switch on",
		"switched on",
		"operation enabled",
		"quick stop active",
		"fault reaction active",
		"fault",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

// Flags carries the status word bits above the state machine bits.
type Flags uint16

// Flag bits, relative to statusFlagsShift.
const (
	// FlagTargetReached is set when the last target has been reached.
	FlagTargetReached Flags = 1 << 0

	// FlagInternalLimit is set when an internal limit is active.
	FlagInternalLimit Flags = 1 << 1

	// FlagOpModeSpecific1 is the first mode-specific bit (set-point
	// acknowledge in profile position, homing attained in homing).
	FlagOpModeSpecific1 Flags = 1 << 2

	// FlagOpModeSpecific2 is the second mode-specific bit (following
	// error in profile position, homing error in homing).
	FlagOpModeSpecific2 Flags = 1 << 3
)

// statusFlagsShift is the bit position where the flag bits start.
const statusFlagsShift = 10

// family is a drive-family operation binding, selected once at handle
// construction from the network protocol.
type family struct {
	name        string
	decodeState func(word uint16) (State, Flags)
}

// selectFamily maps a network protocol to its family binding.
func selectFamily(p net.Protocol) (*family, error) {
	switch p {
	case net.ProtocolSerial, net.ProtocolEth, net.ProtocolVirtual:
		return &standardFamily, nil
	default:
		return nil, fmt.Errorf("%w (%s)", ErrUnsupportedProtocol, p)
	}
}

// standardFamily is the default drive state machine.
var standardFamily = family{
	name:        "standard",
	decodeState: decodeStandardStatus,
}

// decodeStandardStatus decodes a raw status word into state and flags.
func decodeStandardStatus(word uint16) (State, Flags) {
	flags := Flags(word >> statusFlagsShift)

	var state State
	switch {
	case word&0x4F == 0x00:
		state = StateNotReady
	case word&0x4F == 0x40:
		state = StateDisabled
	case word&0x6F == 0x21:
		state = StateReady
	case word&0x6F == 0x23:
		state = StateSwitchedOn
	case word&0x6F == 0x27:
		state = StateEnabled
	case word&0x6F == 0x07:
		state = StateQuickStop
	case word&0x4F == 0x0F:
		state = StateFaultReaction
	case word&0x4F == 0x08:
		state = StateFault
	default:
		state = StateNotReady
	}

	return state, flags
}

// Control word commands of the standard state machine.
const (
	ctlDisableVoltage  uint16 = 0x0000
	ctlShutdown        uint16 = 0x0006
	ctlSwitchOn        uint16 = 0x0007
	ctlEnableOperation uint16 = 0x000F
	ctlFaultReset      uint16 = 0x0080

	// Profile position / homing bits on top of enable operation.
	ctlNewSetPoint  uint16 = 0x0010
	ctlChangeSetImm uint16 = 0x0020
	ctlRelative     uint16 = 0x0040
	ctlHomingStart  uint16 = 0x0010
)
