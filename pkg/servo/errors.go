package servo

import "errors"

// Servo errors.
var (
	// ErrReadOnly is returned when writing a read-only register.
	ErrReadOnly = errors.New("register is read-only")

	// ErrWriteOnly is returned when reading a write-only register.
	ErrWriteOnly = errors.New("register is write-only")

	// ErrDTypeMismatch is returned when a typed raw access does not match
	// the register's data type.
	ErrDTypeMismatch = errors.New("unexpected register data type")

	// ErrUnsupportedDType is returned for registers whose data type has no
	// scaled representation (strings).
	ErrUnsupportedDType = errors.New("unsupported register data type")

	// ErrTimeout is returned when a wait operation exceeds its budget.
	ErrTimeout = errors.New("operation timed out")

	// ErrAlreadyLoaded is returned by LoadDict when a dictionary is present.
	ErrAlreadyLoaded = errors.New("dictionary already loaded")

	// ErrNoDictionary is returned when a register id lookup has no
	// dictionary to consult.
	ErrNoDictionary = errors.New("no dictionary loaded")

	// ErrResourceExhausted is returned when a subscriber registry has
	// reached its configured cap.
	ErrResourceExhausted = errors.New("subscriber slots exhausted")

	// ErrUnsupportedProtocol is returned when no drive family binding
	// exists for the network protocol.
	ErrUnsupportedProtocol = errors.New("unsupported network protocol")

	// ErrFaulted is returned by motion operations that cannot proceed
	// while the drive reports a fault.
	ErrFaulted = errors.New("drive is in fault state")

	// ErrHoming is returned when the drive reports a homing error.
	ErrHoming = errors.New("homing failed")

	// ErrClosed is returned by operations on a closed servo handle.
	ErrClosed = errors.New("servo closed")
)
