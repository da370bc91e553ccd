package servo

import (
	"time"
)

// Mode is a drive operation mode.
type Mode int8

const (
	// ModeOLVoltage is open loop voltage control (vendor mode).
	ModeOLVoltage Mode = -2

	// ModeOLFrequency is open loop frequency control (vendor mode).
	ModeOLFrequency Mode = -1

	// ModePP is profile position mode.
	ModePP Mode = 1

	// ModePV is profile velocity mode.
	ModePV Mode = 3

	// ModePT is profile torque mode.
	ModePT Mode = 4

	// ModeHoming is homing mode.
	ModeHoming Mode = 6
)

// motionDeadline converts a timeout into an absolute deadline. Non-positive
// timeouts wait indefinitely.
func motionDeadline(timeout time.Duration) time.Time {
	if timeout <= 0 {
		return time.Time{}
	}
	return time.Now().Add(timeout)
}

// refreshStatus reads the status word register and feeds it into the
// tracker, so state operations start from the drive's actual state even
// before the first push arrives.
func (s *Servo) refreshStatus() error {
	word, err := s.RawReadU16(RegStatusWord, "")
	if err != nil {
		return err
	}
	s.onStatus(word)
	return nil
}

// stepBudget returns the wait budget remaining until the deadline. A zero
// deadline yields zero, which waits indefinitely.
func stepBudget(deadline time.Time) (time.Duration, error) {
	if deadline.IsZero() {
		return 0, nil
	}
	remaining := time.Until(deadline)
	if remaining <= 0 {
		return 0, ErrTimeout
	}
	return remaining, nil
}

// Enable walks the drive state machine to operation enabled, issuing one
// transition command per observed state and waiting for each change within
// the shared timeout budget. A faulted drive is not reset implicitly.
func (s *Servo) Enable(timeout time.Duration) error {
	deadline := motionDeadline(timeout)

	if err := s.refreshStatus(); err != nil {
		return err
	}

	for {
		word := s.StatusWord()
		state, _ := s.family.decodeState(word)

		switch state {
		case StateEnabled:
			return nil
		case StateFault, StateFaultReaction:
			return ErrFaulted
		case StateDisabled:
			if err := s.writeControl(ctlShutdown); err != nil {
				return err
			}
		case StateReady:
			if err := s.writeControl(ctlSwitchOn); err != nil {
				return err
			}
		case StateSwitchedOn, StateQuickStop:
			if err := s.writeControl(ctlEnableOperation); err != nil {
				return err
			}
		case StateNotReady:
			// Nothing to command; wait for the drive to become ready.
		}

		budget, err := stepBudget(deadline)
		if err != nil {
			return err
		}
		if _, err := s.WaitStatusChange(word, budget); err != nil {
			return err
		}
	}
}

// Disable brings the drive to switch on disabled.
func (s *Servo) Disable(timeout time.Duration) error {
	deadline := motionDeadline(timeout)

	if err := s.refreshStatus(); err != nil {
		return err
	}

	for {
		word := s.StatusWord()
		state, _ := s.family.decodeState(word)

		switch state {
		case StateDisabled:
			return nil
		case StateFault, StateFaultReaction:
			return ErrFaulted
		default:
			if err := s.writeControl(ctlDisableVoltage); err != nil {
				return err
			}
		}

		budget, err := stepBudget(deadline)
		if err != nil {
			return err
		}
		if _, err := s.WaitStatusChange(word, budget); err != nil {
			return err
		}
	}
}

// SwitchOn walks the drive state machine to switched on. An enabled drive
// is stepped back down.
func (s *Servo) SwitchOn(timeout time.Duration) error {
	deadline := motionDeadline(timeout)

	if err := s.refreshStatus(); err != nil {
		return err
	}

	for {
		word := s.StatusWord()
		state, _ := s.family.decodeState(word)

		switch state {
		case StateSwitchedOn:
			return nil
		case StateFault, StateFaultReaction:
			return ErrFaulted
		case StateDisabled:
			if err := s.writeControl(ctlShutdown); err != nil {
				return err
			}
		case StateReady, StateEnabled:
			if err := s.writeControl(ctlSwitchOn); err != nil {
				return err
			}
		case StateQuickStop:
			if err := s.writeControl(ctlDisableVoltage); err != nil {
				return err
			}
		case StateNotReady:
			// Wait for the drive to become ready.
		}

		budget, err := stepBudget(deadline)
		if err != nil {
			return err
		}
		if _, err := s.WaitStatusChange(word, budget); err != nil {
			return err
		}
	}
}

// FaultReset clears a latched fault with a rising edge on the fault reset
// command bit and waits for the drive to leave the fault states.
func (s *Servo) FaultReset(timeout time.Duration) error {
	deadline := motionDeadline(timeout)

	if err := s.refreshStatus(); err != nil {
		return err
	}

	for {
		word := s.StatusWord()
		state, _ := s.family.decodeState(word)

		if state != StateFault && state != StateFaultReaction {
			return nil
		}

		// Rising edge on the reset bit.
		if err := s.writeControl(ctlDisableVoltage); err != nil {
			return err
		}
		if err := s.writeControl(ctlFaultReset); err != nil {
			return err
		}

		budget, err := stepBudget(deadline)
		if err != nil {
			return err
		}
		if _, err := s.WaitStatusChange(word, budget); err != nil {
			return err
		}
	}
}

// ModeGet reads the active operation mode.
func (s *Servo) ModeGet() (Mode, error) {
	v, err := s.RawReadS8(RegOpModeDisplay, "")
	if err != nil {
		return 0, err
	}
	return Mode(v), nil
}

// ModeSet selects the operation mode.
func (s *Servo) ModeSet(mode Mode) error {
	return s.RawWriteS8(RegOpMode, "", int8(mode), true)
}

// OLVoltageGet reads the open loop voltage command in the selected units.
func (s *Servo) OLVoltageGet() (float64, error) {
	return s.Read(RegOLVoltage, "")
}

// OLVoltageSet writes the open loop voltage command.
func (s *Servo) OLVoltageSet(voltage float64) error {
	return s.Write(RegOLVoltage, "", voltage, true)
}

// OLFrequencyGet reads the open loop frequency command.
func (s *Servo) OLFrequencyGet() (float64, error) {
	return s.Read(RegOLFrequency, "")
}

// OLFrequencySet writes the open loop frequency command.
func (s *Servo) OLFrequencySet(frequency float64) error {
	return s.Write(RegOLFrequency, "", frequency, true)
}

// HomingStart selects homing mode and starts the procedure.
func (s *Servo) HomingStart() error {
	if err := s.ModeSet(ModeHoming); err != nil {
		return err
	}
	if err := s.writeControl(ctlEnableOperation); err != nil {
		return err
	}
	return s.writeControl(ctlEnableOperation | ctlHomingStart)
}

// HomingWait blocks until homing is attained. A homing error reported by
// the drive fails with ErrHoming.
func (s *Servo) HomingWait(timeout time.Duration) error {
	deadline := motionDeadline(timeout)

	for {
		word := s.StatusWord()
		_, flags := s.family.decodeState(word)

		if flags&FlagOpModeSpecific2 != 0 {
			return ErrHoming
		}
		if flags&FlagOpModeSpecific1 != 0 {
			return nil
		}

		budget, err := stepBudget(deadline)
		if err != nil {
			return err
		}
		if _, err := s.WaitStatusChange(word, budget); err != nil {
			return err
		}
	}
}

// TorqueGet reads the actual torque in the selected units.
func (s *Servo) TorqueGet() (float64, error) {
	return s.Read(RegTorqueActual, "")
}

// TorqueSet writes the torque set-point.
func (s *Servo) TorqueSet(torque float64) error {
	return s.Write(RegTorqueTarget, "", torque, true)
}

// PositionGet reads the actual position in the selected units.
func (s *Servo) PositionGet() (float64, error) {
	return s.Read(RegPositionActual, "")
}

// PositionSet writes the position set-point and latches it with the new
// set-point bit. immediate makes the drive interrupt the current move;
// relative makes the target relative to the current position. A positive
// spTimeout waits for the set-point acknowledge before clearing the bit.
func (s *Servo) PositionSet(position float64, immediate, relative bool, spTimeout time.Duration) error {
	if err := s.Write(RegPositionTarget, "", position, true); err != nil {
		return err
	}

	cmd := ctlEnableOperation | ctlNewSetPoint
	if immediate {
		cmd |= ctlChangeSetImm
	}
	if relative {
		cmd |= ctlRelative
	}

	if err := s.writeControl(ctlEnableOperation); err != nil {
		return err
	}
	if err := s.writeControl(cmd); err != nil {
		return err
	}

	if spTimeout > 0 {
		deadline := motionDeadline(spTimeout)
		for {
			word := s.StatusWord()
			_, flags := s.family.decodeState(word)
			if flags&FlagOpModeSpecific1 != 0 {
				break
			}

			budget, err := stepBudget(deadline)
			if err != nil {
				return err
			}
			if _, err := s.WaitStatusChange(word, budget); err != nil {
				return err
			}
		}
		return s.writeControl(ctlEnableOperation)
	}

	return nil
}

// VelocityGet reads the actual velocity in the selected units.
func (s *Servo) VelocityGet() (float64, error) {
	return s.Read(RegVelocityActual, "")
}

// VelocitySet writes the velocity set-point.
func (s *Servo) VelocitySet(velocity float64) error {
	if err := s.Write(RegVelocityTarget, "", velocity, true); err != nil {
		return err
	}
	return s.writeControl(ctlEnableOperation)
}

// PositionResGet reads the position resolution in counts per revolution.
func (s *Servo) PositionResGet() (uint32, error) {
	return s.RawReadU32(RegPositionRes, "")
}

// VelocityResGet reads the velocity resolution in counts per revolution
// per second.
func (s *Servo) VelocityResGet() (uint32, error) {
	return s.RawReadU32(RegVelocityRes, "")
}

// WaitReached blocks until the drive reports the target reached flag.
func (s *Servo) WaitReached(timeout time.Duration) error {
	deadline := motionDeadline(timeout)

	for {
		word := s.StatusWord()
		_, flags := s.family.decodeState(word)
		if flags&FlagTargetReached != 0 {
			return nil
		}

		budget, err := stepBudget(deadline)
		if err != nil {
			return err
		}
		if _, err := s.WaitStatusChange(word, budget); err != nil {
			return err
		}
	}
}
