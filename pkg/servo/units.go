package servo

import (
	"math"

	"github.com/servolink-protocol/servolink-go/pkg/reg"
)

// TorqueUnits selects the physical torque unit.
type TorqueUnits uint8

const (
	// TorqueNative keeps torque values in the drive's native unit
	// (per-mille of rated torque).
	TorqueNative TorqueUnits = iota

	// TorqueRated expresses torque as a fraction of the rated torque.
	TorqueRated
)

// PositionUnits selects the physical position unit.
type PositionUnits uint8

const (
	// PositionNative keeps positions in encoder counts.
	PositionNative PositionUnits = iota

	// PositionRev expresses positions in revolutions.
	PositionRev

	// PositionRad expresses positions in radians.
	PositionRad

	// PositionDeg expresses positions in degrees.
	PositionDeg
)

// VelocityUnits selects the physical velocity unit.
type VelocityUnits uint8

const (
	// VelocityNative keeps velocities in counts per second.
	VelocityNative VelocityUnits = iota

	// VelocityRevS expresses velocities in revolutions per second.
	VelocityRevS

	// VelocityRadS expresses velocities in radians per second.
	VelocityRadS

	// VelocityDegS expresses velocities in degrees per second.
	VelocityDegS

	// VelocityRPM expresses velocities in revolutions per minute.
	VelocityRPM
)

// AccelerationUnits selects the physical acceleration unit.
type AccelerationUnits uint8

const (
	// AccelerationNative keeps accelerations in counts per second squared.
	AccelerationNative AccelerationUnits = iota

	// AccelerationRevS2 expresses accelerations in revolutions per second
	// squared.
	AccelerationRevS2

	// AccelerationRadS2 expresses accelerations in radians per second
	// squared.
	AccelerationRadS2

	// AccelerationDegS2 expresses accelerations in degrees per second
	// squared.
	AccelerationDegS2
)

// voltRelRange is the native full-scale of volt_rel registers.
const voltRelRange = 32767.0

// radRange is the native full-scale of rad registers (one turn).
const radRange = 65536.0

// UnitsTorque returns the selected torque unit.
func (s *Servo) UnitsTorque() TorqueUnits {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	return s.units.torque
}

// SetUnitsTorque selects the torque unit.
func (s *Servo) SetUnitsTorque(u TorqueUnits) {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	s.units.torque = u
}

// UnitsPosition returns the selected position unit.
func (s *Servo) UnitsPosition() PositionUnits {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	return s.units.pos
}

// SetUnitsPosition selects the position unit.
func (s *Servo) SetUnitsPosition(u PositionUnits) {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	s.units.pos = u
}

// UnitsVelocity returns the selected velocity unit.
func (s *Servo) UnitsVelocity() VelocityUnits {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	return s.units.vel
}

// SetUnitsVelocity selects the velocity unit.
func (s *Servo) SetUnitsVelocity(u VelocityUnits) {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	s.units.vel = u
}

// UnitsAcceleration returns the selected acceleration unit.
func (s *Servo) UnitsAcceleration() AccelerationUnits {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	return s.units.acc
}

// SetUnitsAcceleration selects the acceleration unit.
func (s *Servo) SetUnitsAcceleration(u AccelerationUnits) {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()
	s.units.acc = u
}

// UnitsUpdate reads the position and velocity resolutions from the drive and
// caches them for factor computation.
func (s *Servo) UnitsUpdate() error {
	pres, err := s.RawReadU32(RegPositionRes, "")
	if err != nil {
		return err
	}
	vres, err := s.RawReadU32(RegVelocityRes, "")
	if err != nil {
		return err
	}

	s.units.mu.Lock()
	s.units.pres = pres
	s.units.vres = vres
	s.units.mu.Unlock()

	return nil
}

// UnitsFactor computes the native-to-physical scale factor for a register
// from its unit tag, the selected units and the cached resolutions.
func (s *Servo) UnitsFactor(r *reg.Register) float64 {
	s.units.mu.Lock()
	defer s.units.mu.Unlock()

	switch r.Phy {
	case reg.PhyTorque:
		switch s.units.torque {
		case TorqueRated:
			return 1.0 / 1000.0
		default:
			return 1.0
		}
	case reg.PhyPos:
		pres := float64(s.units.pres)
		switch s.units.pos {
		case PositionRev:
			return 1.0 / pres
		case PositionRad:
			return 2.0 * math.Pi / pres
		case PositionDeg:
			return 360.0 / pres
		default:
			return 1.0
		}
	case reg.PhyVel:
		vres := float64(s.units.vres)
		switch s.units.vel {
		case VelocityRevS:
			return 1.0 / vres
		case VelocityRadS:
			return 2.0 * math.Pi / vres
		case VelocityDegS:
			return 360.0 / vres
		case VelocityRPM:
			return 60.0 / vres
		default:
			return 1.0
		}
	case reg.PhyAcc:
		vres := float64(s.units.vres)
		switch s.units.acc {
		case AccelerationRevS2:
			return 1.0 / vres
		case AccelerationRadS2:
			return 2.0 * math.Pi / vres
		case AccelerationDegS2:
			return 360.0 / vres
		default:
			return 1.0
		}
	case reg.PhyVoltRel:
		return 1.0 / voltRelRange
	case reg.PhyRad:
		return 2.0 * math.Pi / radRange
	default:
		return 1.0
	}
}
