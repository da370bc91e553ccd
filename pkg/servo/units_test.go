package servo

import (
	"math"
	"testing"

	"github.com/servolink-protocol/servolink-go/pkg/reg"
)

func TestUnitsSelectors(t *testing.T) {
	_, s := newTestServo(t)

	s.SetUnitsTorque(TorqueRated)
	if got := s.UnitsTorque(); got != TorqueRated {
		t.Errorf("UnitsTorque() = %d, want TorqueRated", got)
	}

	s.SetUnitsPosition(PositionDeg)
	if got := s.UnitsPosition(); got != PositionDeg {
		t.Errorf("UnitsPosition() = %d, want PositionDeg", got)
	}

	s.SetUnitsVelocity(VelocityRPM)
	if got := s.UnitsVelocity(); got != VelocityRPM {
		t.Errorf("UnitsVelocity() = %d, want VelocityRPM", got)
	}

	s.SetUnitsAcceleration(AccelerationRadS2)
	if got := s.UnitsAcceleration(); got != AccelerationRadS2 {
		t.Errorf("UnitsAcceleration() = %d, want AccelerationRadS2", got)
	}
}

func TestUnitsFactorDefaultsToOne(t *testing.T) {
	_, s := newTestServo(t)

	plain := &reg.Register{ID: "PLAIN", DType: reg.DTypeU16}
	if got := s.UnitsFactor(plain); got != 1.0 {
		t.Errorf("UnitsFactor(no phy) = %v, want 1.0", got)
	}

	if got := s.UnitsFactor(RegPositionActual); got != 1.0 {
		t.Errorf("UnitsFactor(native position) = %v, want 1.0", got)
	}
}

func TestUnitsFactorVoltRel(t *testing.T) {
	_, s := newTestServo(t)

	want := 1.0 / 32767.0
	if got := s.UnitsFactor(RegOLVoltage); got != want {
		t.Errorf("UnitsFactor(volt_rel) = %v, want %v", got, want)
	}
}

func TestUnitsUpdate(t *testing.T) {
	lo, s := newTestServo(t)

	lo.Preload(testNode, RegPositionRes.Address, []byte{0x00, 0x00, 0x10, 0x00})
	lo.Preload(testNode, RegVelocityRes.Address, []byte{0x00, 0x00, 0x07, 0xD0})

	if err := s.UnitsUpdate(); err != nil {
		t.Fatalf("UnitsUpdate() error = %v", err)
	}

	s.SetUnitsPosition(PositionRev)
	if got := s.UnitsFactor(RegPositionActual); got != 1.0/4096.0 {
		t.Errorf("UnitsFactor(pos rev) = %v, want %v", got, 1.0/4096.0)
	}

	s.SetUnitsPosition(PositionRad)
	if got := s.UnitsFactor(RegPositionActual); got != 2.0*math.Pi/4096.0 {
		t.Errorf("UnitsFactor(pos rad) = %v, want %v", got, 2.0*math.Pi/4096.0)
	}

	s.SetUnitsVelocity(VelocityRPM)
	if got := s.UnitsFactor(RegVelocityActual); got != 60.0/2000.0 {
		t.Errorf("UnitsFactor(vel rpm) = %v, want %v", got, 60.0/2000.0)
	}
}

func TestUnitsUpdateReadFailure(t *testing.T) {
	_, s := newTestServo(t)

	// Resolutions were never preloaded; the read must fail and the cached
	// resolutions must stay untouched.
	if err := s.UnitsUpdate(); err == nil {
		t.Fatal("UnitsUpdate() error = nil, want read failure")
	}

	s.SetUnitsPosition(PositionRev)
	if got := s.UnitsFactor(RegPositionActual); got != 1.0 {
		t.Errorf("UnitsFactor() after failed update = %v, want 1.0", got)
	}
}

func TestUnitsFactorTorqueRated(t *testing.T) {
	_, s := newTestServo(t)

	s.SetUnitsTorque(TorqueRated)
	if got := s.UnitsFactor(RegTorqueActual); got != 1.0/1000.0 {
		t.Errorf("UnitsFactor(torque rated) = %v, want 0.001", got)
	}
}
