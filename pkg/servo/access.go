package servo

import (
	"fmt"

	"github.com/servolink-protocol/servolink-go/pkg/log"
	"github.com/servolink-protocol/servolink-go/pkg/reg"
)

// resolve picks the register to access: an explicit register wins, otherwise
// the id is looked up in the dictionary.
func (s *Servo) resolve(r *reg.Register, id string) (*reg.Register, error) {
	if r != nil {
		return r, nil
	}

	s.dictMu.RLock()
	d := s.dict
	s.dictMu.RUnlock()

	if d == nil {
		return nil, fmt.Errorf("%w (register %q)", ErrNoDictionary, id)
	}
	return d.Register(id)
}

// rawRead performs a typed raw read. The data type and the access mode are
// checked before the transport is touched.
func (s *Servo) rawRead(r *reg.Register, id string, d reg.DType) (any, error) {
	r, err := s.resolve(r, id)
	if err != nil {
		return nil, err
	}

	if r.DType != d {
		return nil, fmt.Errorf("%w: %s is %s, not %s", ErrDTypeMismatch, r.ID, r.DType, d)
	}
	if !r.Access.CanRead() {
		return nil, fmt.Errorf("%w (%s)", ErrWriteOnly, r.ID)
	}

	data, err := s.network.Read(s.node, r.Address, d.Size())
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", r.ID, err)
	}

	s.logEvent(log.CategoryAccess, func(e *log.Event) {
		e.Access = &log.AccessEvent{Address: r.Address, Data: data}
	})

	return reg.Decode(d, data)
}

// rawWrite performs a typed raw write. The data type and the access mode are
// checked before the transport is touched. Write-only registers cannot be
// read back, so confirmation is forced off for them.
func (s *Servo) rawWrite(r *reg.Register, id string, d reg.DType, value any, confirm bool) error {
	r, err := s.resolve(r, id)
	if err != nil {
		return err
	}

	if r.DType != d {
		return fmt.Errorf("%w: %s is %s, not %s", ErrDTypeMismatch, r.ID, r.DType, d)
	}
	if !r.Access.CanWrite() {
		return fmt.Errorf("%w (%s)", ErrReadOnly, r.ID)
	}
	if r.Access == reg.AccessWO {
		confirm = false
	}

	data, err := reg.Encode(d, value)
	if err != nil {
		return err
	}

	if err := s.network.Write(s.node, r.Address, data, confirm); err != nil {
		return fmt.Errorf("writing %s: %w", r.ID, err)
	}

	s.logEvent(log.CategoryAccess, func(e *log.Event) {
		e.Direction = log.DirectionOut
		e.Access = &log.AccessEvent{
			Address: r.Address, Write: true, Confirmed: confirm, Data: data,
		}
	})

	return nil
}

// RawReadU8 reads a u8 register.
func (s *Servo) RawReadU8(r *reg.Register, id string) (uint8, error) {
	v, err := s.rawRead(r, id, reg.DTypeU8)
	if err != nil {
		return 0, err
	}
	return v.(uint8), nil
}

// RawReadS8 reads an s8 register.
func (s *Servo) RawReadS8(r *reg.Register, id string) (int8, error) {
	v, err := s.rawRead(r, id, reg.DTypeS8)
	if err != nil {
		return 0, err
	}
	return v.(int8), nil
}

// RawReadU16 reads a u16 register.
func (s *Servo) RawReadU16(r *reg.Register, id string) (uint16, error) {
	v, err := s.rawRead(r, id, reg.DTypeU16)
	if err != nil {
		return 0, err
	}
	return v.(uint16), nil
}

// RawReadS16 reads an s16 register.
func (s *Servo) RawReadS16(r *reg.Register, id string) (int16, error) {
	v, err := s.rawRead(r, id, reg.DTypeS16)
	if err != nil {
		return 0, err
	}
	return v.(int16), nil
}

// RawReadU32 reads a u32 register.
func (s *Servo) RawReadU32(r *reg.Register, id string) (uint32, error) {
	v, err := s.rawRead(r, id, reg.DTypeU32)
	if err != nil {
		return 0, err
	}
	return v.(uint32), nil
}

// RawReadS32 reads an s32 register.
func (s *Servo) RawReadS32(r *reg.Register, id string) (int32, error) {
	v, err := s.rawRead(r, id, reg.DTypeS32)
	if err != nil {
		return 0, err
	}
	return v.(int32), nil
}

// RawReadU64 reads a u64 register.
func (s *Servo) RawReadU64(r *reg.Register, id string) (uint64, error) {
	v, err := s.rawRead(r, id, reg.DTypeU64)
	if err != nil {
		return 0, err
	}
	return v.(uint64), nil
}

// RawReadS64 reads an s64 register.
func (s *Servo) RawReadS64(r *reg.Register, id string) (int64, error) {
	v, err := s.rawRead(r, id, reg.DTypeS64)
	if err != nil {
		return 0, err
	}
	return v.(int64), nil
}

// RawReadFloat reads a float register.
func (s *Servo) RawReadFloat(r *reg.Register, id string) (float32, error) {
	v, err := s.rawRead(r, id, reg.DTypeFloat)
	if err != nil {
		return 0, err
	}
	return v.(float32), nil
}

// RawWriteU8 writes a u8 register.
func (s *Servo) RawWriteU8(r *reg.Register, id string, value uint8, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeU8, value, confirm)
}

// RawWriteS8 writes an s8 register.
func (s *Servo) RawWriteS8(r *reg.Register, id string, value int8, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeS8, value, confirm)
}

// RawWriteU16 writes a u16 register.
func (s *Servo) RawWriteU16(r *reg.Register, id string, value uint16, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeU16, value, confirm)
}

// RawWriteS16 writes an s16 register.
func (s *Servo) RawWriteS16(r *reg.Register, id string, value int16, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeS16, value, confirm)
}

// RawWriteU32 writes a u32 register.
func (s *Servo) RawWriteU32(r *reg.Register, id string, value uint32, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeU32, value, confirm)
}

// RawWriteS32 writes an s32 register.
func (s *Servo) RawWriteS32(r *reg.Register, id string, value int32, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeS32, value, confirm)
}

// RawWriteU64 writes a u64 register.
func (s *Servo) RawWriteU64(r *reg.Register, id string, value uint64, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeU64, value, confirm)
}

// RawWriteS64 writes an s64 register.
func (s *Servo) RawWriteS64(r *reg.Register, id string, value int64, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeS64, value, confirm)
}

// RawWriteFloat writes a float register.
func (s *Servo) RawWriteFloat(r *reg.Register, id string, value float32, confirm bool) error {
	return s.rawWrite(r, id, reg.DTypeFloat, value, confirm)
}

// Read reads a register and converts it to its physical value using the
// selected units. String registers have no physical value.
func (s *Servo) Read(r *reg.Register, id string) (float64, error) {
	r, err := s.resolve(r, id)
	if err != nil {
		return 0, err
	}
	if r.DType == reg.DTypeString {
		return 0, fmt.Errorf("%w (%s)", ErrUnsupportedDType, r.ID)
	}

	native, err := s.rawRead(r, "", r.DType)
	if err != nil {
		return 0, err
	}

	return reg.ToPhysical(native, s.UnitsFactor(r))
}

// Write converts a physical value to the register's native type using the
// selected units and writes it. Integer narrowing truncates toward zero.
func (s *Servo) Write(r *reg.Register, id string, value float64, confirm bool) error {
	r, err := s.resolve(r, id)
	if err != nil {
		return err
	}
	if r.DType == reg.DTypeString {
		return fmt.Errorf("%w (%s)", ErrUnsupportedDType, r.ID)
	}

	native, err := reg.FromPhysical(value, s.UnitsFactor(r), r.DType)
	if err != nil {
		return err
	}

	return s.rawWrite(r, "", r.DType, native, confirm)
}

// writeControl writes a control word without read-back confirmation.
func (s *Servo) writeControl(word uint16) error {
	return s.RawWriteU16(RegControlWord, "", word, false)
}
