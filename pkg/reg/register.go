package reg

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Register errors.
var (
	ErrInvalidDType  = errors.New("data type not supported")
	ErrInvalidAccess = errors.New("access type not supported")
	ErrValueType     = errors.New("invalid value type for data type")
	ErrShortData     = errors.New("data too short for data type")
)

// DType is the data type of a register value.
type DType uint8

const (
	DTypeU8 DType = iota
	DTypeS8
	DTypeU16
	DTypeS16
	DTypeU32
	DTypeS32
	DTypeU64
	DTypeS64
	DTypeFloat
	DTypeString
)

// dtypeNames maps dictionary names to data types.
var dtypeNames = map[string]DType{
	"u8":    DTypeU8,
	"s8":    DTypeS8,
	"u16":   DTypeU16,
	"s16":   DTypeS16,
	"u32":   DTypeU32,
	"s32":   DTypeS32,
	"u64":   DTypeU64,
	"s64":   DTypeS64,
	"float": DTypeFloat,
	"str":   DTypeString,
}

// ParseDType maps a dictionary type name to a DType.
func ParseDType(name string) (DType, error) {
	d, ok := dtypeNames[name]
	if !ok {
		return 0, fmt.Errorf("%w (%s)", ErrInvalidDType, name)
	}
	return d, nil
}

// String returns the dictionary name of the data type.
func (d DType) String() string {
	names := []string{"u8", "s8", "u16", "s16", "u32", "s32", "u64", "s64", "float", "str"}
	if int(d) < len(names) {
		return names[d]
	}
	return "unknown"
}

// Size returns the wire size of the data type in bytes.
// String registers have no fixed size and report 0.
func (d DType) Size() int {
	switch d {
	case DTypeU8, DTypeS8:
		return 1
	case DTypeU16, DTypeS16:
		return 2
	case DTypeU32, DTypeS32, DTypeFloat:
		return 4
	case DTypeU64, DTypeS64:
		return 8
	default:
		return 0
	}
}

// Access is the access mode of a register.
type Access uint8

const (
	// AccessRO allows reads only.
	AccessRO Access = iota

	// AccessWO allows writes only.
	AccessWO

	// AccessRW allows reads and writes.
	AccessRW
)

// accessNames maps dictionary names to access modes.
var accessNames = map[string]Access{
	"r":  AccessRO,
	"w":  AccessWO,
	"rw": AccessRW,
}

// ParseAccess maps a dictionary access name to an Access.
func ParseAccess(name string) (Access, error) {
	a, ok := accessNames[name]
	if !ok {
		return 0, fmt.Errorf("%w (%s)", ErrInvalidAccess, name)
	}
	return a, nil
}

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a == AccessRO || a == AccessRW }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a == AccessWO || a == AccessRW }

// String returns the dictionary name of the access mode.
func (a Access) String() string {
	switch a {
	case AccessRO:
		return "r"
	case AccessWO:
		return "w"
	case AccessRW:
		return "rw"
	default:
		return "unknown"
	}
}

// Phy is the physical-unit tag of a register.
type Phy uint8

const (
	PhyNone Phy = iota
	PhyTorque
	PhyPos
	PhyVel
	PhyAcc
	PhyVoltRel
	PhyRad
)

// phyNames maps dictionary names to physical-unit tags.
var phyNames = map[string]Phy{
	"none":     PhyNone,
	"torque":   PhyTorque,
	"pos":      PhyPos,
	"vel":      PhyVel,
	"acc":      PhyAcc,
	"volt_rel": PhyVoltRel,
	"rad":      PhyRad,
}

// ParsePhy maps a dictionary unit name to a Phy.
// Unknown names map to PhyNone; they are not an error.
func ParsePhy(name string) Phy {
	p, ok := phyNames[name]
	if !ok {
		return PhyNone
	}
	return p
}

// String returns the dictionary name of the unit tag.
func (p Phy) String() string {
	names := []string{"none", "torque", "pos", "vel", "acc", "volt_rel", "rad"}
	if int(p) < len(names) {
		return names[p]
	}
	return "none"
}

// Range holds the numeric bounds of a register, typed per the register's
// data type (e.g. uint16 bounds for a u16 register).
type Range struct {
	Min any
	Max any
}

// DefaultRange returns the full representable range of the data type.
// String registers have no range.
func DefaultRange(d DType) Range {
	switch d {
	case DTypeU8:
		return Range{Min: uint8(0), Max: uint8(math.MaxUint8)}
	case DTypeS8:
		return Range{Min: int8(math.MinInt8), Max: int8(math.MaxInt8)}
	case DTypeU16:
		return Range{Min: uint16(0), Max: uint16(math.MaxUint16)}
	case DTypeS16:
		return Range{Min: int16(math.MinInt16), Max: int16(math.MaxInt16)}
	case DTypeU32:
		return Range{Min: uint32(0), Max: uint32(math.MaxUint32)}
	case DTypeS32:
		return Range{Min: int32(math.MinInt32), Max: int32(math.MaxInt32)}
	case DTypeU64:
		return Range{Min: uint64(0), Max: uint64(math.MaxUint64)}
	case DTypeS64:
		return Range{Min: int64(math.MinInt64), Max: int64(math.MaxInt64)}
	case DTypeFloat:
		return Range{Min: float32(-math.MaxFloat32), Max: float32(math.MaxFloat32)}
	default:
		return Range{}
	}
}

// ParseValue parses a literal value for the given data type. Integer
// literals accept decimal, hex (0x) and octal prefixes. String registers are
// not coerced and yield nil.
func ParseValue(d DType, s string) (any, error) {
	switch d {
	case DTypeU8:
		v, err := strconv.ParseUint(s, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return uint8(v), nil
	case DTypeS8:
		v, err := strconv.ParseInt(s, 0, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return int8(v), nil
	case DTypeU16:
		v, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return uint16(v), nil
	case DTypeS16:
		v, err := strconv.ParseInt(s, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return int16(v), nil
	case DTypeU32:
		v, err := strconv.ParseUint(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return uint32(v), nil
	case DTypeS32:
		v, err := strconv.ParseInt(s, 0, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return int32(v), nil
	case DTypeU64:
		v, err := strconv.ParseUint(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return v, nil
	case DTypeS64:
		v, err := strconv.ParseInt(s, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return v, nil
	case DTypeFloat:
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q as %s", ErrValueType, s, d)
		}
		return float32(v), nil
	case DTypeString:
		// String literals are not coerced.
		return nil, nil
	default:
		return nil, ErrInvalidDType
	}
}

// Register describes one addressable drive parameter.
type Register struct {
	// ID is the register identifier, unique within a dictionary.
	ID string

	// Address is the register address in the drive's address space.
	Address uint32

	// DType is the register data type.
	DType DType

	// Access is the allowed access mode.
	Access Access

	// Phy is the physical-unit tag used for unit scaling.
	Phy Phy

	// CatID and ScatID reference the dictionary category and subcategory.
	// ScatID is only valid together with CatID.
	CatID  string
	ScatID string

	// Default is the optional default value, typed per DType.
	Default any

	// Range holds the numeric bounds, typed per DType.
	Range Range

	// Labels maps language codes to localized display names.
	Labels map[string]string
}

// Label returns the localized name for the given language code.
// A missing language is not an error; ok reports whether it was found.
func (r *Register) Label(lang string) (string, bool) {
	s, ok := r.Labels[lang]
	return s, ok
}
