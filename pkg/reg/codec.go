package reg

import (
	"encoding/binary"
	"fmt"
	"math"
)

// wireOrder is the canonical byte order of multi-byte register values.
var wireOrder = binary.BigEndian

// Encode converts a native scalar into canonical wire bytes.
// The value must carry the exact Go type of the data type (e.g. uint16 for
// DTypeU16); anything else fails with ErrValueType.
func Encode(d DType, value any) ([]byte, error) {
	switch d {
	case DTypeU8:
		v, ok := value.(uint8)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return []byte{v}, nil
	case DTypeS8:
		v, ok := value.(int8)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return []byte{byte(v)}, nil
	case DTypeU16:
		v, ok := value.(uint16)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return wireOrder.AppendUint16(nil, v), nil
	case DTypeS16:
		v, ok := value.(int16)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return wireOrder.AppendUint16(nil, uint16(v)), nil
	case DTypeU32:
		v, ok := value.(uint32)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return wireOrder.AppendUint32(nil, v), nil
	case DTypeS32:
		v, ok := value.(int32)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return wireOrder.AppendUint32(nil, uint32(v)), nil
	case DTypeU64:
		v, ok := value.(uint64)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return wireOrder.AppendUint64(nil, v), nil
	case DTypeS64:
		v, ok := value.(int64)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return wireOrder.AppendUint64(nil, uint64(v)), nil
	case DTypeFloat:
		v, ok := value.(float32)
		if !ok {
			return nil, encTypeErr(d, value)
		}
		return wireOrder.AppendUint32(nil, math.Float32bits(v)), nil
	default:
		return nil, fmt.Errorf("%w (%s)", ErrInvalidDType, d)
	}
}

func encTypeErr(d DType, value any) error {
	return fmt.Errorf("%w: %T as %s", ErrValueType, value, d)
}

// Decode converts canonical wire bytes into a native scalar typed per the
// data type.
func Decode(d DType, data []byte) (any, error) {
	if len(data) < d.Size() || d.Size() == 0 {
		return nil, fmt.Errorf("%w: %d bytes as %s", ErrShortData, len(data), d)
	}

	switch d {
	case DTypeU8:
		return data[0], nil
	case DTypeS8:
		return int8(data[0]), nil
	case DTypeU16:
		return wireOrder.Uint16(data), nil
	case DTypeS16:
		return int16(wireOrder.Uint16(data)), nil
	case DTypeU32:
		return wireOrder.Uint32(data), nil
	case DTypeS32:
		return int32(wireOrder.Uint32(data)), nil
	case DTypeU64:
		return wireOrder.Uint64(data), nil
	case DTypeS64:
		return int64(wireOrder.Uint64(data)), nil
	case DTypeFloat:
		return math.Float32frombits(wireOrder.Uint32(data)), nil
	default:
		return nil, fmt.Errorf("%w (%s)", ErrInvalidDType, d)
	}
}

// ToPhysical converts a native scalar to its physical value by applying the
// unit factor.
func ToPhysical(native any, factor float64) (float64, error) {
	switch v := native.(type) {
	case uint8:
		return float64(v) * factor, nil
	case int8:
		return float64(v) * factor, nil
	case uint16:
		return float64(v) * factor, nil
	case int16:
		return float64(v) * factor, nil
	case uint32:
		return float64(v) * factor, nil
	case int32:
		return float64(v) * factor, nil
	case uint64:
		return float64(v) * factor, nil
	case int64:
		return float64(v) * factor, nil
	case float32:
		return float64(v) * factor, nil
	default:
		return 0, fmt.Errorf("%w: %T", ErrValueType, native)
	}
}

// FromPhysical converts a physical value to a native scalar of the given
// data type by dividing out the unit factor. Integer narrowing truncates
// toward zero; values outside the data type's range saturate at the nearest
// bound, and NaN converts to zero.
func FromPhysical(value, factor float64, d DType) (any, error) {
	native := value / factor

	switch d {
	case DTypeU8:
		return uint8(clampUnsigned(native, math.MaxUint8)), nil
	case DTypeS8:
		return int8(clampSigned(native, math.MinInt8, math.MaxInt8)), nil
	case DTypeU16:
		return uint16(clampUnsigned(native, math.MaxUint16)), nil
	case DTypeS16:
		return int16(clampSigned(native, math.MinInt16, math.MaxInt16)), nil
	case DTypeU32:
		return uint32(clampUnsigned(native, math.MaxUint32)), nil
	case DTypeS32:
		return int32(clampSigned(native, math.MinInt32, math.MaxInt32)), nil
	case DTypeU64:
		return clampUnsigned(native, math.MaxUint64), nil
	case DTypeS64:
		return clampSigned(native, math.MinInt64, math.MaxInt64), nil
	case DTypeFloat:
		return float32(native), nil
	default:
		return nil, fmt.Errorf("%w (%s)", ErrInvalidDType, d)
	}
}

func clampUnsigned(native float64, max uint64) uint64 {
	if math.IsNaN(native) || native <= 0 {
		return 0
	}
	// float64(max) rounds up for the widest types, so >= catches every
	// value that would not fit.
	if native >= float64(max) {
		return max
	}
	return uint64(native)
}

func clampSigned(native float64, min, max int64) int64 {
	if math.IsNaN(native) {
		return 0
	}
	if native <= float64(min) {
		return min
	}
	if native >= float64(max) {
		return max
	}
	return int64(native)
}
