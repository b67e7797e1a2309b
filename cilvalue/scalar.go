package cilvalue

import (
	"fmt"
	"math"
)

// Scalar is a numeric value tagged with its NumericType. The bits field holds
// the value's two's-complement (integers) or IEEE 754 (floats) pattern in the
// type's own width, zero-extended to 64 bits. Two scalars are equal iff both
// type and bits match.
type Scalar struct {
	typ  NumericType
	bits uint64
}

// FromBits builds a scalar from a raw bit pattern. Bits above the type's
// width are discarded.
func FromBits(t NumericType, bits uint64) Scalar {
	return Scalar{typ: t, bits: bits & t.Mask()}
}

// IntScalar builds an integer scalar from a signed value, keeping the low
// type-width bits of its two's-complement pattern. Panics for float types.
func IntScalar(t NumericType, v int64) Scalar {
	if t.Float() {
		panic("cilvalue: IntScalar with floating-point type")
	}
	return FromBits(t, uint64(v))
}

// UintScalar builds an integer scalar from an unsigned value, keeping the low
// type-width bits. Panics for float types.
func UintScalar(t NumericType, v uint64) Scalar {
	if t.Float() {
		panic("cilvalue: UintScalar with floating-point type")
	}
	return FromBits(t, v)
}

// Float32Scalar builds an F32 scalar.
func Float32Scalar(v float32) Scalar {
	return Scalar{typ: F32, bits: uint64(math.Float32bits(v))}
}

// Float64Scalar builds an F64 scalar.
func Float64Scalar(v float64) Scalar {
	return Scalar{typ: F64, bits: math.Float64bits(v)}
}

// Type returns the scalar's numeric type.
func (s Scalar) Type() NumericType { return s.typ }

// Bits returns the raw pattern, zero-extended to 64 bits.
func (s Scalar) Bits() uint64 { return s.bits }

// Int64 returns the value interpreted per the type's signedness, widened to
// int64. Signed types sign-extend; unsigned types zero-extend (U64 values
// above MaxInt64 reinterpret). Panics for float types.
func (s Scalar) Int64() int64 {
	if s.typ.Float() {
		panic("cilvalue: Int64 on floating-point scalar")
	}
	if !s.typ.Signed() {
		return int64(s.bits)
	}
	w := uint(s.typ.BitWidth())
	return int64(s.bits<<(64-w)) >> (64 - w)
}

// Uint64 returns the zero-extended bit pattern. For signed types this is the
// two's-complement reinterpretation within the type's width.
func (s Scalar) Uint64() uint64 {
	if s.typ.Float() {
		panic("cilvalue: Uint64 on floating-point scalar")
	}
	return s.bits
}

// Float32 returns the F32 value. Panics for other types.
func (s Scalar) Float32() float32 {
	if s.typ != F32 {
		panic("cilvalue: Float32 on non-F32 scalar")
	}
	return math.Float32frombits(uint32(s.bits))
}

// Float64 returns the floating-point value, promoting F32 exactly. Panics for
// integer types.
func (s Scalar) Float64() float64 {
	switch s.typ {
	case F32:
		return float64(math.Float32frombits(uint32(s.bits)))
	case F64:
		return math.Float64frombits(s.bits)
	default:
		panic("cilvalue: Float64 on integer scalar")
	}
}

// Equal reports type and bit equality. Note that NaN scalars with identical
// payloads compare equal under this definition.
func (s Scalar) Equal(o Scalar) bool {
	return s.typ == o.typ && s.bits == o.bits
}

func (s Scalar) String() string {
	switch {
	case s.typ.Float():
		return fmt.Sprintf("%s(%v)", s.typ, s.Float64())
	case s.typ.Signed():
		return fmt.Sprintf("%s(%d)", s.typ, s.Int64())
	default:
		return fmt.Sprintf("%s(%d)", s.typ, s.Uint64())
	}
}
