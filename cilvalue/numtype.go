// Package cilvalue defines the closed numeric type set and tagged value
// representations used by the conversion oracle, the stack-discipline model,
// and the producers under test.
//
// Scalars carry their bit pattern in the type's own width, zero-extended to
// 64 bits, so that every conversion and comparison in the harness is defined
// purely over (type, bits) pairs with no hidden host-representation state.
package cilvalue

import "math/bits"

// NumericType identifies one member of the closed numeric type set: the
// fixed-width integers (signed and unsigned, 8 through 64 bits), the
// native-pointer-width integers, and the two IEEE 754 binary floating-point
// widths. The set is never extended at runtime.
type NumericType uint8

const (
	I8 NumericType = iota
	U8
	I16
	U16
	I32
	U32
	I64
	U64
	IPtr
	UPtr
	F32
	F64
)

// Types lists every member of the closed set, in declaration order.
var Types = []NumericType{I8, U8, I16, U16, I32, U32, I64, U64, IPtr, UPtr, F32, F64}

// IntegerTypes lists the integer members, including the pointer-width pair.
var IntegerTypes = []NumericType{I8, U8, I16, U16, I32, U32, I64, U64, IPtr, UPtr}

// FixedIntegerTypes lists the integer members with a platform-independent
// width, i.e. everything except IPtr and UPtr.
var FixedIntegerTypes = []NumericType{I8, U8, I16, U16, I32, U32, I64, U64}

// FloatTypes lists the floating-point members.
var FloatTypes = []NumericType{F32, F64}

// BitWidth returns the width of the type in bits. For IPtr and UPtr this is
// the native pointer width of the platform the harness runs on.
func (t NumericType) BitWidth() int {
	switch t {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	case IPtr, UPtr:
		return bits.UintSize
	default:
		panic("cilvalue: unknown numeric type")
	}
}

// Float reports whether t is a floating-point type.
func (t NumericType) Float() bool {
	return t == F32 || t == F64
}

// Signed reports whether values of t carry a sign. Floating-point types are
// signed.
func (t NumericType) Signed() bool {
	switch t {
	case I8, I16, I32, I64, IPtr, F32, F64:
		return true
	default:
		return false
	}
}

// MinInt returns the smallest representable value of an integer type.
// Unsigned types return 0. Panics for floating-point types.
func (t NumericType) MinInt() int64 {
	if t.Float() {
		panic("cilvalue: MinInt on floating-point type")
	}
	if !t.Signed() {
		return 0
	}
	return -1 << (t.BitWidth() - 1)
}

// MaxUint returns the largest representable value of an integer type as a
// uint64 (also valid for signed types, whose maxima are non-negative).
// Panics for floating-point types.
func (t NumericType) MaxUint() uint64 {
	if t.Float() {
		panic("cilvalue: MaxUint on floating-point type")
	}
	w := t.BitWidth()
	if t.Signed() {
		return 1<<(w-1) - 1
	}
	if w == 64 {
		return ^uint64(0)
	}
	return 1<<w - 1
}

// Mask returns the bit mask covering the type's width.
func (t NumericType) Mask() uint64 {
	if t.BitWidth() == 64 {
		return ^uint64(0)
	}
	return 1<<t.BitWidth() - 1
}

func (t NumericType) String() string {
	switch t {
	case I8:
		return "i8"
	case U8:
		return "u8"
	case I16:
		return "i16"
	case U16:
		return "u16"
	case I32:
		return "i32"
	case U32:
		return "u32"
	case I64:
		return "i64"
	case U64:
		return "u64"
	case IPtr:
		return "iptr"
	case UPtr:
		return "uptr"
	case F32:
		return "f32"
	case F64:
		return "f64"
	default:
		return "invalid"
	}
}

// TypeByName resolves the lowercase names used in golden vector files and
// scenario labels. The second result is false for unknown names.
func TypeByName(name string) (NumericType, bool) {
	for _, t := range Types {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}
