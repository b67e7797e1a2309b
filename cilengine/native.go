package cilengine

import (
	"math"

	"github.com/lattice-substrate/cil-verify/cilconv"
	"github.com/lattice-substrate/cil-verify/cilerr"
	"github.com/lattice-substrate/cil-verify/cilstack"
	"github.com/lattice-substrate/cil-verify/cilvalue"
)

// NativeProducer performs conversions with the host language's own
// conversion operators and stack operations directly on the evaluation
// stack. It is the default stand-in when no external engine is plugged in.
//
// Wrapping-mode float-to-integer conversion of out-of-range inputs is
// implementation-defined by the modeled instruction set; this producer
// saturates (NaN converts to zero), which is one conforming trap-free
// choice.
type NativeProducer struct{}

var _ Producer = NativeProducer{}

// Convert implements Producer.
func (NativeProducer) Convert(in cilvalue.Scalar, dst cilvalue.NumericType, mode cilconv.Mode) (cilvalue.Scalar, error) {
	if mode == cilconv.Checked && !dst.Float() {
		if err := validateChecked(in, dst); err != nil {
			return cilvalue.Scalar{}, err
		}
	}
	switch {
	case in.Type().Float():
		return fromFloat(in.Float64(), dst), nil
	case in.Type().Signed():
		return fromSigned(in.Int64(), dst), nil
	default:
		return fromUnsigned(in.Uint64(), dst), nil
	}
}

// DupTop implements Producer.
func (NativeProducer) DupTop(s *cilstack.Stack) error { return s.DupTop() }

// DiscardTop implements Producer.
func (NativeProducer) DiscardTop(s *cilstack.Stack) error { return s.DiscardTop() }

// fromSigned converts a sign-extended source value with native operators.
func fromSigned(v int64, dst cilvalue.NumericType) cilvalue.Scalar {
	switch dst {
	case cilvalue.I8:
		return cilvalue.IntScalar(dst, int64(int8(v)))
	case cilvalue.U8:
		return cilvalue.UintScalar(dst, uint64(uint8(v)))
	case cilvalue.I16:
		return cilvalue.IntScalar(dst, int64(int16(v)))
	case cilvalue.U16:
		return cilvalue.UintScalar(dst, uint64(uint16(v)))
	case cilvalue.I32:
		return cilvalue.IntScalar(dst, int64(int32(v)))
	case cilvalue.U32:
		return cilvalue.UintScalar(dst, uint64(uint32(v)))
	case cilvalue.I64:
		return cilvalue.IntScalar(dst, v)
	case cilvalue.U64:
		return cilvalue.UintScalar(dst, uint64(v))
	case cilvalue.IPtr:
		return cilvalue.IntScalar(dst, int64(int(v)))
	case cilvalue.UPtr:
		return cilvalue.UintScalar(dst, uint64(uint(v)))
	case cilvalue.F32:
		return cilvalue.Float32Scalar(float32(v))
	case cilvalue.F64:
		return cilvalue.Float64Scalar(float64(v))
	default:
		panic("cilengine: unknown destination type")
	}
}

// fromUnsigned converts a zero-extended source value with native operators.
func fromUnsigned(v uint64, dst cilvalue.NumericType) cilvalue.Scalar {
	switch dst {
	case cilvalue.I8:
		return cilvalue.IntScalar(dst, int64(int8(v)))
	case cilvalue.U8:
		return cilvalue.UintScalar(dst, uint64(uint8(v)))
	case cilvalue.I16:
		return cilvalue.IntScalar(dst, int64(int16(v)))
	case cilvalue.U16:
		return cilvalue.UintScalar(dst, uint64(uint16(v)))
	case cilvalue.I32:
		return cilvalue.IntScalar(dst, int64(int32(v)))
	case cilvalue.U32:
		return cilvalue.UintScalar(dst, uint64(uint32(v)))
	case cilvalue.I64:
		return cilvalue.IntScalar(dst, int64(v))
	case cilvalue.U64:
		return cilvalue.UintScalar(dst, v)
	case cilvalue.IPtr:
		return cilvalue.IntScalar(dst, int64(int(v)))
	case cilvalue.UPtr:
		return cilvalue.UintScalar(dst, uint64(uint(v)))
	case cilvalue.F32:
		return cilvalue.Float32Scalar(float32(v))
	case cilvalue.F64:
		return cilvalue.Float64Scalar(float64(v))
	default:
		panic("cilengine: unknown destination type")
	}
}

// fromFloat converts a floating-point source. Integer destinations truncate
// toward zero; out-of-range inputs saturate to the destination bound and NaN
// converts to zero, keeping the operation trap-free. The Go float-to-integer
// conversion itself is only applied to in-range values, where its behavior
// is fully defined.
func fromFloat(f float64, dst cilvalue.NumericType) cilvalue.Scalar {
	switch dst {
	case cilvalue.F32:
		return cilvalue.Float32Scalar(float32(f))
	case cilvalue.F64:
		return cilvalue.Float64Scalar(f)
	}

	t := math.Trunc(f)
	switch {
	case math.IsNaN(t):
		return cilvalue.FromBits(dst, 0)
	case tooLow(t, dst):
		return cilvalue.IntScalar(dst, dst.MinInt())
	case tooHigh(t, dst):
		return cilvalue.UintScalar(dst, dst.MaxUint())
	}
	if dst.Signed() {
		return cilvalue.IntScalar(dst, int64(t))
	}
	return cilvalue.UintScalar(dst, uint64(t))
}

func tooLow(t float64, dst cilvalue.NumericType) bool {
	if !dst.Signed() {
		return t < 0
	}
	return t < -math.Ldexp(1, dst.BitWidth()-1)
}

func tooHigh(t float64, dst cilvalue.NumericType) bool {
	w := dst.BitWidth()
	if dst.Signed() {
		return t >= math.Ldexp(1, w-1)
	}
	return t >= math.Ldexp(1, w)
}

// validateChecked raises OVERFLOW when the source value does not fit the
// integer destination, the way an engine's overflow-checked conversion
// instruction must before producing a value.
func validateChecked(in cilvalue.Scalar, dst cilvalue.NumericType) error {
	if in.Type().Float() {
		t := math.Trunc(in.Float64())
		if math.IsNaN(t) || tooLow(t, dst) || tooHigh(t, dst) {
			return cilerr.Newf(cilerr.Overflow, "checked conversion of %s to %s", in, dst)
		}
		return nil
	}
	if in.Type().Signed() {
		v := in.Int64()
		if v < 0 {
			if !dst.Signed() || v < dst.MinInt() {
				return cilerr.Newf(cilerr.Overflow, "checked conversion of %s to %s", in, dst)
			}
			return nil
		}
		if uint64(v) > dst.MaxUint() {
			return cilerr.Newf(cilerr.Overflow, "checked conversion of %s to %s", in, dst)
		}
		return nil
	}
	if in.Uint64() > dst.MaxUint() {
		return cilerr.Newf(cilerr.Overflow, "checked conversion of %s to %s", in, dst)
	}
	return nil
}
