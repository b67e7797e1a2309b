// Package cilconv is the conversion oracle: for every (source type,
// destination type, mode) cell of the numeric conversion matrix it defines
// the value a conforming engine must produce, or the fact that the operation
// must signal overflow.
//
// The oracle is pure. It never consults the producer under test, and the
// same (input, destination, mode) triple always yields the same result.
//
// Rules, per destination:
//
//   - integer -> narrower integer, wrapping: keep the low destination-width
//     bits of the sign/zero-extended source pattern, reinterpret per the
//     destination's signedness (two's-complement truncation);
//   - integer -> wider integer: sign-extend signed sources, zero-extend
//     unsigned sources, always exact;
//   - same-width sign change: bit reinterpretation;
//   - float -> integer: truncate toward zero; out-of-range inputs (and NaN)
//     signal Overflow in checked mode and are implementation-defined but
//     trap-free in wrapping mode (ErrUnspecified);
//   - integer -> float: correctly rounded single-step conversion;
//   - float width change: demotion rounds to nearest, promotion is exact.
//
// Checked mode applies to integer destinations only; the modeled instruction
// set has no overflow-checked conversion with a floating-point destination,
// so checked mode to a float destination behaves as wrapping.
package cilconv

import (
	"errors"
	"math"

	"github.com/lattice-substrate/cil-verify/cilerr"
	"github.com/lattice-substrate/cil-verify/cilvalue"
)

// Mode selects between trap-free truncating conversion and range-validated
// conversion.
type Mode uint8

const (
	Wrapping Mode = iota
	Checked
)

func (m Mode) String() string {
	if m == Checked {
		return "checked"
	}
	return "wrap"
}

// ModeByName resolves the names used in golden vector files.
func ModeByName(name string) (Mode, bool) {
	switch name {
	case "wrap":
		return Wrapping, true
	case "checked":
		return Checked, true
	default:
		return 0, false
	}
}

// ErrUnspecified reports that the conversion must complete without trapping
// but that the specification leaves the produced value implementation-
// defined (wrapping-mode float-to-integer conversion of an out-of-range
// input). Callers asserting against the oracle must accept any value from
// the producer for such cells.
var ErrUnspecified = errors.New("cilconv: result value is implementation-defined")

// Convert returns the specification-mandated result of converting in to dst
// under the given mode. A *cilerr.Error of class OVERFLOW reports that a
// checked conversion must signal overflow; ErrUnspecified reports a defined-
// trap-free but unspecified-value cell.
func Convert(in cilvalue.Scalar, dst cilvalue.NumericType, mode Mode) (cilvalue.Scalar, error) {
	src := in.Type()
	switch {
	case !src.Float() && !dst.Float():
		return convertIntInt(in, dst, mode)
	case src.Float() && !dst.Float():
		return convertFloatInt(in, dst, mode)
	case !src.Float() && dst.Float():
		return convertIntFloat(in, dst)
	default:
		return convertFloatFloat(in, dst)
	}
}

// convertIntInt covers narrowing, widening, and same-width sign change.
// Widening happens implicitly: the extended 64-bit pattern already carries
// the sign- or zero-extension, and masking to a wider destination keeps it.
func convertIntInt(in cilvalue.Scalar, dst cilvalue.NumericType, mode Mode) (cilvalue.Scalar, error) {
	if mode == Checked {
		if err := checkIntRange(in, dst); err != nil {
			return cilvalue.Scalar{}, err
		}
	}
	return cilvalue.FromBits(dst, extendedBits(in)), nil
}

// extendedBits returns the source value's pattern sign-extended (signed
// sources) or zero-extended (unsigned sources) to 64 bits.
func extendedBits(in cilvalue.Scalar) uint64 {
	if in.Type().Signed() {
		return uint64(in.Int64())
	}
	return in.Uint64()
}

// checkIntRange validates that the source value is representable in dst.
func checkIntRange(in cilvalue.Scalar, dst cilvalue.NumericType) error {
	if in.Type().Signed() {
		v := in.Int64()
		if v < 0 {
			if !dst.Signed() || v < dst.MinInt() {
				return overflowErr(in, dst)
			}
			return nil
		}
		if uint64(v) > dst.MaxUint() {
			return overflowErr(in, dst)
		}
		return nil
	}
	if in.Uint64() > dst.MaxUint() {
		return overflowErr(in, dst)
	}
	return nil
}

func convertFloatInt(in cilvalue.Scalar, dst cilvalue.NumericType, mode Mode) (cilvalue.Scalar, error) {
	t := math.Trunc(in.Float64())
	if !truncInRange(t, dst) {
		if mode == Checked {
			return cilvalue.Scalar{}, overflowErr(in, dst)
		}
		return cilvalue.Scalar{}, ErrUnspecified
	}
	if dst.Signed() {
		return cilvalue.IntScalar(dst, int64(t)), nil
	}
	return cilvalue.UintScalar(dst, uint64(t)), nil
}

// truncInRange reports whether the already-truncated value t is exactly
// representable in dst. The bounds are exact powers of two in float64, so
// the comparisons are precise; NaN fails both. The upper bound is exclusive
// because 2^(w-1) (resp. 2^w) itself is out of range while every truncated
// in-range value is strictly below it.
func truncInRange(t float64, dst cilvalue.NumericType) bool {
	w := dst.BitWidth()
	if dst.Signed() {
		lo := -math.Ldexp(1, w-1)
		hi := math.Ldexp(1, w-1)
		return t >= lo && t < hi
	}
	return t >= 0 && t < math.Ldexp(1, w)
}

// convertIntFloat performs a correctly rounded single-step conversion.
// Converting through float64 first would double-round on the way to F32, so
// the F32 case converts directly from the integer value.
func convertIntFloat(in cilvalue.Scalar, dst cilvalue.NumericType) (cilvalue.Scalar, error) {
	if in.Type().Signed() {
		v := in.Int64()
		if dst == cilvalue.F32 {
			return cilvalue.Float32Scalar(float32(v)), nil
		}
		return cilvalue.Float64Scalar(float64(v)), nil
	}
	v := in.Uint64()
	if dst == cilvalue.F32 {
		return cilvalue.Float32Scalar(float32(v)), nil
	}
	return cilvalue.Float64Scalar(float64(v)), nil
}

func convertFloatFloat(in cilvalue.Scalar, dst cilvalue.NumericType) (cilvalue.Scalar, error) {
	if dst == cilvalue.F32 {
		return cilvalue.Float32Scalar(float32(in.Float64())), nil
	}
	return cilvalue.Float64Scalar(in.Float64()), nil
}

func overflowErr(in cilvalue.Scalar, dst cilvalue.NumericType) *cilerr.Error {
	return cilerr.Newf(cilerr.Overflow, "%s is not representable in %s", in, dst)
}
