// Package cilfloat provides the tolerance-based floating-point comparison
// used when checking conversion results that are not bit-exact across
// floating-point widths.
//
// The comparison never panics and never reports an error: non-finite
// operands are resolved by an explicit NonFinitePolicy rather than IEEE 754
// comparison semantics, so that a scenario can assert "both sides produced
// the same non-finite value" when that is the expected outcome.
package cilfloat

import "math"

// Default tolerances. The single-precision tolerance is looser, matching the
// smaller mantissa of IEEE 754 binary32.
const (
	Tolerance32 = 1e-4
	Tolerance64 = 1e-9
)

// NonFinitePolicy selects how non-finite operands compare.
type NonFinitePolicy int

const (
	// NonFiniteIdentical treats two NaNs, or two infinities of the same
	// sign, as approximately equal; every other non-finite pairing is
	// unequal. This is the default policy.
	NonFiniteIdentical NonFinitePolicy = iota

	// NonFiniteNeverEqual reports false whenever either operand is
	// non-finite.
	NonFiniteNeverEqual
)

// ApproxEqual reports |a-b| <= tol for finite operands, resolving non-finite
// operands under the NonFiniteIdentical policy.
func ApproxEqual(a, b, tol float64) bool {
	return ApproxEqualPolicy(a, b, tol, NonFiniteIdentical)
}

// ApproxEqualPolicy is ApproxEqual with an explicit non-finite policy.
func ApproxEqualPolicy(a, b, tol float64, policy NonFinitePolicy) bool {
	aFinite := !math.IsNaN(a) && !math.IsInf(a, 0)
	bFinite := !math.IsNaN(b) && !math.IsInf(b, 0)
	if aFinite && bFinite {
		return math.Abs(a-b) <= tol
	}
	if policy == NonFiniteNeverEqual {
		return false
	}
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	// Same-signed infinities compare equal under ==; inf vs finite and
	// inf vs NaN do not.
	return a == b
}

// ToleranceFor returns the default tolerance for comparisons whose least
// precise operand has the given single-precision property.
func ToleranceFor(singlePrecision bool) float64 {
	if singlePrecision {
		return Tolerance32
	}
	return Tolerance64
}
