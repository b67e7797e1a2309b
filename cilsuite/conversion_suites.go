package cilsuite

import (
	"errors"
	"fmt"
	"math"

	"github.com/lattice-substrate/cil-verify/cilconv"
	"github.com/lattice-substrate/cil-verify/cilengine"
	"github.com/lattice-substrate/cil-verify/cilerr"
	"github.com/lattice-substrate/cil-verify/cilfloat"
	"github.com/lattice-substrate/cil-verify/cilvalue"
)

// DefaultSuites returns the fixed suite matrix in its documented execution
// order: integer wrapping conversions, integer overflow-checked conversions,
// floating-point conversions, stack discipline.
func DefaultSuites(p cilengine.Producer) []Suite {
	return []Suite{
		WrappingConversionSuite(p),
		CheckedConversionSuite(p),
		FloatConversionSuite(p),
		StackDisciplineSuite(p),
	}
}

// WrappingConversionSuite exercises every integer (source, destination) pair
// over a boundary value set under wrapping mode: two's-complement
// truncation, sign/zero extension, and same-width sign change.
func WrappingConversionSuite(p cilengine.Producer) Suite {
	return integerConversionSuite("conv-wrapping", p, cilconv.Wrapping)
}

// CheckedConversionSuite exercises the same integer matrix under
// overflow-checked mode, asserting both in-range agreement with wrapping
// results and overflow signaling for out-of-range inputs.
func CheckedConversionSuite(p cilengine.Producer) Suite {
	return integerConversionSuite("conv-checked", p, cilconv.Checked)
}

func integerConversionSuite(name string, p cilengine.Producer, mode cilconv.Mode) Suite {
	var scenarios []Scenario
	for _, src := range cilvalue.IntegerTypes {
		for _, in := range integerProbes(src) {
			for _, dst := range cilvalue.IntegerTypes {
				scenarios = append(scenarios, conversionScenario(p, in, dst, mode, false))
			}
		}
	}
	return Suite{Name: name, Scenarios: scenarios}
}

// FloatConversionSuite exercises float-to-integer truncation (both modes),
// integer-to-float rounding, and float width changes.
func FloatConversionSuite(p cilengine.Producer) Suite {
	var scenarios []Scenario

	for _, src := range cilvalue.FloatTypes {
		for _, in := range floatProbes(src) {
			for _, dst := range cilvalue.IntegerTypes {
				scenarios = append(scenarios,
					conversionScenario(p, in, dst, cilconv.Wrapping, true),
					conversionScenario(p, in, dst, cilconv.Checked, true),
				)
			}
			for _, dst := range cilvalue.FloatTypes {
				scenarios = append(scenarios, conversionScenario(p, in, dst, cilconv.Wrapping, true))
			}
		}
	}

	for _, src := range cilvalue.IntegerTypes {
		for _, in := range integerProbes(src) {
			for _, dst := range cilvalue.FloatTypes {
				scenarios = append(scenarios, conversionScenario(p, in, dst, cilconv.Wrapping, true))
			}
		}
	}

	return Suite{Name: "conv-float", Scenarios: scenarios}
}

// conversionScenario compares the producer's result for one conversion cell
// against the oracle. When the suite mixes modes the mode is part of the
// scenario name to keep names unique within the run.
func conversionScenario(p cilengine.Producer, in cilvalue.Scalar, dst cilvalue.NumericType, mode cilconv.Mode, nameMode bool) Scenario {
	name := fmt.Sprintf("%s->%s", in, dst)
	if nameMode {
		name = fmt.Sprintf("%s-%s", name, mode)
	}
	return Scenario{
		Name: name,
		Check: func() error {
			want, wantErr := cilconv.Convert(in, dst, mode)
			got, gotErr := p.Convert(in, dst, mode)

			switch {
			case errors.Is(wantErr, cilconv.ErrUnspecified):
				// Value is implementation-defined; only trap-freedom is
				// asserted.
				if gotErr != nil {
					return cilerr.Newf(cilerr.ScenarioMismatch,
						"producer trapped on trap-free conversion: %v", gotErr)
				}
				return nil
			case cilerr.IsClass(wantErr, cilerr.Overflow):
				if !cilerr.IsClass(gotErr, cilerr.Overflow) {
					return cilerr.Newf(cilerr.ScenarioMismatch,
						"want overflow signal, producer returned (%v, %v)", got, gotErr)
				}
				return nil
			case wantErr != nil:
				return wantErr
			case gotErr != nil:
				return cilerr.Newf(cilerr.ScenarioMismatch,
					"producer failed in-range conversion: %v", gotErr)
			}

			if dst.Float() {
				tol := cilfloat.ToleranceFor(dst == cilvalue.F32)
				if !cilfloat.ApproxEqual(got.Float64(), want.Float64(), tol) {
					return cilerr.Newf(cilerr.ScenarioMismatch, "got %v want %v", got, want)
				}
				return nil
			}
			if !got.Equal(want) {
				return cilerr.Newf(cilerr.ScenarioMismatch, "got %v want %v", got, want)
			}
			return nil
		},
	}
}

// integerProbes returns the boundary value set for one integer source type:
// zero, one, the type extremes, and the nearby power-of-two boundaries of
// the narrower destination types, deduplicated per bit pattern.
func integerProbes(src cilvalue.NumericType) []cilvalue.Scalar {
	candidates := []int64{
		0, 1, 100, 127, 128, 255, 256, 300,
		32767, 32768, 65535, 65536,
		2147483647, 2147483648, 4294967295,
	}
	negatives := []int64{-1, -100, -128, -129, -32768, -32769, -2147483648}

	var probes []cilvalue.Scalar
	seen := make(map[uint64]struct{})
	add := func(s cilvalue.Scalar) {
		if _, dup := seen[s.Bits()]; dup {
			return
		}
		seen[s.Bits()] = struct{}{}
		probes = append(probes, s)
	}

	if src.Signed() {
		for _, v := range candidates {
			s := cilvalue.IntScalar(src, v)
			if s.Int64() == v {
				add(s)
			}
		}
		for _, v := range negatives {
			s := cilvalue.IntScalar(src, v)
			if s.Int64() == v {
				add(s)
			}
		}
		add(cilvalue.IntScalar(src, src.MinInt()))
		add(cilvalue.UintScalar(src, src.MaxUint()))
		return probes
	}

	for _, v := range candidates {
		s := cilvalue.UintScalar(src, uint64(v))
		if s.Uint64() == uint64(v) {
			add(s)
		}
	}
	add(cilvalue.UintScalar(src, src.MaxUint()))
	return probes
}

// floatProbes returns the probe set for one floating-point source type,
// deduplicated per bit pattern after rounding into the source width.
func floatProbes(src cilvalue.NumericType) []cilvalue.Scalar {
	candidates := []float64{
		0, 1, -1, 0.5, -0.5, 3.9, -3.9,
		127.99, 128.0, 255.5, 256.0, -128.9, -129.0,
		32767.5, 65536.0, 1e10, -1e10,
		2147483647, 2147483648, -2147483648, -2147483649,
		9.2e18, 1.8e19, 3.4e38,
		math.NaN(), math.Inf(1), math.Inf(-1),
	}

	var probes []cilvalue.Scalar
	seen := make(map[uint64]struct{})
	for _, f := range candidates {
		var s cilvalue.Scalar
		if src == cilvalue.F32 {
			s = cilvalue.Float32Scalar(float32(f))
		} else {
			s = cilvalue.Float64Scalar(f)
		}
		if _, dup := seen[s.Bits()]; dup {
			continue
		}
		seen[s.Bits()] = struct{}{}
		probes = append(probes, s)
	}
	return probes
}
