package cilsuite

import (
	"github.com/lattice-substrate/cil-verify/cilengine"
	"github.com/lattice-substrate/cil-verify/cilerr"
	"github.com/lattice-substrate/cil-verify/cilstack"
	"github.com/lattice-substrate/cil-verify/cilvalue"
)

// StackDisciplineSuite verifies the duplicate-top and discard-top contract:
// value copies for scalars, identity preservation for references, null
// duplication, side effects exactly once, and underflow signaling.
func StackDisciplineSuite(p cilengine.Producer) Suite {
	return Suite{
		Name: "stack-discipline",
		Scenarios: []Scenario{
			{Name: "dup-int-value-copy", Check: func() error { return checkDupValueCopy(p) }},
			{Name: "dup-float-value-copy", Check: func() error { return checkDupFloatCopy(p) }},
			{Name: "dup-ref-identity", Check: func() error { return checkDupRefIdentity(p) }},
			{Name: "dup-null", Check: func() error { return checkDupNull(p) }},
			{Name: "dup-leaves-lower-values", Check: func() error { return checkDupLeavesLower(p) }},
			{Name: "discard-removes-top-only", Check: func() error { return checkDiscardTopOnly(p) }},
			{Name: "discard-side-effects-once", Check: func() error { return checkDiscardEffectsOnce(p) }},
			{Name: "dup-empty-underflow", Check: func() error { return checkDupUnderflow(p) }},
			{Name: "discard-empty-underflow", Check: func() error { return checkDiscardUnderflow(p) }},
		},
	}
}

func checkDupValueCopy(p cilengine.Producer) error {
	s := cilstack.New()
	s.Push(cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I32, 7)))
	if err := p.DupTop(s); err != nil {
		return err
	}
	if s.Len() != 2 {
		return cilerr.Newf(cilerr.ScenarioMismatch, "depth after dup = %d, want 2", s.Len())
	}
	a, err := s.Pop()
	if err != nil {
		return err
	}
	b, err := s.Pop()
	if err != nil {
		return err
	}
	if !a.Scalar().Equal(b.Scalar()) {
		return cilerr.Newf(cilerr.ScenarioMismatch, "duplicated values differ: %v vs %v", a, b)
	}
	return nil
}

func checkDupFloatCopy(p cilengine.Producer) error {
	s := cilstack.New()
	s.Push(cilvalue.NumValue(cilvalue.Float64Scalar(3.9)))
	if err := p.DupTop(s); err != nil {
		return err
	}
	a, err := s.Pop()
	if err != nil {
		return err
	}
	b, err := s.Pop()
	if err != nil {
		return err
	}
	if !a.Scalar().Equal(b.Scalar()) {
		return cilerr.Newf(cilerr.ScenarioMismatch, "duplicated values differ: %v vs %v", a, b)
	}
	return nil
}

func checkDupRefIdentity(p cilengine.Producer) error {
	s := cilstack.New()
	obj := cilvalue.NewRef("dup-target")
	s.Push(cilvalue.RefValue(obj))
	if err := p.DupTop(s); err != nil {
		return err
	}
	a, err := s.Pop()
	if err != nil {
		return err
	}
	b, err := s.Pop()
	if err != nil {
		return err
	}
	if !a.SameIdentity(b) {
		return cilerr.New(cilerr.ScenarioMismatch, "duplicated references are not identity-equal")
	}
	if a.Ref() != obj {
		return cilerr.New(cilerr.ScenarioMismatch, "duplicate does not refer to the original object")
	}
	return nil
}

func checkDupNull(p cilengine.Producer) error {
	s := cilstack.New()
	s.Push(cilvalue.NullValue())
	if err := p.DupTop(s); err != nil {
		return err
	}
	a, err := s.Pop()
	if err != nil {
		return err
	}
	b, err := s.Pop()
	if err != nil {
		return err
	}
	if !a.IsNull() || !b.IsNull() {
		return cilerr.Newf(cilerr.ScenarioMismatch, "null duplicated to %v and %v", a, b)
	}
	if !a.SameIdentity(b) {
		return cilerr.New(cilerr.ScenarioMismatch, "duplicated nulls are not identity-equal")
	}
	return nil
}

func checkDupLeavesLower(p cilengine.Producer) error {
	s := cilstack.New()
	below := cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I32, 41))
	s.Push(below)
	s.Push(cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I32, 42)))
	if err := p.DupTop(s); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if _, err := s.Pop(); err != nil {
			return err
		}
	}
	bottom, err := s.Pop()
	if err != nil {
		return err
	}
	if !bottom.Scalar().Equal(below.Scalar()) {
		return cilerr.Newf(cilerr.ScenarioMismatch, "value beneath dup changed: %v", bottom)
	}
	return nil
}

func checkDiscardTopOnly(p cilengine.Producer) error {
	s := cilstack.New()
	kept := cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I64, -1))
	s.Push(kept)
	s.Push(cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I64, 99)))
	if err := p.DiscardTop(s); err != nil {
		return err
	}
	if s.Len() != 1 {
		return cilerr.Newf(cilerr.ScenarioMismatch, "depth after discard = %d, want 1", s.Len())
	}
	top, err := s.Peek()
	if err != nil {
		return err
	}
	if !top.Scalar().Equal(kept.Scalar()) {
		return cilerr.Newf(cilerr.ScenarioMismatch, "discard disturbed lower value: %v", top)
	}
	return nil
}

// checkDiscardEffectsOnce pushes a value produced by a side-effecting
// evaluation and discards it: the side effect must have occurred exactly
// once, and the discard must not re-evaluate it.
func checkDiscardEffectsOnce(p cilengine.Producer) error {
	s := cilstack.New()
	calls := 0
	produce := func() cilvalue.StackValue {
		calls++
		return cilvalue.NumValue(cilvalue.IntScalar(cilvalue.I32, 5))
	}
	s.Push(produce())
	if err := p.DiscardTop(s); err != nil {
		return err
	}
	if calls != 1 {
		return cilerr.Newf(cilerr.ScenarioMismatch, "producing expression evaluated %d times, want 1", calls)
	}
	if s.Len() != 0 {
		return cilerr.Newf(cilerr.ScenarioMismatch, "depth after discard = %d, want 0", s.Len())
	}
	return nil
}

func checkDupUnderflow(p cilengine.Producer) error {
	err := p.DupTop(cilstack.New())
	if !cilerr.IsClass(err, cilerr.StackUnderflow) {
		return cilerr.Newf(cilerr.ScenarioMismatch, "duplicate-top on empty stack returned %v, want underflow", err)
	}
	return nil
}

func checkDiscardUnderflow(p cilengine.Producer) error {
	err := p.DiscardTop(cilstack.New())
	if !cilerr.IsClass(err, cilerr.StackUnderflow) {
		return cilerr.Newf(cilerr.ScenarioMismatch, "discard-top on empty stack returned %v, want underflow", err)
	}
	return nil
}
