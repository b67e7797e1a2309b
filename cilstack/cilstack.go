// Package cilstack is the stack-discipline model: an evaluation stack of
// tagged values together with the contractual semantics of the two modeled
// operations, duplicate-top and discard-top.
//
// Duplicate-top pushes a second copy of the top value: a value copy for
// numeric scalars, an identity-preserving alias for object references, and
// two nulls for the null reference. Discard-top removes the top value with
// no other observable effect; the expression that produced the value has
// already run exactly once, and the discard neither re-evaluates it nor
// suppresses it.
package cilstack

import (
	"github.com/lattice-substrate/cil-verify/cilerr"
	"github.com/lattice-substrate/cil-verify/cilvalue"
)

// Stack is an evaluation stack of StackValues. The zero value is an empty
// stack ready for use.
type Stack struct {
	values []cilvalue.StackValue
}

// New returns an empty stack.
func New() *Stack {
	return &Stack{}
}

// Len returns the current depth.
func (s *Stack) Len() int { return len(s.values) }

// Push places v on top of the stack.
func (s *Stack) Push(v cilvalue.StackValue) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. Popping an empty stack is a
// STACK_UNDERFLOW error.
func (s *Stack) Pop() (cilvalue.StackValue, error) {
	if len(s.values) == 0 {
		return cilvalue.StackValue{}, cilerr.New(cilerr.StackUnderflow, "pop on empty stack")
	}
	top := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return top, nil
}

// Peek returns the top value without removing it.
func (s *Stack) Peek() (cilvalue.StackValue, error) {
	if len(s.values) == 0 {
		return cilvalue.StackValue{}, cilerr.New(cilerr.StackUnderflow, "peek on empty stack")
	}
	return s.values[len(s.values)-1], nil
}

// DupTop pushes a second copy of the top value. The StackValue copy carries
// the duplicate-top contract by construction: scalars copy by value,
// references alias the same object, null duplicates to null.
func (s *Stack) DupTop() error {
	top, err := s.Peek()
	if err != nil {
		return cilerr.Wrap(cilerr.StackUnderflow, "duplicate-top on empty stack", err)
	}
	s.Push(top)
	return nil
}

// DiscardTop removes the top value and nothing else.
func (s *Stack) DiscardTop() error {
	if _, err := s.Pop(); err != nil {
		return cilerr.Wrap(cilerr.StackUnderflow, "discard-top on empty stack", err)
	}
	return nil
}
