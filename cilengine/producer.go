// Package cilengine defines the producer side of the harness: the capability
// that actually performs a conversion or stack operation so its output can
// be compared against the oracle and the stack-discipline model.
//
// The harness ships NativeProducer, which stands in for an engine under test
// by using the host language's own conversion operators. A real engine is
// verified by implementing Producer on top of its conversion and stack
// instructions and handing it to cilsuite.DefaultSuites.
package cilengine

import (
	"github.com/lattice-substrate/cil-verify/cilconv"
	"github.com/lattice-substrate/cil-verify/cilstack"
	"github.com/lattice-substrate/cil-verify/cilvalue"
)

// Producer executes the instructions under test and reports their results.
// Convert must signal checked-mode overflow with a cilerr OVERFLOW error and
// must never trap in wrapping mode. DupTop and DiscardTop operate on the
// given evaluation stack.
type Producer interface {
	Convert(in cilvalue.Scalar, dst cilvalue.NumericType, mode cilconv.Mode) (cilvalue.Scalar, error)
	DupTop(s *cilstack.Stack) error
	DiscardTop(s *cilstack.Stack) error
}
