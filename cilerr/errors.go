// Package cilerr defines the failure taxonomy for cil-verify.
//
// Every error produced by the oracle, the stack model, the tracker, or the
// CLI maps to exactly one FailureClass, which determines the exit code and
// lets conformance checks verify failure classification, not just "did it
// fail." Scenario-level classes (OVERFLOW, SCENARIO_MISMATCH,
// STACK_UNDERFLOW) never terminate a run by themselves; they surface as
// recorded outcomes and contribute to the aggregate exit code.
package cilerr

import (
	"errors"
	"fmt"
)

// FailureClass is a stable failure category.
type FailureClass string

const (
	// Overflow is signaled by an overflow-checked conversion whose input
	// lies outside the destination type's range.
	Overflow FailureClass = "OVERFLOW"

	// ScenarioMismatch marks a divergence between the oracle's expected
	// result and the producer's actual result.
	ScenarioMismatch FailureClass = "SCENARIO_MISMATCH"

	// HarnessDefect marks an error thrown while evaluating a scenario
	// itself, as opposed to a semantic mismatch.
	HarnessDefect FailureClass = "HARNESS_DEFECT"

	// DuplicateScenario marks an attempt to record two outcomes under the
	// same scenario name within one run.
	DuplicateScenario FailureClass = "DUPLICATE_SCENARIO"

	// StackUnderflow marks a stack operation applied to an empty stack.
	StackUnderflow FailureClass = "STACK_UNDERFLOW"

	CLIUsage      FailureClass = "CLI_USAGE"
	InternalIO    FailureClass = "INTERNAL_IO"
	InternalError FailureClass = "INTERNAL_ERROR"
)

// ExitCode returns the process exit code associated with this failure class
// when it is the reason a run terminates.
func (fc FailureClass) ExitCode() int {
	switch fc {
	case CLIUsage:
		return 2
	case DuplicateScenario, InternalIO, InternalError:
		return 10
	default:
		return 1
	}
}

// Error is the structured error type for all cil-verify failures.
type Error struct {
	Class    FailureClass
	Scenario string
	Message  string
	Cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Scenario != "" {
		return fmt.Sprintf("cilerr: %s [%s]: %s", e.Class, e.Scenario, e.Message)
	}
	return fmt.Sprintf("cilerr: %s: %s", e.Class, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given class and message.
func New(class FailureClass, message string) *Error {
	return &Error{Class: class, Message: message}
}

// Newf creates a new Error with a formatted message.
func Newf(class FailureClass, format string, args ...any) *Error {
	return &Error{Class: class, Message: fmt.Sprintf(format, args...)}
}

// In creates a new Error attributed to a named scenario.
func In(class FailureClass, scenario, message string) *Error {
	return &Error{Class: class, Scenario: scenario, Message: message}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(class FailureClass, message string, cause error) *Error {
	return &Error{Class: class, Message: message, Cause: cause}
}

// IsClass reports whether err is (or wraps) a cilerr.Error of the given
// class.
func IsClass(err error, class FailureClass) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Class == class
}
