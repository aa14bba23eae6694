package core

import (
	"errors"
	"fmt"
	"strconv"
)

// Strategy names how a slot's value was committed.
type Strategy string

// Commit strategies, in selection priority order.
const (
	StrategyConstructor Strategy = "constructor"
	StrategySetter      Strategy = "setter"
	StrategyField       Strategy = "field"
)

// SkipReason names why a slot was left untouched. Skips are expected,
// non-fatal outcomes; they never stop a pass.
type SkipReason string

// Skip reasons.
const (
	// SkipNoMatch means no pooled candidate was assignable to the slot.
	SkipNoMatch SkipReason = "no-match"

	// SkipAmbiguous means several candidates were assignable and name
	// disambiguation did not reduce them to one. Guessing among same-typed
	// doubles risks wiring the wrong collaborator, so the slot is skipped.
	SkipAmbiguous SkipReason = "ambiguous"

	// SkipPolicy means a candidate resolved but the active policy does not
	// permit writing the slot's modifier combination.
	SkipPolicy SkipReason = "policy-disallowed"
)

// SlotOutcome records the result for one slot (or constructor parameter).
type SlotOutcome struct {
	// Slot is the slot this outcome describes. For constructor parameters the
	// slot carries the parameter's type and a positional name like "arg0".
	Slot Slot

	// Candidate is the committed double, nil unless Committed.
	Candidate *Candidate

	// Strategy is how the value was committed, empty unless Committed.
	Strategy Strategy

	// Reason is why the slot was skipped, empty if Committed.
	Reason SkipReason

	// Committed reports whether a value was actually written.
	Committed bool
}

// Report enumerates the per-slot outcomes of one injection pass.
type Report struct {
	Outcomes []SlotOutcome
}

// Committed returns the outcomes that wrote a value.
func (r *Report) Committed() []SlotOutcome {
	var out []SlotOutcome

	for _, o := range r.Outcomes {
		if o.Committed {
			out = append(out, o)
		}
	}

	return out
}

// Skipped returns the outcomes that left their slot untouched.
func (r *Report) Skipped() []SlotOutcome {
	var out []SlotOutcome

	for _, o := range r.Outcomes {
		if !o.Committed {
			out = append(out, o)
		}
	}

	return out
}

// Sentinel errors.
var (
	// ErrInvalidTarget is returned when the injection target is not a non-nil
	// pointer to a struct.
	ErrInvalidTarget = errors.New("mockwire: target must be a non-nil pointer to a struct")

	// ErrBadConstructor is returned when a supplied constructor is not a
	// function returning at least one value.
	ErrBadConstructor = errors.New("mockwire: constructor must be a function returning the target type")

	// ErrConstructorFailed is returned when a chosen constructor returned a
	// non-nil error.
	ErrConstructorFailed = errors.New("mockwire: constructor returned an error")

	// ErrUnreachableSlot is returned when a slot's storage cannot be reached
	// because an embedded pointer on the way to it is nil.
	ErrUnreachableSlot = errors.New("mockwire: slot storage unreachable through nil embedded pointer")
)

// CapabilityError is the fatal error raised when the active field writer
// structurally cannot perform a requested privileged write. It aborts the
// remainder of the commit phase; prior commits in the pass are not rolled
// back.
type CapabilityError struct {
	// Slot is the slot the writer refused.
	Slot Slot

	// Writer names the refusing writer implementation.
	Writer string
}

// Error implements the error interface.
func (e CapabilityError) Error() string {
	return fmt.Sprintf("mockwire: writer %s does not support writing slot %s (static=%t, final=%t)",
		e.Writer, strconv.Quote(e.Slot.Name), e.Slot.Static, e.Slot.Final)
}
