// Package mockwire resolves test doubles into an object under test.
//
// Given a target instance and a pool of doubles, an injection pass decides
// which slots (constructor parameters, setters, fields) receive which double,
// preferring constructor injection, then setters, then direct field writes.
// Slots that cannot be resolved are skipped, not errors; the returned Report
// says what happened to every slot.
//
// Fields tagged `wire:"final"` and fields reached through embedded pointers
// ("static" slots, whose storage is shared beyond the instance) are only
// written when the pass's Policy allows it. A static write is visible to every
// other holder of the shared storage for the rest of the process, and mockwire
// never puts the original value back; resetting it is the caller's job.
//
// This is the public API entry point. Implementation lives in internal/core.
package mockwire

import (
	"reflect"

	"github.com/toejough/mockwire/internal/core"
)

// Candidate is one test double available for injection.
type Candidate = core.Candidate

// CapabilityError is the fatal error raised when the active field writer
// structurally cannot perform a requested privileged write.
type CapabilityError = core.CapabilityError

// FieldWriter is the privileged-write capability used to commit field values.
type FieldWriter = core.FieldWriter

// Option configures a single injection pass.
type Option = core.Option

// Policy controls which modifier combinations may receive a privileged write.
type Policy = core.Policy

// PolicyFunc looks up the policy to apply to a given slot.
type PolicyFunc = core.PolicyFunc

// Pool is an ordered set of candidates, deduplicated by identity.
type Pool = core.Pool

// Report enumerates the per-slot outcomes of one injection pass.
type Report = core.Report

// SkipReason names why a slot was left untouched.
type SkipReason = core.SkipReason

// Slot describes one injectable field of a target type.
type Slot = core.Slot

// SlotOutcome records the result for one slot or constructor parameter.
type SlotOutcome = core.SlotOutcome

// Strategy names how a slot's value was committed.
type Strategy = core.Strategy

// TestReporter is the minimal interface mockwire needs from test frameworks.
type TestReporter = core.TestReporter

// Policy levels.
const (
	PolicyNone        = core.PolicyNone
	PolicyFinal       = core.PolicyFinal
	PolicyStatic      = core.PolicyStatic
	PolicyStaticFinal = core.PolicyStaticFinal
)

// Commit strategies, in selection priority order.
const (
	StrategyConstructor = core.StrategyConstructor
	StrategySetter      = core.StrategySetter
	StrategyField       = core.StrategyField
)

// Skip reasons.
const (
	SkipNoMatch   = core.SkipNoMatch
	SkipAmbiguous = core.SkipAmbiguous
	SkipPolicy    = core.SkipPolicy
)

// Sentinel errors re-exported from internal/core.
var (
	ErrInvalidTarget     = core.ErrInvalidTarget
	ErrBadConstructor    = core.ErrBadConstructor
	ErrConstructorFailed = core.ErrConstructorFailed
	ErrUnreachableSlot   = core.ErrUnreachableSlot
)

// CatalogOf returns the injectable slots of a struct type, most-derived
// first. Useful for writing PolicyFuncs and for introspection in tests.
func CatalogOf(t reflect.Type) []Slot {
	return core.CatalogOf(t)
}

// Inject runs one best-effort injection pass over target.
func Inject(target any, pool *Pool, opts ...Option) (*Report, error) {
	return core.Inject(target, pool, opts...)
}

// MustInject is Inject for test setup: fatal errors fail the test via t.
func MustInject(t TestReporter, target any, pool *Pool, opts ...Option) *Report {
	t.Helper()

	return core.MustInject(t, target, pool, opts...)
}

// NewPool creates an empty candidate pool.
func NewPool() *Pool {
	return core.NewPool()
}

// NewPortableWriter returns a writer that refuses static final slots.
func NewPortableWriter() FieldWriter {
	return core.NewPortableWriter()
}

// NewUnsafeWriter returns the default writer, supporting every modifier
// combination.
func NewUnsafeWriter() FieldWriter {
	return core.NewUnsafeWriter()
}

// FixedPolicy returns a PolicyFunc that applies the same policy to every slot.
func FixedPolicy(p Policy) PolicyFunc {
	return core.FixedPolicy(p)
}

// WithConstructors supplies candidate constructor functions for the target.
func WithConstructors(constructors ...any) Option {
	return core.WithConstructors(constructors...)
}

// WithPolicy applies one policy to every slot in the pass.
func WithPolicy(policy Policy) Option {
	return core.WithPolicy(policy)
}

// WithPolicyFunc supplies a per-slot policy lookup.
func WithPolicyFunc(lookup PolicyFunc) Option {
	return core.WithPolicyFunc(lookup)
}

// WithUnsafe permits injection into final instance slots.
func WithUnsafe() Option {
	return core.WithUnsafe()
}

// WithWriter swaps the field writer used to commit field-strategy slots.
func WithWriter(writer FieldWriter) Option {
	return core.WithWriter(writer)
}
