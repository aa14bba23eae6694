package core

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// TestReporter is the minimal interface mockwire needs from test frameworks.
// testing.T and testing.B both implement it.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// Option configures a single injection pass.
type Option func(*config)

// WithConstructors supplies candidate constructor functions for the target.
// Each must be a function returning the target type (by value or pointer),
// optionally with a trailing error result. Constructors are attempted
// most-parameters-first; the first one whose every parameter resolves
// unambiguously from the pool wins and preempts all setter and field
// injection. Zero-parameter constructors are never counted as constructor
// injection.
func WithConstructors(constructors ...any) Option {
	return func(cfg *config) {
		cfg.constructors = append(cfg.constructors, constructors...)
	}
}

// WithPolicy applies one policy to every slot in the pass.
func WithPolicy(policy Policy) Option {
	return WithPolicyFunc(FixedPolicy(policy))
}

// WithPolicyFunc supplies a per-slot policy lookup.
func WithPolicyFunc(lookup PolicyFunc) Option {
	return func(cfg *config) {
		cfg.policy = lookup
	}
}

// WithUnsafe permits injection into final instance slots, the default grant
// of the unsafe-injection switch. Shorthand for WithPolicy(PolicyFinal).
func WithUnsafe() Option {
	return WithPolicy(PolicyFinal)
}

// WithWriter swaps the field writer used to commit field-strategy slots.
func WithWriter(writer FieldWriter) Option {
	return func(cfg *config) {
		cfg.writer = writer
	}
}

// Inject runs one best-effort injection pass over target, wiring pool
// candidates into its slots. target must be a non-nil pointer to a struct.
//
// The pass resolves everything into a plan before committing anything, then
// commits sequentially. Unresolved slots are skipped, not errors; the Report
// says which and why. A fatal error (an unsupported privileged write, a
// broken constructor) aborts the remaining commits and is returned alongside
// the partial report. Committed slots are never rolled back.
//
// Injection into a static slot mutates storage shared beyond the target for
// the rest of the process; restoring it afterwards is the caller's job.
func Inject(target any, pool *Pool, opts ...Option) (*Report, error) {
	cfg := newConfig(opts)

	targetValue := reflect.ValueOf(target)
	if target == nil || targetValue.Kind() != reflect.Pointer || targetValue.IsNil() ||
		targetValue.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w, got %T", ErrInvalidTarget, target)
	}

	// Reservations are pass-local; consumption marks survive in the pool.
	defer pool.reset()

	report, done, err := tryConstructors(targetValue, pool, cfg)
	if err != nil || done {
		return report, err
	}

	plan := buildPlan(targetValue, CatalogOf(targetValue.Elem().Type()), pool, cfg)

	return commitPlan(target, plan, cfg.writer)
}

// MustInject is Inject for test setup: fatal errors fail the test via t.
func MustInject(t TestReporter, target any, pool *Pool, opts ...Option) *Report {
	t.Helper()

	report, err := Inject(target, pool, opts...)
	if err != nil {
		t.Fatalf("mockwire: injection setup failed: %v", err)
	}

	return report
}

// unexported types.

type config struct {
	policy       PolicyFunc
	writer       FieldWriter
	constructors []any
}

func newConfig(opts []Option) *config {
	cfg := &config{
		policy: FixedPolicy(PolicyNone),
		writer: NewUnsafeWriter(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// commitPlan executes a fully built plan in slot order. Skips pass through to
// the report; pending entries are written. The first fatal error stops the
// commit phase, returning the partial report with it.
func commitPlan(target any, plan []planEntry, writer FieldWriter) (*Report, error) {
	report := &Report{}

	for _, entry := range plan {
		if !entry.pending {
			report.Outcomes = append(report.Outcomes, entry.outcome)

			continue
		}

		candidate := entry.outcome.Candidate

		switch entry.outcome.Strategy {
		case StrategySetter:
			entry.setter.Call([]reflect.Value{reflect.ValueOf(candidate.Value)})
		case StrategyField:
			if !writer.Supports(entry.outcome.Slot) {
				return report, CapabilityError{Slot: entry.outcome.Slot, Writer: fmt.Sprintf("%T", writer)}
			}

			if err := writer.Write(target, entry.outcome.Slot, candidate.Value); err != nil {
				return report, err
			}
		case StrategyConstructor:
			// Constructor commits happen in tryConstructors, never here.
		}

		candidate.consumed = true
		candidate.reserved = false
		entry.outcome.Committed = true
		report.Outcomes = append(report.Outcomes, entry.outcome)
	}

	return report, nil
}

// tryConstructors attempts constructor injection. It returns done == true when
// a constructor committed, in which case the pass is over: constructor
// injection strictly preempts setter and field injection.
func tryConstructors(target reflect.Value, pool *Pool, cfg *config) (*Report, bool, error) {
	constructors := make([]reflect.Value, 0, len(cfg.constructors))

	for _, ctor := range cfg.constructors {
		fn := reflect.ValueOf(ctor)
		if err := validateConstructor(fn, target.Elem().Type()); err != nil {
			return nil, false, err
		}

		constructors = append(constructors, fn)
	}

	// Most parameters first; the sort is stable so ties keep argument order,
	// which makes "more than one fully resolves" deterministic rather than an
	// error.
	slices.SortStableFunc(constructors, func(a, b reflect.Value) int {
		return b.Type().NumIn() - a.Type().NumIn()
	})

	for _, fn := range constructors {
		if fn.Type().NumIn() == 0 {
			continue
		}

		report, ok, err := callConstructor(target, fn, pool)
		if err != nil {
			return report, false, err
		}

		if ok {
			return report, true, nil
		}
	}

	return nil, false, nil
}

// callConstructor resolves every parameter by type only (parameter names are
// not available through reflection) and, if all resolve unambiguously, invokes
// the constructor and assigns the result through the target pointer.
func callConstructor(target reflect.Value, fn reflect.Value, pool *Pool) (*Report, bool, error) {
	fnType := fn.Type()
	picked := make([]*Candidate, 0, fnType.NumIn())

	release := func() {
		for _, c := range picked {
			c.reserved = false
		}
	}

	for i := range fnType.NumIn() {
		res := resolve(pool, fnType.In(i), "")
		if res.candidate == nil {
			release()

			return nil, false, nil
		}

		res.candidate.reserved = true
		picked = append(picked, res.candidate)
	}

	args := make([]reflect.Value, len(picked))
	for i, c := range picked {
		args[i] = reflect.ValueOf(c.Value)
	}

	results := fn.Call(args)

	if last := fnType.NumOut() - 1; last > 0 && fnType.Out(last) == errorType {
		if errValue := results[last]; !errValue.IsNil() {
			release()

			return nil, false, fmt.Errorf("%w: %v", ErrConstructorFailed, errValue.Interface())
		}
	}

	constructed := results[0]
	if constructed.Kind() == reflect.Pointer {
		if constructed.IsNil() {
			release()

			return nil, false, fmt.Errorf("%w: returned nil", ErrConstructorFailed)
		}

		constructed = constructed.Elem()
	}

	target.Elem().Set(constructed)

	report := &Report{}

	for i, c := range picked {
		c.consumed = true
		c.reserved = false

		report.Outcomes = append(report.Outcomes, SlotOutcome{
			Slot:      Slot{Name: "arg" + strconv.Itoa(i), Type: fnType.In(i)},
			Candidate: c,
			Strategy:  StrategyConstructor,
			Committed: true,
		})
	}

	return report, true, nil
}

// validateConstructor checks a constructor's shape up front so a broken one
// fails the pass instead of being silently skipped.
func validateConstructor(fn reflect.Value, targetType reflect.Type) error {
	if fn.Kind() != reflect.Func || fn.IsNil() {
		return fmt.Errorf("%w, got %s", ErrBadConstructor, fn.Kind())
	}

	fnType := fn.Type()
	if fnType.NumOut() == 0 {
		return fmt.Errorf("%w: no results", ErrBadConstructor)
	}

	out := fnType.Out(0)
	if out != targetType && !(out.Kind() == reflect.Pointer && out.Elem() == targetType) {
		return fmt.Errorf("%w: returns %s, target is %s", ErrBadConstructor, out, targetType)
	}

	return nil
}

// unexported variables.

//nolint:gochecknoglobals // Canonical reflect.Type for error, computed once.
var errorType = reflect.TypeOf((*error)(nil)).Elem()
