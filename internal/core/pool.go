package core

import (
	"reflect"
)

// Candidate is one test double available for injection.
//
// Candidates are supplied by the caller; the engine never creates or destroys
// them. A candidate may satisfy at most one slot per pass.
type Candidate struct {
	// Name is the binding name used to disambiguate when several candidates
	// share a type. Usually the fixture field name the double was declared on.
	Name string

	// Value is the double itself.
	Value any

	// Type is the runtime type of Value.
	Type reflect.Type

	consumed bool
	reserved bool
}

// Consumed reports whether a committed slot assignment used this candidate.
func (c *Candidate) Consumed() bool {
	return c.consumed
}

// Pool is an ordered set of candidates, deduplicated by identity.
type Pool struct {
	candidates []*Candidate
}

// NewPool creates an empty candidate pool.
func NewPool() *Pool {
	return &Pool{}
}

// Add appends an unnamed candidate. Adding the same instance twice is a no-op.
func (p *Pool) Add(value any) *Pool {
	return p.AddNamed("", value)
}

// AddNamed appends a candidate with a binding name for disambiguation.
// Adding the same instance twice is a no-op.
func (p *Pool) AddNamed(name string, value any) *Pool {
	if value == nil {
		return p
	}

	if p.contains(value) {
		return p
	}

	p.candidates = append(p.candidates, &Candidate{
		Name:  name,
		Value: value,
		Type:  reflect.TypeOf(value),
	})

	return p
}

// Candidates returns the pool's entries, in order of addition.
func (p *Pool) Candidates() []*Candidate {
	return p.candidates
}

// reset clears reservations left over from an abandoned plan, leaving
// committed consumption intact.
func (p *Pool) reset() {
	for _, c := range p.candidates {
		c.reserved = false
	}
}

// contains reports whether the same instance is already pooled.
// Identity is pointer identity for pointer-like values; other values are
// always treated as distinct, since doubles are almost always pointers and
// non-pointer values may not be comparable.
func (p *Pool) contains(value any) bool {
	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
	default:
		return false
	}

	for _, c := range p.candidates {
		cv := reflect.ValueOf(c.Value)
		if cv.Kind() == v.Kind() && cv.Pointer() == v.Pointer() {
			return true
		}
	}

	return false
}
