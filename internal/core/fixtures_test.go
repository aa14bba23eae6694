package core

import "fmt"

// Shared fixture types for the engine tests. Computer stands in for any
// collaborator; the targets exercise the modifier combinations.

type Computer struct {
	ID string
}

// articleCalculator has a single private collaborator field.
type articleCalculator struct {
	computer *Computer
}

func newArticleCalculator(computer *Computer) *articleCalculator {
	return &articleCalculator{computer: computer}
}

type Printer struct {
	ID string
}

// reportBuilder has two differently-typed collaborators, for multi-parameter
// constructors (constructor matching is type-only).
type reportBuilder struct {
	computer *Computer
	printer  *Printer
}

func newReportBuilder(computer *Computer, printer *Printer) *reportBuilder {
	return &reportBuilder{computer: computer, printer: printer}
}

// dualCalculator has two same-typed collaborators, for consumption tests.
type dualCalculator struct {
	primary   *Computer
	secondary *Computer
}

// cachedCalculator declares its collaborator immutable after construction.
type cachedCalculator struct {
	computer *Computer `wire:"final"`
}

// sharedDeps is process-shared storage; targets embed it by pointer, making
// its fields static slots.
type sharedDeps struct {
	clock  *Computer
	ledger *Computer `wire:"final"`
}

type batchCalculator struct {
	*sharedDeps

	name string `wire:"-"`
}

// setterCalculator exposes a conventional setter.
type setterCalculator struct {
	computer  *Computer
	setCalled bool
}

func (s *setterCalculator) SetComputer(computer *Computer) {
	s.computer = computer
	s.setCalled = true
}

// fakeReporter records Fatalf calls for MustInject tests.
type fakeReporter struct {
	failed  bool
	message string
}

func (f *fakeReporter) Fatalf(format string, args ...any) {
	f.failed = true
	f.message = fmt.Sprintf(format, args...)
}

func (f *fakeReporter) Helper() {}
