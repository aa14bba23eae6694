//nolint:testpackage // Tests internal write paths
package core

import (
	"reflect"
	"testing"

	. "github.com/onsi/gomega"
)

// TestUnsafeWriter_WritesUnexportedField proves the privileged path writes
// fields ordinary reflection refuses to set.
func TestUnsafeWriter_WritesUnexportedField(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	target := &articleCalculator{}
	slots := CatalogOf(reflect.TypeOf(*target))
	double := &Computer{ID: "injected"}

	writer := NewUnsafeWriter()

	g.Expect(writer.Write(target, slots[0], double)).To(Succeed())
	g.Expect(target.computer).To(BeIdenticalTo(double))
}

// TestUnsafeWriter_ReadsUnexportedField proves Read mirrors Write.
func TestUnsafeWriter_ReadsUnexportedField(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	double := &Computer{ID: "present"}
	target := &articleCalculator{computer: double}
	slots := CatalogOf(reflect.TypeOf(*target))

	got, err := NewUnsafeWriter().Read(target, slots[0])

	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(got).To(BeIdenticalTo(double))
}

// TestUnsafeWriter_WritesThroughEmbeddedPointer proves static slots are
// written in the shared storage, not a copy.
func TestUnsafeWriter_WritesThroughEmbeddedPointer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	shared := &sharedDeps{}
	target := &batchCalculator{sharedDeps: shared}
	slots := CatalogOf(reflect.TypeOf(*target))
	double := &Computer{ID: "shared-write"}

	g.Expect(NewUnsafeWriter().Write(target, slots[0], double)).To(Succeed())
	g.Expect(shared.clock).To(BeIdenticalTo(double))
}

// TestUnsafeWriter_NilEmbeddedPointer proves unreachable storage errors
// instead of panicking.
func TestUnsafeWriter_NilEmbeddedPointer(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	target := &batchCalculator{}
	slots := CatalogOf(reflect.TypeOf(*target))

	err := NewUnsafeWriter().Write(target, slots[0], &Computer{})

	g.Expect(err).To(MatchError(ErrUnreachableSlot))
}

// TestWriter_Supports covers the capability split between the writers.
func TestWriter_Supports(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	plain := Slot{Name: "plain"}
	final := Slot{Name: "final", Final: true}
	static := Slot{Name: "static", Static: true}
	staticFinal := Slot{Name: "staticFinal", Static: true, Final: true}

	unrestricted := NewUnsafeWriter()
	portable := NewPortableWriter()

	for _, slot := range []Slot{plain, final, static, staticFinal} {
		g.Expect(unrestricted.Supports(slot)).To(BeTrue(), "unsafe writer supports %s", slot.Name)
	}

	g.Expect(portable.Supports(plain)).To(BeTrue())
	g.Expect(portable.Supports(final)).To(BeTrue())
	g.Expect(portable.Supports(static)).To(BeTrue())
	g.Expect(portable.Supports(staticFinal)).To(BeFalse(), "portable writer draws the line at static final")
}
