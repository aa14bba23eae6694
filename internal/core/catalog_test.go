//nolint:testpackage // Tests internal catalog construction
package core

import (
	"reflect"
	"sync"
	"testing"

	. "github.com/onsi/gomega"
)

type catalogBase struct {
	engine *Computer
	Cache  *Computer
}

type catalogTarget struct {
	catalogBase

	computer *Computer
	scratch  string `wire:"-"`
	Display  *Computer
}

// TestCatalogOf_MostDerivedFirst proves the target's own fields come before
// embedded ("ancestor") fields, and depths reflect embedding levels.
func TestCatalogOf_MostDerivedFirst(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	slots := CatalogOf(reflect.TypeOf(catalogTarget{}))

	names := make([]string, 0, len(slots))
	for _, s := range slots {
		names = append(names, s.Name)
	}

	g.Expect(names).To(Equal([]string{"computer", "Display", "engine", "Cache"}))
	g.Expect(slots[0].Depth).To(Equal(0))
	g.Expect(slots[2].Depth).To(Equal(1), "embedded fields sit one level deeper")
}

// TestCatalogOf_ExcludesTaggedFields proves wire:"-" fields are not slots.
func TestCatalogOf_ExcludesTaggedFields(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	slots := CatalogOf(reflect.TypeOf(catalogTarget{}))

	for _, s := range slots {
		g.Expect(s.Name).NotTo(Equal("scratch"))
	}
}

// TestCatalogOf_FinalTag proves wire:"final" marks the slot final.
func TestCatalogOf_FinalTag(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	slots := CatalogOf(reflect.TypeOf(cachedCalculator{}))

	g.Expect(slots).To(HaveLen(1))
	g.Expect(slots[0].Final).To(BeTrue())
	g.Expect(slots[0].Static).To(BeFalse())
}

// TestCatalogOf_PointerEmbedIsStatic proves slots reached through an embedded
// pointer are static: their storage lives outside the target instance.
func TestCatalogOf_PointerEmbedIsStatic(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	slots := CatalogOf(reflect.TypeOf(batchCalculator{}))

	g.Expect(slots).To(HaveLen(2))

	g.Expect(slots[0].Name).To(Equal("clock"))
	g.Expect(slots[0].Static).To(BeTrue())
	g.Expect(slots[0].Final).To(BeFalse())

	g.Expect(slots[1].Name).To(Equal("ledger"))
	g.Expect(slots[1].Static).To(BeTrue())
	g.Expect(slots[1].Final).To(BeTrue(), "static and final combine")
}

// TestCatalogOf_ValueEmbedIsNotStatic proves value embeds stay instance
// storage.
func TestCatalogOf_ValueEmbedIsNotStatic(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	slots := CatalogOf(reflect.TypeOf(catalogTarget{}))

	for _, s := range slots {
		g.Expect(s.Static).To(BeFalse(), "slot %q", s.Name)
	}
}

// TestCatalogOf_CachesPerType proves repeated calls share one catalog.
func TestCatalogOf_CachesPerType(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	first := CatalogOf(reflect.TypeOf(catalogTarget{}))
	second := CatalogOf(reflect.TypeOf(catalogTarget{}))

	g.Expect(second).To(HaveLen(len(first)))
	g.Expect(&second[0]).To(BeIdenticalTo(&first[0]), "cache should hand out the same backing array")
}

// TestCatalogOf_ConcurrentFirstBuild proves racing first builds of the same
// type converge to equivalent catalogs.
func TestCatalogOf_ConcurrentFirstBuild(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	type freshType struct {
		computer *Computer
	}

	const goroutines = 32

	results := make([][]Slot, goroutines)

	var wg sync.WaitGroup

	wg.Add(goroutines)

	for i := range goroutines {
		go func(idx int) {
			defer wg.Done()

			results[idx] = CatalogOf(reflect.TypeOf(freshType{}))
		}(i)
	}

	wg.Wait()

	for _, slots := range results {
		g.Expect(slots).To(HaveLen(1))
		g.Expect(slots[0].Name).To(Equal("computer"))
	}
}

// TestCatalogOf_NonStruct returns no slots for non-struct types.
func TestCatalogOf_NonStruct(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	g.Expect(CatalogOf(reflect.TypeOf(0))).To(BeEmpty())
}
