// Package core provides the internal implementation of mockwire's
// injection engine: the field catalog, candidate pool, resolver,
// strategy selection, and privileged field writers.
package core

import (
	"reflect"
	"strings"
	"sync"
)

// Slot describes one injectable field of a target type.
//
// Slots are immutable snapshots built once per type. A slot declared on the
// target struct itself has Depth 0; slots declared on embedded ("ancestor")
// structs have a Depth equal to their embedding level.
type Slot struct {
	// Name is the declared field name.
	Name string

	// Type is the declared field type.
	Type reflect.Type

	// Final reports whether the field is tagged `wire:"final"`, declaring it
	// immutable after construction. Writing a final slot requires a policy
	// that allows it.
	Final bool

	// Static reports whether the slot's storage lives outside the target
	// instance, reached through an embedded pointer. When that pointer aliases
	// a shared value (the usual reason to embed a pointer), a write to the
	// slot is visible to every other holder for the rest of the process.
	Static bool

	// Depth is the embedding level the field was declared at.
	Depth int

	// path is the field index chain from the root struct to the field.
	path []int
}

// CatalogOf returns the injectable slots of a struct type, most-derived first:
// the type's own fields come before fields of embedded structs, recursively.
//
// Unexported fields are included. Embedded struct fields themselves are walked
// rather than treated as slots. Fields tagged `wire:"-"` are excluded.
//
// Results are cached per type for the lifetime of the process; the returned
// slice is shared and must not be modified.
func CatalogOf(t reflect.Type) []Slot {
	if cached, ok := catalogCache.Load(t); ok {
		return cached.([]Slot) //nolint:forcetypeassert // cache only holds []Slot
	}

	slots := buildCatalog(t, 0, false, nil)

	// A concurrent first build of the same type stores an equivalent value, so
	// last-writer-wins is fine here.
	catalogCache.Store(t, slots)

	return slots
}

// unexported variables.

//nolint:gochecknoglobals // Process-wide catalog cache; type catalogs never change.
var catalogCache sync.Map // reflect.Type -> []Slot

// buildCatalog walks a struct type and its embedded structs, collecting slots.
// viaPointer is true once the walk has crossed an embedded pointer, meaning the
// remaining storage is outside the root instance.
func buildCatalog(t reflect.Type, depth int, viaPointer bool, prefix []int) []Slot {
	if t.Kind() != reflect.Struct {
		return nil
	}

	var slots []Slot

	var embeds []reflect.StructField

	// Own fields first, so more-derived slots win name collisions downstream.
	for i := range t.NumField() {
		field := t.Field(i)

		if isEmbeddedStruct(field) {
			embeds = append(embeds, field)

			continue
		}

		if tagExcludes(field) {
			continue
		}

		path := make([]int, 0, len(prefix)+1)
		path = append(path, prefix...)
		path = append(path, i)

		slots = append(slots, Slot{
			Name:   field.Name,
			Type:   field.Type,
			Final:  tagFinal(field),
			Static: viaPointer,
			Depth:  depth,
			path:   path,
		})
	}

	for _, field := range embeds {
		embedType := field.Type
		crossedPointer := viaPointer

		if embedType.Kind() == reflect.Pointer {
			embedType = embedType.Elem()
			crossedPointer = true
		}

		path := make([]int, 0, len(prefix)+1)
		path = append(path, prefix...)
		path = append(path, field.Index[0])

		slots = append(slots, buildCatalog(embedType, depth+1, crossedPointer, path)...)
	}

	return slots
}

// isEmbeddedStruct reports whether the field is an anonymous struct or
// pointer-to-struct to descend into.
func isEmbeddedStruct(field reflect.StructField) bool {
	if !field.Anonymous {
		return false
	}

	t := field.Type
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Kind() == reflect.Struct
}

// tagExcludes reports whether the field opted out of injection via `wire:"-"`.
func tagExcludes(field reflect.StructField) bool {
	return field.Tag.Get("wire") == "-"
}

// tagFinal reports whether the field's wire tag carries the "final" option.
func tagFinal(field reflect.StructField) bool {
	for opt := range strings.SplitSeq(field.Tag.Get("wire"), ",") {
		if strings.TrimSpace(opt) == "final" {
			return true
		}
	}

	return false
}
