package core

import (
	"fmt"
	"reflect"
	"unsafe"
)

// FieldWriter is the privileged-write capability the engine commits slot
// values through. Implementations differ in which modifier combinations they
// support; Supports must be checked before Write, and a Write into an
// unsupported slot is the caller's bug.
type FieldWriter interface {
	// Read returns the slot's current value on the target.
	Read(target any, slot Slot) (any, error)

	// Write assigns value into the slot on the target.
	Write(target any, slot Slot, value any) error

	// Supports reports whether this writer can write the slot at all.
	Supports(slot Slot) bool
}

// NewUnsafeWriter returns the default writer. It bypasses visibility
// enforcement with an unsafe re-address of the field, so it supports every
// modifier combination, including static final slots.
func NewUnsafeWriter() FieldWriter {
	return unsafeWriter{}
}

// NewPortableWriter returns a writer that refuses static final slots, the way
// the more conservative double back ends do. Everything else behaves like the
// unsafe writer.
func NewPortableWriter() FieldWriter {
	return portableWriter{}
}

// unexported types.

type unsafeWriter struct{}

func (unsafeWriter) Read(target any, slot Slot) (any, error) {
	return readSlot(target, slot)
}

func (unsafeWriter) Supports(Slot) bool {
	return true
}

func (unsafeWriter) Write(target any, slot Slot, value any) error {
	return writeSlot(target, slot, value)
}

type portableWriter struct{}

func (portableWriter) Read(target any, slot Slot) (any, error) {
	return readSlot(target, slot)
}

// Supports refuses static final slots: a write that both bypasses
// immutability and lands in storage shared beyond the target instance.
func (portableWriter) Supports(slot Slot) bool {
	return !(slot.Static && slot.Final)
}

func (portableWriter) Write(target any, slot Slot, value any) error {
	return writeSlot(target, slot, value)
}

// fieldValue walks the slot's index path from the target pointer to the field
// itself, dereferencing embedded pointers on the way. The result is
// addressable. Returns ErrUnreachableSlot if an embedded pointer is nil.
func fieldValue(target any, slot Slot) (reflect.Value, error) {
	v := reflect.ValueOf(target).Elem()

	for step, idx := range slot.path {
		if step > 0 && v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, fmt.Errorf("%w: slot %q", ErrUnreachableSlot, slot.Name)
			}

			v = v.Elem()
		}

		v = v.Field(idx)
	}

	return v, nil
}

func readSlot(target any, slot Slot) (any, error) {
	field, err := fieldValue(target, slot)
	if err != nil {
		return nil, err
	}

	if field.CanInterface() {
		return field.Interface(), nil
	}

	// Unexported field: re-address to strip the read restriction.
	return reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem().Interface(), nil
}

func writeSlot(target any, slot Slot, value any) error {
	field, err := fieldValue(target, slot)
	if err != nil {
		return err
	}

	if !field.CanSet() {
		// Unexported field: re-address to strip the write restriction.
		field = reflect.NewAt(field.Type(), unsafe.Pointer(field.UnsafeAddr())).Elem()
	}

	field.Set(reflect.ValueOf(value))

	return nil
}
