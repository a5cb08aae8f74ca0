package thin

import (
	"unsafe"
)

// Owned keeps the payload inline and typed instead of erasing it behind a
// heap handle, while exposing the same view types by reinterpreting its own
// address. Owned never deallocates the payload; the surrounding scope owns
// the value's lifetime, and IntoInner moves payload and common data back
// out.
//
// The views returned by View point into the Owned value itself, so an Owned
// must not be copied. The embedded noCopy marker makes go vet flag that.
type Owned[C, T any] struct {
	_     noCopy
	inner alloc[C, T]
}

// NewOwned builds an owned wrapper around a typed payload and its common
// data. table must be the header of a dispatch table built via
// NewVtable[C, T] for exactly these two types.
func NewOwned[C, T any](table *Vtable, payload T, common C) *Owned[C, T] {
	checkTable[C, T](table)

	o := &Owned[C, T]{}
	o.inner.table = table
	o.inner.common = common
	o.inner.payload = payload

	return o
}

// View borrows the inline allocation as an erased view with common access.
func (o *Owned[C, T]) View() View[C] {
	return View[C]{raw: Raw{base: unsafe.Pointer(&o.inner)}}
}

// Payload returns the typed payload. The type was never erased for an
// Owned, so no dispatch is needed to reach it.
func (o *Owned[C, T]) Payload() *T {
	return &o.inner.payload
}

// Common returns the typed common data.
func (o *Owned[C, T]) Common() *C {
	return &o.inner.common
}

// IntoInner moves the payload and the common data out of the wrapper. The
// Owned is dead afterwards; any view taken earlier panics on dispatch.
func (o *Owned[C, T]) IntoInner() (T, C) {
	payload := o.inner.payload
	common := o.inner.common

	var zero alloc[C, T]
	o.inner = zero

	return payload, common
}
