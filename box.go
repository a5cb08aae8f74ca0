// Package thin stores a value that satisfies a polymorphic interface behind
// a single machine-word handle instead of the usual two-word interface
// value. The allocation behind the handle holds a dispatch table pointer,
// a piece of common data that is readable and writable without a dispatch
// call, and the type-erased payload, laid out back to back in one buffer.
//
// The dispatch tables themselves are emitted per interface by generated
// glue; this package provides the allocation layout, the table contract and
// the family of owning and borrowing handle types.
package thin

import (
	"fmt"
	"reflect"
)

// Box exclusively owns an erased allocation, including its common data.
// A Box is one machine word regardless of the size of the interface, the
// common data or the payload.
//
// Box handles are consumed by Free, TakeCommon and IntoRaw. Go cannot
// retire the other copies of the handle, so using any of them after a
// consuming operation is a contract violation; the paths that reach the
// table pointer turn it into a panic.
type Box[C any] struct {
	raw Raw
}

// checkTable pins a dispatch table against the payload and common types of
// the allocation it is about to serve. The release function's region offsets
// were baked for exactly this pair; running it against any other layout
// writes out of bounds. This runs once per construction, never per call.
func checkTable[C, T any](table *Vtable) {
	if table == nil {
		panic("thin: nil dispatch table")
	}

	if ty := reflect.TypeFor[T](); table.Type != ty {
		panic(fmt.Sprintf("thin: table built for %s used with payload type %s", table.Type, ty))
	}

	if ty := reflect.TypeFor[C](); table.Common != ty {
		panic(fmt.Sprintf("thin: table built for common type %s used with common type %s", table.Common, ty))
	}
}

// New allocates a single buffer holding the table pointer, the common data
// and the payload, and returns the owning handle. table must be the header
// of a dispatch table built via NewVtable[C, T] for exactly these two types;
// its capability certification already happened there.
func New[C, T any](table *Vtable, payload T, common C) Box[C] {
	checkTable[C, T](table)
	return Box[C]{raw: newRaw(table, payload, common)}
}

// NewWithoutCommon allocates a box that never carries common data. The slot
// is a zero-sized unit driven to the taken state from the start; the table
// must have been built via NewVtable[struct{}, T].
func NewWithoutCommon[T any](table *Vtable, payload T) BoxWithoutCommon[struct{}] {
	checkTable[struct{}, T](table)
	return BoxWithoutCommon[struct{}]{raw: newRaw(table, payload, struct{}{})}
}

// TakeCommon moves the common data out of the allocation. The returned box
// keeps the same table and payload, interface calls through it behave
// exactly as before. The original handle is consumed.
func (b Box[C]) TakeCommon() (BoxWithoutCommon[C], C) {
	common := TakeCommon[C](b.raw)
	return BoxWithoutCommon[C]{raw: b.raw}, common
}

// View borrows the allocation. The view must not outlive the box's
// ownership of the allocation.
func (b Box[C]) View() View[C] {
	return View[C]{raw: b.raw}
}

// Caps reports the capability set certified for the payload when its table
// was built.
func (b Box[C]) Caps() Capability {
	return b.raw.Caps()
}

// Require panics unless every capability in caps was certified for the
// payload at table construction. It returns the box unchanged so a transfer
// site can gate and hand off in one expression:
//
//	ch <- box.Require(thin.CapTransferable)
func (b Box[C]) Require(caps Capability) Box[C] {
	if have := b.raw.Caps(); !have.Has(caps) {
		panic(fmt.Sprintf("thin: allocation certifies %s, required %s", have, caps))
	}

	return b
}

// IntoRaw drops down to the layout-only representation, consuming the box.
// BoxFromRaw restores it losslessly.
func (b Box[C]) IntoRaw() Raw {
	return b.raw
}

// BoxFromRaw reinterprets a raw allocation as an owning box. The common slot
// must hold a live C.
func BoxFromRaw[C any](raw Raw) Box[C] {
	return Box[C]{raw: raw}
}

// Free releases the allocation: the common data is freed first, then the
// payload is released through its table. Every allocation is freed exactly
// once; a second Free panics.
func (b Box[C]) Free() {
	table := b.raw.Vtable()

	// release functions assume the common slot is already inert
	FreeCommon[C](b.raw)

	table.Release(b.raw)
}

// BoxWithoutCommon owns an erased allocation whose common slot is taken.
// The payload and its dispatch table are untouched; only common access is
// gone until PutCommon restores it.
type BoxWithoutCommon[C any] struct {
	raw Raw
}

// PutCommon writes new common data into the allocation, restoring a full
// box. This is the inverse of TakeCommon and consumes the handle.
func (b BoxWithoutCommon[C]) PutCommon(common C) Box[C] {
	PutCommon(b.raw, common)
	return Box[C]{raw: b.raw}
}

// View borrows the allocation.
func (b BoxWithoutCommon[C]) View() ViewWithoutCommon[C] {
	return ViewWithoutCommon[C]{raw: b.raw}
}

// Caps reports the capability set certified for the payload when its table
// was built.
func (b BoxWithoutCommon[C]) Caps() Capability {
	return b.raw.Caps()
}

// Require panics unless every capability in caps was certified for the
// payload at table construction.
func (b BoxWithoutCommon[C]) Require(caps Capability) BoxWithoutCommon[C] {
	if have := b.raw.Caps(); !have.Has(caps) {
		panic(fmt.Sprintf("thin: allocation certifies %s, required %s", have, caps))
	}

	return b
}

// IntoRaw drops down to the layout-only representation, consuming the box.
func (b BoxWithoutCommon[C]) IntoRaw() Raw {
	return b.raw
}

// BoxWithoutCommonFromRaw reinterprets a raw allocation as an owning box
// whose common slot is taken.
func BoxWithoutCommonFromRaw[C any](raw Raw) BoxWithoutCommon[C] {
	return BoxWithoutCommon[C]{raw: raw}
}

// Free releases the payload through its table. The common slot is already
// inert for this box flavor, so there is nothing else to do first.
func (b BoxWithoutCommon[C]) Free() {
	b.raw.release()
}
