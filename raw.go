package thin

import (
	"unsafe"
)

// Raw is the layout-only representation of an erased allocation: a single
// untyped pointer to the buffer base. It carries no information about the
// state of the common slot or the payload; callers track that through the
// wrapper types (Box vs BoxWithoutCommon, View vs ViewWithoutCommon) and
// must uphold the documented preconditions when working at this level.
type Raw struct {
	base unsafe.Pointer
}

// newRaw allocates the three-region buffer and writes table pointer, common
// data and payload.
func newRaw[C, T any](table *Vtable, payload T, common C) Raw {
	a := &alloc[C, T]{
		table:   table,
		common:  common,
		payload: payload,
	}

	return Raw{base: unsafe.Pointer(a)}
}

// Vtable returns the dispatch table header of the allocation. Panics if the
// allocation was already freed.
func (r Raw) Vtable() *Vtable {
	table := *(**Vtable)(r.base)
	if table == nil {
		panic("thin: use of freed allocation")
	}

	return table
}

// Caps reports the capability set certified for the allocation's payload.
func (r Raw) Caps() Capability {
	return r.Vtable().Caps
}

// markFreed records the terminal state of the allocation. Every later table
// lookup, and with it every dispatch and every free path, panics.
func (r Raw) markFreed() {
	*(**Vtable)(r.base) = nil
}

// release frees the payload through the table. The common slot must already
// be taken or freed.
func (r Raw) release() {
	r.Vtable().Release(r)
}

// TakeCommon moves the common data out of the allocation. The slot becomes
// inert until PutCommon writes a new value; the erased payload stays fully
// usable.
func TakeCommon[C any](r Raw) C {
	slot := commonPtr[C](r.base)
	common := *slot

	var zero C
	*slot = zero

	return common
}

// FreeCommon drops the common data in place, running its Dispose hook if it
// has one. Afterwards the slot is inert, as after TakeCommon.
func FreeCommon[C any](r Raw) {
	slot := commonPtr[C](r.base)

	if d, ok := any(slot).(Disposer); ok {
		d.Dispose()
	}

	var zero C
	*slot = zero
}

// PutCommon writes new common data into an allocation whose slot was
// previously taken or freed. Writing over a live value would leak its
// Dispose hook, so the slot must be inert.
func PutCommon[C any](r Raw, common C) {
	*commonPtr[C](r.base) = common
}

// Unerase recovers a typed pointer to the concrete payload. T must be the
// payload type the allocation was constructed with and C its common type;
// nothing can verify that here. Dispatch table functions are the intended
// callers, they know both types by construction.
func Unerase[C, T any](r Raw) *T {
	return payloadPtr[C, T](r.base)
}

// IntoInner moves the payload out of the allocation and frees the
// allocation. Ownership of the value moves to the caller, so its Dispose
// hook does not run. The common slot must already be taken or freed.
func IntoInner[C, T any](r Raw) T {
	slot := payloadPtr[C, T](r.base)
	payload := *slot

	var zero T
	*slot = zero

	r.markFreed()

	return payload
}
