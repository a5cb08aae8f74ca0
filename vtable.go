package thin

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/oliverbestmann/thin/internal/assert"
)

// Vtable is the header shared by every dispatch table. A generated table
// type embeds it as its first field:
//
//	type counterVtable struct {
//	    thin.Vtable
//	    isEqual func(thin.Raw, uint32) bool
//	}
//
// The erased allocation stores a pointer to this header. Because the header
// sits at offset zero of the concrete table, the core can reach the release
// function and the certified capabilities without knowing the table type,
// and TableOf can recover the concrete table with a single cast.
type Vtable struct {
	// Release destroys the erased payload of the given allocation and marks
	// it freed. It must be called at most once, and only after the common
	// slot has been taken or freed.
	Release func(Raw)

	// Caps is the capability set certified for the payload type when the
	// table was built. It always includes the minimum set declared by the
	// interface the table belongs to.
	Caps Capability

	// Type is the concrete payload type the table was built for.
	Type reflect.Type

	// Common is the common data type the table was built for. The region
	// offsets baked into Release depend on it just as much as on Type.
	Common reflect.Type
}

// NewVtable brands a dispatch table header for a payload of type T stored
// next to common data of type C. Each capability in caps is checked against
// T here, once; building a table that claims a capability the type does not
// certify panics.
//
// A table must exist exactly once per (interface, payload type, common type)
// combination. Generated builders keep a registry keyed by reflect.Type to
// uphold that.
func NewVtable[C, T any](caps Capability) Vtable {
	certify[T](caps)

	var a alloc[C, T]
	assert.IsPowerOfTwo(unsafe.Alignof(a.common))
	assert.IsPowerOfTwo(unsafe.Alignof(a.payload))
	assert.SameOffset(unsafe.Offsetof(a.common), commonOffset[C]())
	assert.SameOffset(unsafe.Offsetof(a.payload), payloadOffset[C, T]())
	assert.IsAligned(payloadOffset[C, T](), unsafe.Alignof(a.payload))

	return Vtable{
		Release: ReleaseFor[C, T](),
		Caps:    caps,
		Type:    reflect.TypeFor[T](),
		Common:  reflect.TypeFor[C](),
	}
}

// TableOf recovers the concrete dispatch table of the allocation behind raw.
// V must be the table type the allocation was constructed with, embedding
// Vtable as its first field.
func TableOf[V any](raw Raw) *V {
	return (*V)(unsafe.Pointer(raw.Vtable()))
}

// ValidateTable verifies that a generated dispatch table type embeds Vtable
// as its first field, which is the layout TableOf relies on:
//
//	var _ = thin.ValidateTable[counterVtable]()
//
// This turns a malformed table type into a startup failure instead of a
// corrupted cast later on.
func ValidateTable[V any]() struct{} {
	ty := reflect.TypeFor[V]()

	if ty.Kind() != reflect.Struct || ty.NumField() == 0 {
		panic(fmt.Sprintf("thin: dispatch table %s must be a struct embedding thin.Vtable", ty))
	}

	field := ty.Field(0)
	if !field.Anonymous || field.Type != reflect.TypeFor[Vtable]() {
		panic(fmt.Sprintf("thin: dispatch table %s must embed thin.Vtable as its first field", ty))
	}

	return struct{}{}
}

// Disposer is implemented by payload or common data types that need to run
// cleanup when their allocation is released. Dispose runs exactly once, from
// the release path of the owning wrapper.
type Disposer interface {
	Dispose()
}

// ReleaseFor builds the release function for a payload of type T stored next
// to common data of type C. The returned function unerases the payload, runs
// its Dispose hook if it has one, drops the payload's references and marks
// the allocation freed.
//
// It must only ever run against an allocation whose live payload really is a
// T. Nothing can check that at invocation time; the table construction is
// what guarantees it.
func ReleaseFor[C, T any]() func(Raw) {
	return func(raw Raw) {
		payload := Unerase[C, T](raw)

		if d, ok := any(payload).(Disposer); ok {
			d.Dispose()
		}

		var zero T
		*payload = zero

		raw.markFreed()
	}
}
