package thin

import (
	"unsafe"
)

// alloc is the in-memory shape of an erased allocation: the dispatch table
// pointer, then the common data, then the payload. The field order is load
// bearing, the offset functions below recompute exactly this layout.
//
// Keeping the buffer as a regular typed struct means the garbage collector
// always sees the real pointer map of the payload, even while every handle
// to the allocation is an untyped one-word pointer.
type alloc[C, T any] struct {
	table   *Vtable
	common  C
	payload T
}

// alignUp rounds offset up to the next multiple of alignment. alignment must
// be a power of two.
func alignUp(offset, alignment uintptr) uintptr {
	return (offset + alignment - 1) &^ (alignment - 1)
}

// commonOffset computes the offset of the common data region: directly after
// the table pointer, rounded up to the alignment of C. The result does not
// depend on the payload type, which is what makes the common data reachable
// from a handle whose payload type is erased.
func commonOffset[C any]() uintptr {
	var c C
	return alignUp(unsafe.Sizeof(uintptr(0)), unsafe.Alignof(c))
}

// payloadOffset computes the offset of the payload region: directly after
// the common data, rounded up to the alignment of T.
//
// Offsets are recomputed on every call. The padding depends on the concrete
// common and payload types bound at the call site, so there is no single
// value that could be cached for an erased allocation.
func payloadOffset[C, T any]() uintptr {
	var c C
	var t T
	return alignUp(commonOffset[C]()+unsafe.Sizeof(c), unsafe.Alignof(t))
}

// commonPtr returns a typed pointer to the common data region of the
// allocation at base.
func commonPtr[C any](base unsafe.Pointer) *C {
	return (*C)(unsafe.Add(base, commonOffset[C]()))
}

// payloadPtr returns a typed pointer to the payload region. The byte ranges
// behind commonPtr and payloadPtr are disjoint, so both pointers may be live
// at the same time without aliasing each other.
func payloadPtr[C, T any](base unsafe.Pointer) *T {
	return (*T)(unsafe.Add(base, payloadOffset[C, T]()))
}
