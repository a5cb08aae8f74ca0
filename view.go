package thin

// View borrows an erased allocation whose common slot is present. It is one
// machine word and freely copyable; all copies alias the same allocation and
// must not outlive its owner.
type View[C any] struct {
	raw Raw
}

// Common returns a typed pointer to the common data region. No dispatch
// call is involved, this is a pure offset computation.
func (v View[C]) Common() *C {
	return commonPtr[C](v.raw.base)
}

// SplitCommon splits the borrow into a view of the erased rest of the
// allocation and a typed pointer to the common data. The two cover disjoint
// byte ranges of the same buffer: mutations through one are never visible
// through the other, and dispatch through the returned view cannot reach
// the common region.
func (v View[C]) SplitCommon() (ViewWithoutCommon[C], *C) {
	return ViewWithoutCommon[C]{raw: v.raw}, commonPtr[C](v.raw.base)
}

// WithoutCommon weakens the view, giving up access to the common region.
func (v View[C]) WithoutCommon() ViewWithoutCommon[C] {
	return ViewWithoutCommon[C]{raw: v.raw}
}

// AsRaw exposes the layout-only representation without consuming anything;
// the view stays valid.
func (v View[C]) AsRaw() Raw {
	return v.raw
}

// ViewFromRaw reinterprets a raw allocation as a borrowing view with common
// access. The common slot must hold a live C.
func ViewFromRaw[C any](raw Raw) View[C] {
	return View[C]{raw: raw}
}

// ViewWithoutCommon borrows an erased allocation without access to its
// common data, either because the data was taken out or because a sibling
// reference currently holds it via SplitCommon. Dispatch works as usual;
// the common region must not be touched through this view.
type ViewWithoutCommon[C any] struct {
	raw Raw
}

// Vtable returns the dispatch table header of the borrowed allocation.
// Generated forwarding glue recovers the concrete table from it via
// TableOf.
func (v ViewWithoutCommon[C]) Vtable() *Vtable {
	return v.raw.Vtable()
}

// Caps reports the capability set certified for the payload when its table
// was built.
func (v ViewWithoutCommon[C]) Caps() Capability {
	return v.raw.Caps()
}

// AsRaw exposes the layout-only representation without consuming anything.
func (v ViewWithoutCommon[C]) AsRaw() Raw {
	return v.raw
}

// ViewWithoutCommonFromRaw reinterprets a raw allocation as a borrowing
// view without common access.
func ViewWithoutCommonFromRaw[C any](raw Raw) ViewWithoutCommon[C] {
	return ViewWithoutCommon[C]{raw: raw}
}
