package thin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRawRoundTrip(t *testing.T) {
	table := NewVtable[string, uint32](0)

	box := New(&table, uint32(2), "hello")
	box = BoxFromRaw[string](box.IntoRaw())
	require.Equal(t, "hello", *box.View().Common())

	withoutCommon, common := box.TakeCommon()
	require.Equal(t, "hello", common)

	withoutCommon = BoxWithoutCommonFromRaw[string](withoutCommon.IntoRaw())

	view := withoutCommon.View()
	view = ViewWithoutCommonFromRaw[string](view.AsRaw())
	require.Equal(t, Capability(0), view.Caps())

	box = withoutCommon.PutCommon("world")

	full := box.View()
	full = ViewFromRaw[string](full.AsRaw())
	require.Equal(t, "world", *full.Common())

	box.Free()
}

func TestTakePutCommon(t *testing.T) {
	table := NewVtable[string, uint32](0)
	box := New(&table, uint32(2), "hello")

	withoutCommon, common := box.TakeCommon()
	require.Equal(t, "hello", common)

	box = withoutCommon.PutCommon("world")
	require.Equal(t, "world", *box.View().Common())

	box.Free()
}

type countedValue struct {
	disposed *int
	value    uint32
}

func (c *countedValue) Dispose() {
	*c.disposed++
}

func TestIntoInnerMovesOwnershipOut(t *testing.T) {
	disposed := 0

	table := NewVtable[struct{}, countedValue](0)
	box := NewWithoutCommon(&table, countedValue{disposed: &disposed, value: 42})

	raw := box.IntoRaw()
	value := IntoInner[struct{}, countedValue](raw)

	require.Equal(t, uint32(42), value.value)

	// ownership moved to the caller, the dispose hook must not have run
	require.Zero(t, disposed)

	// the allocation itself is gone
	require.Panics(t, func() {
		raw.Vtable()
	})
}

func TestUneraseSeesLivePayload(t *testing.T) {
	table := NewVtable[bool, uint32](0)
	box := New(&table, uint32(2), false)
	raw := box.View().AsRaw()

	payload := Unerase[bool, uint32](raw)
	require.Equal(t, uint32(2), *payload)

	*payload = 3
	require.Equal(t, uint32(3), *Unerase[bool, uint32](raw))

	box.Free()
}
