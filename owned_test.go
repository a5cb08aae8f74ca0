package thin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOwnedDispatchAndDirectAccess(t *testing.T) {
	disposed := 0
	table := counterVtableFor[counterValue]()

	owned := NewOwned(&table.Vtable, counterValue{value: 3, disposed: &disposed}, false)

	// erased dispatch goes through the view
	raw := owned.View().AsRaw()
	require.True(t, TableOf[counterVtable](raw).isEqual(raw, 3))
	TableOf[counterVtable](raw).setValue(raw, 8)

	// direct access skips the table entirely
	require.Equal(t, uint32(8), owned.Payload().value)
	owned.Payload().value = 11
	require.True(t, TableOf[counterVtable](raw).isEqual(raw, 11))

	*owned.Common() = true
	require.True(t, *owned.View().Common())
}

func TestOwnedIntoInner(t *testing.T) {
	disposed := 0
	table := counterVtableFor[counterValue]()

	owned := NewOwned(&table.Vtable, counterValue{value: 6, disposed: &disposed}, true)
	raw := owned.View().AsRaw()

	payload, common := owned.IntoInner()
	require.Equal(t, uint32(6), payload.value)
	require.True(t, common)
	require.Zero(t, disposed)

	// views taken before the move are dead now
	require.PanicsWithValue(t, "thin: use of freed allocation", func() {
		raw.Vtable()
	})
}
