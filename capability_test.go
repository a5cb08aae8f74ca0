package thin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type transferOnlyPayload struct {
	Transferable
	value int
}

type fullySharedPayload struct {
	Transferable
	Shareable
	value int
}

type uncertifiedPayload struct {
	value int
}

func TestCapabilityHas(t *testing.T) {
	both := CapTransferable | CapShareable

	require.True(t, both.Has(CapTransferable))
	require.True(t, both.Has(CapShareable))
	require.True(t, both.Has(both))
	require.True(t, CapTransferable.Has(0))

	require.False(t, CapTransferable.Has(CapShareable))
	require.False(t, Capability(0).Has(CapTransferable))
}

func TestCapabilityString(t *testing.T) {
	require.Equal(t, "none", Capability(0).String())
	require.Equal(t, "transferable", CapTransferable.String())
	require.Equal(t, "shareable", CapShareable.String())
	require.Equal(t, "transferable|shareable", (CapTransferable | CapShareable).String())
}

func TestCertificationAtTableConstruction(t *testing.T) {
	// certified claims are accepted
	NewVtable[bool, transferOnlyPayload](CapTransferable)
	NewVtable[bool, fullySharedPayload](CapTransferable | CapShareable)

	// uncertified claims are rejected when the table is built, not later
	require.Panics(t, func() {
		NewVtable[bool, uncertifiedPayload](CapTransferable)
	})
	require.Panics(t, func() {
		NewVtable[bool, transferOnlyPayload](CapShareable)
	})

	// a table without claims works for any type
	NewVtable[bool, uncertifiedPayload](0)
}

func TestRequire(t *testing.T) {
	table := NewVtable[bool, fullySharedPayload](CapTransferable | CapShareable)
	box := New(&table, fullySharedPayload{value: 1}, false)

	box = box.Require(CapTransferable).Require(CapShareable)
	require.Equal(t, CapTransferable|CapShareable, box.Caps())

	weaker := NewVtable[bool, transferOnlyPayload](CapTransferable)
	other := New(&weaker, transferOnlyPayload{value: 1}, false)

	require.Panics(t, func() {
		other.Require(CapShareable)
	})

	box.Free()
	other.Free()
}
