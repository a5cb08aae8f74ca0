package thin

import (
	"fmt"
	"reflect"
	"strings"
)

// Capability describes the cross-boundary guarantees a payload type has been
// certified to uphold. The certification runs exactly once, when a dispatch
// table is built for the concrete type, and is never rechecked at call time.
type Capability uint8

const (
	// CapTransferable certifies that the payload may be handed to another
	// goroutine.
	CapTransferable Capability = 1 << iota

	// CapShareable certifies that the payload tolerates concurrent readers.
	CapShareable
)

// Has reports whether every capability in other is present in c.
func (c Capability) Has(other Capability) bool {
	return c&other == other
}

func (c Capability) String() string {
	if c == 0 {
		return "none"
	}

	var names []string

	if c.Has(CapTransferable) {
		names = append(names, "transferable")
	}

	if c.Has(CapShareable) {
		names = append(names, "shareable")
	}

	return strings.Join(names, "|")
}

// Transferable is embedded by a payload type to certify that its values may
// be handed to another goroutine:
//
//	type Counter struct {
//	    thin.Transferable
//	    Value uint32
//	}
//
// A table claiming CapTransferable can only be built for types carrying this
// marker.
type Transferable struct{}

func (Transferable) CertifyTransferable() {}

// Shareable is embedded by a payload type to certify that its values
// tolerate concurrent readers.
type Shareable struct{}

func (Shareable) CertifyShareable() {}

type isTransferable interface{ CertifyTransferable() }

type isShareable interface{ CertifyShareable() }

type capabilityCheck struct {
	cap   Capability
	iface reflect.Type
}

var capabilityChecks = []capabilityCheck{
	{cap: CapTransferable, iface: reflect.TypeFor[isTransferable]()},
	{cap: CapShareable, iface: reflect.TypeFor[isShareable]()},
}

// certify verifies that the type T carries the marker for every capability
// in caps. Panics when a claimed capability is not certified by the type.
func certify[T any](caps Capability) {
	ty := reflect.TypeFor[T]()

	for _, check := range capabilityChecks {
		if !caps.Has(check.cap) {
			continue
		}

		if ty.Implements(check.iface) {
			continue
		}

		if ty.Kind() != reflect.Pointer && reflect.PointerTo(ty).Implements(check.iface) {
			continue
		}

		panic(fmt.Sprintf("thin: type %s does not certify capability %s", ty, check.cap))
	}
}
