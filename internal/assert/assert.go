package assert

import (
	"fmt"
)

// SameOffset verifies that a computed region offset matches the offset the
// compiler actually assigned.
func SameOffset(compiler, computed uintptr) {
	if compiler != computed {
		panic(fmt.Sprintf("layout offset mismatch: compiler placed field at %d, computed %d", compiler, computed))
	}
}

// IsPowerOfTwo verifies that an alignment value is a power of two.
func IsPowerOfTwo(n uintptr) {
	if n == 0 || n&(n-1) != 0 {
		panic(fmt.Sprintf("expected power of two alignment, got %d", n))
	}
}

// IsAligned verifies that offset is a multiple of alignment.
func IsAligned(offset, alignment uintptr) {
	if alignment == 0 || offset%alignment != 0 {
		panic(fmt.Sprintf("offset %d is not aligned to %d", offset, alignment))
	}
}
