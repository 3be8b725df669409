package fofio

import (
	"fmt"
	"unsafe"
)

// SwapWords reverses the byte order of every width-byte word in b, in place.
// len(b) must be a multiple of width.
func SwapWords(b []byte, width int) {
	if width <= 0 || len(b) % width != 0 {
		panic(fmt.Sprintf("Internal error: can't swap %d bytes as %d-byte " +
			"words.", len(b), width))
	}
	for i := 0; i < len(b); i += width {
		w := b[i: i+width]
		for j, k := 0, width - 1; j < k; j, k = j+1, k-1 {
			w[j], w[k] = w[k], w[j]
		}
	}
}

// Swap reverses the byte order of every width-byte word in x. width is the
// size of the scalars inside each element, so a [][3]float32 array is
// swapped with width 4, not 12.
func Swap[T any](x []T, width int) {
	SwapWords(asBytes(x), width)
}

// asBytes returns the memory backing x as a []byte. Writing to the returned
// slice writes to x.
func asBytes[T any](x []T) []byte {
	if len(x) == 0 { return nil }
	var zero T
	size := int(unsafe.Sizeof(zero))
	return unsafe.Slice((*byte)(unsafe.Pointer(&x[0])), len(x)*size)
}
