package abi

import "math"

// PointerSize is the width of a foreign pointer (wasm32).
const PointerSize = 4

const (
	MaxStringSize = 1 << 24 // 16 MB max text size
	MaxListLength = 1 << 20 // 1M max sequence elements
	MaxAlloc      = 1 << 30 // 1 GB max single allocation
)

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// IsPowerOfTwo reports whether align is a valid alignment.
func IsPowerOfTwo(align uint32) bool {
	return align != 0 && align&(align-1) == 0
}
