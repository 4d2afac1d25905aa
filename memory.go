package hermesabi

// Memory is the foreign linear memory ABI values live in.
// All multi-byte accessors are little-endian.
type Memory interface {
	Read(offset uint32, length uint32) ([]byte, error)
	Write(offset uint32, data []byte) error
	ReadU8(offset uint32) (uint8, error)
	ReadU16(offset uint32) (uint16, error)
	ReadU32(offset uint32) (uint32, error)
	ReadU64(offset uint32) (uint64, error)
	WriteU8(offset uint32, value uint8) error
	WriteU16(offset uint32, value uint16) error
	WriteU32(offset uint32, value uint32) error
	WriteU64(offset uint32, value uint64) error
}

// MemorySizer provides the current size of the linear memory in bytes.
type MemorySizer interface {
	Size() uint32
}

// Grower is implemented by memories that can be extended at runtime.
// Grow adds at least delta bytes and returns the new size.
type Grower interface {
	MemorySizer
	Grow(delta uint32) (uint32, error)
}

// Allocator allocates memory in the foreign linear memory.
// Alloc never returns 0 on success; 0 is the null pointer.
type Allocator interface {
	Alloc(size, align uint32) (uint32, error)
	Free(ptr, size, align uint32)
}

// AllocationSizer reports the size of a live allocation. Decoders use it
// to check declared array counts against the backing address buffer.
type AllocationSizer interface {
	AllocationSize(ptr uint32) (uint32, bool)
}
