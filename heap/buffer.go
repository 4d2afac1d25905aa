package heap

import (
	"encoding/binary"
	"sync"

	"github.com/wippyai/hermes-abi/errors"
)

// Buffer is a growable little-endian linear memory backed by a byte slice.
type Buffer struct {
	data []byte
	max  uint32
	mu   sync.RWMutex
}

// NewBuffer creates a zeroed buffer of size bytes that may grow up to max.
// A zero max means no limit beyond the 32-bit address space.
func NewBuffer(size, max uint32) *Buffer {
	if max == 0 {
		max = ^uint32(0)
	}
	return &Buffer{data: make([]byte, size), max: max}
}

func (b *Buffer) bounds(offset, length uint32) error {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(b.data)) {
		return errors.OutOfBounds(errors.PhaseRuntime, nil, offset, length, nil)
	}
	return nil
}

// Read returns length bytes at offset. The slice aliases the buffer and is
// only valid until the next Write or Grow.
func (b *Buffer) Read(offset, length uint32) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.bounds(offset, length); err != nil {
		return nil, err
	}
	return b.data[offset : offset+length], nil
}

func (b *Buffer) Write(offset uint32, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.bounds(offset, uint32(len(data))); err != nil {
		return err
	}
	copy(b.data[offset:], data)
	return nil
}

func (b *Buffer) ReadU8(offset uint32) (uint8, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.bounds(offset, 1); err != nil {
		return 0, err
	}
	return b.data[offset], nil
}

func (b *Buffer) ReadU16(offset uint32) (uint16, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.bounds(offset, 2); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b.data[offset:]), nil
}

func (b *Buffer) ReadU32(offset uint32) (uint32, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.bounds(offset, 4); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b.data[offset:]), nil
}

func (b *Buffer) ReadU64(offset uint32) (uint64, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if err := b.bounds(offset, 8); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b.data[offset:]), nil
}

func (b *Buffer) WriteU8(offset uint32, value uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.bounds(offset, 1); err != nil {
		return err
	}
	b.data[offset] = value
	return nil
}

func (b *Buffer) WriteU16(offset uint32, value uint16) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.bounds(offset, 2); err != nil {
		return err
	}
	binary.LittleEndian.PutUint16(b.data[offset:], value)
	return nil
}

func (b *Buffer) WriteU32(offset uint32, value uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.bounds(offset, 4); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(b.data[offset:], value)
	return nil
}

func (b *Buffer) WriteU64(offset uint32, value uint64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.bounds(offset, 8); err != nil {
		return err
	}
	binary.LittleEndian.PutUint64(b.data[offset:], value)
	return nil
}

// Size returns the current size in bytes.
func (b *Buffer) Size() uint32 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return uint32(len(b.data))
}

// Grow extends the buffer by delta zeroed bytes.
func (b *Buffer) Grow(delta uint32) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	size := uint64(len(b.data)) + uint64(delta)
	if size > uint64(b.max) {
		return uint32(len(b.data)), errors.Overflow(errors.PhaseRuntime, nil, size, b.max)
	}
	b.data = append(b.data, make([]byte, delta)...)
	return uint32(size), nil
}

// Bytes returns a copy of the whole buffer.
func (b *Buffer) Bytes() []byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]byte(nil), b.data...)
}
