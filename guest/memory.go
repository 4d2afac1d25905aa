package guest

import (
	"github.com/tetratelabs/wazero/api"
	hermesabi "github.com/wippyai/hermes-abi"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/heap"
)

// Memory adapts a wazero api.Memory to hermesabi.Memory. It can grow in
// whole pages and, when attached to an allocator, reports allocation
// sizes so that sequence decoding checks declared counts.
type Memory struct {
	mem   api.Memory
	sizer hermesabi.AllocationSizer
}

var (
	_ hermesabi.Memory = (*Memory)(nil)
	_ hermesabi.Grower = (*Memory)(nil)
)

// WrapMemory wraps mem. It returns nil when mem is nil.
func WrapMemory(mem api.Memory) *Memory {
	if mem == nil {
		return nil
	}
	return &Memory{mem: mem}
}

func oob(offset, length uint32) error {
	return errors.OutOfBounds(errors.PhaseRuntime, nil, offset, length, nil)
}

// Read returns a view of guest memory. The view is invalidated by Grow.
func (m *Memory) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := m.mem.Read(offset, length)
	if !ok {
		return nil, oob(offset, length)
	}
	return data, nil
}

func (m *Memory) Write(offset uint32, data []byte) error {
	if !m.mem.Write(offset, data) {
		return oob(offset, uint32(len(data)))
	}
	return nil
}

func (m *Memory) ReadU8(offset uint32) (uint8, error) {
	v, ok := m.mem.ReadByte(offset)
	if !ok {
		return 0, oob(offset, 1)
	}
	return v, nil
}

func (m *Memory) ReadU16(offset uint32) (uint16, error) {
	v, ok := m.mem.ReadUint16Le(offset)
	if !ok {
		return 0, oob(offset, 2)
	}
	return v, nil
}

func (m *Memory) ReadU32(offset uint32) (uint32, error) {
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, oob(offset, 4)
	}
	return v, nil
}

func (m *Memory) ReadU64(offset uint32) (uint64, error) {
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, oob(offset, 8)
	}
	return v, nil
}

func (m *Memory) WriteU8(offset uint32, value uint8) error {
	if !m.mem.WriteByte(offset, value) {
		return oob(offset, 1)
	}
	return nil
}

func (m *Memory) WriteU16(offset uint32, value uint16) error {
	if !m.mem.WriteUint16Le(offset, value) {
		return oob(offset, 2)
	}
	return nil
}

func (m *Memory) WriteU32(offset uint32, value uint32) error {
	if !m.mem.WriteUint32Le(offset, value) {
		return oob(offset, 4)
	}
	return nil
}

func (m *Memory) WriteU64(offset uint32, value uint64) error {
	if !m.mem.WriteUint64Le(offset, value) {
		return oob(offset, 8)
	}
	return nil
}

// Size is the current size in bytes.
func (m *Memory) Size() uint32 { return m.mem.Size() }

// Grow adds at least delta bytes, rounded up to whole pages.
func (m *Memory) Grow(delta uint32) (uint32, error) {
	pages := (uint64(delta) + heap.PageSize - 1) / heap.PageSize
	if pages > 1<<16 {
		return m.Size(), errors.Overflow(errors.PhaseRuntime, nil, pages, 1<<16)
	}
	if _, ok := m.mem.Grow(uint32(pages)); !ok {
		return m.Size(), errors.New(errors.PhaseRuntime, errors.KindAllocation).
			Detail("guest memory cannot grow by %d pages", pages).
			Build()
	}
	return m.Size(), nil
}

// AllocationSize delegates to the attached allocator, if any.
func (m *Memory) AllocationSize(ptr uint32) (uint32, bool) {
	if m.sizer == nil {
		return 0, false
	}
	return m.sizer.AllocationSize(ptr)
}
