package codec

import (
	"sync"

	hermesabi "github.com/wippyai/hermes-abi"
	"github.com/wippyai/hermes-abi/errors"
	"go.uber.org/zap"
)

type Memory = hermesabi.Memory
type Allocator = hermesabi.Allocator

// Allocation is one block handed out while encoding a value.
type Allocation struct {
	Ptr   uint32
	Size  uint32
	Align uint32
}

// AllocationList records allocations so they can be released together.
type AllocationList struct {
	allocations []Allocation
}

var allocationListPool = sync.Pool{
	New: func() any {
		return &AllocationList{allocations: make([]Allocation, 0, 16)}
	},
}

func NewAllocationList() *AllocationList {
	return allocationListPool.Get().(*AllocationList)
}

const maxPooledAllocationCapacity = 256

// Release returns to pool. List invalid after Release.
func (al *AllocationList) Release() {
	if cap(al.allocations) > maxPooledAllocationCapacity {
		return
	}
	al.Reset()
	allocationListPool.Put(al)
}

func (al *AllocationList) Add(ptr, size, align uint32) {
	al.allocations = append(al.allocations, Allocation{Ptr: ptr, Size: size, Align: align})
}

// Free releases every recorded block, newest first.
func (al *AllocationList) Free(allocator Allocator) {
	if allocator == nil {
		return
	}
	for i := len(al.allocations) - 1; i >= 0; i-- {
		a := al.allocations[i]
		if a.Ptr != 0 {
			allocator.Free(a.Ptr, a.Size, a.Align)
		}
	}
}

func (al *AllocationList) Reset() {
	al.allocations = al.allocations[:0]
}

func (al *AllocationList) Count() int {
	return len(al.allocations)
}

// Scope is the allocation context of one top-level encode. Every block
// allocated through it is tracked until Commit hands ownership to the
// encoded value or Rollback frees it.
type Scope struct {
	mem   Memory
	alloc Allocator
	list  *AllocationList
	done  bool
}

// NewScope opens a scope over mem and alloc.
func NewScope(mem Memory, alloc Allocator) *Scope {
	return &Scope{mem: mem, alloc: alloc, list: NewAllocationList()}
}

// Memory returns the memory the scope writes into.
func (s *Scope) Memory() Memory { return s.mem }

// Allocator returns the allocator the scope draws from.
func (s *Scope) Allocator() Allocator { return s.alloc }

// Alloc allocates a block and records it. Zero-sized requests are rounded
// up to one byte so that the returned pointer is never shared.
func (s *Scope) Alloc(size, align uint32) (uint32, error) {
	if s.done {
		return 0, errors.InvalidInput(errors.PhaseEncode, "allocation on a closed scope")
	}
	if size == 0 {
		size = 1
	}
	ptr, err := s.alloc.Alloc(size, align)
	if err != nil {
		Logger().Warn("allocation failed", zap.Uint32("size", size), zap.Uint32("align", align), zap.Error(err))
		return 0, errors.AllocationFailed(errors.PhaseEncode, size, align, err)
	}
	if ptr == 0 {
		return 0, errors.AllocationFailed(errors.PhaseEncode, size, align, nil)
	}
	s.list.Add(ptr, size, align)
	return ptr, nil
}

// Write copies data into memory, reporting failures as encode errors.
func (s *Scope) Write(ptr uint32, data []byte) error {
	if err := s.mem.Write(ptr, data); err != nil {
		return errors.OutOfBounds(errors.PhaseEncode, nil, ptr, uint32(len(data)), err)
	}
	return nil
}

// Count is the number of blocks allocated so far.
func (s *Scope) Count() int {
	if s.done {
		return 0
	}
	return s.list.Count()
}

// Commit keeps every allocation. Ownership moves to the encoded value.
func (s *Scope) Commit() {
	if s.done {
		return
	}
	s.done = true
	s.list.Release()
	s.list = nil
}

// Rollback frees every allocation made through the scope, newest first.
func (s *Scope) Rollback() {
	if s.done {
		return
	}
	s.done = true
	n := s.list.Count()
	s.list.Free(s.alloc)
	s.list.Release()
	s.list = nil
	if n > 0 {
		Logger().Debug("encode rolled back", zap.Int("allocations", n))
	}
}
