package heap

import (
	"sort"
	"sync"

	hermesabi "github.com/wippyai/hermes-abi"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/internal/abi"
	"go.uber.org/zap"
)

// Block is a live allocation.
type Block struct {
	Ptr   uint32
	Size  uint32 // as requested
	Align uint32
}

type span struct {
	off  uint32
	size uint32
}

type liveBlock struct {
	size  uint32
	span  uint32
	align uint32
}

// Stats is a snapshot of allocator activity.
type Stats struct {
	Allocs     uint64
	Frees      uint64
	LiveBlocks int
	LiveBytes  uint64
	HeapBytes  uint32
	FreeSpans  int
}

// Allocator is a first-fit free-list allocator over a growable memory.
// Freed spans are coalesced with their neighbours. Every live block is
// recorded, so freeing an unknown pointer or with the wrong size is
// detected and panics.
type Allocator struct {
	mem   hermesabi.Grower
	live  map[uint32]liveBlock
	free  []span // sorted by offset, never adjacent
	cfg   Config
	top   uint32
	stats Stats
	mu    sync.Mutex
}

// NewAllocator manages mem from cfg.Base upward.
func NewAllocator(mem hermesabi.Grower, cfg Config) *Allocator {
	cfg = cfg.withDefaults()
	return &Allocator{
		mem:  mem,
		live: make(map[uint32]liveBlock),
		cfg:  cfg,
		top:  abi.AlignTo(cfg.Base, cfg.Align),
	}
}

// Alloc returns a block of at least size bytes aligned to align.
func (a *Allocator) Alloc(size, align uint32) (uint32, error) {
	if align == 0 {
		align = 1
	}
	if !abi.IsPowerOfTwo(align) {
		return 0, errors.New(errors.PhaseRuntime, errors.KindInvalidInput).
			Detail("alignment %d is not a power of two", align).
			Build()
	}
	if size > abi.MaxAlloc {
		return 0, errors.Overflow(errors.PhaseRuntime, nil, size, abi.MaxAlloc)
	}

	need := abi.AlignTo(max(size, 1), a.cfg.Align)

	a.mu.Lock()
	defer a.mu.Unlock()

	ptr, ok := a.fromFreeList(need, align)
	if !ok {
		var err error
		ptr, err = a.fromTop(need, align)
		if err != nil {
			Logger().Warn("heap exhausted",
				zap.Uint32("size", size),
				zap.Uint32("align", align),
				zap.Error(err))
			return 0, err
		}
	}

	a.live[ptr] = liveBlock{size: size, span: need, align: align}
	a.stats.Allocs++
	a.stats.LiveBytes += uint64(size)
	return ptr, nil
}

func (a *Allocator) fromFreeList(need, align uint32) (uint32, bool) {
	for i, s := range a.free {
		ptr := abi.AlignTo(s.off, align)
		end := uint64(ptr) + uint64(need)
		if end > uint64(s.off)+uint64(s.size) {
			continue
		}
		var rest []span
		if ptr > s.off {
			rest = append(rest, span{off: s.off, size: ptr - s.off})
		}
		if tail := s.off + s.size - uint32(end); tail > 0 {
			rest = append(rest, span{off: uint32(end), size: tail})
		}
		a.free = append(a.free[:i], append(rest, a.free[i+1:]...)...)
		return ptr, true
	}
	return 0, false
}

func (a *Allocator) fromTop(need, align uint32) (uint32, error) {
	ptr := abi.AlignTo(a.top, align)
	end, ok := abi.SafeAddU32(ptr, need)
	if !ok || end > a.cfg.MaxSize {
		return 0, errors.Overflow(errors.PhaseRuntime, nil, uint64(ptr)+uint64(need), a.cfg.MaxSize)
	}
	if size := a.mem.Size(); end > size {
		delta := abi.AlignTo(end-size, PageSize)
		if _, err := a.mem.Grow(delta); err != nil {
			return 0, errors.Wrap(errors.PhaseRuntime, errors.KindAllocation, err, "grow memory")
		}
		Logger().Debug("heap grown", zap.Uint32("delta", delta), zap.Uint32("size", a.mem.Size()))
	}
	if ptr > a.top {
		a.release(span{off: a.top, size: ptr - a.top})
	}
	a.top = end
	return ptr, nil
}

// Free releases a block. Freeing the null pointer does nothing; freeing a
// pointer that is not live, or with a size other than the one allocated,
// panics with a contract violation.
func (a *Allocator) Free(ptr, size, align uint32) {
	if ptr == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	b, ok := a.live[ptr]
	if !ok {
		errors.Panic(errors.KindDoubleFree, "free of %d: not a live allocation", ptr)
	}
	if b.size != size {
		errors.Panic(errors.KindInvalidInput, "free of %d with size %d, allocated %d", ptr, size, b.size)
	}
	delete(a.live, ptr)
	a.stats.Frees++
	a.stats.LiveBytes -= uint64(b.size)
	a.release(span{off: ptr, size: b.span})
}

// release returns s to the free list, merging it with adjacent spans and
// with the top of the heap.
func (a *Allocator) release(s span) {
	i := sort.Search(len(a.free), func(i int) bool { return a.free[i].off >= s.off })
	a.free = append(a.free, span{})
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = s

	if i+1 < len(a.free) && a.free[i].off+a.free[i].size == a.free[i+1].off {
		a.free[i].size += a.free[i+1].size
		a.free = append(a.free[:i+1], a.free[i+2:]...)
	}
	if i > 0 && a.free[i-1].off+a.free[i-1].size == a.free[i].off {
		a.free[i-1].size += a.free[i].size
		a.free = append(a.free[:i], a.free[i+1:]...)
	}
	if last := a.free[len(a.free)-1]; last.off+last.size == a.top {
		a.top = last.off
		a.free = a.free[:len(a.free)-1]
	}
}

// AllocationSize reports the requested size of the live block at ptr.
func (a *Allocator) AllocationSize(ptr uint32) (uint32, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.live[ptr]
	return b.size, ok
}

func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.stats
	s.LiveBlocks = len(a.live)
	s.HeapBytes = a.top - abi.AlignTo(a.cfg.Base, a.cfg.Align)
	s.FreeSpans = len(a.free)
	return s
}

// Live returns the live blocks ordered by address.
func (a *Allocator) Live() []Block {
	a.mu.Lock()
	out := make([]Block, 0, len(a.live))
	for ptr, b := range a.live {
		out = append(out, Block{Ptr: ptr, Size: b.size, Align: b.align})
	}
	a.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Ptr < out[j].Ptr })
	return out
}
