package guest

import (
	"context"

	"github.com/tetratelabs/wazero/api"
	hermesabi "github.com/wippyai/hermes-abi"
	"github.com/wippyai/hermes-abi/errors"
	"go.uber.org/zap"
)

// ReallocAllocator allocates through a guest's cabi_realloc export,
// realloc(old_ptr, old_size, align, new_size). A new_size of 0 frees.
type ReallocAllocator struct {
	ctx context.Context
	fn  api.Function
}

var _ hermesabi.Allocator = (*ReallocAllocator)(nil)

// WrapAllocator wraps fn. It returns nil when fn is nil.
func WrapAllocator(ctx context.Context, fn api.Function) *ReallocAllocator {
	if fn == nil {
		return nil
	}
	return &ReallocAllocator{ctx: ctx, fn: fn}
}

func (a *ReallocAllocator) Alloc(size, align uint32) (uint32, error) {
	results, err := a.fn.Call(a.ctx, 0, 0, uint64(align), uint64(size))
	if err != nil {
		return 0, errors.AllocationFailed(errors.PhaseRuntime, size, align, err)
	}
	if len(results) == 0 {
		return 0, errors.AllocationFailed(errors.PhaseRuntime, size, align, nil)
	}
	return uint32(results[0]), nil
}

// Free releases ptr. A failing call is logged; there is no way to report it.
func (a *ReallocAllocator) Free(ptr, size, align uint32) {
	if ptr == 0 {
		return
	}
	if _, err := a.fn.Call(a.ctx, uint64(ptr), uint64(size), uint64(align), 0); err != nil {
		Logger().Warn("cabi_realloc free failed",
			zap.Uint32("ptr", ptr),
			zap.Uint32("size", size),
			zap.Error(err))
	}
}
