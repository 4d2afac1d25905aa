package codec

import (
	"sync/atomic"

	"github.com/wippyai/hermes-abi/errors"
)

// Owned is the handle to an encoded value. Release runs the destructor
// exactly once; releasing again panics.
type Owned struct {
	mem      Memory
	alloc    Allocator
	free     FreeFunc
	name     string
	ptr      uint32
	released atomic.Bool
}

func newOwned(name string, mem Memory, alloc Allocator, ptr uint32, free FreeFunc) *Owned {
	return &Owned{mem: mem, alloc: alloc, free: free, name: name, ptr: ptr}
}

// Ptr is the address of the value in foreign memory.
func (o *Owned) Ptr() uint32 { return o.ptr }

// Type is the name of the encoded type.
func (o *Owned) Type() string { return o.name }

func (o *Owned) Released() bool { return o.released.Load() }

// Release frees the whole allocation tree. No reader may hold the value.
func (o *Owned) Release() {
	if !o.released.CompareAndSwap(false, true) {
		errors.Panic(errors.KindDoubleFree, "%s at %d released twice", o.name, o.ptr)
	}
	o.free(o.mem, o.alloc, o.ptr)
}
