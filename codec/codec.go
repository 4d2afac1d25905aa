package codec

import (
	"github.com/wippyai/hermes-abi/errors"
)

// LowerFunc encodes v through s and returns the address of the result.
// Errors carry paths relative to the value being encoded.
type LowerFunc[T any] func(s *Scope, v T) (uint32, error)

// LiftFunc decodes the value at a non-null ptr without taking ownership.
type LiftFunc[T any] func(mem Memory, ptr uint32) (T, error)

// FreeFunc releases the value at a non-null ptr and everything it owns.
type FreeFunc func(mem Memory, alloc Allocator, ptr uint32)

// Codec converts one type between its Go form and its boundary form.
type Codec[T any] struct {
	layout *Layout
	lower  LowerFunc[T]
	lift   LiftFunc[T]
	free   FreeFunc
	name   string
}

// New assembles a codec. layout may be nil for values that are not records,
// such as text buffers.
func New[T any](name string, layout *Layout, lower LowerFunc[T], lift LiftFunc[T], free FreeFunc) *Codec[T] {
	return &Codec[T]{name: name, layout: layout, lower: lower, lift: lift, free: free}
}

func (c *Codec[T]) Name() string { return c.name }

func (c *Codec[T]) Layout() *Layout { return c.layout }

// Lower encodes v inside an enclosing scope.
func (c *Codec[T]) Lower(s *Scope, v T) (uint32, error) {
	return c.lower(s, v)
}

// Lift decodes the value at ptr, reporting null as nil_pointer.
func (c *Codec[T]) Lift(mem Memory, ptr uint32) (T, error) {
	if ptr == 0 {
		var zero T
		return zero, errors.NilPointer(errors.PhaseDecode, nil)
	}
	return c.lift(mem, ptr)
}

// Encode builds the boundary form of v. On failure nothing stays
// allocated. The returned handle owns the allocation tree.
func (c *Codec[T]) Encode(mem Memory, alloc Allocator, v T) (*Owned, error) {
	s := NewScope(mem, alloc)
	ptr, err := c.lower(s, v)
	if err != nil {
		s.Rollback()
		return nil, errors.WithType(err, c.name)
	}
	s.Commit()
	return newOwned(c.name, mem, alloc, ptr, c.free), nil
}

// Decode returns a deep copy of the value at ptr. The boundary value is
// only borrowed and stays owned by the caller.
func (c *Codec[T]) Decode(mem Memory, ptr uint32) (T, error) {
	v, err := c.Lift(mem, ptr)
	if err != nil {
		var zero T
		return zero, errors.WithType(err, c.name)
	}
	return v, nil
}

// Free releases a value produced by Encode, given only its address. Prefer
// Owned.Release, which also guards against releasing twice. A null ptr is
// a no-op.
func (c *Codec[T]) Free(mem Memory, alloc Allocator, ptr uint32) {
	if ptr == 0 {
		return
	}
	c.free(mem, alloc, ptr)
}

// Recode decodes the value at ptr and encodes a fresh copy of it.
func (c *Codec[T]) Recode(mem Memory, alloc Allocator, ptr uint32) (*Owned, error) {
	v, err := c.Decode(mem, ptr)
	if err != nil {
		return nil, err
	}
	return c.Encode(mem, alloc, v)
}

// RoundTrip encodes v, decodes the result and releases it.
func RoundTrip[T any](c *Codec[T], mem Memory, alloc Allocator, v T) (T, error) {
	owned, err := c.Encode(mem, alloc, v)
	if err != nil {
		var zero T
		return zero, err
	}
	defer owned.Release()
	return c.Decode(mem, owned.Ptr())
}
