package codec

import (
	"math"

	"github.com/wippyai/hermes-abi/errors"
)

// Boxed scalars are referenced by pointer from union payloads.

func EncodeF64Box(s *Scope, v float64) (uint32, error) {
	return encodeBox(s, math.Float64bits(v))
}

func EncodeS64Box(s *Scope, v int64) (uint32, error) {
	return encodeBox(s, uint64(v))
}

func encodeBox(s *Scope, bits uint64) (uint32, error) {
	ptr, err := s.Alloc(8, 8)
	if err != nil {
		return 0, err
	}
	if err := s.mem.WriteU64(ptr, bits); err != nil {
		return 0, errors.OutOfBounds(errors.PhaseEncode, nil, ptr, 8, err)
	}
	return ptr, nil
}

func DecodeF64Box(mem Memory, ptr uint32, path ...string) (float64, error) {
	bits, err := decodeBox(mem, ptr, path)
	return math.Float64frombits(bits), err
}

func DecodeS64Box(mem Memory, ptr uint32, path ...string) (int64, error) {
	bits, err := decodeBox(mem, ptr, path)
	return int64(bits), err
}

func decodeBox(mem Memory, ptr uint32, path []string) (uint64, error) {
	if ptr == 0 {
		return 0, errors.NilPointer(errors.PhaseDecode, path)
	}
	v, err := mem.ReadU64(ptr)
	if err != nil {
		return 0, errors.OutOfBounds(errors.PhaseDecode, path, ptr, 8, err)
	}
	return v, nil
}

// FreeBox releases a boxed 8-byte scalar.
func FreeBox(_ Memory, alloc Allocator, ptr uint32) {
	alloc.Free(ptr, 8, 8)
}
