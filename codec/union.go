package codec

import "github.com/wippyai/hermes-abi/errors"

// CheckDiscriminant accepts discriminants in 1..max. Zero is never a valid
// tag.
func CheckDiscriminant(d, max uint32, path ...string) error {
	if d == 0 || d > max {
		return errors.InvalidUnion(errors.PhaseDecode, path, d, max)
	}
	return nil
}

// UnknownDiscriminant panics for a tag that cannot be destroyed.
func UnknownDiscriminant(union string, d uint32) {
	errors.Panic(errors.KindInvalidUnion, "free of %s with unknown discriminant %d", union, d)
}
