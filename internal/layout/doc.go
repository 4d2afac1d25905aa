// Package layout computes size, alignment and field offsets of the flat
// records exchanged at the foreign boundary.
//
// Records are declared as WIT records whose fields are primitive scalars
// (pointers are u32). For such records the canonical ABI layout rules and
// the C rules on a 32-bit target agree:
//   - Primitives: size equals alignment (u8=1, u32=4, s64=8, ...)
//   - Records: fields laid out sequentially with padding for alignment,
//     total size rounded up to the largest field alignment
//   - Nested records are laid out inline
//
// # Usage
//
//	info, err := layout.NewCalculator().Calculate(recordTypeDef)
//	// info.Size, info.Align, info.FieldOffs available
//
// This package is internal to hermes-abi.
package layout
