// Package errors provides structured error types for the hermes-abi module.
//
// Errors are categorized by Phase (encode, decode, free, ...) and Kind
// (encoding, nil_pointer, invalid_union, array_length_mismatch, ...). The
// Error type carries the message type being converted, the field path and
// the cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindNilPointer).
//		Type("SessionEndedMessage").
//		Path("site_id").
//		Detail("unexpected null pointer").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NilPointer(errors.PhaseDecode, []string{"site_id"})
//	err := errors.InvalidUnion(errors.PhaseDecode, path, 7, 2)
//
// Contract violations that cannot be reported through an error return
// (double free, unknown discriminant in a destructor) panic with *Violation.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
