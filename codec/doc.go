// Package codec holds the primitives every boundary type is built from.
//
// A value is encoded inside a Scope, which records each allocation so a
// failing encode can be rolled back without leaking. Records are written
// and read through RecordWriter and RecordReader, which stop at the first
// failure and attach the field path to it. Text is NUL-terminated;
// sequences are referenced through an Array header holding an address
// buffer and a count; unions carry a u32 discriminant starting at 1.
//
// Codec ties the three directions together:
//
//	owned, err := dialogue.EndSessionMessage.Encode(mem, alloc, msg)
//	...
//	back, err := dialogue.EndSessionMessage.Decode(mem, owned.Ptr())
//	owned.Release()
//
// Decode borrows: it copies out of foreign memory and never frees.
// Release frees the whole tree exactly once.
package codec
