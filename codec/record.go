package codec

import (
	"fmt"
	"math"

	"github.com/wippyai/hermes-abi/errors"
)

// Index renders a sequence position as a path segment.
func Index(i int) string {
	return fmt.Sprintf("[%d]", i)
}

func blockSize(l *Layout) uint32 {
	if l.Size == 0 {
		return 1
	}
	return l.Size
}

// RecordWriter fills one record allocated through a Scope. The first
// failure sticks: later setters do nothing, so no further memory is
// allocated once an encode has failed.
type RecordWriter struct {
	s      *Scope
	layout *Layout
	err    *error
	path   []string
	base   uint32
}

// NewRecord allocates a zeroed record of layout l.
func (s *Scope) NewRecord(l *Layout) (*RecordWriter, error) {
	size := blockSize(l)
	ptr, err := s.Alloc(size, l.Align)
	if err != nil {
		return nil, err
	}
	if err := s.Write(ptr, make([]byte, size)); err != nil {
		return nil, err
	}
	return &RecordWriter{s: s, layout: l, base: ptr, err: new(error)}, nil
}

// Addr is the address of the record.
func (w *RecordWriter) Addr() uint32 { return w.base }

func (w *RecordWriter) Scope() *Scope { return w.s }

func (w *RecordWriter) Err() error { return *w.err }

// Finish returns the record address or the first failure.
func (w *RecordWriter) Finish() (uint32, error) {
	if *w.err != nil {
		return 0, *w.err
	}
	return w.base, nil
}

// Fail records err against field unless an earlier failure is pending.
func (w *RecordWriter) Fail(field string, err error) {
	if err == nil || *w.err != nil {
		return
	}
	*w.err = errors.AtPath(err, errors.PhaseEncode, w.fieldPath(field)...)
}

func (w *RecordWriter) fieldPath(field string) []string {
	out := make([]string, 0, len(w.path)+1)
	out = append(out, w.path...)
	if field != "" {
		out = append(out, field)
	}
	return out
}

func (w *RecordWriter) ok() bool { return *w.err == nil }

func (w *RecordWriter) check(field string, err error, addr, n uint32) {
	if err != nil {
		w.Fail(field, errors.OutOfBounds(errors.PhaseEncode, nil, addr, n, err))
	}
}

func (w *RecordWriter) SetPtr(field string, v uint32) { w.SetU32(field, v) }

func (w *RecordWriter) SetU8(field string, v uint8) {
	if !w.ok() {
		return
	}
	addr := w.base + w.layout.Offset(field)
	w.check(field, w.s.mem.WriteU8(addr, v), addr, 1)
}

func (w *RecordWriter) SetU32(field string, v uint32) {
	if !w.ok() {
		return
	}
	addr := w.base + w.layout.Offset(field)
	w.check(field, w.s.mem.WriteU32(addr, v), addr, 4)
}

func (w *RecordWriter) SetS32(field string, v int32) { w.SetU32(field, uint32(v)) }

// SetInt stores v as s32, failing when it does not fit.
func (w *RecordWriter) SetInt(field string, v int) {
	if v < math.MinInt32 || v > math.MaxInt32 {
		w.Fail(field, errors.Overflow(errors.PhaseEncode, nil, v, int32(math.MaxInt32)))
		return
	}
	w.SetS32(field, int32(v))
}

func (w *RecordWriter) SetS64(field string, v int64) {
	if !w.ok() {
		return
	}
	addr := w.base + w.layout.Offset(field)
	w.check(field, w.s.mem.WriteU64(addr, uint64(v)), addr, 8)
}

func (w *RecordWriter) SetF32(field string, v float32) { w.SetU32(field, math.Float32bits(v)) }

func (w *RecordWriter) SetF64(field string, v float64) {
	if !w.ok() {
		return
	}
	addr := w.base + w.layout.Offset(field)
	w.check(field, w.s.mem.WriteU64(addr, math.Float64bits(v)), addr, 8)
}

// Lower runs fn and stores the pointer it returns in field.
func (w *RecordWriter) Lower(field string, fn func(*Scope) (uint32, error)) {
	if !w.ok() {
		return
	}
	ptr, err := fn(w.s)
	if err != nil {
		w.Fail(field, err)
		return
	}
	w.SetPtr(field, ptr)
}

func (w *RecordWriter) Text(field string, v string) {
	w.Lower(field, func(s *Scope) (uint32, error) { return EncodeText(s, v) })
}

func (w *RecordWriter) OptionalText(field string, v *string) {
	w.Lower(field, func(s *Scope) (uint32, error) { return EncodeOptionalText(s, v) })
}

// At returns a writer over the record embedded in field. It shares the
// failure state of w.
func (w *RecordWriter) At(field string) *RecordWriter {
	f, ok := w.layout.Field(field)
	if !ok || f.Kind != FieldRecord {
		panic(fmt.Sprintf("codec: %s.%s is not an inline record", w.layout.Name, field))
	}
	return &RecordWriter{
		s:      w.s,
		layout: f.Record,
		err:    w.err,
		path:   w.fieldPath(field),
		base:   w.base + f.Offset,
	}
}

// Put stores the encoding of v through c in field.
func Put[T any](w *RecordWriter, field string, c *Codec[T], v T) {
	w.Lower(field, func(s *Scope) (uint32, error) { return c.Lower(s, v) })
}

// PutOptional stores nil as the null pointer.
func PutOptional[T any](w *RecordWriter, field string, c *Codec[T], v *T) {
	if v == nil {
		w.SetPtr(field, 0)
		return
	}
	Put(w, field, c, *v)
}

// PutSlice stores a nil slice as the null pointer and anything else,
// including an empty slice, as a present sequence.
func PutSlice[T any](w *RecordWriter, field string, c *Codec[[]T], v []T) {
	if v == nil {
		w.SetPtr(field, 0)
		return
	}
	Put(w, field, c, v)
}

// RecordReader reads fields of one record. Like RecordWriter the first
// failure sticks and later getters return zero values.
type RecordReader struct {
	mem    Memory
	layout *Layout
	err    *error
	path   []string
	base   uint32
}

// ReadRecord opens the record of layout l at ptr.
func ReadRecord(mem Memory, l *Layout, ptr uint32) *RecordReader {
	r := &RecordReader{mem: mem, layout: l, base: ptr, err: new(error)}
	if ptr == 0 {
		*r.err = errors.NilPointer(errors.PhaseDecode, nil)
	}
	return r
}

func (r *RecordReader) Addr() uint32 { return r.base }

func (r *RecordReader) Memory() Memory { return r.mem }

func (r *RecordReader) Err() error { return *r.err }

// Fail records err against field unless an earlier failure is pending.
func (r *RecordReader) Fail(field string, err error) {
	if err == nil || *r.err != nil {
		return
	}
	*r.err = errors.AtPath(err, errors.PhaseDecode, r.fieldPath(field)...)
}

func (r *RecordReader) fieldPath(field string) []string {
	out := make([]string, 0, len(r.path)+1)
	out = append(out, r.path...)
	if field != "" {
		out = append(out, field)
	}
	return out
}

func (r *RecordReader) ok() bool { return *r.err == nil }

func (r *RecordReader) check(field string, err error, addr, n uint32) bool {
	if err != nil {
		r.Fail(field, errors.OutOfBounds(errors.PhaseDecode, nil, addr, n, err))
		return false
	}
	return true
}

func (r *RecordReader) Ptr(field string) uint32 { return r.U32(field) }

func (r *RecordReader) U8(field string) uint8 {
	if !r.ok() {
		return 0
	}
	addr := r.base + r.layout.Offset(field)
	v, err := r.mem.ReadU8(addr)
	if !r.check(field, err, addr, 1) {
		return 0
	}
	return v
}

func (r *RecordReader) U32(field string) uint32 {
	if !r.ok() {
		return 0
	}
	addr := r.base + r.layout.Offset(field)
	v, err := r.mem.ReadU32(addr)
	if !r.check(field, err, addr, 4) {
		return 0
	}
	return v
}

func (r *RecordReader) S32(field string) int32 { return int32(r.U32(field)) }

func (r *RecordReader) Int(field string) int { return int(r.S32(field)) }

func (r *RecordReader) S64(field string) int64 {
	if !r.ok() {
		return 0
	}
	addr := r.base + r.layout.Offset(field)
	v, err := r.mem.ReadU64(addr)
	if !r.check(field, err, addr, 8) {
		return 0
	}
	return int64(v)
}

func (r *RecordReader) F32(field string) float32 { return math.Float32frombits(r.U32(field)) }

func (r *RecordReader) F64(field string) float64 {
	return math.Float64frombits(uint64(r.S64(field)))
}

// Lift reads the pointer in field and passes it to fn. A null pointer is
// a nil_pointer failure at field.
func (r *RecordReader) Lift(field string, fn func(mem Memory, ptr uint32) error) {
	ptr := r.Ptr(field)
	if !r.ok() {
		return
	}
	if ptr == 0 {
		r.Fail(field, errors.NilPointer(errors.PhaseDecode, nil))
		return
	}
	r.Fail(field, fn(r.mem, ptr))
}

func (r *RecordReader) Text(field string) string {
	var v string
	r.Lift(field, func(mem Memory, ptr uint32) (err error) {
		v, err = DecodeText(mem, ptr)
		return err
	})
	return v
}

func (r *RecordReader) OptionalText(field string) *string {
	ptr := r.Ptr(field)
	if !r.ok() || ptr == 0 {
		return nil
	}
	v, err := DecodeText(r.mem, ptr)
	if err != nil {
		r.Fail(field, err)
		return nil
	}
	return &v
}

// At returns a reader over the record embedded in field.
func (r *RecordReader) At(field string) *RecordReader {
	f, ok := r.layout.Field(field)
	if !ok || f.Kind != FieldRecord {
		panic(fmt.Sprintf("codec: %s.%s is not an inline record", r.layout.Name, field))
	}
	return &RecordReader{
		mem:    r.mem,
		layout: f.Record,
		err:    r.err,
		path:   r.fieldPath(field),
		base:   r.base + f.Offset,
	}
}

// Get decodes the required pointee of field through c.
func Get[T any](r *RecordReader, field string, c *Codec[T]) T {
	var v T
	r.Lift(field, func(mem Memory, ptr uint32) (err error) {
		v, err = c.Lift(mem, ptr)
		return err
	})
	return v
}

// GetOptional decodes the null pointer as nil.
func GetOptional[T any](r *RecordReader, field string, c *Codec[T]) *T {
	ptr := r.Ptr(field)
	if !r.ok() || ptr == 0 {
		return nil
	}
	v, err := c.Lift(r.mem, ptr)
	if err != nil {
		r.Fail(field, err)
		return nil
	}
	return &v
}

// GetSlice decodes the null pointer as a nil slice.
func GetSlice[T any](r *RecordReader, field string, c *Codec[[]T]) []T {
	ptr := r.Ptr(field)
	if !r.ok() || ptr == 0 {
		return nil
	}
	v, err := c.Lift(r.mem, ptr)
	if err != nil {
		r.Fail(field, err)
		return nil
	}
	return v
}

// RecordFreer tears down one record: pointees first, then the record
// block itself on Done. Reading a record that is not a live encoder
// output is a contract violation.
type RecordFreer struct {
	mem    Memory
	alloc  Allocator
	layout *Layout
	base   uint32
	inline bool
}

// FreeRecord opens the record of layout l at ptr for release.
func FreeRecord(mem Memory, alloc Allocator, l *Layout, ptr uint32) *RecordFreer {
	if ptr == 0 {
		errors.Panic(errors.KindNilPointer, "free of null %s", l.Name)
	}
	return &RecordFreer{mem: mem, alloc: alloc, layout: l, base: ptr}
}

func (f *RecordFreer) Memory() Memory       { return f.mem }
func (f *RecordFreer) Allocator() Allocator { return f.alloc }

func (f *RecordFreer) U32(field string) uint32 {
	addr := f.base + f.layout.Offset(field)
	v, err := f.mem.ReadU32(addr)
	if err != nil {
		errors.Panic(errors.KindOutOfBounds, "%s.%s at %d: %v", f.layout.Name, field, addr, err)
	}
	return v
}

func (f *RecordFreer) Ptr(field string) uint32 { return f.U32(field) }

// Free passes the pointer in field to fn unless it is null.
func (f *RecordFreer) Free(field string, fn FreeFunc) {
	if ptr := f.Ptr(field); ptr != 0 {
		fn(f.mem, f.alloc, ptr)
	}
}

// Text releases the text in field, if any.
func (f *RecordFreer) Text(field string) {
	f.Free(field, FreeText)
}

// At returns a freer over the record embedded in field. Done on it is a
// no-op; the block belongs to the enclosing record.
func (f *RecordFreer) At(field string) *RecordFreer {
	fi, ok := f.layout.Field(field)
	if !ok || fi.Kind != FieldRecord {
		panic(fmt.Sprintf("codec: %s.%s is not an inline record", f.layout.Name, field))
	}
	return &RecordFreer{mem: f.mem, alloc: f.alloc, layout: fi.Record, base: f.base + fi.Offset, inline: true}
}

// Done releases the record block.
func (f *RecordFreer) Done() {
	if f.inline {
		return
	}
	f.alloc.Free(f.base, blockSize(f.layout), f.layout.Align)
}
