package codec

import (
	"encoding/binary"

	hermesabi "github.com/wippyai/hermes-abi"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/internal/abi"
)

// ArrayLayout is the header every owned sequence is referenced through.
// Encoded sequences always carry a non-null entries pointer; decode only
// follows it when count is positive.
var ArrayLayout = MustLayout("Array", Ptr("entries"), S32("count"))

type (
	ElemEncoder[T any] func(s *Scope, v T) (uint32, error)
	ElemDecoder[T any] func(mem Memory, ptr uint32) (T, error)
	ElemFreer          func(mem Memory, alloc Allocator, ptr uint32)
)

// EncodeArray encodes each element into its own allocation, then the
// address buffer, then the header. An empty slice still yields a header
// with count 0 and a non-null entries pointer to one zeroed slot.
func EncodeArray[T any](s *Scope, items []T, elem ElemEncoder[T]) (uint32, error) {
	if len(items) > abi.MaxListLength {
		return 0, errors.Overflow(errors.PhaseEncode, nil, len(items), abi.MaxListLength)
	}

	addrs := make([]byte, entriesSize(int32(len(items))))
	for i, item := range items {
		ptr, err := elem(s, item)
		if err != nil {
			return 0, errors.AtPath(err, errors.PhaseEncode, Index(i))
		}
		binary.LittleEndian.PutUint32(addrs[i*abi.PointerSize:], ptr)
	}

	entries, err := s.Alloc(uint32(len(addrs)), abi.PointerSize)
	if err != nil {
		return 0, errors.AtPath(err, errors.PhaseEncode, "entries")
	}
	if err := s.Write(entries, addrs); err != nil {
		return 0, errors.AtPath(err, errors.PhaseEncode, "entries")
	}

	w, err := s.NewRecord(ArrayLayout)
	if err != nil {
		return 0, err
	}
	w.SetPtr("entries", entries)
	w.SetS32("count", int32(len(items)))
	return w.Finish()
}

// EncodeOptionalArray encodes a nil slice as the null pointer.
func EncodeOptionalArray[T any](s *Scope, items []T, elem ElemEncoder[T]) (uint32, error) {
	if items == nil {
		return 0, nil
	}
	return EncodeArray(s, items, elem)
}

// DecodeArray copies the sequence at ptr. The result is never nil. When
// the memory can report allocation sizes the declared count must match
// the address buffer.
func DecodeArray[T any](mem Memory, ptr uint32, elem ElemDecoder[T], path ...string) ([]T, error) {
	if ptr == 0 {
		return nil, errors.NilPointer(errors.PhaseDecode, path)
	}
	entries, count, err := readHeader(mem, ptr, errors.PhaseDecode, path)
	if err != nil {
		return nil, err
	}

	out := make([]T, 0, count)
	if count == 0 {
		return out, nil
	}
	if entries == 0 {
		return nil, errors.NilPointer(errors.PhaseDecode, append(path[:len(path):len(path)], "entries"))
	}

	n := uint32(count) * abi.PointerSize
	if sizer, ok := mem.(hermesabi.AllocationSizer); ok {
		if size, live := sizer.AllocationSize(entries); live && size != n {
			return nil, errors.ArrayLengthMismatch(errors.PhaseDecode, path, int64(count), size/abi.PointerSize)
		}
	}
	addrs, err := mem.Read(entries, n)
	if err != nil {
		return nil, errors.OutOfBounds(errors.PhaseDecode, path, entries, n, err)
	}
	// Elements may read the same memory; keep our own copy of the addresses.
	addrs = append([]byte(nil), addrs...)

	for i := 0; i < int(count); i++ {
		p := binary.LittleEndian.Uint32(addrs[i*abi.PointerSize:])
		if p == 0 {
			return nil, errors.NilPointer(errors.PhaseDecode, append(path[:len(path):len(path)], Index(i)))
		}
		v, err := elem(mem, p)
		if err != nil {
			return nil, errors.AtPath(err, errors.PhaseDecode, append(path[:len(path):len(path)], Index(i))...)
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeOptionalArray decodes the null pointer as a nil slice.
func DecodeOptionalArray[T any](mem Memory, ptr uint32, elem ElemDecoder[T], path ...string) ([]T, error) {
	if ptr == 0 {
		return nil, nil
	}
	return DecodeArray(mem, ptr, elem, path...)
}

func readHeader(mem Memory, ptr uint32, phase errors.Phase, path []string) (uint32, int32, error) {
	entries, err := mem.ReadU32(ptr + ArrayLayout.Offset("entries"))
	if err != nil {
		return 0, 0, errors.OutOfBounds(phase, path, ptr, ArrayLayout.Size, err)
	}
	raw, err := mem.ReadU32(ptr + ArrayLayout.Offset("count"))
	if err != nil {
		return 0, 0, errors.OutOfBounds(phase, path, ptr, ArrayLayout.Size, err)
	}
	count := int32(raw)
	if count < 0 {
		return 0, 0, errors.ArrayLengthMismatch(phase, path, int64(count), 0)
	}
	if count > abi.MaxListLength {
		return 0, 0, errors.Overflow(phase, path, count, abi.MaxListLength)
	}
	return entries, count, nil
}

// FreeArray releases every element, then the address buffer, then the
// header.
func FreeArray(mem Memory, alloc Allocator, ptr uint32, elem ElemFreer) {
	if ptr == 0 {
		errors.Panic(errors.KindNilPointer, "free of null array")
	}
	entries, count, err := readHeader(mem, ptr, errors.PhaseFree, nil)
	if err != nil {
		errors.Panic(errors.KindArrayLengthMismatch, "array at %d: %v", ptr, err)
	}
	if count > 0 {
		n := uint32(count) * abi.PointerSize
		addrs, err := mem.Read(entries, n)
		if err != nil {
			errors.Panic(errors.KindOutOfBounds, "array entries at %d: %v", entries, err)
		}
		addrs = append([]byte(nil), addrs...)
		for i := 0; i < int(count); i++ {
			if p := binary.LittleEndian.Uint32(addrs[i*abi.PointerSize:]); p != 0 {
				elem(mem, alloc, p)
			}
		}
	}
	if entries != 0 {
		alloc.Free(entries, uint32(entriesSize(count)), abi.PointerSize)
	}
	alloc.Free(ptr, ArrayLayout.Size, ArrayLayout.Align)
}

// entriesSize is the address buffer size for count elements. An empty
// sequence keeps one slot so that its entries pointer is never null.
func entriesSize(count int32) int {
	return max(int(count), 1) * abi.PointerSize
}

// FreeOptionalArray is FreeArray that ignores the null pointer.
func FreeOptionalArray(mem Memory, alloc Allocator, ptr uint32, elem ElemFreer) {
	if ptr != 0 {
		FreeArray(mem, alloc, ptr, elem)
	}
}

func decodeTextElem(mem Memory, ptr uint32) (string, error) {
	return DecodeText(mem, ptr)
}

func EncodeTextArray(s *Scope, items []string) (uint32, error) {
	return EncodeArray[string](s, items, EncodeText)
}

func EncodeOptionalTextArray(s *Scope, items []string) (uint32, error) {
	return EncodeOptionalArray[string](s, items, EncodeText)
}

func DecodeTextArray(mem Memory, ptr uint32, path ...string) ([]string, error) {
	return DecodeArray[string](mem, ptr, decodeTextElem, path...)
}

func DecodeOptionalTextArray(mem Memory, ptr uint32, path ...string) ([]string, error) {
	return DecodeOptionalArray[string](mem, ptr, decodeTextElem, path...)
}

func FreeTextArray(mem Memory, alloc Allocator, ptr uint32) {
	FreeArray(mem, alloc, ptr, FreeText)
}

func FreeOptionalTextArray(mem Memory, alloc Allocator, ptr uint32) {
	FreeOptionalArray(mem, alloc, ptr, FreeText)
}

// NewArray builds the codec for owned sequences of elem.
func NewArray[T any](name string, elem *Codec[T]) *Codec[[]T] {
	return New[[]T](name, MustLayout(name, Ptr("entries"), S32("count")),
		func(s *Scope, items []T) (uint32, error) {
			return EncodeArray[T](s, items, elem.Lower)
		},
		func(mem Memory, ptr uint32) ([]T, error) {
			return DecodeArray[T](mem, ptr, elem.Lift)
		},
		func(mem Memory, alloc Allocator, ptr uint32) {
			FreeArray(mem, alloc, ptr, elem.Free)
		},
	)
}

// Text and TextArray are the codecs of the primitive buffers.
var (
	Text = New[string]("Text", nil,
		EncodeText,
		decodeTextElem,
		FreeText,
	)
	TextArray = NewArray[string]("TextArray", Text)
)
