package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wippyai/hermes-abi/errors"
)

func TestTextArrayRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   []string
	}{
		{"empty", []string{}},
		{"one", []string{"turnLightOn"}},
		{"many", []string{"a", "", "c ☃"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena()
			got, err := RoundTrip(TextArray, a, a, tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got == nil {
				t.Fatal("decoded sequence is nil")
			}
			if diff := cmp.Diff(tt.in, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			assertNoLeaks(t, a)
		})
	}
}

func TestEmptyArrayHeader(t *testing.T) {
	a := newArena()
	owned, err := TextArray.Encode(a, a, []string{})
	if err != nil {
		t.Fatal(err)
	}
	if owned.Ptr() == 0 {
		t.Fatal("empty sequence encoded as null")
	}
	count, _ := a.ReadU32(owned.Ptr() + ArrayLayout.Offset("count"))
	if count != 0 {
		t.Fatalf("count = %d", count)
	}
	entries, _ := a.ReadU32(owned.Ptr() + ArrayLayout.Offset("entries"))
	if entries == 0 {
		t.Fatal("empty sequence has null entries")
	}
	if size, ok := a.AllocationSize(entries); !ok || size != 4 {
		t.Errorf("entries allocation = %d, %v", size, ok)
	}
	owned.Release()
	assertNoLeaks(t, a)
}

func TestOptionalArrayAbsentVsEmpty(t *testing.T) {
	a := newArena()
	s := NewScope(a, a)
	absent, err := EncodeOptionalTextArray(s, nil)
	if err != nil || absent != 0 {
		t.Fatalf("nil slice encoded as %d, %v", absent, err)
	}
	empty, err := EncodeOptionalTextArray(s, []string{})
	if err != nil || empty == 0 {
		t.Fatalf("empty slice encoded as %d, %v", empty, err)
	}
	s.Commit()

	got, err := DecodeOptionalTextArray(a, absent)
	if err != nil || got != nil {
		t.Fatalf("absent decoded as %#v, %v", got, err)
	}
	got, err = DecodeOptionalTextArray(a, empty)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty decoded as %#v, %v", got, err)
	}

	FreeOptionalTextArray(a, a, absent)
	FreeOptionalTextArray(a, a, empty)
	assertNoLeaks(t, a)
}

func TestNestedArrays(t *testing.T) {
	groups := NewArray[[]string]("TextArrayArray", TextArray)
	in := [][]string{{"hello", "world"}, {}, {"yop"}}

	a := newArena()
	got, err := RoundTrip(groups, a, a, in)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got[1] == nil {
		t.Error("inner empty group decoded as nil")
	}
	assertNoLeaks(t, a)
}

func writeHeader(t *testing.T, a interface {
	Alloc(size, align uint32) (uint32, error)
	WriteU32(offset, value uint32) error
}, entries uint32, count int32) uint32 {
	t.Helper()
	ptr, err := a.Alloc(ArrayLayout.Size, ArrayLayout.Align)
	if err != nil {
		t.Fatal(err)
	}
	_ = a.WriteU32(ptr, entries)
	_ = a.WriteU32(ptr+4, uint32(count))
	return ptr
}

func TestDecodeArrayLengthMismatch(t *testing.T) {
	a := newArena()
	s := NewScope(a, a)
	one, _ := EncodeText(s, "one")
	two, _ := EncodeText(s, "two")
	s.Commit()

	entries, _ := a.Alloc(8, 4)
	_ = a.WriteU32(entries, one)
	_ = a.WriteU32(entries+4, two)

	ptr := writeHeader(t, a, entries, 3)
	_, err := DecodeTextArray(a, ptr, "intent_filter")
	if !errors.HasKind(err, errors.KindArrayLengthMismatch) {
		t.Fatalf("expected array_length_mismatch, got %v", err)
	}

	neg := writeHeader(t, a, entries, -1)
	if _, err := DecodeTextArray(a, neg); !errors.HasKind(err, errors.KindArrayLengthMismatch) {
		t.Fatalf("expected array_length_mismatch for negative count, got %v", err)
	}

	ok := writeHeader(t, a, entries, 2)
	got, err := DecodeTextArray(a, ok)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"one", "two"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeArrayNullElement(t *testing.T) {
	a := newArena()
	entries, _ := a.Alloc(4, 4)
	ptr := writeHeader(t, a, entries, 1)

	_, err := DecodeTextArray(a, ptr, "intent_filter")
	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindNilPointer {
		t.Fatalf("expected nil_pointer, got %v", err)
	}
	if diff := cmp.Diff([]string{"intent_filter", "[0]"}, e.Path); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
}

func TestEncodeArrayFailureRollsBack(t *testing.T) {
	a := newArena()
	_, err := TextArray.Encode(a, a, []string{"fine", "also fine", "bro\x00ken"})
	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindEncoding {
		t.Fatalf("expected encoding error, got %v", err)
	}
	if e.Type != "TextArray" {
		t.Errorf("type = %q", e.Type)
	}
	if diff := cmp.Diff([]string{"[2]"}, e.Path); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
	assertNoLeaks(t, a)
}
