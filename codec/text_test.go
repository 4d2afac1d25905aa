package codec

import (
	"bytes"
	"testing"

	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/heap"
	"github.com/wippyai/hermes-abi/internal/abi"
)

func newArena() *heap.Arena {
	return heap.NewArena(heap.Config{})
}

func assertNoLeaks(t *testing.T, a *heap.Arena) {
	t.Helper()
	if live := a.Live(); len(live) != 0 {
		t.Fatalf("%d allocations still live: %+v", len(live), live)
	}
}

func TestTextRoundTrip(t *testing.T) {
	tests := []string{"", "hello", "Guadeloupe", "héllo wörld ☃", "a\nb\tc"}
	for _, tt := range tests {
		a := newArena()
		s := NewScope(a, a)
		ptr, err := EncodeText(s, tt)
		if err != nil {
			t.Fatalf("EncodeText(%q): %v", tt, err)
		}
		s.Commit()

		raw, _ := a.Read(ptr, uint32(len(tt))+1)
		if raw[len(tt)] != 0 {
			t.Errorf("EncodeText(%q) not NUL-terminated", tt)
		}

		got, err := DecodeText(a, ptr)
		if err != nil {
			t.Fatalf("DecodeText: %v", err)
		}
		if got != tt {
			t.Errorf("round trip = %q, want %q", got, tt)
		}

		FreeText(a, a, ptr)
		assertNoLeaks(t, a)
	}
}

func TestEncodeTextRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"interior NUL", "ab\x00cd"},
		{"trailing NUL", "ab\x00"},
		{"invalid UTF-8", "ab\xffcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newArena()
			s := NewScope(a, a)
			_, err := EncodeText(s, tt.in)
			if !errors.HasKind(err, errors.KindEncoding) {
				t.Fatalf("expected encoding error, got %v", err)
			}
			s.Rollback()
			assertNoLeaks(t, a)
		})
	}
}

func TestDecodeTextNull(t *testing.T) {
	a := newArena()
	_, err := DecodeText(a, 0, "site_id")
	if !errors.HasKind(err, errors.KindNilPointer) {
		t.Fatalf("expected nil_pointer, got %v", err)
	}
	var e *errors.Error
	if !asError(err, &e) || e.Field() != "site_id" {
		t.Fatalf("error does not name the field: %v", err)
	}
}

func TestDecodeTextInvalidUTF8(t *testing.T) {
	a := newArena()
	ptr, _ := a.Alloc(4, 1)
	_ = a.Write(ptr, []byte{'a', 0xc3, 0x28, 0})
	if _, err := DecodeText(a, ptr); !errors.HasKind(err, errors.KindEncoding) {
		t.Fatalf("expected encoding error, got %v", err)
	}
}

func TestDecodeTextUnterminated(t *testing.T) {
	b := heap.NewBuffer(128, 0)
	for i := uint32(0); i < 128; i++ {
		_ = b.WriteU8(i, 'x')
	}
	if _, err := DecodeText(b, 100); !errors.HasKind(err, errors.KindOutOfBounds) {
		t.Fatalf("expected out_of_bounds, got %v", err)
	}
}

// patternMemory reads as 'x' everywhere except a terminator at nul. Chunk
// reads at failAt fail, forcing a single-byte step.
type patternMemory struct {
	Memory
	nul    uint32
	failAt uint32
}

func (m *patternMemory) Read(off, n uint32) ([]byte, error) {
	if off == m.failAt {
		return nil, errors.OutOfBounds(errors.PhaseDecode, nil, off, n, nil)
	}
	b := bytes.Repeat([]byte{'x'}, int(n))
	if m.nul >= off && m.nul-off < n {
		b[m.nul-off] = 0
	}
	return b, nil
}

func (m *patternMemory) ReadU8(off uint32) (uint8, error) {
	if off == m.nul {
		return 0, nil
	}
	return 'x', nil
}

func TestTextLenLimit(t *testing.T) {
	const ptr = 8
	tests := []struct {
		name    string
		mem     *patternMemory
		want    uint32
		wantErr bool
	}{
		{"longest", &patternMemory{nul: ptr + abi.MaxStringSize - 1, failAt: ^uint32(0)}, abi.MaxStringSize - 1, false},
		{"too long after byte step", &patternMemory{nul: ptr + abi.MaxStringSize, failAt: ptr}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := textLen(tt.mem, ptr, errors.PhaseDecode, nil)
			if tt.wantErr {
				if !errors.HasKind(err, errors.KindOverflow) {
					t.Fatalf("expected overflow, got %d, %v", n, err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if n != tt.want {
				t.Errorf("len = %d, want %d", n, tt.want)
			}
		})
	}
}

func TestTextNearEndOfMemory(t *testing.T) {
	b := heap.NewBuffer(32, 0)
	_ = b.Write(28, []byte("abc\x00"))
	got, err := DecodeText(b, 28)
	if err != nil {
		t.Fatal(err)
	}
	if got != "abc" {
		t.Fatalf("got %q", got)
	}
}

func TestOptionalText(t *testing.T) {
	a := newArena()
	s := NewScope(a, a)
	ptr, err := EncodeOptionalText(s, nil)
	if err != nil || ptr != 0 {
		t.Fatalf("nil text encoded as %d, %v", ptr, err)
	}
	if s.Count() != 0 {
		t.Fatalf("absent text allocated %d blocks", s.Count())
	}
	got, err := DecodeOptionalText(a, 0)
	if err != nil || got != nil {
		t.Fatalf("DecodeOptionalText(0) = %v, %v", got, err)
	}

	empty := ""
	ptr, err = EncodeOptionalText(s, &empty)
	if err != nil || ptr == 0 {
		t.Fatalf("empty text encoded as %d, %v", ptr, err)
	}
	s.Commit()
	got, err = DecodeOptionalText(a, ptr)
	if err != nil || got == nil || *got != "" {
		t.Fatalf("empty text decoded as %v, %v", got, err)
	}
	FreeOptionalText(a, a, ptr)
	FreeOptionalText(a, a, 0)
	assertNoLeaks(t, a)
}
