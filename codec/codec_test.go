package codec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wippyai/hermes-abi/errors"
)

type pair struct {
	Name  string
	Label *string
	Score float32
	Count int32
}

var (
	innerLayout = MustLayout("Inner", U32("tag"), S64("when"))
	pairLayout  = MustLayout("Pair",
		Ptr("name"),
		Ptr("label"),
		F32("score"),
		S32("count"),
		Inline("inner", innerLayout),
	)
)

var pairCodec = New[pair]("Pair", pairLayout,
	func(s *Scope, v pair) (uint32, error) {
		w, err := s.NewRecord(pairLayout)
		if err != nil {
			return 0, err
		}
		w.Text("name", v.Name)
		w.OptionalText("label", v.Label)
		w.SetF32("score", v.Score)
		w.SetS32("count", v.Count)
		in := w.At("inner")
		in.SetU32("tag", 7)
		in.SetS64("when", -3)
		return w.Finish()
	},
	func(mem Memory, ptr uint32) (pair, error) {
		r := ReadRecord(mem, pairLayout, ptr)
		v := pair{
			Name:  r.Text("name"),
			Label: r.OptionalText("label"),
			Score: r.F32("score"),
			Count: r.S32("count"),
		}
		if tag := r.At("inner").U32("tag"); tag != 7 {
			r.At("inner").Fail("tag", CheckDiscriminant(tag, 1))
		}
		if err := r.Err(); err != nil {
			return pair{}, err
		}
		return v, nil
	},
	func(mem Memory, alloc Allocator, ptr uint32) {
		f := FreeRecord(mem, alloc, pairLayout, ptr)
		f.Text("name")
		f.Text("label")
		f.Done()
	},
)

func TestLayout(t *testing.T) {
	if pairLayout.Size != 32 || pairLayout.Align != 8 {
		t.Fatalf("Pair layout = size %d align %d", pairLayout.Size, pairLayout.Align)
	}
	want := map[string]uint32{"name": 0, "label": 4, "score": 8, "count": 12, "inner": 16}
	for name, off := range want {
		if got := pairLayout.Offset(name); got != off {
			t.Errorf("offset(%s) = %d, want %d", name, got, off)
		}
	}
	if def := pairLayout.WIT(); def == nil || def.Name == nil || *def.Name != "Pair" {
		t.Error("layout has no WIT definition")
	}
}

func TestLayoutUnknownFieldPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	pairLayout.Offset("missing")
}

func TestCodecRoundTrip(t *testing.T) {
	label := "with label"
	tests := []pair{
		{Name: "plain", Score: 0.5, Count: 3},
		{Name: "", Label: &label, Score: -1, Count: -9},
	}
	for _, tt := range tests {
		a := newArena()
		got, err := RoundTrip(pairCodec, a, a, tt)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(tt, got); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
		assertNoLeaks(t, a)
	}
}

func TestDecodeNullRoot(t *testing.T) {
	a := newArena()
	_, err := pairCodec.Decode(a, 0)
	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindNilPointer || e.Type != "Pair" {
		t.Fatalf("got %v", err)
	}
}

func TestDecodeNullField(t *testing.T) {
	a := newArena()
	owned, err := pairCodec.Encode(a, a, pair{Name: "x"})
	if err != nil {
		t.Fatal(err)
	}
	defer owned.Release()

	name, _ := a.ReadU32(owned.Ptr())
	_ = a.WriteU32(owned.Ptr(), 0)
	defer func() { _ = a.WriteU32(owned.Ptr(), name) }()

	_, err = pairCodec.Decode(a, owned.Ptr())
	if err == nil {
		t.Fatal("expected error")
	}
	if got, want := err.Error(), "[decode] nil_pointer at Pair.name: unexpected null pointer"; got != want {
		t.Errorf("error = %q, want %q", got, want)
	}
}

func TestDecodeInlineFieldPath(t *testing.T) {
	a := newArena()
	owned, err := pairCodec.Encode(a, a, pair{Name: "x"})
	if err != nil {
		t.Fatal(err)
	}
	defer owned.Release()
	_ = a.WriteU32(owned.Ptr()+pairLayout.Offset("inner"), 9)

	_, err = pairCodec.Decode(a, owned.Ptr())
	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindInvalidUnion {
		t.Fatalf("got %v", err)
	}
	if diff := cmp.Diff([]string{"inner", "tag"}, e.Path); diff != "" {
		t.Errorf("path (-want +got):\n%s", diff)
	}
}

func TestEncodeFailureIsFailFast(t *testing.T) {
	a := newArena()
	bad := "bad\x00label"
	_, err := pairCodec.Encode(a, a, pair{Name: "fine", Label: &bad})
	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindEncoding {
		t.Fatalf("got %v", err)
	}
	if e.Field() != "label" || e.Type != "Pair" {
		t.Errorf("error at %s.%s", e.Type, e.Field())
	}
	assertNoLeaks(t, a)
	if s := a.Stats(); s.Allocs != 2 {
		t.Errorf("allocations before failure = %d, want 2 (record and name)", s.Allocs)
	}
}

func TestReleaseTwicePanics(t *testing.T) {
	a := newArena()
	owned, err := pairCodec.Encode(a, a, pair{Name: "once"})
	if err != nil {
		t.Fatal(err)
	}
	owned.Release()
	if !owned.Released() {
		t.Fatal("handle not marked released")
	}
	assertNoLeaks(t, a)
	expectViolation(t, errors.KindDoubleFree, owned.Release)
}

func TestDecodeIsIndependentOfRelease(t *testing.T) {
	a := newArena()
	label := "kept"
	owned, _ := pairCodec.Encode(a, a, pair{Name: "copy", Label: &label})
	got, err := pairCodec.Decode(a, owned.Ptr())
	if err != nil {
		t.Fatal(err)
	}
	owned.Release()

	// Reuse and overwrite the freed memory.
	_, _ = pairCodec.Encode(a, a, pair{Name: "zzzz", Label: &label})
	if got.Name != "copy" || *got.Label != "kept" {
		t.Fatalf("decoded value changed after release: %+v", got)
	}
}

func TestRecode(t *testing.T) {
	a := newArena()
	owned, _ := pairCodec.Encode(a, a, pair{Name: "recode", Count: 4})
	again, err := pairCodec.Recode(a, a, owned.Ptr())
	if err != nil {
		t.Fatal(err)
	}
	if again.Ptr() == owned.Ptr() {
		t.Fatal("recode did not produce a fresh value")
	}
	owned.Release()
	got, err := pairCodec.Decode(a, again.Ptr())
	if err != nil || got.Name != "recode" || got.Count != 4 {
		t.Fatalf("got %+v, %v", got, err)
	}
	again.Release()
	assertNoLeaks(t, a)
}

func TestScopeRollbackAndCommit(t *testing.T) {
	a := newArena()
	s := NewScope(a, a)
	for i := 0; i < 5; i++ {
		if _, err := s.Alloc(16, 8); err != nil {
			t.Fatal(err)
		}
	}
	if s.Count() != 5 {
		t.Fatalf("count = %d", s.Count())
	}
	s.Rollback()
	s.Rollback()
	assertNoLeaks(t, a)

	s = NewScope(a, a)
	ptr, _ := s.Alloc(4, 4)
	s.Commit()
	if _, err := s.Alloc(4, 4); !errors.HasKind(err, errors.KindInvalidInput) {
		t.Fatalf("alloc after commit = %v", err)
	}
	s.Rollback()
	if _, ok := a.AllocationSize(ptr); !ok {
		t.Fatal("rollback after commit freed a committed block")
	}
}

func TestRegistry(t *testing.T) {
	c, ok := Lookup("TextArray")
	if !ok || c.Layout() == nil {
		t.Fatal("TextArray not registered")
	}
	names := make([]string, 0)
	for _, c := range All() {
		names = append(names, c.Name())
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("All() not sorted: %v", names)
		}
	}
}

func TestLastError(t *testing.T) {
	var l LastError
	if _, ok := l.Message(); ok {
		t.Fatal("fresh LastError holds a message")
	}
	if st := l.Record(errors.InvalidInput(errors.PhaseDecode, "boom")); st != StatusError {
		t.Fatalf("status = %d", st)
	}
	if msg, ok := l.Message(); !ok || msg != "[decode] invalid_input: boom" {
		t.Fatalf("message = %q", msg)
	}
	l.Clear()
	if _, ok := l.Message(); ok {
		t.Fatal("Clear kept the message")
	}
}
