package asr

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/heap"
	"github.com/wippyai/hermes-abi/ontology"
)

func token(value string, confidence float32, start, end int, ts, te float32) ontology.AsrToken {
	return ontology.AsrToken{
		Value:      value,
		Confidence: confidence,
		RangeStart: start,
		RangeEnd:   end,
		Time:       ontology.AsrDecodingDuration{Start: ts, End: te},
	}
}

func TestTokenLayout(t *testing.T) {
	if TokenLayout.Size != 24 || TokenLayout.Align != 4 {
		t.Fatalf("size %d align %d", TokenLayout.Size, TokenLayout.Align)
	}
	if off := TokenLayout.Offset("time_end"); off != 20 {
		t.Errorf("time_end at %d", off)
	}
}

func TestTokenGroupsRoundTrip(t *testing.T) {
	groups := [][]ontology.AsrToken{
		{
			token("hello", 0.98, 1, 4, 0, 5),
			token("world", 0.73, 5, 9, 0, 5),
		},
		{},
		{
			token("yop", 0.97, 5, 1, 1, 4.5),
		},
	}

	a := heap.NewArena(heap.Config{})
	got, err := codec.RoundTrip(TokenDoubleArray, a, a, groups)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(groups, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if len(got) != 3 || got[1] == nil || len(got[1]) != 0 {
		t.Errorf("group boundaries lost: %#v", got)
	}
	if live := a.Live(); len(live) != 0 {
		t.Fatalf("leaked %d blocks", len(live))
	}
}

func TestTokenRangeOverflow(t *testing.T) {
	if math.MaxInt == math.MaxInt32 {
		t.Skip("int is 32 bits")
	}
	var big int64 = math.MaxInt32 + 1
	a := heap.NewArena(heap.Config{})
	groups := [][]ontology.AsrToken{{token("ok", 1, 0, 1, 0, 1), token("big", 1, 0, int(big), 0, 1)}}
	_, err := TokenDoubleArray.Encode(a, a, groups)

	var e *errors.Error
	if !asError(err, &e) || e.Kind != errors.KindOverflow {
		t.Fatalf("expected overflow, got %v", err)
	}
	if got, want := e.Error(), "[encode] overflow at AsrTokenDoubleArray[0][1].range_end"; !strings.HasPrefix(got, want) {
		t.Errorf("error = %q", got)
	}
	if live := a.Live(); len(live) != 0 {
		t.Fatalf("leaked %d blocks", len(live))
	}
}

func TestTokenNullValue(t *testing.T) {
	a := heap.NewArena(heap.Config{})
	owned, err := Token.Encode(a, a, token("x", 0.5, 0, 1, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	defer owned.Release()

	value, _ := a.ReadU32(owned.Ptr())
	_ = a.WriteU32(owned.Ptr(), 0)
	_, err = Token.Decode(a, owned.Ptr())
	_ = a.WriteU32(owned.Ptr(), value)

	if !errors.HasKind(err, errors.KindNilPointer) {
		t.Fatalf("expected nil_pointer, got %v", err)
	}
}
