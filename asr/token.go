// Package asr holds the boundary codecs of speech recognition tokens.
package asr

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/ontology"
)

var TokenLayout = codec.MustLayout("AsrToken",
	codec.Ptr("value"),
	codec.F32("confidence"),
	codec.S32("range_start"),
	codec.S32("range_end"),
	codec.F32("time_start"),
	codec.F32("time_end"),
)

var (
	Token            = codec.New[ontology.AsrToken]("AsrToken", TokenLayout, lowerToken, liftToken, freeToken)
	TokenArray       = codec.NewArray[ontology.AsrToken]("AsrTokenArray", Token)
	TokenDoubleArray = codec.NewArray[[]ontology.AsrToken]("AsrTokenDoubleArray", TokenArray)
)

func init() {
	codec.Register(Token)
	codec.Register(TokenArray)
	codec.Register(TokenDoubleArray)
}

func lowerToken(s *codec.Scope, t ontology.AsrToken) (uint32, error) {
	w, err := s.NewRecord(TokenLayout)
	if err != nil {
		return 0, err
	}
	w.Text("value", t.Value)
	w.SetF32("confidence", t.Confidence)
	w.SetInt("range_start", t.RangeStart)
	w.SetInt("range_end", t.RangeEnd)
	w.SetF32("time_start", t.Time.Start)
	w.SetF32("time_end", t.Time.End)
	return w.Finish()
}

func liftToken(mem codec.Memory, ptr uint32) (ontology.AsrToken, error) {
	r := codec.ReadRecord(mem, TokenLayout, ptr)
	t := ontology.AsrToken{
		Value:      r.Text("value"),
		Confidence: r.F32("confidence"),
		RangeStart: r.Int("range_start"),
		RangeEnd:   r.Int("range_end"),
		Time: ontology.AsrDecodingDuration{
			Start: r.F32("time_start"),
			End:   r.F32("time_end"),
		},
	}
	if err := r.Err(); err != nil {
		return ontology.AsrToken{}, err
	}
	return t, nil
}

func freeToken(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
	f := codec.FreeRecord(mem, alloc, TokenLayout, ptr)
	f.Text("value")
	f.Done()
}
