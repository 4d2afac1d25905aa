package nlu

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/ontology"
)

var IntentClassifierResultLayout = codec.MustLayout("NluIntentClassifierResult",
	codec.Ptr("intent_name"),
	codec.F32("confidence_score"),
)

var IntentClassifierResult = codec.New[ontology.NluIntentClassifierResult](
	"NluIntentClassifierResult", IntentClassifierResultLayout,
	func(s *codec.Scope, v ontology.NluIntentClassifierResult) (uint32, error) {
		w, err := s.NewRecord(IntentClassifierResultLayout)
		if err != nil {
			return 0, err
		}
		w.Text("intent_name", v.IntentName)
		w.SetF32("confidence_score", v.ConfidenceScore)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.NluIntentClassifierResult, error) {
		r := codec.ReadRecord(mem, IntentClassifierResultLayout, ptr)
		v := ontology.NluIntentClassifierResult{
			IntentName:      r.Text("intent_name"),
			ConfidenceScore: r.F32("confidence_score"),
		}
		if err := r.Err(); err != nil {
			return ontology.NluIntentClassifierResult{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, IntentClassifierResultLayout, ptr)
		f.Text("intent_name")
		f.Done()
	},
)
