package dialogue

import (
	"github.com/wippyai/hermes-abi/asr"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/nlu"
	"github.com/wippyai/hermes-abi/ontology"
)

var IntentMessageLayout = codec.MustLayout("IntentMessage",
	codec.Ptr("session_id"),
	codec.Ptr("custom_data"),
	codec.Ptr("site_id"),
	codec.Ptr("input"),
	codec.Ptr("intent"),
	codec.Ptr("slots"),
	codec.Ptr("asr_tokens"),
	codec.F32("asr_confidence"),
)

// IntentMessage encodes an empty slot list as null and decodes null as an
// empty list.
var IntentMessage = codec.New[ontology.IntentMessage]("IntentMessage", IntentMessageLayout,
	func(s *codec.Scope, m ontology.IntentMessage) (uint32, error) {
		w, err := s.NewRecord(IntentMessageLayout)
		if err != nil {
			return 0, err
		}
		w.Fail("asr_confidence", codec.CheckConfidence(m.AsrConfidence))
		w.Text("session_id", m.SessionID)
		w.OptionalText("custom_data", m.CustomData)
		w.Text("site_id", m.SiteID)
		w.Text("input", m.Input)
		codec.Put(w, "intent", nlu.IntentClassifierResult, m.Intent)
		if len(m.Slots) > 0 {
			codec.Put(w, "slots", nlu.SlotArray, m.Slots)
		}
		codec.PutSlice(w, "asr_tokens", asr.TokenDoubleArray, m.AsrTokens)
		w.SetF32("asr_confidence", codec.EncodeConfidence(m.AsrConfidence))
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.IntentMessage, error) {
		r := codec.ReadRecord(mem, IntentMessageLayout, ptr)
		m := ontology.IntentMessage{
			SessionID:     r.Text("session_id"),
			CustomData:    r.OptionalText("custom_data"),
			SiteID:        r.Text("site_id"),
			Input:         r.Text("input"),
			Intent:        codec.Get(r, "intent", nlu.IntentClassifierResult),
			Slots:         codec.GetSlice(r, "slots", nlu.SlotArray),
			AsrTokens:     codec.GetSlice(r, "asr_tokens", asr.TokenDoubleArray),
			AsrConfidence: codec.DecodeConfidence(r.F32("asr_confidence")),
		}
		if err := r.Err(); err != nil {
			return ontology.IntentMessage{}, err
		}
		if m.Slots == nil {
			m.Slots = []ontology.NluSlot{}
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, IntentMessageLayout, ptr)
		f.Text("session_id")
		f.Text("custom_data")
		f.Text("site_id")
		f.Text("input")
		f.Free("intent", nlu.IntentClassifierResult.Free)
		f.Free("slots", nlu.SlotArray.Free)
		f.Free("asr_tokens", asr.TokenDoubleArray.Free)
		f.Done()
	},
)

var IntentNotRecognizedMessageLayout = codec.MustLayout("IntentNotRecognizedMessage",
	codec.Ptr("site_id"),
	codec.Ptr("session_id"),
	codec.Ptr("input"),
	codec.Ptr("custom_data"),
	codec.F32("confidence_score"),
)

var IntentNotRecognizedMessage = codec.New[ontology.IntentNotRecognizedMessage](
	"IntentNotRecognizedMessage", IntentNotRecognizedMessageLayout,
	func(s *codec.Scope, m ontology.IntentNotRecognizedMessage) (uint32, error) {
		w, err := s.NewRecord(IntentNotRecognizedMessageLayout)
		if err != nil {
			return 0, err
		}
		w.Text("site_id", m.SiteID)
		w.Text("session_id", m.SessionID)
		w.OptionalText("input", m.Input)
		w.OptionalText("custom_data", m.CustomData)
		w.SetF32("confidence_score", m.ConfidenceScore)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.IntentNotRecognizedMessage, error) {
		r := codec.ReadRecord(mem, IntentNotRecognizedMessageLayout, ptr)
		m := ontology.IntentNotRecognizedMessage{
			SiteID:          r.Text("site_id"),
			SessionID:       r.Text("session_id"),
			Input:           r.OptionalText("input"),
			CustomData:      r.OptionalText("custom_data"),
			ConfidenceScore: r.F32("confidence_score"),
		}
		if err := r.Err(); err != nil {
			return ontology.IntentNotRecognizedMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, IntentNotRecognizedMessageLayout, ptr)
		f.Text("site_id")
		f.Text("session_id")
		f.Text("input")
		f.Text("custom_data")
		f.Done()
	},
)
