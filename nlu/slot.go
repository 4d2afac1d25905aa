package nlu

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/ontology"
)

var SlotLayout = codec.MustLayout("NluSlot",
	codec.Ptr("raw_value"),
	codec.Ptr("value"),
	codec.S32("range_start"),
	codec.S32("range_end"),
	codec.Ptr("entity"),
	codec.Ptr("slot_name"),
	codec.F32("confidence_score"),
)

var (
	Slot      = codec.New[ontology.NluSlot]("NluSlot", SlotLayout, lowerSlot, liftSlot, freeSlot)
	SlotArray = codec.NewArray[ontology.NluSlot]("NluSlotArray", Slot)
)

func init() {
	codec.Register(IntentClassifierResult)
	codec.Register(SlotValue)
	codec.Register(InstantTime)
	codec.Register(TimeInterval)
	codec.Register(AmountOfMoney)
	codec.Register(Temperature)
	codec.Register(Duration)
	codec.Register(Slot)
	codec.Register(SlotArray)
}

func lowerSlot(s *codec.Scope, v ontology.NluSlot) (uint32, error) {
	w, err := s.NewRecord(SlotLayout)
	if err != nil {
		return 0, err
	}
	w.Fail("confidence_score", codec.CheckConfidence(v.ConfidenceScore))
	w.Text("raw_value", v.RawValue)
	codec.Put(w, "value", SlotValue, v.Value)
	w.SetInt("range_start", v.RangeStart)
	w.SetInt("range_end", v.RangeEnd)
	w.Text("entity", v.Entity)
	w.Text("slot_name", v.SlotName)
	w.SetF32("confidence_score", codec.EncodeConfidence(v.ConfidenceScore))
	return w.Finish()
}

func liftSlot(mem codec.Memory, ptr uint32) (ontology.NluSlot, error) {
	r := codec.ReadRecord(mem, SlotLayout, ptr)
	v := ontology.NluSlot{
		RawValue:        r.Text("raw_value"),
		Value:           codec.Get(r, "value", SlotValue),
		RangeStart:      r.Int("range_start"),
		RangeEnd:        r.Int("range_end"),
		Entity:          r.Text("entity"),
		SlotName:        r.Text("slot_name"),
		ConfidenceScore: codec.DecodeConfidence(r.F32("confidence_score")),
	}
	if err := r.Err(); err != nil {
		return ontology.NluSlot{}, err
	}
	return v, nil
}

func freeSlot(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
	f := codec.FreeRecord(mem, alloc, SlotLayout, ptr)
	f.Text("raw_value")
	f.Free("value", SlotValue.Free)
	f.Text("entity")
	f.Text("slot_name")
	f.Done()
}
