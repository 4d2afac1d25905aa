package dialogue

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/ontology"
)

var DialogueConfigureIntentLayout = codec.MustLayout("DialogueConfigureIntent",
	codec.Ptr("intent_id"),
	codec.U8("enable"),
)

// DialogueConfigureIntent stores Enable as a tri-state byte.
var DialogueConfigureIntent = codec.New[ontology.DialogueConfigureIntent]("DialogueConfigureIntent", DialogueConfigureIntentLayout,
	func(s *codec.Scope, v ontology.DialogueConfigureIntent) (uint32, error) {
		w, err := s.NewRecord(DialogueConfigureIntentLayout)
		if err != nil {
			return 0, err
		}
		w.Text("intent_id", v.IntentID)
		w.SetU8("enable", codec.EncodeTriState(v.Enable))
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.DialogueConfigureIntent, error) {
		r := codec.ReadRecord(mem, DialogueConfigureIntentLayout, ptr)
		v := ontology.DialogueConfigureIntent{
			IntentID: r.Text("intent_id"),
			Enable:   codec.DecodeTriState(r.U8("enable")),
		}
		if err := r.Err(); err != nil {
			return ontology.DialogueConfigureIntent{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, DialogueConfigureIntentLayout, ptr)
		f.Text("intent_id")
		f.Done()
	},
)

var DialogueConfigureIntentArray = codec.NewArray[ontology.DialogueConfigureIntent]("DialogueConfigureIntentArray", DialogueConfigureIntent)

var DialogueConfigureMessageLayout = codec.MustLayout("DialogueConfigureMessage",
	codec.Ptr("site_id"),
	codec.Ptr("intents"),
)

var DialogueConfigureMessage = codec.New[ontology.DialogueConfigureMessage]("DialogueConfigureMessage", DialogueConfigureMessageLayout,
	func(s *codec.Scope, m ontology.DialogueConfigureMessage) (uint32, error) {
		w, err := s.NewRecord(DialogueConfigureMessageLayout)
		if err != nil {
			return 0, err
		}
		w.OptionalText("site_id", m.SiteID)
		codec.PutSlice(w, "intents", DialogueConfigureIntentArray, m.Intents)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.DialogueConfigureMessage, error) {
		r := codec.ReadRecord(mem, DialogueConfigureMessageLayout, ptr)
		m := ontology.DialogueConfigureMessage{
			SiteID:  r.OptionalText("site_id"),
			Intents: codec.GetSlice(r, "intents", DialogueConfigureIntentArray),
		}
		if err := r.Err(); err != nil {
			return ontology.DialogueConfigureMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, DialogueConfigureMessageLayout, ptr)
		f.Text("site_id")
		f.Free("intents", DialogueConfigureIntentArray.Free)
		f.Done()
	},
)

func init() {
	codec.Register(IntentMessage)
	codec.Register(IntentNotRecognizedMessage)
	codec.Register(ActionSessionInit)
	codec.Register(StartSessionMessage)
	codec.Register(SessionStartedMessage)
	codec.Register(SessionQueuedMessage)
	codec.Register(ContinueSessionMessage)
	codec.Register(EndSessionMessage)
	codec.Register(SessionEndedMessage)
	codec.Register(DialogueConfigureIntent)
	codec.Register(DialogueConfigureIntentArray)
	codec.Register(DialogueConfigureMessage)
}
