package dialogue

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/ontology"
)

// SessionInit discriminants.
const (
	SessionInitAction       uint32 = 1
	SessionInitNotification uint32 = 2
)

var (
	SessionInitLayout = codec.MustLayout("SessionInit",
		codec.U32("init_type"),
		codec.Ptr("value"),
	)
	ActionSessionInitLayout = codec.MustLayout("ActionSessionInit",
		codec.Ptr("text"),
		codec.Ptr("intent_filter"),
		codec.U8("can_be_enqueued"),
		codec.U8("send_intent_not_recognized"),
	)
)

var ActionSessionInit = codec.New[ontology.ActionInit]("ActionSessionInit", ActionSessionInitLayout,
	func(s *codec.Scope, v ontology.ActionInit) (uint32, error) {
		w, err := s.NewRecord(ActionSessionInitLayout)
		if err != nil {
			return 0, err
		}
		w.OptionalText("text", v.Text)
		codec.PutSlice(w, "intent_filter", codec.TextArray, v.IntentFilter)
		w.SetU8("can_be_enqueued", codec.EncodeBool(v.CanBeEnqueued))
		w.SetU8("send_intent_not_recognized", codec.EncodeBool(v.SendIntentNotRecognized))
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.ActionInit, error) {
		r := codec.ReadRecord(mem, ActionSessionInitLayout, ptr)
		v := ontology.ActionInit{
			Text:                    r.OptionalText("text"),
			IntentFilter:            codec.GetSlice(r, "intent_filter", codec.TextArray),
			CanBeEnqueued:           codec.DecodeBool(r.U8("can_be_enqueued")),
			SendIntentNotRecognized: codec.DecodeBool(r.U8("send_intent_not_recognized")),
		}
		if err := r.Err(); err != nil {
			return ontology.ActionInit{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, ActionSessionInitLayout, ptr)
		f.Text("text")
		f.Free("intent_filter", codec.TextArray.Free)
		f.Done()
	},
)

// putSessionInit fills an embedded SessionInit. A notification stores the
// text pointer itself as payload; an action points at its own record.
func putSessionInit(w *codec.RecordWriter, init ontology.SessionInit) {
	switch v := init.(type) {
	case ontology.NotificationInit:
		w.SetU32("init_type", SessionInitNotification)
		w.Text("value", v.Text)
	case ontology.ActionInit:
		w.SetU32("init_type", SessionInitAction)
		codec.Put(w, "value", ActionSessionInit, v)
	case nil:
		w.Fail("", errors.Encoding(nil, "missing session init"))
	default:
		w.Fail("", errors.Encoding(nil, "unsupported session init %T", v))
	}
}

func getSessionInit(r *codec.RecordReader) ontology.SessionInit {
	tag := r.U32("init_type")
	payload := r.Ptr("value")
	if r.Err() != nil {
		return nil
	}
	if err := codec.CheckDiscriminant(tag, SessionInitNotification); err != nil {
		r.Fail("init_type", err)
		return nil
	}
	if payload == 0 {
		r.Fail("value", errors.New(errors.PhaseDecode, errors.KindInvalidUnion).
			Detail("null payload for session init type %d", tag).
			Value(tag).
			Build())
		return nil
	}

	switch tag {
	case SessionInitAction:
		v, err := ActionSessionInit.Lift(r.Memory(), payload)
		if err != nil {
			r.Fail("value", err)
			return nil
		}
		return v
	default:
		text, err := codec.DecodeText(r.Memory(), payload)
		if err != nil {
			r.Fail("value", err)
			return nil
		}
		return ontology.NotificationInit{Text: text}
	}
}

// freeSessionInit branches on the same discriminant as decode.
func freeSessionInit(f *codec.RecordFreer) {
	switch tag := f.U32("init_type"); tag {
	case SessionInitAction:
		f.Free("value", ActionSessionInit.Free)
	case SessionInitNotification:
		f.Text("value")
	default:
		codec.UnknownDiscriminant("SessionInit", tag)
	}
}
