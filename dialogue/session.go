package dialogue

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/ontology"
)

var StartSessionMessageLayout = codec.MustLayout("StartSessionMessage",
	codec.Inline("init", SessionInitLayout),
	codec.Ptr("custom_data"),
	codec.Ptr("site_id"),
)

var StartSessionMessage = codec.New[ontology.StartSessionMessage]("StartSessionMessage", StartSessionMessageLayout,
	func(s *codec.Scope, m ontology.StartSessionMessage) (uint32, error) {
		w, err := s.NewRecord(StartSessionMessageLayout)
		if err != nil {
			return 0, err
		}
		putSessionInit(w.At("init"), m.Init)
		w.OptionalText("custom_data", m.CustomData)
		w.OptionalText("site_id", m.SiteID)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.StartSessionMessage, error) {
		r := codec.ReadRecord(mem, StartSessionMessageLayout, ptr)
		m := ontology.StartSessionMessage{
			Init:       getSessionInit(r.At("init")),
			CustomData: r.OptionalText("custom_data"),
			SiteID:     r.OptionalText("site_id"),
		}
		if err := r.Err(); err != nil {
			return ontology.StartSessionMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, StartSessionMessageLayout, ptr)
		freeSessionInit(f.At("init"))
		f.Text("custom_data")
		f.Text("site_id")
		f.Done()
	},
)

var SessionStartedMessageLayout = codec.MustLayout("SessionStartedMessage",
	codec.Ptr("session_id"),
	codec.Ptr("custom_data"),
	codec.Ptr("site_id"),
	codec.Ptr("reactivated_from_session_id"),
)

var SessionStartedMessage = codec.New[ontology.SessionStartedMessage]("SessionStartedMessage", SessionStartedMessageLayout,
	func(s *codec.Scope, m ontology.SessionStartedMessage) (uint32, error) {
		w, err := s.NewRecord(SessionStartedMessageLayout)
		if err != nil {
			return 0, err
		}
		w.Text("session_id", m.SessionID)
		w.OptionalText("custom_data", m.CustomData)
		w.Text("site_id", m.SiteID)
		w.OptionalText("reactivated_from_session_id", m.ReactivatedFromSessionID)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.SessionStartedMessage, error) {
		r := codec.ReadRecord(mem, SessionStartedMessageLayout, ptr)
		m := ontology.SessionStartedMessage{
			SessionID:                r.Text("session_id"),
			CustomData:               r.OptionalText("custom_data"),
			SiteID:                   r.Text("site_id"),
			ReactivatedFromSessionID: r.OptionalText("reactivated_from_session_id"),
		}
		if err := r.Err(); err != nil {
			return ontology.SessionStartedMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, SessionStartedMessageLayout, ptr)
		f.Text("session_id")
		f.Text("custom_data")
		f.Text("site_id")
		f.Text("reactivated_from_session_id")
		f.Done()
	},
)

var SessionQueuedMessageLayout = codec.MustLayout("SessionQueuedMessage",
	codec.Ptr("session_id"),
	codec.Ptr("custom_data"),
	codec.Ptr("site_id"),
)

var SessionQueuedMessage = codec.New[ontology.SessionQueuedMessage]("SessionQueuedMessage", SessionQueuedMessageLayout,
	func(s *codec.Scope, m ontology.SessionQueuedMessage) (uint32, error) {
		w, err := s.NewRecord(SessionQueuedMessageLayout)
		if err != nil {
			return 0, err
		}
		w.Text("session_id", m.SessionID)
		w.OptionalText("custom_data", m.CustomData)
		w.Text("site_id", m.SiteID)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.SessionQueuedMessage, error) {
		r := codec.ReadRecord(mem, SessionQueuedMessageLayout, ptr)
		m := ontology.SessionQueuedMessage{
			SessionID:  r.Text("session_id"),
			CustomData: r.OptionalText("custom_data"),
			SiteID:     r.Text("site_id"),
		}
		if err := r.Err(); err != nil {
			return ontology.SessionQueuedMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, SessionQueuedMessageLayout, ptr)
		f.Text("session_id")
		f.Text("custom_data")
		f.Text("site_id")
		f.Done()
	},
)

var ContinueSessionMessageLayout = codec.MustLayout("ContinueSessionMessage",
	codec.Ptr("session_id"),
	codec.Ptr("text"),
	codec.Ptr("intent_filter"),
	codec.Ptr("custom_data"),
	codec.Ptr("slot"),
	codec.U8("send_intent_not_recognized"),
)

var ContinueSessionMessage = codec.New[ontology.ContinueSessionMessage]("ContinueSessionMessage", ContinueSessionMessageLayout,
	func(s *codec.Scope, m ontology.ContinueSessionMessage) (uint32, error) {
		w, err := s.NewRecord(ContinueSessionMessageLayout)
		if err != nil {
			return 0, err
		}
		w.Text("session_id", m.SessionID)
		w.Text("text", m.Text)
		codec.PutSlice(w, "intent_filter", codec.TextArray, m.IntentFilter)
		w.OptionalText("custom_data", m.CustomData)
		w.OptionalText("slot", m.Slot)
		w.SetU8("send_intent_not_recognized", codec.EncodeBool(m.SendIntentNotRecognized))
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.ContinueSessionMessage, error) {
		r := codec.ReadRecord(mem, ContinueSessionMessageLayout, ptr)
		m := ontology.ContinueSessionMessage{
			SessionID:               r.Text("session_id"),
			Text:                    r.Text("text"),
			IntentFilter:            codec.GetSlice(r, "intent_filter", codec.TextArray),
			CustomData:              r.OptionalText("custom_data"),
			Slot:                    r.OptionalText("slot"),
			SendIntentNotRecognized: codec.DecodeBool(r.U8("send_intent_not_recognized")),
		}
		if err := r.Err(); err != nil {
			return ontology.ContinueSessionMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, ContinueSessionMessageLayout, ptr)
		f.Text("session_id")
		f.Text("text")
		f.Free("intent_filter", codec.TextArray.Free)
		f.Text("custom_data")
		f.Text("slot")
		f.Done()
	},
)

var EndSessionMessageLayout = codec.MustLayout("EndSessionMessage",
	codec.Ptr("session_id"),
	codec.Ptr("text"),
)

var EndSessionMessage = codec.New[ontology.EndSessionMessage]("EndSessionMessage", EndSessionMessageLayout,
	func(s *codec.Scope, m ontology.EndSessionMessage) (uint32, error) {
		w, err := s.NewRecord(EndSessionMessageLayout)
		if err != nil {
			return 0, err
		}
		w.Text("session_id", m.SessionID)
		w.OptionalText("text", m.Text)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.EndSessionMessage, error) {
		r := codec.ReadRecord(mem, EndSessionMessageLayout, ptr)
		m := ontology.EndSessionMessage{
			SessionID: r.Text("session_id"),
			Text:      r.OptionalText("text"),
		}
		if err := r.Err(); err != nil {
			return ontology.EndSessionMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, EndSessionMessageLayout, ptr)
		f.Text("session_id")
		f.Text("text")
		f.Done()
	},
)

var SessionEndedMessageLayout = codec.MustLayout("SessionEndedMessage",
	codec.Ptr("session_id"),
	codec.Ptr("custom_data"),
	codec.Inline("termination", SessionTerminationLayout),
	codec.Ptr("site_id"),
)

var SessionEndedMessage = codec.New[ontology.SessionEndedMessage]("SessionEndedMessage", SessionEndedMessageLayout,
	func(s *codec.Scope, m ontology.SessionEndedMessage) (uint32, error) {
		w, err := s.NewRecord(SessionEndedMessageLayout)
		if err != nil {
			return 0, err
		}
		w.Text("session_id", m.SessionID)
		w.OptionalText("custom_data", m.CustomData)
		putTermination(w.At("termination"), m.Termination)
		w.Text("site_id", m.SiteID)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.SessionEndedMessage, error) {
		r := codec.ReadRecord(mem, SessionEndedMessageLayout, ptr)
		m := ontology.SessionEndedMessage{
			SessionID:   r.Text("session_id"),
			CustomData:  r.OptionalText("custom_data"),
			Termination: getTermination(r.At("termination")),
			SiteID:      r.Text("site_id"),
		}
		if err := r.Err(); err != nil {
			return ontology.SessionEndedMessage{}, err
		}
		return m, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, SessionEndedMessageLayout, ptr)
		f.Text("session_id")
		f.Text("custom_data")
		freeTermination(f.At("termination"))
		f.Text("site_id")
		f.Done()
	},
)
