package cli

import (
	"sort"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/dialogue"
	"github.com/wippyai/hermes-abi/ontology"
	"gopkg.in/yaml.v3"
)

// messageType binds a typed codec to the untyped fixture and sample
// machinery. check round-trips a value and returns a go-cmp diff, empty
// when the copy matches.
type messageType struct {
	decode func(*yaml.Node) (any, error)
	check  func(v any, mem codec.Memory, alloc codec.Allocator) (string, error)
	sample func() any
	name   string
}

func newMessageType[T any](c *codec.Codec[T], sample func() T, normalize func(*T)) messageType {
	return messageType{
		name: c.Name(),
		decode: func(n *yaml.Node) (any, error) {
			var v T
			if err := n.Decode(&v); err != nil {
				return nil, err
			}
			return v, nil
		},
		check: func(v any, mem codec.Memory, alloc codec.Allocator) (string, error) {
			want := v.(T)
			got, err := codec.RoundTrip(c, mem, alloc, want)
			if err != nil {
				return "", err
			}
			if normalize != nil {
				normalize(&want)
			}
			return cmp.Diff(want, got), nil
		},
		sample: func() any { return sample() },
	}
}

var messageTypes = map[string]messageType{}

func addMessageType(t messageType) { messageTypes[t.name] = t }

func messageTypeNames() []string {
	out := make([]string, 0, len(messageTypes))
	for name := range messageTypes {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func strp(s string) *string   { return &s }
func f32p(v float32) *float32 { return &v }
func boolp(b bool) *bool      { return &b }

func init() {
	addMessageType(newMessageType(dialogue.IntentMessage, func() ontology.IntentMessage {
		return ontology.IntentMessage{
			SessionID: uuid.NewString(),
			SiteID:    "default",
			Input:     "what's the weather in Guadeloupe",
			Intent:    ontology.NluIntentClassifierResult{IntentName: "searchWeatherForecast", ConfidenceScore: 0.93},
			Slots: []ontology.NluSlot{{
				RawValue:        "Guadeloupe",
				Value:           ontology.RegionValue("Guadeloupe"),
				RangeStart:      22,
				RangeEnd:        32,
				Entity:          "snips/region",
				SlotName:        "forecast_location",
				ConfidenceScore: f32p(0.8),
			}},
			AsrTokens: [][]ontology.AsrToken{{
				{Value: "weather", Confidence: 0.98, RangeStart: 11, RangeEnd: 18, Time: ontology.AsrDecodingDuration{Start: 0.4, End: 0.9}},
			}},
			AsrConfidence: f32p(0.7),
		}
	}, func(m *ontology.IntentMessage) {
		// An empty slot list travels as null and comes back empty.
		if m.Slots == nil {
			m.Slots = []ontology.NluSlot{}
		}
	}))

	addMessageType(newMessageType(dialogue.IntentNotRecognizedMessage, func() ontology.IntentNotRecognizedMessage {
		return ontology.IntentNotRecognizedMessage{
			SiteID:          "default",
			SessionID:       uuid.NewString(),
			Input:           strp("play something nice"),
			ConfidenceScore: 0.5,
		}
	}, nil))

	addMessageType(newMessageType(dialogue.StartSessionMessage, func() ontology.StartSessionMessage {
		return ontology.StartSessionMessage{
			Init: ontology.ActionInit{
				Text:                    strp("what can I do for you?"),
				IntentFilter:            []string{"searchWeatherForecast", "turnOnLight"},
				CanBeEnqueued:           true,
				SendIntentNotRecognized: true,
			},
			SiteID: strp("kitchen"),
		}
	}, nil))

	addMessageType(newMessageType(dialogue.SessionStartedMessage, func() ontology.SessionStartedMessage {
		return ontology.SessionStartedMessage{SessionID: uuid.NewString(), SiteID: "kitchen"}
	}, nil))

	addMessageType(newMessageType(dialogue.SessionQueuedMessage, func() ontology.SessionQueuedMessage {
		return ontology.SessionQueuedMessage{SessionID: uuid.NewString(), SiteID: "kitchen"}
	}, nil))

	addMessageType(newMessageType(dialogue.ContinueSessionMessage, func() ontology.ContinueSessionMessage {
		return ontology.ContinueSessionMessage{
			SessionID:    uuid.NewString(),
			Text:         "for which city?",
			IntentFilter: []string{"searchWeatherForecast"},
			Slot:         strp("forecast_location"),
		}
	}, nil))

	addMessageType(newMessageType(dialogue.EndSessionMessage, func() ontology.EndSessionMessage {
		return ontology.EndSessionMessage{SessionID: uuid.NewString(), Text: strp("goodbye")}
	}, nil))

	addMessageType(newMessageType(dialogue.SessionEndedMessage, func() ontology.SessionEndedMessage {
		return ontology.SessionEndedMessage{
			SessionID:   uuid.NewString(),
			Termination: ontology.SessionTermination{Type: ontology.TerminationError, Error: "this is my error"},
			SiteID:      "kitchen",
		}
	}, nil))

	addMessageType(newMessageType(dialogue.DialogueConfigureMessage, func() ontology.DialogueConfigureMessage {
		return ontology.DialogueConfigureMessage{
			SiteID: strp("kitchen"),
			Intents: []ontology.DialogueConfigureIntent{
				{IntentID: "turnOnLight", Enable: boolp(true)},
				{IntentID: "turnOffLight", Enable: boolp(false)},
			},
		}
	}, nil))
}
