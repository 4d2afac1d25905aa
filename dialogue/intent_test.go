package dialogue

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/ontology"
)

func fullIntent() ontology.IntentMessage {
	return ontology.IntentMessage{
		SessionID:  "a session id",
		CustomData: strp("a custom datum"),
		SiteID:     "a site id",
		Input:      "what's the weather in Guadeloupe",
		Intent: ontology.NluIntentClassifierResult{
			IntentName:      "a boring intent",
			ConfidenceScore: 1,
		},
		Slots: []ontology.NluSlot{{
			RawValue:        "Guadeloupe",
			Value:           ontology.CustomValue("Guadeloupe"),
			RangeStart:      22,
			RangeEnd:        32,
			Entity:          "entity",
			SlotName:        "forecast_location",
			ConfidenceScore: f32(0.8),
		}},
		AsrTokens: [][]ontology.AsrToken{
			{
				{Value: "hello", Confidence: 0.98, RangeStart: 1, RangeEnd: 4, Time: ontology.AsrDecodingDuration{Start: 0, End: 5}},
				{Value: "world", Confidence: 0.73, RangeStart: 5, RangeEnd: 9, Time: ontology.AsrDecodingDuration{Start: 0, End: 5}},
			},
			{},
			{
				{Value: "yop", Confidence: 0.97, RangeStart: 5, RangeEnd: 1, Time: ontology.AsrDecodingDuration{Start: 1, End: 4.5}},
			},
		},
		AsrConfidence: f32(0.7),
	}
}

func TestIntentMessageRoundTrip(t *testing.T) {
	minimal := ontology.IntentMessage{
		SessionID: "s",
		SiteID:    "default",
		Input:     "hello",
		Intent:    ontology.NluIntentClassifierResult{IntentName: "greet", ConfidenceScore: 0.4},
		Slots:     []ontology.NluSlot{},
	}

	for name, in := range map[string]ontology.IntentMessage{
		"full":    fullIntent(),
		"minimal": minimal,
	} {
		t.Run(name, func(t *testing.T) {
			got := roundTrip(t, IntentMessage, in)
			if diff := cmp.Diff(in, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIntentMessageEmptySlotsEncodeNull(t *testing.T) {
	a := newArena(t)
	in := fullIntent()
	in.Slots = nil
	owned, err := IntentMessage.Encode(a, a, in)
	require.NoError(t, err)
	defer owned.Release()

	ptr, err := a.ReadU32(owned.Ptr() + IntentMessageLayout.Offset("slots"))
	require.NoError(t, err)
	assert.Zero(t, ptr)

	got, err := IntentMessage.Decode(a, owned.Ptr())
	require.NoError(t, err)
	assert.NotNil(t, got.Slots)
	assert.Empty(t, got.Slots)
}

func TestIntentMessageAbsentConfidence(t *testing.T) {
	in := fullIntent()
	in.AsrConfidence = nil
	in.AsrTokens = nil
	got := roundTrip(t, IntentMessage, in)
	assert.Nil(t, got.AsrConfidence)
	assert.Nil(t, got.AsrTokens)
}

func TestIntentMessageEmptyTokenGroups(t *testing.T) {
	a := newArena(t)
	in := fullIntent()
	in.AsrTokens = [][]ontology.AsrToken{}
	owned, err := IntentMessage.Encode(a, a, in)
	require.NoError(t, err)
	defer owned.Release()

	tokens, err := a.ReadU32(owned.Ptr() + IntentMessageLayout.Offset("asr_tokens"))
	require.NoError(t, err)
	require.NotZero(t, tokens, "present but empty groups must not encode as null")
	count, err := a.ReadU32(tokens + codec.ArrayLayout.Offset("count"))
	require.NoError(t, err)
	assert.Zero(t, count)

	got, err := IntentMessage.Decode(a, owned.Ptr())
	require.NoError(t, err)
	assert.NotNil(t, got.AsrTokens)
	assert.Empty(t, got.AsrTokens)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestIntentMessageRejectsBadConfidence(t *testing.T) {
	a := newArena(t)
	in := fullIntent()
	in.AsrConfidence = f32(-0.5)
	_, err := IntentMessage.Encode(a, a, in)

	var e *errors.Error
	require.True(t, stderrors.As(err, &e), "got %v", err)
	assert.Equal(t, errors.KindEncoding, e.Kind)
	assert.Equal(t, "asr_confidence", e.Field())
	assert.Zero(t, a.Stats().LiveBlocks)
}

func TestIntentMessageRollback(t *testing.T) {
	a := newArena(t)
	in := fullIntent()
	in.Slots[0].RawValue = "bad\x00value"

	_, err := IntentMessage.Encode(a, a, in)
	var e *errors.Error
	require.True(t, stderrors.As(err, &e), "got %v", err)
	assert.Equal(t, "IntentMessage", e.Type)
	assert.Equal(t, []string{"slots", "[0]", "raw_value"}, e.Path)
	assert.Empty(t, a.Live())
}

func TestIntentMessageDoubleRelease(t *testing.T) {
	a := newArena(t)
	owned, err := IntentMessage.Encode(a, a, fullIntent())
	require.NoError(t, err)
	owned.Release()

	defer func() {
		v, ok := recover().(*errors.Violation)
		require.True(t, ok)
		assert.Equal(t, errors.KindDoubleFree, v.Kind)
	}()
	owned.Release()
}

func TestIntentMessageNullRoot(t *testing.T) {
	a := newArena(t)
	_, err := IntentMessage.Decode(a, 0)
	assert.True(t, errors.HasKind(err, errors.KindNilPointer), "got %v", err)
}
