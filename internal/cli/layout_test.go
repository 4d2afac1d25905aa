package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
)

func TestLayoutGolden(t *testing.T) {
	out, err := execute(t, "layout", "--plain", "IntentMessage", "SessionEndedMessage", "DialogueConfigureIntent")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "layout_messages", []byte(out))
}

func TestLayoutAll(t *testing.T) {
	out, err := execute(t, "layout")
	require.NoError(t, err)

	for _, c := range codec.All() {
		if l := c.Layout(); l != nil {
			assert.Contains(t, out, l.Name+" size=")
		}
	}
	assert.NotContains(t, out, "\nText size=")
}

func TestLayoutUnknownType(t *testing.T) {
	_, err := execute(t, "layout", "NoSuchMessage")
	assert.True(t, errors.HasKind(err, errors.KindInvalidInput), "got %v", err)
}

func TestLayoutWithoutRecord(t *testing.T) {
	_, err := execute(t, "layout", "Text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no record layout")
}

func TestRenderLayout(t *testing.T) {
	l, err := selectLayouts([]string{"SessionEndedMessage"})
	require.NoError(t, err)
	out := renderLayout(l[0])
	for _, want := range []string{"SessionEndedMessage", "FIELD", "termination", "SessionTermination"} {
		assert.Contains(t, out, want)
	}
}

func TestWriteLayoutAlignsNames(t *testing.T) {
	l, err := selectLayouts([]string{"SessionStartedMessage"})
	require.NoError(t, err)
	var b bytes.Buffer
	writeLayout(&b, l[0])

	lines := strings.Split(strings.TrimSpace(b.String()), "\n")[1:]
	col := strings.Index(lines[0], "ptr")
	for _, line := range lines {
		assert.Equal(t, col, strings.Index(line, "ptr"), line)
	}
}
