package ontology

import "fmt"

// IntentMessage is published when an intent was detected in a session.
type IntentMessage struct {
	SessionID     string                    `yaml:"session_id"`
	CustomData    *string                   `yaml:"custom_data,omitempty"`
	SiteID        string                    `yaml:"site_id"`
	Input         string                    `yaml:"input"`
	Intent        NluIntentClassifierResult `yaml:"intent"`
	Slots         []NluSlot                 `yaml:"slots"`
	AsrTokens     [][]AsrToken              `yaml:"asr_tokens,omitempty"`
	AsrConfidence *float32                  `yaml:"asr_confidence,omitempty"`
}

// IntentNotRecognizedMessage is published when no intent matched.
type IntentNotRecognizedMessage struct {
	SiteID          string  `yaml:"site_id"`
	SessionID       string  `yaml:"session_id"`
	Input           *string `yaml:"input,omitempty"`
	CustomData      *string `yaml:"custom_data,omitempty"`
	ConfidenceScore float32 `yaml:"confidence_score"`
}

// SessionInit tells how a session starts.
type SessionInit interface {
	isSessionInit()
}

// ActionInit starts a session expecting the user to speak.
type ActionInit struct {
	Text                    *string  `yaml:"text,omitempty"`
	IntentFilter            []string `yaml:"intent_filter,omitempty"`
	CanBeEnqueued           bool     `yaml:"can_be_enqueued"`
	SendIntentNotRecognized bool     `yaml:"send_intent_not_recognized"`
}

// NotificationInit starts a session that only says Text.
type NotificationInit struct {
	Text string `yaml:"text"`
}

func (ActionInit) isSessionInit()       {}
func (NotificationInit) isSessionInit() {}

type StartSessionMessage struct {
	Init       SessionInit `yaml:"-"`
	CustomData *string     `yaml:"custom_data,omitempty"`
	SiteID     *string     `yaml:"site_id,omitempty"`
}

type SessionStartedMessage struct {
	SessionID                string  `yaml:"session_id"`
	CustomData               *string `yaml:"custom_data,omitempty"`
	SiteID                   string  `yaml:"site_id"`
	ReactivatedFromSessionID *string `yaml:"reactivated_from_session_id,omitempty"`
}

type SessionQueuedMessage struct {
	SessionID  string  `yaml:"session_id"`
	CustomData *string `yaml:"custom_data,omitempty"`
	SiteID     string  `yaml:"site_id"`
}

type ContinueSessionMessage struct {
	SessionID               string   `yaml:"session_id"`
	Text                    string   `yaml:"text"`
	IntentFilter            []string `yaml:"intent_filter,omitempty"`
	CustomData              *string  `yaml:"custom_data,omitempty"`
	Slot                    *string  `yaml:"slot,omitempty"`
	SendIntentNotRecognized bool     `yaml:"send_intent_not_recognized"`
}

type EndSessionMessage struct {
	SessionID string  `yaml:"session_id"`
	Text      *string `yaml:"text,omitempty"`
}

// TerminationType tells why a session ended. Numbering starts at 1.
type TerminationType uint32

const (
	TerminationNominal TerminationType = iota + 1
	TerminationSiteUnavailable
	TerminationAbortedByUser
	TerminationIntentNotRecognized
	TerminationTimeout
	TerminationError
)

var terminationNames = [...]string{
	TerminationNominal:             "nominal",
	TerminationSiteUnavailable:     "site_unavailable",
	TerminationAbortedByUser:       "aborted_by_user",
	TerminationIntentNotRecognized: "intent_not_recognized",
	TerminationTimeout:             "timeout",
	TerminationError:               "error",
}

func (t TerminationType) Valid() bool {
	return t >= TerminationNominal && t <= TerminationError
}

func (t TerminationType) String() string {
	if t.Valid() {
		return terminationNames[t]
	}
	return fmt.Sprintf("TerminationType(%d)", uint32(t))
}

func (t TerminationType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid termination type %d", uint32(t))
	}
	return []byte(t.String()), nil
}

func (t *TerminationType) UnmarshalText(b []byte) error {
	for v := TerminationNominal; v <= TerminationError; v++ {
		if terminationNames[v] == string(b) {
			*t = v
			return nil
		}
	}
	return fmt.Errorf("unknown termination type %q", b)
}

// SessionTermination is the reason a session ended. Error carries a
// message only when Type is TerminationError.
type SessionTermination struct {
	Type  TerminationType `yaml:"type"`
	Error string          `yaml:"error,omitempty"`
}

type SessionEndedMessage struct {
	SessionID   string             `yaml:"session_id"`
	CustomData  *string            `yaml:"custom_data,omitempty"`
	Termination SessionTermination `yaml:"termination"`
	SiteID      string             `yaml:"site_id"`
}

// DialogueConfigureIntent enables or disables one intent. A nil Enable
// leaves the current setting.
type DialogueConfigureIntent struct {
	IntentID string `yaml:"intent_id"`
	Enable   *bool  `yaml:"enable,omitempty"`
}

type DialogueConfigureMessage struct {
	SiteID  *string                   `yaml:"site_id,omitempty"`
	Intents []DialogueConfigureIntent `yaml:"intents,omitempty"`
}
