package ontology

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func strp(s string) *string { return &s }

func TestSlotValueYAML(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want SlotValue
	}{
		{"custom", `{kind: custom, value: Guadeloupe}`, CustomValue("Guadeloupe")},
		{"number", `{kind: number, value: 12.5}`, NumberValue(12.5)},
		{"ordinal", `{kind: ordinal, value: 3}`, OrdinalValue(3)},
		{"percentage", `{kind: percentage, value: 0.25}`, PercentageValue(0.25)},
		{"city", `{kind: city, value: Paris}`, CityValue("Paris")},
		{"instant", `{kind: instant_time, value: "2018-10-26", grain: day, precision: exact}`,
			InstantTimeValue{Value: "2018-10-26", Grain: GrainDay, Precision: PrecisionExact}},
		{"interval", `{kind: time_interval, from: "9:00"}`, TimeIntervalValue{From: strp("9:00")}},
		{"money", `{kind: amount_of_money, unit: EUR, value: 9.5, precision: approximate}`,
			AmountOfMoneyValue{Unit: strp("EUR"), Value: 9.5, Precision: PrecisionApproximate}},
		{"temperature", `{kind: temperature, value: -4}`, TemperatureValue{Value: -4}},
		{"duration", `{kind: duration, hours: 1, minutes: 30, precision: exact}`,
			DurationValue{Hours: 1, Minutes: 30, Precision: PrecisionExact}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b slotValueBox
			if err := yaml.Unmarshal([]byte(tt.in), &b); err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, b.v); diff != "" {
				t.Fatalf("decode (-want +got):\n%s", diff)
			}

			out, err := yaml.Marshal(b)
			if err != nil {
				t.Fatal(err)
			}
			var again slotValueBox
			if err := yaml.Unmarshal(out, &again); err != nil {
				t.Fatalf("re-decode %s: %v", out, err)
			}
			if diff := cmp.Diff(tt.want, again.v); diff != "" {
				t.Errorf("re-decode (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSlotValueYAMLUnknownKind(t *testing.T) {
	var b slotValueBox
	if err := yaml.Unmarshal([]byte(`{kind: planet, value: Mars}`), &b); err == nil {
		t.Fatal("expected error")
	}
}

func TestStartSessionYAML(t *testing.T) {
	src := `
init:
  type: action
  text: what now
  intent_filter: [a, b]
  can_be_enqueued: true
site_id: kitchen
`
	var m StartSessionMessage
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		t.Fatal(err)
	}
	want := StartSessionMessage{
		Init: ActionInit{
			Text:          strp("what now"),
			IntentFilter:  []string{"a", "b"},
			CanBeEnqueued: true,
		},
		SiteID: strp("kitchen"),
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	out, err := yaml.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var again StartSessionMessage
	if err := yaml.Unmarshal(out, &again); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(want, again); diff != "" {
		t.Errorf("re-decode (-want +got):\n%s", diff)
	}
}

func TestStartSessionYAMLNotification(t *testing.T) {
	var m StartSessionMessage
	if err := yaml.Unmarshal([]byte(`init: {type: notification, text: hi}`), &m); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(StartSessionMessage{Init: NotificationInit{Text: "hi"}}, m); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if err := yaml.Unmarshal([]byte(`custom_data: x`), &m); err == nil {
		t.Fatal("expected error for missing init")
	}
}

func TestTerminationYAML(t *testing.T) {
	var m SessionEndedMessage
	src := `{session_id: s, site_id: d, termination: {type: error, error: boom}}`
	if err := yaml.Unmarshal([]byte(src), &m); err != nil {
		t.Fatal(err)
	}
	want := SessionTermination{Type: TerminationError, Error: "boom"}
	if diff := cmp.Diff(want, m.Termination); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if err := yaml.Unmarshal([]byte(`{termination: {type: exploded}}`), &m); err == nil {
		t.Fatal("expected error for unknown termination")
	}
}

func TestEnumStrings(t *testing.T) {
	if SlotRegion.String() != "region" || SlotValueKind(99).String() != "SlotValueKind(99)" {
		t.Error("SlotValueKind.String")
	}
	if GrainSecond.String() != "second" || Grain(0).Valid() {
		t.Error("Grain")
	}
	if TerminationTimeout.String() != "timeout" || TerminationType(7).Valid() {
		t.Error("TerminationType")
	}
}
