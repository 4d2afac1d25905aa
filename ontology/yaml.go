package ontology

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Sum types are written as mappings carrying a tag key next to the
// fields of the variant:
//
//	value: {kind: custom, value: Guadeloupe}
//	value: {kind: instant_time, value: "2018-10-26 00:00:00 +02:00", grain: day, precision: exact}
//	init: {type: notification, text: hello}

type slotValueBox struct {
	v SlotValue
}

func scalar[T any](node *yaml.Node) (T, error) {
	var s struct {
		Value T `yaml:"value"`
	}
	err := node.Decode(&s)
	return s.Value, err
}

func decodeInto[T SlotValue](node *yaml.Node) (SlotValue, error) {
	var v T
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

func (b *slotValueBox) UnmarshalYAML(node *yaml.Node) error {
	var tag struct {
		Kind string `yaml:"kind"`
	}
	if err := node.Decode(&tag); err != nil {
		return err
	}
	kind, ok := ParseSlotValueKind(tag.Kind)
	if !ok {
		return fmt.Errorf("line %d: unknown slot value kind %q", node.Line, tag.Kind)
	}

	var err error
	switch kind {
	case SlotCustom, SlotMusicAlbum, SlotMusicArtist, SlotMusicTrack, SlotCity, SlotCountry, SlotRegion:
		var s string
		if s, err = scalar[string](node); err == nil {
			b.v, _ = TextSlotValue(kind, s)
		}
	case SlotNumber:
		var f float64
		f, err = scalar[float64](node)
		b.v = NumberValue(f)
	case SlotPercentage:
		var f float64
		f, err = scalar[float64](node)
		b.v = PercentageValue(f)
	case SlotOrdinal:
		var n int64
		n, err = scalar[int64](node)
		b.v = OrdinalValue(n)
	case SlotInstantTime:
		b.v, err = decodeInto[InstantTimeValue](node)
	case SlotTimeInterval:
		b.v, err = decodeInto[TimeIntervalValue](node)
	case SlotAmountOfMoney:
		b.v, err = decodeInto[AmountOfMoneyValue](node)
	case SlotTemperature:
		b.v, err = decodeInto[TemperatureValue](node)
	case SlotDuration:
		b.v, err = decodeInto[DurationValue](node)
	}
	return err
}

func (b slotValueBox) MarshalYAML() (any, error) {
	if b.v == nil {
		return nil, nil
	}
	var body any = b.v
	switch v := b.v.(type) {
	case CustomValue, MusicAlbumValue, MusicArtistValue, MusicTrackValue, CityValue, CountryValue, RegionValue:
		body = map[string]any{"value": fmt.Sprint(v)}
	case NumberValue:
		body = map[string]any{"value": float64(v)}
	case PercentageValue:
		body = map[string]any{"value": float64(v)}
	case OrdinalValue:
		body = map[string]any{"value": int64(v)}
	}
	return taggedNode("kind", b.v.Kind().String(), body)
}

// taggedNode encodes body as a mapping and puts key: tag in front of it.
func taggedNode(key, tag string, body any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(body); err != nil {
		return nil, err
	}
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s %s does not encode as a mapping", key, tag)
	}
	head := []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: tag},
	}
	n.Content = append(head, n.Content...)
	return &n, nil
}

func (s *NluSlot) UnmarshalYAML(node *yaml.Node) error {
	type plain NluSlot
	var aux struct {
		Plain plain        `yaml:",inline"`
		Value slotValueBox `yaml:"value"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	if aux.Value.v == nil {
		return fmt.Errorf("line %d: slot %q has no value", node.Line, aux.Plain.SlotName)
	}
	*s = NluSlot(aux.Plain)
	s.Value = aux.Value.v
	return nil
}

func (s NluSlot) MarshalYAML() (any, error) {
	type plain NluSlot
	return struct {
		Plain plain        `yaml:",inline"`
		Value slotValueBox `yaml:"value"`
	}{plain(s), slotValueBox{s.Value}}, nil
}

type sessionInitBox struct {
	v SessionInit
}

func (b *sessionInitBox) UnmarshalYAML(node *yaml.Node) error {
	var tag struct {
		Type string `yaml:"type"`
	}
	if err := node.Decode(&tag); err != nil {
		return err
	}
	switch tag.Type {
	case "action":
		var v ActionInit
		if err := node.Decode(&v); err != nil {
			return err
		}
		b.v = v
	case "notification":
		var v NotificationInit
		if err := node.Decode(&v); err != nil {
			return err
		}
		b.v = v
	default:
		return fmt.Errorf("line %d: unknown session init type %q", node.Line, tag.Type)
	}
	return nil
}

func (b sessionInitBox) MarshalYAML() (any, error) {
	switch v := b.v.(type) {
	case ActionInit:
		return taggedNode("type", "action", v)
	case NotificationInit:
		return taggedNode("type", "notification", v)
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown session init %T", v)
	}
}

func (m *StartSessionMessage) UnmarshalYAML(node *yaml.Node) error {
	type plain StartSessionMessage
	var aux struct {
		Plain plain          `yaml:",inline"`
		Init  sessionInitBox `yaml:"init"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}
	if aux.Init.v == nil {
		return fmt.Errorf("line %d: start session message has no init", node.Line)
	}
	*m = StartSessionMessage(aux.Plain)
	m.Init = aux.Init.v
	return nil
}

func (m StartSessionMessage) MarshalYAML() (any, error) {
	type plain StartSessionMessage
	return struct {
		Plain plain          `yaml:",inline"`
		Init  sessionInitBox `yaml:"init"`
	}{plain(m), sessionInitBox{m.Init}}, nil
}
