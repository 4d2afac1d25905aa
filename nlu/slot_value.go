package nlu

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/ontology"
)

var SlotValueLayout = codec.MustLayout("SlotValue",
	codec.Ptr("value"),
	codec.U32("value_type"),
)

var SlotValue = codec.New[ontology.SlotValue]("SlotValue", SlotValueLayout, lowerSlotValue, liftSlotValue, freeSlotValue)

func lowerSlotValue(s *codec.Scope, v ontology.SlotValue) (uint32, error) {
	if v == nil {
		return 0, errors.Encoding(nil, "missing slot value")
	}
	w, err := s.NewRecord(SlotValueLayout)
	if err != nil {
		return 0, err
	}
	w.SetU32("value_type", uint32(v.Kind()))
	w.Lower("value", func(s *codec.Scope) (uint32, error) {
		return lowerPayload(s, v)
	})
	return w.Finish()
}

func lowerPayload(s *codec.Scope, v ontology.SlotValue) (uint32, error) {
	switch v := v.(type) {
	case ontology.CustomValue:
		return codec.EncodeText(s, string(v))
	case ontology.MusicAlbumValue:
		return codec.EncodeText(s, string(v))
	case ontology.MusicArtistValue:
		return codec.EncodeText(s, string(v))
	case ontology.MusicTrackValue:
		return codec.EncodeText(s, string(v))
	case ontology.CityValue:
		return codec.EncodeText(s, string(v))
	case ontology.CountryValue:
		return codec.EncodeText(s, string(v))
	case ontology.RegionValue:
		return codec.EncodeText(s, string(v))
	case ontology.NumberValue:
		return codec.EncodeF64Box(s, float64(v))
	case ontology.PercentageValue:
		return codec.EncodeF64Box(s, float64(v))
	case ontology.OrdinalValue:
		return codec.EncodeS64Box(s, int64(v))
	case ontology.InstantTimeValue:
		return InstantTime.Lower(s, v)
	case ontology.TimeIntervalValue:
		return TimeInterval.Lower(s, v)
	case ontology.AmountOfMoneyValue:
		return AmountOfMoney.Lower(s, v)
	case ontology.TemperatureValue:
		return Temperature.Lower(s, v)
	case ontology.DurationValue:
		return Duration.Lower(s, v)
	default:
		return 0, errors.Encoding(nil, "unsupported slot value %T", v)
	}
}

func liftSlotValue(mem codec.Memory, ptr uint32) (ontology.SlotValue, error) {
	r := codec.ReadRecord(mem, SlotValueLayout, ptr)
	payload := r.Ptr("value")
	tag := r.U32("value_type")
	if err := r.Err(); err != nil {
		return nil, err
	}
	if err := codec.CheckDiscriminant(tag, uint32(ontology.SlotValueKindCount), "value_type"); err != nil {
		return nil, err
	}
	kind := ontology.SlotValueKind(tag)
	if payload == 0 {
		return nil, errors.New(errors.PhaseDecode, errors.KindInvalidUnion).
			Path("value").
			Detail("null payload for %s", kind).
			Value(tag).
			Build()
	}

	v, err := liftPayload(mem, kind, payload)
	if err != nil {
		return nil, errors.AtPath(err, errors.PhaseDecode, "value")
	}
	return v, nil
}

func liftPayload(mem codec.Memory, kind ontology.SlotValueKind, ptr uint32) (ontology.SlotValue, error) {
	switch kind {
	case ontology.SlotNumber:
		f, err := codec.DecodeF64Box(mem, ptr)
		return ontology.NumberValue(f), err
	case ontology.SlotPercentage:
		f, err := codec.DecodeF64Box(mem, ptr)
		return ontology.PercentageValue(f), err
	case ontology.SlotOrdinal:
		n, err := codec.DecodeS64Box(mem, ptr)
		return ontology.OrdinalValue(n), err
	case ontology.SlotInstantTime:
		return liftAs(mem, ptr, InstantTime)
	case ontology.SlotTimeInterval:
		return liftAs(mem, ptr, TimeInterval)
	case ontology.SlotAmountOfMoney:
		return liftAs(mem, ptr, AmountOfMoney)
	case ontology.SlotTemperature:
		return liftAs(mem, ptr, Temperature)
	case ontology.SlotDuration:
		return liftAs(mem, ptr, Duration)
	default:
		s, err := codec.DecodeText(mem, ptr)
		if err != nil {
			return nil, err
		}
		v, ok := ontology.TextSlotValue(kind, s)
		if !ok {
			return nil, errors.New(errors.PhaseDecode, errors.KindInvalidUnion).
				Detail("%s has no text payload", kind).
				Value(uint32(kind)).
				Build()
		}
		return v, nil
	}
}

func liftAs[T ontology.SlotValue](mem codec.Memory, ptr uint32, c *codec.Codec[T]) (ontology.SlotValue, error) {
	v, err := c.Lift(mem, ptr)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func freeSlotValue(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
	f := codec.FreeRecord(mem, alloc, SlotValueLayout, ptr)
	tag := f.U32("value_type")
	switch ontology.SlotValueKind(tag) {
	case ontology.SlotCustom, ontology.SlotMusicAlbum, ontology.SlotMusicArtist, ontology.SlotMusicTrack,
		ontology.SlotCity, ontology.SlotCountry, ontology.SlotRegion:
		f.Text("value")
	case ontology.SlotNumber, ontology.SlotPercentage, ontology.SlotOrdinal:
		f.Free("value", codec.FreeBox)
	case ontology.SlotInstantTime:
		f.Free("value", InstantTime.Free)
	case ontology.SlotTimeInterval:
		f.Free("value", TimeInterval.Free)
	case ontology.SlotAmountOfMoney:
		f.Free("value", AmountOfMoney.Free)
	case ontology.SlotTemperature:
		f.Free("value", Temperature.Free)
	case ontology.SlotDuration:
		f.Free("value", Duration.Free)
	default:
		codec.UnknownDiscriminant("SlotValue", tag)
	}
	f.Done()
}
