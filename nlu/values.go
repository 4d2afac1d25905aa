package nlu

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/ontology"
)

var (
	InstantTimeLayout = codec.MustLayout("InstantTimeValue",
		codec.Ptr("value"),
		codec.U32("grain"),
		codec.U32("precision"),
	)
	TimeIntervalLayout = codec.MustLayout("TimeIntervalValue",
		codec.Ptr("from"),
		codec.Ptr("to"),
	)
	AmountOfMoneyLayout = codec.MustLayout("AmountOfMoneyValue",
		codec.Ptr("unit"),
		codec.F32("value"),
		codec.U32("precision"),
	)
	TemperatureLayout = codec.MustLayout("TemperatureValue",
		codec.Ptr("unit"),
		codec.F32("value"),
	)
	DurationLayout = codec.MustLayout("DurationValue",
		codec.S64("years"),
		codec.S64("quarters"),
		codec.S64("months"),
		codec.S64("weeks"),
		codec.S64("days"),
		codec.S64("hours"),
		codec.S64("minutes"),
		codec.S64("seconds"),
		codec.U32("precision"),
	)
)

const (
	maxGrain     = uint32(ontology.GrainSecond)
	maxPrecision = uint32(ontology.PrecisionExact)
)

func setGrain(w *codec.RecordWriter, g ontology.Grain) {
	if !g.Valid() {
		w.Fail("grain", errors.Encoding(nil, "invalid grain %d", uint32(g)))
		return
	}
	w.SetU32("grain", uint32(g))
}

func setPrecision(w *codec.RecordWriter, p ontology.Precision) {
	if !p.Valid() {
		w.Fail("precision", errors.Encoding(nil, "invalid precision %d", uint32(p)))
		return
	}
	w.SetU32("precision", uint32(p))
}

func getGrain(r *codec.RecordReader) ontology.Grain {
	g := r.U32("grain")
	if r.Err() == nil {
		r.Fail("grain", codec.CheckDiscriminant(g, maxGrain))
	}
	return ontology.Grain(g)
}

func getPrecision(r *codec.RecordReader) ontology.Precision {
	p := r.U32("precision")
	if r.Err() == nil {
		r.Fail("precision", codec.CheckDiscriminant(p, maxPrecision))
	}
	return ontology.Precision(p)
}

var InstantTime = codec.New[ontology.InstantTimeValue]("InstantTimeValue", InstantTimeLayout,
	func(s *codec.Scope, v ontology.InstantTimeValue) (uint32, error) {
		w, err := s.NewRecord(InstantTimeLayout)
		if err != nil {
			return 0, err
		}
		setGrain(w, v.Grain)
		setPrecision(w, v.Precision)
		w.Text("value", v.Value)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.InstantTimeValue, error) {
		r := codec.ReadRecord(mem, InstantTimeLayout, ptr)
		v := ontology.InstantTimeValue{
			Value:     r.Text("value"),
			Grain:     getGrain(r),
			Precision: getPrecision(r),
		}
		if err := r.Err(); err != nil {
			return ontology.InstantTimeValue{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, InstantTimeLayout, ptr)
		f.Text("value")
		f.Done()
	},
)

var TimeInterval = codec.New[ontology.TimeIntervalValue]("TimeIntervalValue", TimeIntervalLayout,
	func(s *codec.Scope, v ontology.TimeIntervalValue) (uint32, error) {
		w, err := s.NewRecord(TimeIntervalLayout)
		if err != nil {
			return 0, err
		}
		w.OptionalText("from", v.From)
		w.OptionalText("to", v.To)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.TimeIntervalValue, error) {
		r := codec.ReadRecord(mem, TimeIntervalLayout, ptr)
		v := ontology.TimeIntervalValue{
			From: r.OptionalText("from"),
			To:   r.OptionalText("to"),
		}
		if err := r.Err(); err != nil {
			return ontology.TimeIntervalValue{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, TimeIntervalLayout, ptr)
		f.Text("from")
		f.Text("to")
		f.Done()
	},
)

var AmountOfMoney = codec.New[ontology.AmountOfMoneyValue]("AmountOfMoneyValue", AmountOfMoneyLayout,
	func(s *codec.Scope, v ontology.AmountOfMoneyValue) (uint32, error) {
		w, err := s.NewRecord(AmountOfMoneyLayout)
		if err != nil {
			return 0, err
		}
		setPrecision(w, v.Precision)
		w.OptionalText("unit", v.Unit)
		w.SetF32("value", v.Value)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.AmountOfMoneyValue, error) {
		r := codec.ReadRecord(mem, AmountOfMoneyLayout, ptr)
		v := ontology.AmountOfMoneyValue{
			Unit:      r.OptionalText("unit"),
			Value:     r.F32("value"),
			Precision: getPrecision(r),
		}
		if err := r.Err(); err != nil {
			return ontology.AmountOfMoneyValue{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, AmountOfMoneyLayout, ptr)
		f.Text("unit")
		f.Done()
	},
)

var Temperature = codec.New[ontology.TemperatureValue]("TemperatureValue", TemperatureLayout,
	func(s *codec.Scope, v ontology.TemperatureValue) (uint32, error) {
		w, err := s.NewRecord(TemperatureLayout)
		if err != nil {
			return 0, err
		}
		w.OptionalText("unit", v.Unit)
		w.SetF32("value", v.Value)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.TemperatureValue, error) {
		r := codec.ReadRecord(mem, TemperatureLayout, ptr)
		v := ontology.TemperatureValue{
			Unit:  r.OptionalText("unit"),
			Value: r.F32("value"),
		}
		if err := r.Err(); err != nil {
			return ontology.TemperatureValue{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		f := codec.FreeRecord(mem, alloc, TemperatureLayout, ptr)
		f.Text("unit")
		f.Done()
	},
)

var Duration = codec.New[ontology.DurationValue]("DurationValue", DurationLayout,
	func(s *codec.Scope, v ontology.DurationValue) (uint32, error) {
		w, err := s.NewRecord(DurationLayout)
		if err != nil {
			return 0, err
		}
		setPrecision(w, v.Precision)
		w.SetS64("years", v.Years)
		w.SetS64("quarters", v.Quarters)
		w.SetS64("months", v.Months)
		w.SetS64("weeks", v.Weeks)
		w.SetS64("days", v.Days)
		w.SetS64("hours", v.Hours)
		w.SetS64("minutes", v.Minutes)
		w.SetS64("seconds", v.Seconds)
		return w.Finish()
	},
	func(mem codec.Memory, ptr uint32) (ontology.DurationValue, error) {
		r := codec.ReadRecord(mem, DurationLayout, ptr)
		v := ontology.DurationValue{
			Years:     r.S64("years"),
			Quarters:  r.S64("quarters"),
			Months:    r.S64("months"),
			Weeks:     r.S64("weeks"),
			Days:      r.S64("days"),
			Hours:     r.S64("hours"),
			Minutes:   r.S64("minutes"),
			Seconds:   r.S64("seconds"),
			Precision: getPrecision(r),
		}
		if err := r.Err(); err != nil {
			return ontology.DurationValue{}, err
		}
		return v, nil
	},
	func(mem codec.Memory, alloc codec.Allocator, ptr uint32) {
		codec.FreeRecord(mem, alloc, DurationLayout, ptr).Done()
	},
)
