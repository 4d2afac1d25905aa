package dialogue

import (
	"github.com/wippyai/hermes-abi/codec"
	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/ontology"
)

var SessionTerminationLayout = codec.MustLayout("SessionTermination",
	codec.U32("termination_type"),
	codec.Ptr("data"),
)

// putTermination fills an embedded SessionTermination. Only the error
// variant carries data.
func putTermination(w *codec.RecordWriter, t ontology.SessionTermination) {
	if !t.Type.Valid() {
		w.Fail("termination_type", errors.Encoding(nil, "invalid termination type %d", uint32(t.Type)))
		return
	}
	w.SetU32("termination_type", uint32(t.Type))
	if t.Type == ontology.TerminationError {
		w.Text("data", t.Error)
	}
}

func getTermination(r *codec.RecordReader) ontology.SessionTermination {
	tag := r.U32("termination_type")
	data := r.Ptr("data")
	if r.Err() != nil {
		return ontology.SessionTermination{}
	}
	if err := codec.CheckDiscriminant(tag, uint32(ontology.TerminationError)); err != nil {
		r.Fail("termination_type", err)
		return ontology.SessionTermination{}
	}

	t := ontology.SessionTermination{Type: ontology.TerminationType(tag)}
	if t.Type != ontology.TerminationError {
		return t
	}
	if data == 0 {
		r.Fail("data", errors.New(errors.PhaseDecode, errors.KindInvalidUnion).
			Detail("null payload for termination type %s", t.Type).
			Value(tag).
			Build())
		return ontology.SessionTermination{}
	}
	t.Error = r.Text("data")
	return t
}

func freeTermination(f *codec.RecordFreer) {
	if tag := f.U32("termination_type"); tag == 0 || tag > uint32(ontology.TerminationError) {
		codec.UnknownDiscriminant("SessionTermination", tag)
	}
	f.Text("data")
}
