package codec

import (
	stderrors "errors"
	"testing"

	"github.com/wippyai/hermes-abi/errors"
)

func asError(err error, target **errors.Error) bool {
	return stderrors.As(err, target)
}

func expectViolation(t *testing.T, kind errors.Kind, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		v, ok := r.(*errors.Violation)
		if !ok {
			t.Fatalf("expected *errors.Violation panic, got %v", r)
		}
		if v.Kind != kind {
			t.Fatalf("violation kind = %s, want %s", v.Kind, kind)
		}
	}()
	fn()
}
