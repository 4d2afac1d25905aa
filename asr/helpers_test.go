package asr

import (
	stderrors "errors"

	"github.com/wippyai/hermes-abi/errors"
)

func asError(err error, target **errors.Error) bool {
	return stderrors.As(err, target)
}
