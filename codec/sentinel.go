package codec

import (
	"math"

	"github.com/wippyai/hermes-abi/errors"
)

// Sentinels for optional scalars stored inline.
const (
	ConfidenceAbsent float32 = -1.0
	TriStateFalse    uint8   = 0
	TriStateTrue     uint8   = 1
	TriStateAbsent   uint8   = 255
)

// CheckConfidence rejects a present score outside [0, 1].
func CheckConfidence(v *float32, path ...string) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(float64(*v)) || *v < 0 || *v > 1 {
		return errors.Encoding(path, "confidence %v outside [0, 1]", *v)
	}
	return nil
}

// EncodeConfidence stores an optional score, nil as -1.
func EncodeConfidence(v *float32) float32 {
	if v == nil {
		return ConfidenceAbsent
	}
	return *v
}

// DecodeConfidence reads any value outside [0, 1] as absent.
func DecodeConfidence(v float32) *float32 {
	if math.IsNaN(float64(v)) || v < 0 || v > 1 {
		return nil
	}
	return &v
}

func EncodeTriState(v *bool) uint8 {
	switch {
	case v == nil:
		return TriStateAbsent
	case *v:
		return TriStateTrue
	default:
		return TriStateFalse
	}
}

// DecodeTriState maps 0 and 1 to a value and every other byte to nil.
func DecodeTriState(b uint8) *bool {
	switch b {
	case TriStateFalse:
		v := false
		return &v
	case TriStateTrue:
		v := true
		return &v
	default:
		return nil
	}
}

func EncodeBool(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// DecodeBool treats any nonzero byte as true.
func DecodeBool(b uint8) bool {
	return b != 0
}
