package codec

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"github.com/wippyai/hermes-abi/errors"
	"github.com/wippyai/hermes-abi/internal/abi"
)

const scanChunk = 64

// EncodeText copies v into a fresh NUL-terminated buffer. Text holding a
// NUL byte or invalid UTF-8 cannot be represented.
func EncodeText(s *Scope, v string) (uint32, error) {
	if i := strings.IndexByte(v, 0); i >= 0 {
		return 0, errors.Encoding(nil, "text contains NUL at byte %d", i)
	}
	if !utf8.ValidString(v) {
		return 0, errors.Encoding(nil, "text is not valid UTF-8")
	}
	if uint64(len(v)) >= abi.MaxStringSize {
		return 0, errors.Overflow(errors.PhaseEncode, nil, len(v), abi.MaxStringSize-1)
	}

	size := uint32(len(v)) + 1
	ptr, err := s.Alloc(size, 1)
	if err != nil {
		return 0, err
	}
	buf := make([]byte, size)
	copy(buf, v)
	if err := s.Write(ptr, buf); err != nil {
		return 0, err
	}
	return ptr, nil
}

// EncodeOptionalText encodes nil as the null pointer.
func EncodeOptionalText(s *Scope, v *string) (uint32, error) {
	if v == nil {
		return 0, nil
	}
	return EncodeText(s, *v)
}

// DecodeText copies the text at ptr. The buffer stays owned by the caller.
func DecodeText(mem Memory, ptr uint32, path ...string) (string, error) {
	if ptr == 0 {
		return "", errors.NilPointer(errors.PhaseDecode, path)
	}
	n, err := textLen(mem, ptr, errors.PhaseDecode, path)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	data, err := mem.Read(ptr, n)
	if err != nil {
		return "", errors.OutOfBounds(errors.PhaseDecode, path, ptr, n, err)
	}
	if !utf8.Valid(data) {
		return "", errors.New(errors.PhaseDecode, errors.KindEncoding).
			Path(path...).
			Detail("text is not valid UTF-8").
			Build()
	}
	return string(data), nil
}

// DecodeOptionalText decodes the null pointer as nil.
func DecodeOptionalText(mem Memory, ptr uint32, path ...string) (*string, error) {
	if ptr == 0 {
		return nil, nil
	}
	v, err := DecodeText(mem, ptr, path...)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FreeText releases a buffer produced by EncodeText. The size is recovered
// by scanning for the terminator.
func FreeText(mem Memory, alloc Allocator, ptr uint32) {
	if ptr == 0 {
		errors.Panic(errors.KindNilPointer, "free of null text pointer")
	}
	n, err := textLen(mem, ptr, errors.PhaseFree, nil)
	if err != nil {
		errors.Panic(errors.KindOutOfBounds, "text at %d: %v", ptr, err)
	}
	alloc.Free(ptr, n+1, 1)
}

// FreeOptionalText is FreeText that ignores the null pointer.
func FreeOptionalText(mem Memory, alloc Allocator, ptr uint32) {
	if ptr != 0 {
		FreeText(mem, alloc, ptr)
	}
}

// textLen returns the number of bytes before the terminator.
func textLen(mem Memory, ptr uint32, phase errors.Phase, path []string) (uint32, error) {
	var n uint32
	for n < abi.MaxStringSize {
		off, ok := abi.SafeAddU32(ptr, n)
		if !ok {
			return 0, errors.OutOfBounds(phase, path, ptr, n, nil)
		}
		chunk, err := mem.Read(off, scanChunk)
		if err != nil {
			// Near the end of memory; fall back to single bytes.
			b, err := mem.ReadU8(off)
			if err != nil {
				return 0, errors.OutOfBounds(phase, path, off, 1, err)
			}
			if b == 0 {
				return n, nil
			}
			n++
			continue
		}
		if i := bytes.IndexByte(chunk, 0); i >= 0 {
			n += uint32(i)
			if n >= abi.MaxStringSize {
				break
			}
			return n, nil
		}
		n += scanChunk
	}
	return 0, errors.Overflow(phase, path, "unterminated text", abi.MaxStringSize)
}
