package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseEncode  Phase = "encode"  // Go to foreign memory
	PhaseDecode  Phase = "decode"  // foreign memory to Go
	PhaseFree    Phase = "free"    // destructor
	PhaseLayout  Phase = "layout"  // record layout calculation
	PhaseRuntime Phase = "runtime" // guest runtime operations
	PhaseLoad    Phase = "load"    // fixture and module loading
)

// Kind categorizes the error
type Kind string

const (
	KindEncoding            Kind = "encoding"
	KindNilPointer          Kind = "nil_pointer"
	KindInvalidUnion        Kind = "invalid_union"
	KindArrayLengthMismatch Kind = "array_length_mismatch"
	KindAllocation          Kind = "allocation"
	KindOutOfBounds         Kind = "out_of_bounds"
	KindOverflow            Kind = "overflow"
	KindInvalidInput        Kind = "invalid_input"
	KindNotInitialized      Kind = "not_initialized"
	KindDoubleFree          Kind = "double_free"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string // message or primitive type being converted
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Type != "" || len(e.Path) > 0 {
		b.WriteString(" at ")
		segments := e.Path
		if e.Type != "" {
			segments = append([]string{e.Type}, e.Path...)
		}
		writePath(&b, segments)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// writePath joins segments with dots, gluing index segments like "[2]" to
// the segment before them.
func writePath(b *strings.Builder, segments []string) {
	for i, s := range segments {
		if i > 0 && !strings.HasPrefix(s, "[") {
			b.WriteByte('.')
		}
		b.WriteString(s)
	}
}

// Field returns the innermost path segment, the field at fault.
func (e *Error) Field() string {
	for i := len(e.Path) - 1; i >= 0; i-- {
		if !strings.HasPrefix(e.Path[i], "[") {
			return e.Path[i]
		}
	}
	return ""
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Type sets the message type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Encoding creates an error for a domain value that cannot be represented
func Encoding(path []string, detail string, args ...any) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindEncoding,
		Path:   path,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// NilPointer creates an error for a required pointer that is null
func NilPointer(phase Phase, path []string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Path:   path,
		Detail: "unexpected null pointer",
	}
}

// InvalidUnion creates an error for a discriminant outside the known set
func InvalidUnion(phase Phase, path []string, disc uint32, maxValid uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUnion,
		Path:   path,
		Detail: fmt.Sprintf("discriminant %d out of range (valid 1..%d)", disc, maxValid),
		Value:  disc,
	}
}

// ArrayLengthMismatch creates an error for a count that disagrees with its backing allocation
func ArrayLengthMismatch(phase Phase, path []string, count int64, capacity uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindArrayLengthMismatch,
		Path:   path,
		Detail: fmt.Sprintf("declared count %d, backing allocation holds %d entries", count, capacity),
		Value:  count,
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size, align uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes (align %d)", size, align),
		Cause:  cause,
	}
}

// OutOfBounds creates an out of bounds memory access error
func OutOfBounds(phase Phase, path []string, offset, length uint32, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("memory access out of bounds: offset=%d, length=%d", offset, length),
		Cause:  cause,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, limit any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v exceeds limit %v", value, limit),
		Value:  value,
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates a fixture or module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidInput,
		Detail: detail,
		Cause:  cause,
	}
}

// AtPath returns err with segments prepended to its path. Errors that are
// not *Error are wrapped as invalid input.
func AtPath(err error, phase Phase, segments ...string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !stderrors.As(err, &e) {
		return &Error{Phase: phase, Kind: KindInvalidInput, Path: segments, Cause: err}
	}
	out := *e
	out.Path = append(append(make([]string, 0, len(segments)+len(e.Path)), segments...), e.Path...)
	return &out
}

// WithType returns err tagged with the message type that failed, keeping
// an inner type if one is already set.
func WithType(err error, typeName string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if !stderrors.As(err, &e) || e.Type != "" {
		return err
	}
	out := *e
	out.Type = typeName
	return &out
}

// HasKind reports whether err is an *Error of the given kind
func HasKind(err error, kind Kind) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Kind == kind
}

// Violation is the panic value for contract violations detected at the
// boundary: double free, freeing memory that was never allocated, or
// destroying a union through an unknown discriminant. These are not
// recoverable errors.
type Violation struct {
	Kind   Kind
	Detail string
}

func (v *Violation) Error() string {
	return "contract violation: " + string(v.Kind) + ": " + v.Detail
}

// Panic raises a Violation.
func Panic(kind Kind, detail string, args ...any) {
	panic(&Violation{Kind: kind, Detail: fmt.Sprintf(detail, args...)})
}
