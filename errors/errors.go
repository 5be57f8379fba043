package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseLoad     Phase = "load"     // binary decoding
	PhaseValidate Phase = "validate" // structural validation
	PhaseRuntime  Phase = "runtime"  // instruction execution
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfBoundsMemory  Kind = "out_of_bounds_memory"  // linear memory access outside the current bound
	KindOutOfBoundsArray   Kind = "out_of_bounds_array"   // array element index outside the instance length
	KindOutOfBoundsLength  Kind = "out_of_bounds_length"  // segment-sourced region outside the segment
	KindCastNullToNonNull  Kind = "cast_null_to_non_null" // null reference where a non-null one is required
	KindCastFailed         Kind = "cast_failed"           // ref.cast target not matched by the value's type
	KindTypeMismatch       Kind = "type_mismatch"         // operand or composite kind mismatch
	KindAllocation         Kind = "allocation"            // backing storage could not be obtained
	KindInvalidData        Kind = "invalid_data"          // malformed binary input
	KindUnsupported        Kind = "unsupported"           // recognized but unimplemented construct
	KindInvalidInput       Kind = "invalid_input"         // caller-supplied argument rejected
)

// Error is the structured error type used throughout the library
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Type   string
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

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
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

// Type sets the WASM type name involved in the error
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

// MemoryOutOfBounds creates a linear memory bounds error
func MemoryOutOfBounds(offset, length, bound uint64) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindOutOfBoundsMemory,
		Detail: fmt.Sprintf("access of %d bytes at offset %d exceeds bound %d", length, offset, bound),
		Value:  offset,
	}
}

// ArrayOutOfBounds creates an array element bounds error
func ArrayOutOfBounds(index, length uint64) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindOutOfBoundsArray,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// LengthOutOfBounds creates a segment region bounds error
func LengthOutOfBounds(start, length, size uint64) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindOutOfBoundsLength,
		Detail: fmt.Sprintf("region [%d, %d+%d) outside segment of size %d", start, start, length, size),
		Value:  start,
	}
}

// NullAccess creates a null dereference error for the named operation
func NullAccess(op string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindCastNullToNonNull,
		Detail: fmt.Sprintf("%s on null reference", op),
	}
}

// CastFailed creates a failed downcast error
func CastFailed(want, got string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindCastFailed,
		Type:   want,
		Detail: fmt.Sprintf("value of type %s does not match", got),
		Value:  got,
	}
}

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, want, got string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Path:   path,
		Type:   want,
		Detail: fmt.Sprintf("got %s", got),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(pages uint64) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d pages", pages),
		Value:  pages,
	}
}

// Unsupported creates an unsupported construct error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
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

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
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
