package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseAcquire  Phase = "acquire"  // handle creation
	PhaseLoad     Phase = "load"     // file and buffer loading
	PhaseParse    Phase = "parse"    // object and IR parsing
	PhaseMarshal  Phase = "marshal"  // Go to foreign argument conversion
	PhaseBorrow   Phase = "borrow"   // reference and handle access
	PhaseDispose  Phase = "dispose"  // handle release
	PhaseClassify Phase = "classify" // foreign tag mapping
)

// Kind categorizes the error
type Kind string

const (
	KindForeign         Kind = "foreign"
	KindInvalidInput    Kind = "invalid_input"
	KindNilHandle       Kind = "nil_handle"
	KindUseAfterDispose Kind = "use_after_dispose"
	KindMoved           Kind = "moved"
	KindScopeClosed     Kind = "scope_closed"
	KindUnknownTag      Kind = "unknown_tag"
	KindUnavailable     Kind = "unavailable"
)

// Error is the structured error type used throughout the library
type Error struct {
	Value   any
	Cause   error
	Phase   Phase
	Kind    Kind
	Op      string
	Handle  string
	Subject string
	Detail  string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Op != "" {
		b.WriteString(" in ")
		b.WriteString(e.Op)
	}

	if e.Handle != "" {
		b.WriteString(" on ")
		b.WriteString(e.Handle)
	}

	if e.Subject != "" {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(e.Subject))
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

// ContractViolation reports whether the error marks a broken invariant
// between the caller, this library and the foreign library.
func (e *Error) ContractViolation() bool {
	switch e.Kind {
	case KindNilHandle, KindUseAfterDispose, KindMoved, KindScopeClosed, KindUnknownTag:
		return true
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

// Op sets the foreign entry point name
func (b *Builder) Op(op string) *Builder {
	b.err.Op = op
	return b
}

// Handle sets the resource type the error concerns
func (b *Builder) Handle(h string) *Builder {
	b.err.Handle = h
	return b
}

// Subject sets the path or name the operation was applied to
func (b *Builder) Subject(s string) *Builder {
	b.err.Subject = s
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

// Foreign creates an error carrying a diagnostic reported by the foreign library
func Foreign(phase Phase, op, message string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindForeign,
		Op:     op,
		Detail: message,
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

// NilHandle creates an error for a zero handle where a live one is required
func NilHandle(phase Phase, handle string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilHandle,
		Handle: handle,
		Detail: "nil handle",
	}
}

// UseAfterDispose creates an error for access to a released handle
func UseAfterDispose(handle string) *Error {
	return &Error{
		Phase:  PhaseBorrow,
		Kind:   KindUseAfterDispose,
		Handle: handle,
		Detail: "handle already disposed",
	}
}

// Moved creates an error for access through a moved-from container
func Moved(handle string) *Error {
	return &Error{
		Phase:  PhaseBorrow,
		Kind:   KindMoved,
		Handle: handle,
		Detail: "container no longer owns a handle",
	}
}

// ScopeClosed creates an error for a child created in a disposed parent scope
func ScopeClosed(handle string) *Error {
	return &Error{
		Phase:  PhaseAcquire,
		Kind:   KindScopeClosed,
		Handle: handle,
		Detail: "parent scope already closed",
	}
}

// UnknownTag creates an error for a foreign enumeration value outside the known set
func UnknownTag(what string, tag int) *Error {
	return &Error{
		Phase:  PhaseClassify,
		Kind:   KindUnknownTag,
		Detail: fmt.Sprintf("unrecognized %s tag %d", what, tag),
		Value:  tag,
	}
}

// Unavailable creates an error for a backend missing from the build
func Unavailable(backend, detail string) *Error {
	return &Error{
		Phase:   PhaseAcquire,
		Kind:    KindUnavailable,
		Subject: backend,
		Detail:  detail,
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

// IsContractViolation reports whether v, an error or a recovered panic
// value, is a contract violation raised by this library.
func IsContractViolation(v any) bool {
	err, ok := v.(error)
	if !ok {
		return false
	}
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.ContractViolation()
}

// ForeignMessage returns the foreign diagnostic carried by err, if any.
func ForeignMessage(err error) (string, bool) {
	var e *Error
	if !errors.As(err, &e) || e.Kind != KindForeign {
		return "", false
	}
	return e.Detail, true
}
