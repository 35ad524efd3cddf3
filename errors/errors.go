package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Kind categorizes the error
type Kind string

const (
	KindSocketCreation Kind = "socket_creation" // handle could not be obtained
	KindInvalidAddress Kind = "invalid_address" // address literal rejected before bind
	KindBind           Kind = "bind"            // OS-level bind failure
	KindUnsupported    Kind = "unsupported"     // extension point without an implementation
	KindNotFound       Kind = "not_found"       // unknown handle or table entry
	KindInvalidInput   Kind = "invalid_input"   // malformed caller input outside the core
)

// Sentinels for errors.Is. They match any error of the same Kind.
var (
	ErrSocketCreation = &Error{Kind: KindSocketCreation}
	ErrInvalidAddress = &Error{Kind: KindInvalidAddress}
	ErrBind           = &Error{Kind: KindBind}
	ErrUnsupported    = &Error{Kind: KindUnsupported}
	ErrNotFound       = &Error{Kind: KindNotFound}
)

// Error is the structured error type used throughout socketlib
type Error struct {
	Value  any
	Cause  error
	Op     string
	Kind   Kind
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}

	if e.Detail != "" {
		b.WriteString(e.Detail)
	} else {
		b.WriteString(string(e.Kind))
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target without an Op matches on Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Op == "" || t.Op == e.Op
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op string, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
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

// Detail sets the human-readable detail message verbatim
func (b *Builder) Detail(msg string) *Builder {
	b.err.Detail = msg
	return b
}

// Detailf sets the detail message from a format string
func (b *Builder) Detailf(format string, args ...any) *Builder {
	b.err.Detail = fmt.Sprintf(format, args...)
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the socket error taxonomy

// SocketCreation creates an error for a failed handle allocation.
// detail is the translated OS message, cause the raw errno.
func SocketCreation(op, detail string, cause error) *Error {
	return New(op, KindSocketCreation).Detail(detail).Cause(cause).Build()
}

// InvalidAddress creates an error for an address literal that failed validation
func InvalidAddress(op, addr string) *Error {
	return New(op, KindInvalidAddress).
		Value(addr).
		Detail("Incorrect IPv4 address " + addr).
		Build()
}

// Bind creates an error for a failed bind call
func Bind(op, detail string, cause error) *Error {
	return New(op, KindBind).Detail(detail).Cause(cause).Build()
}

// Unsupported creates an error for an operation that has no implementation
func Unsupported(op string) *Error {
	return New(op, KindUnsupported).Detail("not implemented").Build()
}

// NotFound creates an error for a lookup that found nothing
func NotFound(op string, value any) *Error {
	return New(op, KindNotFound).Value(value).Detailf("%v not found", value).Build()
}

// Wrap wraps an existing error with additional context
func Wrap(op string, kind Kind, cause error, detail string) *Error {
	return New(op, kind).Detail(detail).Cause(cause).Build()
}
