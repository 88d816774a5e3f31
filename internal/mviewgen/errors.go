package mviewgen

import (
	"errors"
	"fmt"
	"strings"
)

// Severity classifies a reported diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Error represents a diagnostic with source location and optional hint.
type Error struct {
	Span     Span
	Message  string
	Hint     string // optional suggestion for fixing the error
	Severity Severity
}

// Error implements the error interface.
func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Span.String())
	sb.WriteString(": ")
	sb.WriteString(e.Severity.String())
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Hint != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Hint)
		sb.WriteString(")")
	}
	return sb.String()
}

// NewError creates a new Error with the given span and message.
func NewError(span Span, message string) *Error {
	return &Error{Span: span, Message: message}
}

// NewErrorf creates a new Error with a formatted message.
func NewErrorf(span Span, format string, args ...any) *Error {
	return &Error{Span: span, Message: fmt.Sprintf(format, args...)}
}

// NewErrorWithHint creates a new Error with a hint for fixing the error.
func NewErrorWithHint(span Span, message, hint string) *Error {
	return &Error{Span: span, Message: message, Hint: hint}
}

// ErrorList collects multiple diagnostics.
type ErrorList struct {
	errors []*Error
}

// NewErrorList creates an empty error list.
func NewErrorList() *ErrorList {
	return &ErrorList{}
}

// Add appends an error to the list.
func (el *ErrorList) Add(err *Error) {
	el.errors = append(el.errors, err)
}

// AddError creates and adds an error with the given span and message.
func (el *ErrorList) AddError(span Span, message string) {
	el.errors = append(el.errors, NewError(span, message))
}

// AddErrorf creates and adds an error with a formatted message.
func (el *ErrorList) AddErrorf(span Span, format string, args ...any) {
	el.errors = append(el.errors, NewErrorf(span, format, args...))
}

// AddWarning adds a warning. Warnings never make Err return non-nil.
func (el *ErrorList) AddWarning(span Span, message, hint string) {
	el.errors = append(el.errors, &Error{Span: span, Message: message, Hint: hint, Severity: SeverityWarning})
}

// Merge appends every diagnostic of other.
func (el *ErrorList) Merge(other *ErrorList) {
	if other == nil {
		return
	}
	el.errors = append(el.errors, other.errors...)
}

// Len returns the number of diagnostics, warnings included.
func (el *ErrorList) Len() int {
	return len(el.errors)
}

// HasErrors returns true if there is at least one error-severity diagnostic.
func (el *ErrorList) HasErrors() bool {
	for _, e := range el.errors {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns a copy of the diagnostic slice.
func (el *ErrorList) Errors() []*Error {
	result := make([]*Error, len(el.errors))
	copy(result, el.errors)
	return result
}

// Warnings returns only the warning-severity diagnostics.
func (el *ErrorList) Warnings() []*Error {
	var result []*Error
	for _, e := range el.errors {
		if e.Severity == SeverityWarning {
			result = append(result, e)
		}
	}
	return result
}

// Error implements the error interface, returning all diagnostics joined by newlines.
func (el *ErrorList) Error() string {
	if len(el.errors) == 0 {
		return ""
	}
	if len(el.errors) == 1 {
		return el.errors[0].Error()
	}

	var sb strings.Builder
	for i, err := range el.errors {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Err returns nil if there are no errors, otherwise returns the ErrorList as an error.
func (el *ErrorList) Err() error {
	if !el.HasErrors() {
		return nil
	}
	return el
}

// Diagnostics is the sink for one invocation. Emit records a non-fatal
// error and lets parsing continue; Abort stops the invocation.
type Diagnostics struct {
	list ErrorList
}

func newDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

// Emit records a non-fatal error.
func (d *Diagnostics) Emit(span Span, message, hint string) {
	d.list.Add(&Error{Span: span, Message: message, Hint: hint})
}

// EmitError records err as a non-fatal error, keeping its span when it has one.
func (d *Diagnostics) EmitError(err error, fallback Span) {
	var m *mismatch
	var e *Error
	switch {
	case errors.As(err, &m):
		d.Emit(m.span, m.msg, "")
	case errors.As(err, &e):
		d.list.Add(e)
	default:
		d.Emit(fallback, err.Error(), "")
	}
}

// Warn records a warning.
func (d *Diagnostics) Warn(span Span, message, hint string) {
	d.list.AddWarning(span, message, hint)
}

// Abort reports a fatal error and unwinds the current invocation.
func (d *Diagnostics) Abort(span Span, message, hint string) {
	panic(abort{err: &Error{Span: span, Message: message, Hint: hint}})
}

// List returns the recorded diagnostics.
func (d *Diagnostics) List() *ErrorList {
	return &d.list
}

func (d *Diagnostics) mark() int {
	return len(d.list.errors)
}

func (d *Diagnostics) reset(mark int) {
	d.list.errors = d.list.errors[:mark]
}

// abort is the panic value used to unwind a fatal invocation.
type abort struct {
	err *Error
}

// recoverAbort turns an abort panic into an error. Any other panic is re-raised.
func recoverAbort(errp *error) {
	r := recover()
	if r == nil {
		return
	}
	a, ok := r.(abort)
	if !ok {
		panic(r)
	}
	*errp = a.err
}

// mismatch is returned by a production that does not apply at the cursor.
// It is silent unless the caller decides to report it.
type mismatch struct {
	span Span
	msg  string
}

func (m *mismatch) Error() string {
	return fmt.Sprintf("%s: %s", m.span, m.msg)
}

func mismatchf(span Span, format string, args ...any) error {
	return &mismatch{span: span, msg: fmt.Sprintf(format, args...)}
}
