package diag

import (
	"errors"
	"fmt"

	"axiom/internal/source"
)

// Note is a secondary reference attached to an error.
type Note struct {
	Ref source.Reference
	Msg string
}

// Error is a fatal lexical, grammar or driver error.
type Error struct {
	Code  Code
	Ref   source.Reference
	Msg   string
	Notes []Note
	Cause error
}

// Errorf builds an error at ref with a formatted message.
func Errorf(code Code, ref source.Reference, format string, args ...any) *Error {
	return &Error{Code: code, Ref: ref, Msg: fmt.Sprintf(format, args...)}
}

// Wrap builds an error at ref that wraps cause.
func Wrap(code Code, ref source.Reference, cause error, msg string) *Error {
	return &Error{Code: code, Ref: ref, Msg: msg, Cause: cause}
}

// WithNote appends a note and returns the receiver.
func (e *Error) WithNote(ref source.Reference, msg string) *Error {
	e.Notes = append(e.Notes, Note{Ref: ref, Msg: msg})
	return e
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Code.Title()
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	if e.Ref == nil {
		return fmt.Sprintf("%s: %s", e.Code.ID(), msg)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code.ID(), msg, e.Ref)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Slice returns the unit slice of the error, if it has one.
func (e *Error) Slice() (source.Slice, bool) {
	s, ok := e.Ref.(source.Slice)
	return s, ok && !s.IsZero()
}

// As extracts the first *Error from err's chain.
func As(err error) (*Error, bool) {
	var d *Error
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
