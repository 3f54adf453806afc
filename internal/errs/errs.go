// Package errs defines the typed error taxonomy used across the
// container reader, bytecode VM and playback scheduler.
package errs

import (
	"github.com/pkg/errors"
)

// Kind identifies one of the error categories a Native32 container
// load or playback run can fail with.
type Kind string

const (
	HeaderNotFound         Kind = "HeaderNotFound"
	HeaderKeyNotFound      Kind = "HeaderKeyNotFound"
	TruncatedRecord        Kind = "TruncatedRecord"
	BadImageOp             Kind = "BadImageOp"
	UnknownOpcode          Kind = "UnknownOpcode"
	StackUnderflow         Kind = "StackUnderflow"
	MalformedBytecode      Kind = "MalformedBytecode"
	UnsupportedSoundFormat Kind = "UnsupportedSoundFormat"
	UnhandledUrlVerb       Kind = "UnhandledUrlVerb"
)

// Error is a coded error carrying a Kind so callers can branch on
// failure category without string matching.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

// New builds a coded error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Is reports whether err is a coded Error of the given kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	if !ok {
		return false
	}
	return e.Kind == kind
}

// KindOf extracts the Kind of a coded error, or "" if err isn't one.
func KindOf(err error) Kind {
	e, ok := err.(*Error)
	if !ok || e == nil {
		return ""
	}
	return e.Kind
}

// Wrapf attaches a stack trace and formatted context to err.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}
