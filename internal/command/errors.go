package command

import (
	"errors"
	"fmt"

	"github.com/tgienger/byteme/internal/db"
	"github.com/tgienger/byteme/internal/interval"
)

// ErrorKind tells callers which way a command failed
type ErrorKind int

const (
	// InvalidInput is an unknown command or a value that cannot be parsed
	InvalidInput ErrorKind = iota + 1
	NoDescription
	NoDate
	NotFound
	// InvalidInterval is a time span that ends before it starts
	InvalidInterval
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NoDescription:
		return "no description"
	case NoDate:
		return "no date"
	case NotFound:
		return "not found"
	case InvalidInterval:
		return "invalid interval"
	}
	return "unknown"
}

// Error is returned by Parse and Execute for every failure the user can fix
type Error struct {
	Kind ErrorKind
	// Detail names the command, flag or value involved
	Detail string
	Err    error
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// KindOf reports the kind of a command error. Errors that did not come
// from this package (storage failures) report 0.
func KindOf(err error) ErrorKind {
	var cmdErr *Error
	if errors.As(err, &cmdErr) {
		return cmdErr.Kind
	}
	return 0
}

// classify turns errors from lower layers into command errors where the
// user can act on them
func classify(err error, detail string) error {
	var invalid *interval.InvalidIntervalError
	switch {
	case errors.As(err, &invalid):
		return &Error{Kind: InvalidInterval, Detail: detail, Err: err}
	case errors.Is(err, db.ErrTaskNotFound):
		return &Error{Kind: NotFound, Detail: detail, Err: err}
	}
	return err
}
