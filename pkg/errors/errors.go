// Package errors defines the coded errors shared by the mvnfetch packages.
//
// A run is best effort: a manifest or artifact that no repository serves is
// logged and skipped. Only a handful of conditions stop it, and those travel
// as an [*Error] (or a [*CycleError]) so the CLI can report them by [Code]:
//
//	INVALID_INPUT         bad coordinate, repository token or flag
//	INVALID_CONFIG        unreadable or inconsistent config file
//	VERSION_UNDETERMINED  no version given and none could be selected
//	CYCLE_DETECTED        a coordinate depends on itself
//	LOCKED                another run holds the output directory
//
// NOT_FOUND, NETWORK_ERROR and MALFORMED_DEPENDENCY describe the per-request
// and per-declaration failures that are logged instead.
//
//	if errors.Is(err, errors.ErrCodeVersionUndetermined) {
//	    fmt.Fprintln(os.Stderr, "pass --choice")
//	}
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an error for callers and for the CLI exit path.
type Code string

const (
	ErrCodeInvalidInput        Code = "INVALID_INPUT"
	ErrCodeInvalidConfig       Code = "INVALID_CONFIG"
	ErrCodeNotFound            Code = "NOT_FOUND"
	ErrCodeNetwork             Code = "NETWORK_ERROR"
	ErrCodeMalformedDependency Code = "MALFORMED_DEPENDENCY"
	ErrCodeVersionUndetermined Code = "VERSION_UNDETERMINED"
	ErrCodeCycleDetected       Code = "CYCLE_DETECTED"
	ErrCodeLocked              Code = "LOCKED"
	ErrCodeInternal            Code = "INTERNAL_ERROR"
)

// Error carries a Code, a message for the operator and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return Wrap(code, nil, format, args...)
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the first coded error in err's chain has code.
func Is(err error, code Code) bool {
	c, ok := codeOf(err)
	return ok && c == code
}

// GetCode returns the code of the first coded error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	c, _ := codeOf(err)
	return c
}

func codeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	var ce *CycleError
	if errors.As(err, &ce) {
		return ErrCodeCycleDetected, true
	}
	return "", false
}

// UserMessage renders err for the terminal: coded errors lose their code
// prefix and keep their cause chain; anything else prints as is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + UserMessage(e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// CycleError reports a coordinate that reappeared on the active resolution
// path. Path lists the coordinates from the first occurrence to the repeat.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: dependency cycle: %s", ErrCodeCycleDetected, strings.Join(e.Path, " -> "))
}

// Code is always ErrCodeCycleDetected.
func (e *CycleError) Code() Code {
	return ErrCodeCycleDetected
}
