// Package errors defines the one error type pidash shows to people: a
// headline, the underlying cause, and what to do about it.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Codes group errors by the part of pidash that raised them.
const (
	// ErrConfig covers .pidash.yaml, flags and the terminal environment.
	ErrConfig = "CONFIG"
	// ErrFleet covers unknown or duplicate hosts, devices and sensors.
	ErrFleet = "FLEET"
	// ErrWidget covers invalid widget operations such as a bad size tier.
	ErrWidget = "WIDGET"
	ErrRender = "RENDER"
	// ErrExport covers writing chart snapshots to disk.
	ErrExport = "EXPORT"
)

// Error is a coded error with an optional cause and suggestion. Its text
// reads, top to bottom, what failed, why, and how to fix it:
//
//	✗ Unknown sensor 'x9'
//
//	  Known sensors: t1, h1, c1
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New returns an Error without a cause.
func New(code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion}
}

// WrapWithCode returns an Error around cause.
func WrapWithCode(cause error, code, message, suggestion string) *Error {
	return &Error{Code: code, Message: message, Suggestion: suggestion, Cause: cause}
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "✗ %s\n", e.Message)
	for _, detail := range []string{e.causeText(), e.Suggestion} {
		if detail != "" {
			fmt.Fprintf(&b, "\n  %s\n", detail)
		}
	}
	return b.String()
}

func (e *Error) causeText() string {
	if e.Cause == nil {
		return ""
	}
	return e.Cause.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CodeOf returns the code of the first Error in err's chain, or "".
func CodeOf(err error) string {
	var pdErr *Error
	if errors.As(err, &pdErr) {
		return pdErr.Code
	}
	return ""
}

// IsCode reports whether err carries code.
func IsCode(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// Summary is the one-line form used in status bars: the headline of a
// coded error, or the whole text of any other error.
func Summary(err error) string {
	var pdErr *Error
	if errors.As(err, &pdErr) {
		return pdErr.Message
	}
	return strings.TrimSpace(err.Error())
}
