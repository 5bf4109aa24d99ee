package scraper

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidInput
	KindBrowserLaunch
	KindNavigationTimeout
	KindNavigation
	KindExtraction
	KindCanceled
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid input"
	case KindBrowserLaunch:
		return "browser launch failure"
	case KindNavigationTimeout:
		return "navigation timeout"
	case KindNavigation:
		return "navigation error"
	case KindExtraction:
		return "extraction error"
	case KindCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// ErrNoEstimates means fallback synthesis had no portal with a usable range.
var ErrNoEstimates = errors.New("no portal has a fallback estimate range")

// Error is a classified failure. Portal and Op are optional labels.
type Error struct {
	Kind   Kind
	Portal string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Portal != "" {
		msg = e.Portal + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput reports a caller mistake.
func InvalidInput(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidInput, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
