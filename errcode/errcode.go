package errcode

import (
	"errors"

	"npm1300-go/drivers/npm1300"
)

// Code is a stable, caller-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK              Code = "ok"
	Unsupported     Code = "unsupported"
	InvalidParams   Code = "invalid_params"
	InvalidPayload  Code = "invalid_payload"
	BusError        Code = "bus_error"
	UnexpectedState Code = "unexpected_state"
	UnsafeSetting   Code = "unsafe_setting"
	Timeout         Code = "timeout"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap attaches the mapped code for err and the operation name.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: MapDriverErr(err), Op: op, Msg: err.Error(), Err: err}
}

// Of extracts a Code from an error chain, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	type coder interface{ Code() Code }
	var x coder
	if errors.As(err, &x) {
		return x.Code()
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return Error
}

// MapDriverErr maps npm1300 driver errors to a Code.
func MapDriverErr(err error) Code {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, npm1300.ErrTransport):
		return BusError
	case errors.Is(err, npm1300.ErrUnexpectedState),
		errors.Is(err, npm1300.ErrNoNTC):
		return UnexpectedState
	case errors.Is(err, npm1300.ErrInvalidPofVSYSThreshold):
		return UnsafeSetting
	case errors.Is(err, npm1300.ErrInvalidGPIO),
		errors.Is(err, npm1300.ErrInvalidLED),
		errors.Is(err, npm1300.ErrInvalidBuck),
		errors.Is(err, npm1300.ErrOutOfRange):
		return InvalidParams
	case errors.Is(err, npm1300.ErrNotWritable),
		errors.Is(err, npm1300.ErrNotReadable):
		return Unsupported
	}
	return Of(err)
}
