package npm1300

import (
	"errors"

	"npm1300-go/x/conv"
)

var (
	// Sentinel errors (TinyGo-safe; no fmt)
	ErrTransport               = errors.New("npm1300: transport failure")
	ErrUnexpectedState         = errors.New("npm1300: unexpected hardware state")
	ErrInvalidPofVSYSThreshold = errors.New("npm1300: POF threshold above measured VSYS")
	ErrInvalidGPIO             = errors.New("npm1300: GPIO index out of range")
	ErrInvalidLED              = errors.New("npm1300: LED index out of range")
	ErrInvalidBuck             = errors.New("npm1300: buck index out of range")
	ErrOutOfRange              = errors.New("npm1300: value out of range")
	ErrNoNTC                   = errors.New("npm1300: thermistor shorted or absent")
	ErrNotWritable             = errors.New("npm1300: register is not writable")
	ErrNotReadable             = errors.New("npm1300: register is not readable")
)

// TransportError wraps a bus failure with the operation and register address
// it happened on.
type TransportError struct {
	Op   string // "read" or "write"
	Addr uint16
	Err  error
}

func (e *TransportError) Error() string {
	var b [4]byte
	s := "npm1300: " + e.Op + " 0x" + string(conv.U16Hex(b[:], e.Addr))
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *TransportError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrTransport) match any transport failure.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// UnexpectedStateError reports a register value outside the documented
// encoding, e.g. a charger mode that is neither charging nor discharging.
type UnexpectedStateError struct {
	Addr  uint16
	Value uint8
}

func (e *UnexpectedStateError) Error() string {
	var a [4]byte
	var v [2]byte
	return "npm1300: unexpected value 0x" + string(conv.U8Hex(v[:], e.Value)) +
		" in register 0x" + string(conv.U16Hex(a[:], e.Addr))
}

func (e *UnexpectedStateError) Is(target error) bool { return target == ErrUnexpectedState }
