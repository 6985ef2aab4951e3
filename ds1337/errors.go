package ds1337

import (
	"errors"
	"strconv"
)

var (
	// Sentinel errors (TinyGo-safe; no fmt)
	ErrDeviceNotFound    = errors.New("ds1337: device not found")
	ErrInvalidFieldValue = errors.New("ds1337: invalid field value")
	ErrOutOfRange        = errors.New("ds1337: calendar year outside 1970-2099")
	ErrBus               = errors.New("ds1337: bus error")
)

// FieldError reports a value outside the domain of a register field. It
// matches ErrInvalidFieldValue with errors.Is.
type FieldError struct {
	Field Field
	Value int
}

func (e *FieldError) Error() string {
	return "ds1337: invalid value " + strconv.Itoa(e.Value) + " for " + e.Field.String()
}

func (e *FieldError) Unwrap() error { return ErrInvalidFieldValue }

// BusError carries a transport failure. The wrapped error is the one the bus
// returned; it is not interpreted or retried.
type BusError struct {
	Op  string
	Err error
}

func (e *BusError) Error() string {
	return "ds1337: " + e.Op + ": " + e.Err.Error()
}

func (e *BusError) Unwrap() error { return e.Err }

func (e *BusError) Is(target error) bool { return target == ErrBus }
