package codec

import (
	"errors"
	"fmt"
)

// ErrTypeMismatch is returned when a client value's Go type does not
// match what an IR scalar type expects.
var ErrTypeMismatch = errors.New("codec: type mismatch")

// ErrOverflow is returned when a value does not fit the target type's
// declared width — the `integer` column type is rejected on overflow
// rather than truncated silently.
var ErrOverflow = errors.New("codec: value overflows target type")

// ConversionError names the IR type a value failed to convert to or
// from, and the underlying reason.
type ConversionError struct {
	Target string
	Err    error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("codec: converting to %s: %v", e.Target, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

func newConversionError(target string, err error) *ConversionError {
	return &ConversionError{Target: target, Err: err}
}
