package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidParameter is the sentinel for every rejected input at the session boundary
var ErrInvalidParameter = errors.New("invalid parameter")

// ParameterError describes which input was rejected and why
// Unwraps to ErrInvalidParameter
type ParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Field, e.Value, e.Reason)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}

func invalid(field string, value float64, reason string) *ParameterError {
	return &ParameterError{Field: field, Value: value, Reason: reason}
}
