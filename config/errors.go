package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the kind of every configuration error. Configuration
// errors are never recovered: the process must not start.
var ErrInvalidConfig = errors.New("invalid configuration")

// Error describes a single malformed or contradictory configuration value.
type Error struct {
	Key    string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Key, e.Reason)
	}
	return fmt.Sprintf("%s: %s=%q: %s", ErrInvalidConfig, e.Key, e.Value, e.Reason)
}

// Unwrap allows errors.Is(err, ErrInvalidConfig)
func (e *Error) Unwrap() error {
	return ErrInvalidConfig
}

func newConfigError(key, value, reason string) *Error {
	return &Error{Key: key, Value: value, Reason: reason}
}
