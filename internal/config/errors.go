package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrValidationFailed indicates a setting has an invalid value.
	ErrValidationFailed = errors.New("validation failed")

	// ErrFileNotFound indicates an explicitly named config file is missing.
	ErrFileNotFound = errors.New("config file not found")
)

// SettingError reports an invalid setting.
type SettingError struct {
	// Key is the setting name, e.g. "log-level".
	Key string

	Value any

	Message string
}

// Error implements the error interface.
func (e *SettingError) Error() string {
	return fmt.Sprintf("setting %s=%v: %s", e.Key, e.Value, e.Message)
}

// Unwrap returns ErrValidationFailed.
func (e *SettingError) Unwrap() error {
	return ErrValidationFailed
}
