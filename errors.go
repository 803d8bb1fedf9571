package awkish

import (
	"fmt"
)

// ConfigError represents a registration-time configuration problem:
// a callable of an unsupported shape, a Bind arity mismatch, or a
// declared parameter that can never be resolved.
type ConfigError struct {
	Message string // Error description
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s", e.Message)
}

// MissingArgumentError reports a declared parameter the call adapter
// could not resolve against the record context. It identifies the
// parameter by name; it is a caller configuration error, not a data error.
type MissingArgumentError struct {
	Name string // Declared parameter name
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("parameter %q does not have a value", e.Name)
}

// FormatError represents a strict-mode field-splitting failure, such as
// a line that does not decompose under the CSV grammar. It aborts the
// run at the offending line.
type FormatError struct {
	Line    string // The offending input line
	Message string // Error description
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error: %s in line %q", e.Message, e.Line)
}

// IsFormatError reports whether err is a FormatError.
func IsFormatError(err error) bool {
	_, ok := err.(*FormatError)
	return ok
}
