package tracker

import (
	"errors"
	"fmt"
)

// ValidationError reports a rejected input field. Nothing is persisted when
// one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrUnsupportedFormat is returned when a report path has an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported report format")
