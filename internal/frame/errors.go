package frame

import (
	"errors"
	"fmt"
	"strings"
)

// ErrValidation marks structural input failures: missing columns, empty input.
var ErrValidation = errors.New("validation failed")

// MissingColumnsError names the required columns that were not found.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: [%s]", strings.Join(e.Columns, ", "))
}

func (e *MissingColumnsError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid wraps a message as a validation failure.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
