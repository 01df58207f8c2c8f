package astro

import (
	"errors"
	"fmt"
)

// Errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrNoBracket          = errors.New("no sign change in bracket")
	ErrTransitionNotFound = errors.New("transition not found")
)

// invalidInputError returns an error with a custom message which unwraps
// to ErrInvalidInput.
func invalidInputError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// IsInvalidInput reports whether err was caused by bad caller input.
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
