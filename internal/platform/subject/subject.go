// Package subject holds the single validation rule for subject names.
// Sessions, goals and notes reference subjects by this string only, so every
// entry point runs names through Validate before anything is written.
package subject

import (
	"fmt"
	"strings"
	"unicode/utf8"

	apperrors "studytrack/internal/platform/errors"
)

const (
	MinLength = 2
	MaxLength = 50
)

const forbidden = `/\:*?"<>|`

// Validate trims name and checks length and forbidden characters.
// The returned error wraps apperrors.ErrInvalidInput and carries the reason.
func Validate(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: subject name must not be empty", apperrors.ErrInvalidInput)
	}
	n := utf8.RuneCountInString(name)
	if n < MinLength {
		return "", fmt.Errorf("%w: subject name must be at least %d characters", apperrors.ErrInvalidInput, MinLength)
	}
	if n > MaxLength {
		return "", fmt.Errorf("%w: subject name must be at most %d characters", apperrors.ErrInvalidInput, MaxLength)
	}
	if strings.ContainsAny(name, forbidden) {
		return "", fmt.Errorf("%w: subject name contains forbidden characters", apperrors.ErrInvalidInput)
	}
	return name, nil
}
