package subject_test

import (
	"errors"
	"strings"
	"testing"

	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/subject"
)

func TestValidateTrimsAcceptedNames(t *testing.T) {
	t.Parallel()
	got, err := subject.Validate("  Math ")
	if err != nil {
		t.Fatalf("Math should be valid: %v", err)
	}
	if got != "Math" {
		t.Fatalf("expected trimmed name, got %q", got)
	}
	if _, err := subject.Validate("Storia dell'arte è bella"); err != nil {
		t.Fatalf("unicode names should be valid: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"", "  ", "M", strings.Repeat("x", 51), "a/b", `a\b`, "a:b", "a*", "a?", `"ab"`, "<ab>", "a|b"} {
		_, err := subject.Validate(name)
		if err == nil {
			t.Fatalf("expected %q to be rejected", name)
		}
		if !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Fatalf("expected invalid input for %q, got %v", name, err)
		}
	}
	if _, err := subject.Validate(strings.Repeat("é", 50)); err != nil {
		t.Fatalf("50 runes should be accepted: %v", err)
	}
}
