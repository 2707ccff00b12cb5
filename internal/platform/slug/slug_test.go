package slug_test

import (
	"testing"

	"studytrack/internal/platform/slug"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Math":                "math",
		"  Storia dell'Arte ": "storia-dell-arte",
		"Attività Fisica":     "attivita-fisica",
		"C++ / Go":            "c-go",
		"***":                 "untitled",
	}
	for in, want := range cases {
		if got := slug.Make(in); got != want {
			t.Fatalf("slug.Make(%q) = %q, want %q", in, got, want)
		}
	}
}
