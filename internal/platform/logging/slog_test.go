package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNewTextLoggerRespectsLevel(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, err := New(&buf, "text", "warn")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	ctx := context.Background()
	log.Info(ctx, "hidden", "a", 1)
	log.Warn(ctx, "dropped session record", "line", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info message should be filtered at warn level:\n%s", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "line=3") {
		t.Fatalf("expected warn line with attributes, got:\n%s", out)
	}
}

func TestWithAddsAttributes(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	log, err := New(&buf, "json", "debug")
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	log.With("user", "Ann").Debug(context.Background(), "loaded", "records", 4)

	out := buf.String()
	for _, want := range []string{`"user":"Ann"`, `"records":4`, `"msg":"loaded"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in output, got:\n%s", want, out)
		}
	}
}

func TestNewRejectsUnknownFormatAndLevel(t *testing.T) {
	t.Parallel()
	if _, err := New(&bytes.Buffer{}, "xml", "info"); err == nil {
		t.Fatalf("xml format should fail")
	}
	if _, err := New(&bytes.Buffer{}, "text", "loud"); err == nil {
		t.Fatalf("unknown level should fail")
	}
}
