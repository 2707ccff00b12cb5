package markdown_test

import (
	"strings"
	"testing"

	"studytrack/internal/platform/markdown"
)

const (
	start = "<!-- s -->"
	end   = "<!-- e -->"
)

func TestDocumentRenderThenParse(t *testing.T) {
	t.Parallel()
	rendered, err := markdown.Document{Meta: map[string]any{"subject": "Math", "total_hours": 1.5}, Body: "# Math\n"}.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	doc, err := markdown.ParseDocument(rendered)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Meta["subject"] != "Math" || doc.Meta["total_hours"] != 1.5 {
		t.Fatalf("unexpected meta: %#v", doc.Meta)
	}
	if !strings.Contains(doc.Body, "# Math") {
		t.Fatalf("body lost: %q", doc.Body)
	}
}

func TestParseDocumentWithoutHeader(t *testing.T) {
	t.Parallel()
	doc, err := markdown.ParseDocument("plain text\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(doc.Meta) != 0 || doc.Body != "plain text\n" {
		t.Fatalf("unexpected document: %#v", doc)
	}
}

func TestUpdateDocumentPreservesUserText(t *testing.T) {
	t.Parallel()
	first, err := markdown.UpdateDocument("", map[string]any{"subject": "Math"}, "# Math\n", start, end, "v1")
	if err != nil {
		t.Fatalf("first render: %v", err)
	}
	edited := strings.Replace(first, "# Math\n", "# Math\n\nmy own notes\n", 1)

	second, err := markdown.UpdateDocument(edited, map[string]any{"subject": "Math", "sessions": 3}, "# Math\n", start, end, "v2")
	if err != nil {
		t.Fatalf("second render: %v", err)
	}
	if !strings.Contains(second, "my own notes") {
		t.Fatalf("user text dropped:\n%s", second)
	}
	if strings.Contains(second, "v1") || !strings.Contains(second, start+"\nv2\n"+end) {
		t.Fatalf("managed block not replaced:\n%s", second)
	}
	if strings.Count(second, start) != 1 {
		t.Fatalf("managed block duplicated:\n%s", second)
	}
}

func TestParseDocumentRejectsUnclosedBlock(t *testing.T) {
	t.Parallel()
	if _, err := markdown.ParseDocument("---\na: 1\n"); err == nil {
		t.Fatalf("expected error for missing closing separator")
	}
}
