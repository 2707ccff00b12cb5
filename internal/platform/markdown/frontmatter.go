package markdown

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

var errUnclosedFrontmatter = errors.New("frontmatter is not closed")

// Document is a markdown file split into its YAML header and the text after it.
type Document struct {
	Meta map[string]any
	Body string
}

// ParseDocument reads an optional leading YAML block. Text without one is
// returned as body with empty metadata.
func ParseDocument(content string) (Document, error) {
	doc := Document{Meta: map[string]any{}, Body: content}
	header, ok := strings.CutPrefix(content, fence+"\n")
	if !ok {
		return doc, nil
	}
	raw, body, found := strings.Cut(header, "\n"+fence+"\n")
	if !found {
		return Document{}, errUnclosedFrontmatter
	}
	if err := yaml.Unmarshal([]byte(raw), &doc.Meta); err != nil {
		return Document{}, fmt.Errorf("decode frontmatter: %w", err)
	}
	if doc.Meta == nil {
		doc.Meta = map[string]any{}
	}
	doc.Body = body
	return doc, nil
}

// Render writes the header followed by a blank line and the body.
func (d Document) Render() (string, error) {
	raw, err := yaml.Marshal(d.Meta)
	if err != nil {
		return "", fmt.Errorf("encode frontmatter: %w", err)
	}
	var sb strings.Builder
	sb.WriteString(fence + "\n")
	sb.Write(raw)
	sb.WriteString(fence + "\n")
	if !strings.HasPrefix(d.Body, "\n") {
		sb.WriteByte('\n')
	}
	sb.WriteString(d.Body)
	return sb.String(), nil
}
