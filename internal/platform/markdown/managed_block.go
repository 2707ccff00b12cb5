package markdown

import "strings"

// ReplaceManagedBlock swaps the text between startMarker and endMarker for
// generated, appending a fresh block when the markers are absent.
func ReplaceManagedBlock(body, startMarker, endMarker, generated string) string {
	start := strings.Index(body, startMarker)
	end := strings.Index(body, endMarker)
	block := startMarker + "\n" + generated + "\n" + endMarker

	if start >= 0 && end > start {
		end += len(endMarker)
		return body[:start] + block + body[end:]
	}

	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return block + "\n"
	}
	if strings.HasSuffix(body, "\n") {
		return body + "\n" + block + "\n"
	}
	return body + "\n\n" + block + "\n"
}

// UpdateDocument rewrites the frontmatter of existing with meta and refreshes its
// managed block, keeping hand-written text outside the markers. An empty existing
// document starts from defaultBody.
func UpdateDocument(existing string, meta map[string]any, defaultBody, startMarker, endMarker, generated string) (string, error) {
	doc := Document{Meta: meta, Body: defaultBody}
	if strings.TrimSpace(existing) != "" {
		prev, err := ParseDocument(existing)
		if err != nil {
			return "", err
		}
		for k, v := range prev.Meta {
			if _, ok := doc.Meta[k]; !ok {
				doc.Meta[k] = v
			}
		}
		doc.Body = prev.Body
	}
	doc.Body = ReplaceManagedBlock(doc.Body, startMarker, endMarker, generated)
	return doc.Render()
}
