package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"studytrack/internal/modules/progress/domain"
	progressout "studytrack/internal/modules/progress/port/out"
	"studytrack/internal/platform/markdown"
	"studytrack/internal/platform/slug"
)

const (
	timelineStart = "<!-- studytrack:timeline:start -->"
	timelineEnd   = "<!-- studytrack:timeline:end -->"
)

// MarkdownExporter writes progress/<subject-slug>.md under the data dir.
// Text outside the managed block survives re-exports.
type MarkdownExporter struct {
	dir string
}

func NewMarkdownExporter(dataDir string) progressout.TimelineExporter {
	return &MarkdownExporter{dir: filepath.Join(dataDir, "progress")}
}

func (e *MarkdownExporter) Export(_ context.Context, user string, stats domain.Statistics, timeline []domain.TimelineEntry) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("create progress dir: %w", err)
	}
	path := filepath.Join(e.dir, slug.Make(stats.Subject)+".md")
	existing := ""
	if b, err := os.ReadFile(path); err == nil {
		existing = string(b)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read timeline: %w", err)
	}

	meta := map[string]any{
		"subject":              stats.Subject,
		"user":                 user,
		"total_sessions":       stats.TotalSessions,
		"total_hours":          stats.TotalHours,
		"note_coverage_pct":    stats.NoteCoveragePct,
		"distinct_topics":      stats.DistinctTopics,
		"milestones_completed": stats.MilestonesCompleted,
		"avg_hours_per_topic":  stats.AvgHoursPerTopic,
	}
	if !stats.LastActivity.IsZero() {
		meta["last_activity"] = stats.LastActivity.Format("2006-01-02 15:04")
	}
	defaultBody := "# " + stats.Subject + "\n\n"
	content, err := markdown.UpdateDocument(existing, meta, defaultBody, timelineStart, timelineEnd, renderTimeline(timeline))
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write timeline: %w", err)
	}
	return path, nil
}

func renderTimeline(timeline []domain.TimelineEntry) string {
	if len(timeline) == 0 {
		return "_No notes yet._"
	}
	var sb strings.Builder
	for i, entry := range timeline {
		if i > 0 {
			sb.WriteString("\n")
		}
		n := entry.Note
		when := "unknown time"
		if !n.Timestamp.IsZero() {
			when = n.Timestamp.Format("2006-01-02 15:04")
		}
		switch n.Kind {
		case domain.KindMilestone:
			fmt.Fprintf(&sb, "- %s **Milestone: %s** (total %s)", when, n.Topic, entry.CumulativeLabel)
			if n.Description != "" {
				fmt.Fprintf(&sb, "\n  %s", n.Description)
			}
		default:
			fmt.Fprintf(&sb, "- %s %s, %s (total %s)", when, n.Topic, entry.SessionLabel, entry.CumulativeLabel)
		}
	}
	return sb.String()
}
