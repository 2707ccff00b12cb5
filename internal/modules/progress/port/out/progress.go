package out

import (
	"context"

	"studytrack/internal/modules/progress/domain"
)

// NoteStore persists the whole note set, rewritten on every save.
type NoteStore interface {
	Load(ctx context.Context) ([]domain.Entry, error)
	Save(ctx context.Context, entries []domain.Entry) error
}

type SessionSource interface {
	Sessions(ctx context.Context, user string) ([]domain.Session, error)
}

// TimelineExporter writes a subject timeline document and returns its path.
type TimelineExporter interface {
	Export(ctx context.Context, user string, stats domain.Statistics, timeline []domain.TimelineEntry) (string, error)
}
