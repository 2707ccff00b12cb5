package out

import (
	"context"

	"studytrack/internal/modules/session/domain"
)

// SessionLog is the append-only session record store.
type SessionLog interface {
	Load(ctx context.Context) (domain.RawLog, error)
	Append(ctx context.Context, record domain.Record) error
}

// SubjectStore persists user -> subjects, rewritten wholesale.
type SubjectStore interface {
	Load(ctx context.Context) (map[string][]string, error)
	Save(ctx context.Context, subjects map[string][]string) error
}

type UserStore interface {
	List(ctx context.Context) ([]string, error)
	Save(ctx context.Context, users []string) error
}

type ActiveSessionStore interface {
	SaveActive(ctx context.Context, session domain.ActiveSession) error
	LoadActive(ctx context.Context, user string) (domain.ActiveSession, error)
	ClearActive(ctx context.Context, user string) error
}

// SessionIndexProjector maintains a derived, rebuildable query index.
type SessionIndexProjector interface {
	Reset(ctx context.Context) error
	UpsertSession(ctx context.Context, record domain.Record) error
	SubjectTotals(ctx context.Context, user string) (map[string]float64, error)
}
