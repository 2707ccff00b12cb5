package out

import (
	"context"

	"studytrack/internal/modules/goal/domain"
)

// GoalStore persists the whole goal set, rewritten on every save.
type GoalStore interface {
	Load(ctx context.Context) ([]domain.Entry, error)
	Save(ctx context.Context, entries []domain.Entry) error
}

// SessionSource supplies a user's normalized sessions.
type SessionSource interface {
	Sessions(ctx context.Context, user string) ([]domain.Session, error)
}

// Notifier announces goals that were just completed.
type Notifier interface {
	GoalCompleted(ctx context.Context, goal domain.Goal) error
}
