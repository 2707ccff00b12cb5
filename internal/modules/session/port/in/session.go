package in

import (
	"context"

	"studytrack/internal/modules/session/dto"
)

type Usecase interface {
	Save(ctx context.Context, input dto.SaveInput) (dto.SaveOutput, error)
	Start(ctx context.Context, input dto.StartInput) (dto.StartOutput, error)
	Stop(ctx context.Context, input dto.StopInput) (dto.SaveOutput, error)
	GetActive(ctx context.Context, user string) (dto.ActiveSessionOutput, error)
	History(ctx context.Context, user string, limit int) ([]dto.RecordOutput, error)
	Reindex(ctx context.Context) (int, error)
	IndexedTotals(ctx context.Context, user string) (map[string]float64, error)
}

// Query exposes the normalized session log to other modules.
type Query interface {
	Records(ctx context.Context, user string) ([]dto.RecordOutput, error)
}

// Catalog manages the per-user subject lists and the user list.
type Catalog interface {
	ListSubjects(ctx context.Context, user string) ([]string, error)
	AddSubject(ctx context.Context, user, name string) (string, error)
	RemoveSubject(ctx context.Context, user, name string) error
	ListUsers(ctx context.Context) ([]string, error)
	AddUser(ctx context.Context, name string) (string, error)
}
