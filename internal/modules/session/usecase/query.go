package usecase

import (
	"context"

	sessiondto "studytrack/internal/modules/session/dto"
	"studytrack/internal/modules/session/service"
)

// QueryInteractor serves reads and subject/user management. It has no
// dependency on other modules, so goal and progress adapters can use it
// without a wiring cycle.
type QueryInteractor struct {
	svc *service.SessionService
}

func NewQueryInteractor(svc *service.SessionService) *QueryInteractor {
	return &QueryInteractor{svc: svc}
}

func (q *QueryInteractor) Records(ctx context.Context, user string) ([]sessiondto.RecordOutput, error) {
	records := q.svc.Records(ctx, user)
	out := make([]sessiondto.RecordOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toRecordOutput(r))
	}
	return out, nil
}

func (q *QueryInteractor) ListSubjects(ctx context.Context, user string) ([]string, error) {
	return q.svc.ListSubjects(ctx, user)
}

func (q *QueryInteractor) AddSubject(ctx context.Context, user, name string) (string, error) {
	return q.svc.AddSubject(ctx, user, name)
}

func (q *QueryInteractor) RemoveSubject(ctx context.Context, user, name string) error {
	return q.svc.RemoveSubject(ctx, user, name)
}

func (q *QueryInteractor) ListUsers(ctx context.Context) ([]string, error) {
	return q.svc.ListUsers(ctx)
}

func (q *QueryInteractor) AddUser(ctx context.Context, name string) (string, error) {
	return q.svc.AddUser(ctx, name)
}
