package in

import (
	"context"

	sessiondto "studytrack/internal/modules/session/dto"
	sessionin "studytrack/internal/modules/session/port/in"
)

type CLIHandler struct {
	usecase sessionin.Usecase
	catalog sessionin.Catalog
}

func NewCLIHandler(usecase sessionin.Usecase, catalog sessionin.Catalog) CLIHandler {
	return CLIHandler{usecase: usecase, catalog: catalog}
}

func (h CLIHandler) Save(ctx context.Context, user, subject string, minutes int, note string) (sessiondto.SaveOutput, error) {
	return h.usecase.Save(ctx, sessiondto.SaveInput{User: user, Subject: subject, DurationMin: minutes, Note: note})
}

func (h CLIHandler) Start(ctx context.Context, user, subject string) (sessiondto.StartOutput, error) {
	return h.usecase.Start(ctx, sessiondto.StartInput{User: user, Subject: subject})
}

func (h CLIHandler) Stop(ctx context.Context, user, note string) (sessiondto.SaveOutput, error) {
	return h.usecase.Stop(ctx, sessiondto.StopInput{User: user, Note: note})
}

func (h CLIHandler) GetActive(ctx context.Context, user string) (sessiondto.ActiveSessionOutput, error) {
	return h.usecase.GetActive(ctx, user)
}

func (h CLIHandler) History(ctx context.Context, user string, limit int) ([]sessiondto.RecordOutput, error) {
	return h.usecase.History(ctx, user, limit)
}

func (h CLIHandler) Reindex(ctx context.Context) (int, error) {
	return h.usecase.Reindex(ctx)
}

func (h CLIHandler) IndexedTotals(ctx context.Context, user string) (map[string]float64, error) {
	return h.usecase.IndexedTotals(ctx, user)
}

func (h CLIHandler) ListSubjects(ctx context.Context, user string) ([]string, error) {
	return h.catalog.ListSubjects(ctx, user)
}

func (h CLIHandler) AddSubject(ctx context.Context, user, name string) (string, error) {
	return h.catalog.AddSubject(ctx, user, name)
}

func (h CLIHandler) RemoveSubject(ctx context.Context, user, name string) error {
	return h.catalog.RemoveSubject(ctx, user, name)
}

func (h CLIHandler) ListUsers(ctx context.Context) ([]string, error) {
	return h.catalog.ListUsers(ctx)
}

func (h CLIHandler) AddUser(ctx context.Context, name string) (string, error) {
	return h.catalog.AddUser(ctx, name)
}
