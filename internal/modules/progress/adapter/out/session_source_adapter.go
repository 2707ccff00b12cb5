package out

import (
	"context"

	"studytrack/internal/modules/progress/domain"
	progressout "studytrack/internal/modules/progress/port/out"
	sessionin "studytrack/internal/modules/session/port/in"
)

type SessionSourceAdapter struct {
	query sessionin.Query
}

func NewSessionSourceAdapter(query sessionin.Query) progressout.SessionSource {
	return &SessionSourceAdapter{query: query}
}

func (a *SessionSourceAdapter) Sessions(ctx context.Context, user string) ([]domain.Session, error) {
	records, err := a.query.Records(ctx, user)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(records))
	for _, r := range records {
		out = append(out, domain.Session{ID: r.ID, Subject: r.Subject, DurationMin: r.DurationMin, Note: r.Note})
	}
	return out, nil
}
