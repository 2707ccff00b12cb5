package out

import (
	"context"

	"studytrack/internal/modules/goal/domain"
	goalout "studytrack/internal/modules/goal/port/out"
	sessionin "studytrack/internal/modules/session/port/in"
)

type SessionSourceAdapter struct {
	query sessionin.Query
}

func NewSessionSourceAdapter(query sessionin.Query) goalout.SessionSource {
	return &SessionSourceAdapter{query: query}
}

func (a *SessionSourceAdapter) Sessions(ctx context.Context, user string) ([]domain.Session, error) {
	records, err := a.query.Records(ctx, user)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Session, 0, len(records))
	for _, r := range records {
		out = append(out, domain.Session{
			Subject:      r.Subject,
			DurationMin:  r.DurationMin,
			Timestamp:    r.Timestamp,
			HasTimestamp: r.HasTimestamp,
		})
	}
	return out, nil
}
