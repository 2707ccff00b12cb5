package out

import (
	"context"

	"studytrack/internal/modules/analytics/domain"
)

type SessionSource interface {
	Sessions(ctx context.Context, user string) ([]domain.Session, error)
}
