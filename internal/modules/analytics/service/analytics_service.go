package service

import (
	"context"
	"time"

	"studytrack/internal/modules/analytics/domain"
	analyticsout "studytrack/internal/modules/analytics/port/out"
	"studytrack/internal/platform/clock"
	"studytrack/internal/platform/logging"
)

// AnalyticsService loads a user's sessions and hands them to the pure engine
// together with the current time in the configured zone.
type AnalyticsService struct {
	clock    clock.Clock
	loc      *time.Location
	log      logging.Logger
	sessions analyticsout.SessionSource
}

func NewAnalyticsService(clk clock.Clock, loc *time.Location, log logging.Logger, sessions analyticsout.SessionSource) *AnalyticsService {
	if loc == nil {
		loc = time.Local
	}
	return &AnalyticsService{clock: clk, loc: loc, log: log, sessions: sessions}
}

func (s *AnalyticsService) Now() time.Time {
	return s.clock.Now().In(s.loc)
}

// Sessions never fails: an unreadable source is an empty history.
func (s *AnalyticsService) Sessions(ctx context.Context, user string) []domain.Session {
	sessions, err := s.sessions.Sessions(ctx, user)
	if err != nil {
		s.log.Warn(ctx, "session source unreadable, treating as empty", "user", user, "error", err)
		return nil
	}
	return sessions
}
