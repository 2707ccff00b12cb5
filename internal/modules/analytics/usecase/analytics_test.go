package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"studytrack/internal/modules/analytics/domain"
	"studytrack/internal/modules/analytics/service"
	"studytrack/internal/modules/analytics/usecase"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/logging"
)

type fakeSource struct {
	sessions []domain.Session
	err      error
	users    []string
}

func (f *fakeSource) Sessions(_ context.Context, user string) ([]domain.Session, error) {
	f.users = append(f.users, user)
	return f.sessions, f.err
}

func TestInteractorConvertsEngineResults(t *testing.T) {
	t.Parallel()
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// 23:30 UTC on Oct 18 is 01:30 on Oct 19 in Rome.
	nowUTC := time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC)
	src := &fakeSource{sessions: []domain.Session{
		{ID: 1, Subject: "Math", DurationMin: 90, Timestamp: time.Date(2026, 10, 19, 0, 30, 0, 0, rome), HasTimestamp: true},
		{ID: 2, Subject: "Art", DurationMin: 30},
	}}
	uc := usecase.NewInteractor(service.NewAnalyticsService(clock.Fixed(nowUTC), rome, logging.Discard(), src))
	ctx := context.Background()

	today, err := uc.TotalTime(ctx, "Ann", "today")
	if err != nil || today != 1.5 {
		t.Fatalf("expected 1.5 hours today in Rome, got %v %v", today, err)
	}
	daily, _ := uc.DailyStats(ctx, "Ann", 7)
	if len(daily) != 1 || daily[0].Date != "2026-10-19" {
		t.Fatalf("unexpected daily stats: %+v", daily)
	}
	weekdays, _ := uc.PatternByWeekday(ctx, "Ann")
	if len(weekdays) != 7 || weekdays[0].Day != "Monday" || weekdays[0].Hours != 1.5 {
		t.Fatalf("unexpected weekday pattern: %+v", weekdays)
	}
	summary, _ := uc.Summary(ctx, "Ann")
	if summary.TotalSessions != 2 || summary.TotalLabel != "2h" || summary.FavouriteSubject != "Math" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if src.users[0] != "Ann" {
		t.Fatalf("user must be threaded through, got %v", src.users)
	}
	if _, err := uc.TotalTime(ctx, "Ann", "fortnight"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid period, got %v", err)
	}
}

func TestInteractorDegradesOnUnreadableSource(t *testing.T) {
	t.Parallel()
	src := &fakeSource{err: errors.New("permission denied")}
	uc := usecase.NewInteractor(service.NewAnalyticsService(clock.Fixed(time.Now()), time.UTC, logging.Discard(), src))
	p, err := uc.Productivity(context.Background(), "Ann")
	if err != nil {
		t.Fatalf("productivity must not fail: %v", err)
	}
	if p.TotalSessions != 0 || p.TopSubject != "N/A" || p.TopHour != "N/A" || p.TopDay != "N/A" {
		t.Fatalf("expected sentinels, got %+v", p)
	}
	insights, _ := uc.Insights(context.Background(), "Ann")
	if len(insights) != 1 || insights[0].Kind != "more_data" {
		t.Fatalf("expected the more-data insight, got %+v", insights)
	}
}
