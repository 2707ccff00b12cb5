package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/internal/modules/goal/domain"
	apperrors "studytrack/internal/platform/errors"
)

// Wednesday.
var now = time.Date(2026, 10, 21, 15, 30, 0, 0, time.UTC)

func TestPeriodStart(t *testing.T) {
	t.Parallel()
	assert.Equal(t, time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC), domain.PeriodStart(domain.IntervalDay, now))
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), domain.PeriodStart(domain.IntervalWeek, now))
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), domain.PeriodStart(domain.IntervalMonth, now))

	sunday := time.Date(2026, 10, 25, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), domain.PeriodStart(domain.IntervalWeek, sunday))
	monday := time.Date(2026, 11, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, domain.PeriodStart(domain.IntervalWeek, monday))
}

func TestParseInterval(t *testing.T) {
	t.Parallel()
	cases := map[string]domain.Interval{
		"day": domain.IntervalDay, "giorno": domain.IntervalDay,
		"Week": domain.IntervalWeek, "settimana": domain.IntervalWeek,
		"month": domain.IntervalMonth, "mese": domain.IntervalMonth,
	}
	for in, want := range cases {
		got, err := domain.ParseInterval(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := domain.ParseInterval("year")
	assert.True(t, errors.Is(err, apperrors.ErrInvalidInput))
}

func TestNewGoalRejectsNonPositiveTarget(t *testing.T) {
	t.Parallel()
	_, err := domain.NewGoal(1, "Ann", "Math", 0, 0, domain.IntervalWeek, now)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
	_, err = domain.NewGoal(1, "Ann", "Math", -1, 30, domain.IntervalWeek, now)
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)

	g, err := domain.NewGoal(1, "Ann", "Math", 1, 30, domain.IntervalWeek, now)
	require.NoError(t, err)
	assert.Equal(t, 90, g.TargetMin)
	assert.False(t, g.Completed)
}

func weekSessions() []domain.Session {
	at := func(d, h int) time.Time { return time.Date(2026, 10, d, h, 0, 0, 0, time.UTC) }
	return []domain.Session{
		{Subject: "Math", DurationMin: 30, Timestamp: at(19, 9), HasTimestamp: true},
		{Subject: "Math", DurationMin: 45, Timestamp: at(20, 9), HasTimestamp: true},
		{Subject: "Math", DurationMin: 20, Timestamp: at(21, 9), HasTimestamp: true},
		{Subject: "Math", DurationMin: 500, Timestamp: at(18, 9), HasTimestamp: true},
		{Subject: "Math", DurationMin: 500},
		{Subject: "Physics", DurationMin: 90, Timestamp: at(21, 10), HasTimestamp: true},
	}
}

func TestStudiedMinutesAndEvaluate(t *testing.T) {
	t.Parallel()
	g := domain.Goal{ID: 1, User: "Ann", Subject: "Math", TargetMin: 60, Interval: domain.IntervalWeek}
	studied := domain.StudiedMinutes(g, weekSessions(), now)
	assert.InDelta(t, 95, studied, 1e-9)

	p := domain.Evaluate(g, studied)
	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, domain.BandCompleted, p.Band)

	half := domain.Evaluate(domain.Goal{TargetMin: 200}, 110)
	assert.InDelta(t, 55, half.Percent, 1e-9)
	assert.Equal(t, domain.BandHalfway, half.Band)
	assert.Equal(t, 0.0, domain.Evaluate(domain.Goal{}, 50).Percent)
}

func TestCheckCompletionsFlipsOnceWithinPeriod(t *testing.T) {
	t.Parallel()
	goals := []domain.Goal{
		{ID: 1, User: "Ann", Subject: "Math", TargetMin: 60, Interval: domain.IntervalWeek},
		{ID: 2, User: "Ann", Subject: "Physics", TargetMin: 120, Interval: domain.IntervalWeek},
		{ID: 3, User: "Bob", Subject: "Math", TargetMin: 10, Interval: domain.IntervalWeek},
	}
	updated, changed := domain.CheckCompletions("Ann", goals, weekSessions(), now)
	require.Len(t, changed, 1)
	assert.Equal(t, 1, changed[0].ID)
	assert.True(t, updated[0].Completed)
	assert.Equal(t, now, updated[0].CompletedAt)
	assert.False(t, updated[2].Completed)
	assert.False(t, goals[0].Completed, "input must not be mutated")

	more := append(weekSessions(), domain.Session{Subject: "Math", DurationMin: 600, Timestamp: now, HasTimestamp: true})
	_, again := domain.CheckCompletions("Ann", updated, more, now.Add(time.Hour))
	assert.Empty(t, again)
}

func TestCheckCompletionsReevaluatesInNewPeriod(t *testing.T) {
	t.Parallel()
	lastWeek := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	goals := []domain.Goal{{ID: 1, User: "Ann", Subject: "Math", TargetMin: 60, Interval: domain.IntervalWeek, Completed: true, CompletedAt: lastWeek}}

	_, changed := domain.CheckCompletions("Ann", goals, nil, now)
	assert.Empty(t, changed)

	updated, changed := domain.CheckCompletions("Ann", goals, weekSessions(), now)
	require.Len(t, changed, 1)
	assert.Equal(t, now, updated[0].CompletedAt)

	zero := []domain.Goal{{ID: 3, User: "Ann", Subject: "Math", TargetMin: 0, Interval: domain.IntervalDay}}
	_, changed = domain.CheckCompletions("Ann", zero, nil, now)
	assert.Empty(t, changed, "a goal without a positive target never completes")

	legacy := []domain.Goal{{ID: 2, User: "Ann", Subject: "Math", TargetMin: 60, Interval: domain.IntervalWeek, Completed: true}}
	_, changed = domain.CheckCompletions("Ann", legacy, weekSessions(), now)
	assert.Empty(t, changed, "completed goals without a completion time stay completed")
}

func TestTargetLabelAndBands(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "45min", domain.Goal{TargetMin: 45}.TargetLabel())
	assert.Equal(t, "2h", domain.Goal{TargetMin: 120}.TargetLabel())
	assert.Equal(t, "2h 5min", domain.Goal{TargetMin: 125}.TargetLabel())
	assert.Equal(t, domain.BandAlmost, domain.BandFor(75))
	assert.Equal(t, domain.BandStarted, domain.BandFor(49.9))
}

func TestNextID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 1, domain.NextID(nil))
	assert.Equal(t, 8, domain.NextID([]domain.Entry{{Goal: domain.Goal{ID: 3}}, {Goal: domain.Goal{ID: 7}, Raw: []byte(`{"id":7}`)}}))
}
