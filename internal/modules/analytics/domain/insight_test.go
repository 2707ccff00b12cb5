package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/internal/modules/analytics/domain"
)

func kinds(insights []domain.Insight) []domain.InsightKind {
	out := make([]domain.InsightKind, 0, len(insights))
	for _, in := range insights {
		out = append(out, in.Kind)
	}
	return out
}

func TestInsightsNeedFiveSessions(t *testing.T) {
	t.Parallel()
	records := []domain.Session{
		sess(1, "Math", 50, at(2026, 10, 19, 9)),
		sess(2, "Art", 50, at(2026, 10, 18, 9)),
		sess(3, "Physics", 50, at(2026, 10, 17, 9)),
		sess(4, "Math", 50, at(2026, 10, 16, 9)),
	}
	insights := domain.GenerateInsights(records, now)
	require.Len(t, insights, 1)
	assert.Equal(t, domain.InsightMoreData, insights[0].Kind)
	assert.Contains(t, insights[0].Message, "Accumulate more sessions")
}

func TestInsightsGoodConsistencyExcellentFocus(t *testing.T) {
	t.Parallel()
	records := []domain.Session{
		sess(1, "Math", 50, at(2026, 10, 19, 9)),
		sess(2, "Art", 50, at(2026, 10, 18, 9)),
		sess(3, "Physics", 50, at(2026, 10, 17, 9)),
		sess(4, "Math", 50, at(2026, 10, 16, 9)),
		sess(5, "Art", 50, at(2026, 10, 15, 9)),
	}
	insights := domain.GenerateInsights(records, now)
	require.Len(t, insights, 3)
	assert.Equal(t, []domain.InsightKind{domain.InsightConsistency, domain.InsightFocus, domain.InsightVariety}, kinds(insights))
	assert.Equal(t, domain.LevelGood, insights[0].Level)
	assert.Equal(t, "Good consistency with 36 minutes a day", insights[0].Message)
	assert.Equal(t, domain.LevelExcellent, insights[1].Level)
	assert.Equal(t, domain.LevelGood, insights[2].Level, "three subjects is good variety, not low")
}

func TestInsightsWithoutRecentStudyShowRecency(t *testing.T) {
	t.Parallel()
	var records []domain.Session
	for i := 0; i < 6; i++ {
		records = append(records, sess(i+1, "Math", 20, at(2026, 8, 1+i, 9)))
	}
	insights := domain.GenerateInsights(records, now)
	require.Len(t, insights, 3)
	assert.Equal(t, []domain.InsightKind{domain.InsightFocus, domain.InsightVariety, domain.InsightRecency}, kinds(insights))
	assert.Equal(t, domain.LevelLow, insights[0].Level)
	assert.Equal(t, domain.LevelLow, insights[1].Level)
	assert.Equal(t, "You are in a great productive period!", insights[2].Message)
}

func TestInsightsExcellentConsistency(t *testing.T) {
	t.Parallel()
	var records []domain.Session
	subjects := []string{"Math", "Art", "Physics", "History", "Latin"}
	for i, s := range subjects {
		records = append(records, sess(i+1, s, 90, at(2026, 10, 19-i, 9)))
	}
	insights := domain.GenerateInsights(records, now)
	require.Len(t, insights, 3)
	assert.Equal(t, domain.LevelExcellent, insights[0].Level)
	assert.Equal(t, "Excellent consistency! You study 64 minutes a day on average", insights[0].Message)
	assert.Equal(t, domain.LevelExcellent, insights[2].Level)
}

func TestSummarize(t *testing.T) {
	t.Parallel()
	records := []domain.Session{
		sess(1, "Math", 30, at(2026, 10, 19, 9)),
		sess(2, "Art", 60, at(2026, 10, 1, 9)),
		sess(3, "Math", 30, at(2026, 8, 1, 9)),
		{ID: 4, Subject: "Latin", DurationMin: 15},
	}
	s := domain.Summarize(records, now)
	assert.Equal(t, 4, s.TotalSessions)
	assert.Equal(t, 135.0, s.TotalMinutes)
	assert.Equal(t, 2.25, s.TotalHours)
	assert.Equal(t, 33.75, s.AverageSessionMin)
	assert.Equal(t, "Math", s.FavouriteSubject)
	assert.Equal(t, []domain.SubjectStat{
		{Subject: "Math", Minutes: 60, Sessions: 2},
		{Subject: "Art", Minutes: 60, Sessions: 1},
		{Subject: "Latin", Minutes: 15, Sessions: 1},
	}, s.Subjects)
	assert.Equal(t, 30.0, s.Last7DaysMin)
	assert.Equal(t, 90.0, s.Last30DaysMin)

	empty := domain.Summarize(nil, now)
	assert.Equal(t, "N/A", empty.FavouriteSubject)
	assert.Zero(t, empty.TotalSessions)
}
