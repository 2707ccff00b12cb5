package out

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/internal/modules/goal/domain"
)

func TestFileGoalStoreReadsLegacyEntries(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	seed := `[
  {"id": 1, "user": "Ann", "materia": "Math", "ore_target": 2, "minuti_target": 5, "tempo_target_minuti": 125, "intervallo": "settimana", "data_creazione": "2024-08-15T09:30:00.123456", "completato": true, "data_completamento": "2024-08-16T10:00:00.000001"},
  {"id": 2, "user": "Ann", "materia": "Art", "tempo_target_minuti": 30, "intervallo": "week"},
  {"id": 3, "user": "Ann", "materia": "Art", "tempo_target_minuti": 30, "intervallo": "year"},
  "junk"
]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goals.json"), []byte(seed), 0o644))
	store := NewFileGoalStore(dir, time.UTC)

	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	first := entries[0].Goal
	assert.False(t, entries[0].Malformed())
	assert.Equal(t, 125, first.TargetMin)
	assert.Equal(t, domain.IntervalWeek, first.Interval)
	assert.Equal(t, time.Date(2024, 8, 15, 9, 30, 0, 123456000, time.UTC), first.CreatedAt)
	assert.True(t, first.Completed)
	assert.Equal(t, 16, first.CompletedAt.Day())

	assert.False(t, entries[1].Malformed())
	assert.Equal(t, domain.IntervalWeek, entries[1].Goal.Interval)
	assert.True(t, entries[2].Malformed())
	assert.Equal(t, 3, entries[2].Goal.ID)
	assert.True(t, entries[3].Malformed())

	require.NoError(t, store.Save(context.Background(), entries))
	again, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, entries[0].Goal, again[0].Goal)
	assert.Equal(t, `"junk"`, string(again[3].Raw))
}

func TestFileGoalStoreMissingAndCorruptFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store := NewFileGoalStore(dir, time.UTC)
	entries, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "goals.json"), []byte("{not json"), 0o644))
	_, err = store.Load(context.Background())
	assert.Error(t, err)
}

func TestDesktopNotifierMessage(t *testing.T) {
	t.Parallel()
	var gotTitle, gotMessage string
	n := &DesktopNotifier{alert: func(title, message, _ string) error {
		gotTitle, gotMessage = title, message
		return nil
	}}
	goal := domain.Goal{ID: 1, Subject: "Math", TargetMin: 125, Interval: domain.IntervalWeek}
	require.NoError(t, n.GoalCompleted(context.Background(), goal))
	assert.Equal(t, "studytrack", gotTitle)
	assert.Equal(t, "Goal reached: Math 2h 5min per week", gotMessage)
}
