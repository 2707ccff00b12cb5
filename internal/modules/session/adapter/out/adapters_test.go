package out

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/internal/modules/session/domain"
	apperrors "studytrack/internal/platform/errors"
)

func TestJSONLSessionLogLoadsAndSkipsCorruptLines(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	content := `{"id": 1, "user": "Ann", "materia": "Math", "durata": 30, "timestamp": "2024-08-15 09:30:00"}
not json at all

{"id": 2, "user": "Ann", "materia": "Math", "durata": "1:05:30", "timestamp": "15/08/2024 09:30"}
{"id": 3, "user": "Ann"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sessions.jsonl"), []byte(content), 0o644))

	raw, err := NewJSONLSessionLog(dir).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, raw.Records, 2)
	assert.Equal(t, []int{2, 5}, raw.CorruptLines)

	normalized := domain.Normalize(raw.Records, time.UTC)
	require.Len(t, normalized.Records, 2)
	assert.Equal(t, 65.5, normalized.Records[1].DurationMin)
	assert.Equal(t, time.Date(2024, 8, 15, 9, 30, 0, 0, time.UTC), normalized.Records[1].Timestamp)
}

func TestJSONLSessionLogReadsLinesOfAnyLength(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	long := strings.Repeat("n", 3<<20)
	content := `{"id": 1, "user": "Ann", "materia": "Math", "durata": 30}
{"id": 2, "user": "Ann", "materia": "Math", "durata": 10, "note": "` + long + `"}
{"id": 3, "user": "Ann", "materia": "Art", "durata": 5}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sessions.jsonl"), []byte(content), 0o644))

	raw, err := NewJSONLSessionLog(dir).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, raw.Records, 3)
	assert.Empty(t, raw.CorruptLines)
	assert.Equal(t, 3, domain.MaxID(raw.Records))
}

func TestJSONLSessionLogAppendRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	log := NewJSONLSessionLog(dir)
	ctx := context.Background()

	empty, err := log.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty.Records)

	ts := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	rec := domain.Record{ID: 1, User: "Ann", Subject: "Math", DurationMin: 30, Timestamp: ts, HasTimestamp: true, RawTimestamp: ts.Format(domain.TimestampLayout), Note: "limits"}
	require.NoError(t, log.Append(ctx, rec))
	require.NoError(t, log.Append(ctx, domain.Record{ID: 2, User: "Ann", Subject: "Art", DurationMin: 15, RawTimestamp: ts.Format(domain.TimestampLayout)}))

	raw, err := log.Load(ctx)
	require.NoError(t, err)
	normalized := domain.Normalize(raw.Records, time.UTC)
	require.Len(t, normalized.Records, 2)
	assert.Equal(t, rec, normalized.Records[0])
	assert.Equal(t, 2, domain.MaxID(raw.Records))
}

func TestCatalogStores(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	ctx := context.Background()

	subjects := NewFileSubjectStore(dir)
	loaded, err := subjects.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
	require.NoError(t, subjects.Save(ctx, map[string][]string{"Ann": {"Math", "Art"}}))
	loaded, err = subjects.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Math", "Art"}, loaded["Ann"])

	users := NewFileUserStore(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "users.txt"), []byte("Ann\n\n  Bob  \n"), 0o644))
	list, err := users.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob"}, list)
	require.NoError(t, users.Save(ctx, []string{"Ann", "Bob", "Cy"}))
	list, err = users.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ann", "Bob", "Cy"}, list)
}

func TestActiveSessionStoreIsPerUser(t *testing.T) {
	t.Parallel()
	store := NewFileActiveSessionStore(t.TempDir())
	ctx := context.Background()
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	_, err := store.LoadActive(ctx, "Ann")
	require.True(t, errors.Is(err, apperrors.ErrNoActiveSession))

	require.NoError(t, store.SaveActive(ctx, domain.ActiveSession{User: "Ann", Subject: "Math", StartedAt: started}))
	require.NoError(t, store.SaveActive(ctx, domain.ActiveSession{User: "Bob", Subject: "Art", StartedAt: started}))

	ann, err := store.LoadActive(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, "Math", ann.Subject)
	assert.True(t, ann.StartedAt.Equal(started))

	require.NoError(t, store.ClearActive(ctx, "Ann"))
	require.NoError(t, store.ClearActive(ctx, "Ann"))
	_, err = store.LoadActive(ctx, "Ann")
	assert.ErrorIs(t, err, apperrors.ErrNoActiveSession)
	_, err = store.LoadActive(ctx, "Bob")
	assert.NoError(t, err)
}

func TestSQLiteSessionProjector(t *testing.T) {
	t.Parallel()
	projector, err := NewSQLiteSessionProjector(filepath.Join(t.TempDir(), ".studytrack", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = projector.Close() })
	ctx := context.Background()

	ts := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	require.NoError(t, projector.UpsertSession(ctx, domain.Record{ID: 1, User: "Ann", Subject: "Math", DurationMin: 30, Timestamp: ts, HasTimestamp: true}))
	require.NoError(t, projector.UpsertSession(ctx, domain.Record{ID: 2, User: "Ann", Subject: "Math", DurationMin: 15}))
	require.NoError(t, projector.UpsertSession(ctx, domain.Record{ID: 2, User: "Ann", Subject: "Math", DurationMin: 20}))
	require.NoError(t, projector.UpsertSession(ctx, domain.Record{ID: 1, User: "Bob", Subject: "Art", DurationMin: 60}))

	totals, err := projector.SubjectTotals(ctx, "Ann")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"Math": 50}, totals)

	require.NoError(t, projector.Reset(ctx))
	totals, err = projector.SubjectTotals(ctx, "Ann")
	require.NoError(t, err)
	assert.Empty(t, totals)
}
