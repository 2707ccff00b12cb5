package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studytrack/internal/modules/session/domain"
)

func TestParseDurationFormats(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name  string
		value any
		want  float64
	}{
		{name: "json number", value: float64(30), want: 30},
		{name: "int", value: 45, want: 45},
		{name: "json.Number", value: json.Number("20"), want: 20},
		{name: "numeric string", value: " 25 ", want: 25},
		{name: "hours clock", value: "1:05:30", want: 65.5},
		{name: "minutes clock", value: "12:30", want: 12.5},
		{name: "sub-minute raised to one", value: "0:30", want: 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := domain.ParseDuration(tc.value)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseDurationRejects(t *testing.T) {
	t.Parallel()
	for _, v := range []any{0, float64(0), "0", -5, "abc", "1:2:3:4", "1:-5", true, nil, "0:00"} {
		_, err := domain.ParseDuration(v)
		assert.Errorf(t, err, "expected %v (%T) to be rejected", v, v)
	}
}

func TestParseTimestampFallbackOrder(t *testing.T) {
	t.Parallel()
	loc := time.UTC
	cases := map[string]time.Time{
		"2024-08-15 09:30:00":        time.Date(2024, 8, 15, 9, 30, 0, 0, loc),
		"2024-08-15 09:30:00.250000": time.Date(2024, 8, 15, 9, 30, 0, 250000000, loc),
		"15/08/2024 09:30:10":        time.Date(2024, 8, 15, 9, 30, 10, 0, loc),
		"15/08/2024 09:30":           time.Date(2024, 8, 15, 9, 30, 0, 0, loc),
		"5/8/2024 9:30":              time.Date(2024, 8, 5, 9, 30, 0, 0, loc),
	}
	for in, want := range cases {
		got, ok := domain.ParseTimestamp(in, loc)
		require.Truef(t, ok, "expected %q to parse", in)
		assert.Truef(t, want.Equal(got), "%q parsed to %v, want %v", in, got, want)
	}
	for _, bad := range []string{"", "yesterday", "2024-13-40 10:00:00", "2024-08-15T09:30:00Z"} {
		_, ok := domain.ParseTimestamp(bad, loc)
		assert.Falsef(t, ok, "expected %q to fail", bad)
	}
}

func TestNormalizeDropsMalformedAndKeepsUntimed(t *testing.T) {
	t.Parallel()
	raw := []domain.RawRecord{
		{"id": float64(1), "user": "Ann", "materia": "Math", "durata": float64(30), "timestamp": "2026-10-19 10:00:00"},
		{"id": float64(2), "user": "Ann", "materia": "Math", "timestamp": "2026-10-19 11:00:00"},
		{"id": float64(3), "user": "Ann", "materia": "Math", "durata": "abc"},
		{"id": float64(4), "materia": "Math", "durata": float64(10)},
		{"id": float64(5), "user": "Ann", "subject": "Physics", "duration": "1:05:30", "timestamp": "not a date", "note": "optics"},
		{"id": float64(1), "user": "Ann", "materia": "Math", "durata": float64(99)},
		{"id": float64(1), "user": "Bob", "materia": "Math", "durata": float64(15)},
		{"user": "Ann", "materia": "Math", "durata": float64(10)},
		{"id": float64(6), "user": "Ann", "materia": "Math", "durata": float64(0)},
	}

	got := domain.Normalize(raw, time.UTC)

	require.Len(t, got.Records, 3)
	assert.Equal(t, 1, got.Records[0].ID)
	assert.True(t, got.Records[0].HasTimestamp)
	assert.Equal(t, "Physics", got.Records[1].Subject)
	assert.InDelta(t, 65.5, got.Records[1].DurationMin, 1e-9)
	assert.False(t, got.Records[1].HasTimestamp)
	assert.Equal(t, "not a date", got.Records[1].RawTimestamp)
	assert.Equal(t, "optics", got.Records[1].Note)
	assert.Equal(t, "Bob", got.Records[2].User)

	reasons := map[int]string{}
	for _, r := range got.Rejected {
		reasons[r.Index] = r.Reason
	}
	assert.Equal(t, "missing duration", reasons[1])
	assert.Contains(t, reasons[2], "invalid duration")
	assert.Equal(t, "missing user", reasons[3])
	assert.Equal(t, "duplicate id", reasons[5])
	assert.Equal(t, "missing id", reasons[7])
	assert.Contains(t, reasons[8], "positive")

	timed := got.Timed()
	require.Len(t, timed, 1)
	assert.Equal(t, 1, timed[0].ID)
}

func TestNormalizeRoundTripsWrittenRecord(t *testing.T) {
	t.Parallel()
	at := time.Date(2026, 10, 19, 8, 15, 0, 0, time.UTC)
	line := map[string]any{
		"id": 7, "user": "Ann", "materia": "Math", "durata": 40, "timestamp": at.Format(domain.TimestampLayout),
	}
	payload, err := json.Marshal(line)
	require.NoError(t, err)
	decoded := domain.RawRecord{}
	require.NoError(t, json.Unmarshal(payload, &decoded))

	got := domain.Normalize([]domain.RawRecord{decoded}, time.UTC)
	require.Len(t, got.Records, 1)
	assert.Equal(t, 7, got.Records[0].ID)
	assert.InDelta(t, 40, got.Records[0].DurationMin, 1e-9)
	assert.True(t, at.Equal(got.Records[0].Timestamp))
}

func TestMaxIDAndClamp(t *testing.T) {
	t.Parallel()
	raw := []domain.RawRecord{{"id": float64(3)}, {"id": "11"}, {"id": "x"}, {}}
	assert.Equal(t, 11, domain.MaxID(raw))
	assert.Equal(t, 0, domain.MaxID(nil))

	assert.Equal(t, 1, domain.ClampTimerMinutes(20*time.Second))
	assert.Equal(t, 1, domain.ClampTimerMinutes(-time.Minute))
	assert.Equal(t, 25, domain.ClampTimerMinutes(25*time.Minute+59*time.Second))
}
