package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/humanize"
)

type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// ParseInterval accepts the English names and the stored Italian ones.
func ParseInterval(value string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "day", "daily", "giorno":
		return IntervalDay, nil
	case "week", "weekly", "settimana":
		return IntervalWeek, nil
	case "month", "monthly", "mese":
		return IntervalMonth, nil
	default:
		return "", fmt.Errorf("%w: unknown interval %q", apperrors.ErrInvalidInput, value)
	}
}

// Goal is a recurring time target for one subject.
type Goal struct {
	ID          int
	User        string
	Subject     string
	TargetHours int
	TargetMins  int
	TargetMin   int
	Interval    Interval
	CreatedAt   time.Time
	Completed   bool
	CompletedAt time.Time
}

// NewGoal validates a target given as hours plus minutes.
func NewGoal(id int, user, subject string, hours, minutes int, interval Interval, now time.Time) (Goal, error) {
	if hours < 0 || minutes < 0 {
		return Goal{}, fmt.Errorf("%w: target hours and minutes must not be negative", apperrors.ErrInvalidInput)
	}
	target := hours*60 + minutes
	if target <= 0 {
		return Goal{}, fmt.Errorf("%w: target must be positive", apperrors.ErrInvalidInput)
	}
	if _, err := ParseInterval(string(interval)); err != nil {
		return Goal{}, err
	}
	return Goal{
		ID:          id,
		User:        user,
		Subject:     subject,
		TargetHours: hours,
		TargetMins:  minutes,
		TargetMin:   target,
		Interval:    interval,
		CreatedAt:   now,
	}, nil
}

// PeriodStart is midnight of now's day, of the latest Monday, or of the 1st of the month.
func PeriodStart(interval Interval, now time.Time) time.Time {
	y, m, d := now.Date()
	loc := now.Location()
	switch interval {
	case IntervalDay:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case IntervalWeek:
		sinceMonday := (int(now.Weekday()) + 6) % 7
		return time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc)
	case IntervalMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	default:
		return now
	}
}

// Session is the slice of a session record the evaluator needs.
type Session struct {
	Subject      string
	DurationMin  float64
	Timestamp    time.Time
	HasTimestamp bool
}

// StudiedMinutes sums matching sessions at or after the goal's period start.
// Sessions without a timestamp never count.
func StudiedMinutes(goal Goal, sessions []Session, now time.Time) float64 {
	start := PeriodStart(goal.Interval, now)
	total := 0.0
	for _, s := range sessions {
		if s.Subject != goal.Subject || !s.HasTimestamp {
			continue
		}
		if !s.Timestamp.Before(start) {
			total += s.DurationMin
		}
	}
	return total
}

type Progress struct {
	StudiedMin  float64
	TargetMin   int
	Percent     float64
	Band        Band
	PeriodStart time.Time
}

// Evaluate clamps the completion percentage to [0, 100].
func Evaluate(goal Goal, studied float64) Progress {
	pct := 0.0
	if goal.TargetMin > 0 {
		pct = 100 * studied / float64(goal.TargetMin)
	}
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return Progress{StudiedMin: studied, TargetMin: goal.TargetMin, Percent: pct, Band: BandFor(pct)}
}

// CompletedInPeriod reports whether the goal was already completed in the
// period that contains now.
func CompletedInPeriod(goal Goal, now time.Time) bool {
	if !goal.Completed {
		return false
	}
	if goal.CompletedAt.IsZero() {
		return true
	}
	return !goal.CompletedAt.Before(PeriodStart(goal.Interval, now))
}

// CheckCompletions marks goals whose current-period total reached the target
// and returns the updated set together with exactly the goals that changed.
// A goal completed in an earlier period is evaluated again for the current one.
func CheckCompletions(user string, goals []Goal, sessions []Session, now time.Time) ([]Goal, []Goal) {
	updated := make([]Goal, len(goals))
	copy(updated, goals)
	var changed []Goal
	for i, g := range updated {
		if g.User != user || g.TargetMin <= 0 || CompletedInPeriod(g, now) {
			continue
		}
		if StudiedMinutes(g, sessions, now) >= float64(g.TargetMin) {
			g.Completed = true
			g.CompletedAt = now
			updated[i] = g
			changed = append(changed, g)
		}
	}
	return updated, changed
}

type Band string

const (
	BandCompleted Band = "completed"
	BandAlmost    Band = "almost"
	BandHalfway   Band = "halfway"
	BandStarted   Band = "started"
)

func BandFor(percent float64) Band {
	switch {
	case percent >= 100:
		return BandCompleted
	case percent >= 75:
		return BandAlmost
	case percent >= 50:
		return BandHalfway
	default:
		return BandStarted
	}
}

// Entry is one element of the persisted goal set. Raw holds the original bytes
// of an element that could not be decoded; such entries are never evaluated
// but are written back unchanged.
type Entry struct {
	Goal Goal
	Raw  []byte
}

func (e Entry) Malformed() bool {
	return e.Raw != nil
}

// NextID returns max(id)+1 over all entries, starting at 1.
func NextID(entries []Entry) int {
	maxID := 0
	for _, e := range entries {
		if e.Goal.ID > maxID {
			maxID = e.Goal.ID
		}
	}
	return maxID + 1
}

// TargetLabel renders the target as "45min", "2h" or "2h 5min".
func (g Goal) TargetLabel() string {
	return humanize.Minutes(g.TargetMin)
}
