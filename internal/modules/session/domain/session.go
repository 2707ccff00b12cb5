package domain

import (
	"math"
	"time"
)

// TimestampLayout is the only format written for new records.
const TimestampLayout = "2006-01-02 15:04:05"

// Record is one normalized study session.
type Record struct {
	ID          int
	User        string
	Subject     string
	DurationMin float64
	// Timestamp is the zero time when HasTimestamp is false.
	Timestamp    time.Time
	HasTimestamp bool
	RawTimestamp string
	Note         string
}

func (r Record) Hours() float64 {
	return r.DurationMin / 60.0
}

// ActiveSession is a running timer persisted between CLI invocations.
type ActiveSession struct {
	User      string    `json:"user"`
	Subject   string    `json:"subject"`
	StartedAt time.Time `json:"started_at"`
}

// ClampTimerMinutes converts an elapsed live-timer interval into whole minutes.
// Partial minutes are truncated and anything shorter than one minute counts as one.
func ClampTimerMinutes(elapsed time.Duration) int {
	minutes := int(math.Floor(elapsed.Minutes()))
	if minutes < 1 {
		return 1
	}
	return minutes
}
