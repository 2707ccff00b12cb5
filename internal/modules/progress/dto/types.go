package dto

import "time"

type SessionNoteInput struct {
	User        string
	Subject     string
	Topic       string
	DurationMin float64
	SessionID   *int
}

type MilestoneInput struct {
	User        string
	Subject     string
	Topic       string
	Description string
}

type NoteOutput struct {
	ID                 int       `json:"id"`
	User               string    `json:"user"`
	Subject            string    `json:"subject"`
	Topic              string    `json:"topic"`
	Kind               string    `json:"kind"`
	Timestamp          time.Time `json:"timestamp"`
	SessionDurationMin float64   `json:"session_duration_min"`
	Description        string    `json:"description"`
	CumulativeHours    float64   `json:"cumulative_hours"`
	SessionID          *int      `json:"session_id,omitempty"`
}

type TimelineEntryOutput struct {
	Note            NoteOutput `json:"note"`
	SessionLabel    string     `json:"session_label"`
	CumulativeLabel string     `json:"cumulative_label"`
}

type StatisticsOutput struct {
	Subject             string     `json:"subject"`
	TotalSessions       int        `json:"total_sessions"`
	TotalHours          float64    `json:"total_hours"`
	SessionsWithNotes   int        `json:"sessions_with_notes"`
	NoteCoveragePct     float64    `json:"note_coverage_pct"`
	DistinctTopics      int        `json:"distinct_topics"`
	MilestonesCompleted int        `json:"milestones_completed"`
	AvgHoursPerTopic    float64    `json:"avg_hours_per_topic"`
	LastActivity        *time.Time `json:"last_activity,omitempty"`
}

type ExportOutput struct {
	Path    string `json:"path"`
	Entries int    `json:"entries"`
}
