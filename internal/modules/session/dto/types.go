package dto

import "time"

type SaveInput struct {
	User        string
	Subject     string
	DurationMin int
	Note        string
}

// CompletedGoal reports a goal that crossed its target because of a save.
type CompletedGoal struct {
	ID        int    `json:"id"`
	Subject   string `json:"subject"`
	TargetMin int    `json:"target_min"`
	Interval  string `json:"interval"`
}

type SaveOutput struct {
	Record         RecordOutput    `json:"record"`
	CompletedGoals []CompletedGoal `json:"completed_goals,omitempty"`
	// Warnings lists side-effect failures that did not block the save.
	Warnings []string `json:"warnings,omitempty"`
}

type RecordOutput struct {
	ID           int       `json:"id"`
	User         string    `json:"user"`
	Subject      string    `json:"subject"`
	DurationMin  float64   `json:"duration_min"`
	Timestamp    time.Time `json:"timestamp"`
	HasTimestamp bool      `json:"has_timestamp"`
	RawTimestamp string    `json:"raw_timestamp"`
	Note         string    `json:"note"`
}

type StartInput struct {
	User    string
	Subject string
}

type StartOutput struct {
	User      string    `json:"user"`
	Subject   string    `json:"subject"`
	StartedAt time.Time `json:"started_at"`
}

type StopInput struct {
	User string
	Note string
}

type ActiveSessionOutput struct {
	User      string        `json:"user"`
	Subject   string        `json:"subject"`
	StartedAt time.Time     `json:"started_at"`
	Elapsed   time.Duration `json:"elapsed"`
}
