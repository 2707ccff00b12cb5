package dto

import "time"

type CreateGoalInput struct {
	User     string
	Subject  string
	Hours    int
	Minutes  int
	Interval string
}

type GoalOutput struct {
	ID          int        `json:"id"`
	User        string     `json:"user"`
	Subject     string     `json:"subject"`
	TargetMin   int        `json:"target_min"`
	TargetLabel string     `json:"target_label"`
	Interval    string     `json:"interval"`
	CreatedAt   time.Time  `json:"created_at"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	StudiedMin  float64    `json:"studied_min"`
	Percent     float64    `json:"percent"`
	Band        string     `json:"band"`
	PeriodStart time.Time  `json:"period_start"`
}
