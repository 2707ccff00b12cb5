package in

import (
	"context"

	"studytrack/internal/modules/progress/dto"
)

type Usecase interface {
	AddSessionNote(ctx context.Context, input dto.SessionNoteInput) (dto.NoteOutput, error)
	AddMilestone(ctx context.Context, input dto.MilestoneInput) (dto.NoteOutput, error)
	// ListNotes returns notes newest first; an empty subject means all subjects.
	ListNotes(ctx context.Context, user, subject string) ([]dto.NoteOutput, error)
	Timeline(ctx context.Context, user, subject string) ([]dto.TimelineEntryOutput, error)
	Statistics(ctx context.Context, user, subject string) (dto.StatisticsOutput, error)
	RecentActivity(ctx context.Context, user string, days int) ([]dto.NoteOutput, error)
	Search(ctx context.Context, user, query string) ([]dto.NoteOutput, error)
	DeleteNote(ctx context.Context, user string, id int) error
	ExportTimeline(ctx context.Context, user, subject string) (dto.ExportOutput, error)
}
