package in

import (
	"context"

	progressdto "studytrack/internal/modules/progress/dto"
	progressin "studytrack/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) AddMilestone(ctx context.Context, user, subject, topic, description string) (progressdto.NoteOutput, error) {
	return h.usecase.AddMilestone(ctx, progressdto.MilestoneInput{User: user, Subject: subject, Topic: topic, Description: description})
}

func (h CLIHandler) AddNote(ctx context.Context, user, subject, topic string, minutes float64) (progressdto.NoteOutput, error) {
	return h.usecase.AddSessionNote(ctx, progressdto.SessionNoteInput{User: user, Subject: subject, Topic: topic, DurationMin: minutes})
}

func (h CLIHandler) List(ctx context.Context, user, subject string) ([]progressdto.NoteOutput, error) {
	return h.usecase.ListNotes(ctx, user, subject)
}

func (h CLIHandler) Timeline(ctx context.Context, user, subject string) ([]progressdto.TimelineEntryOutput, error) {
	return h.usecase.Timeline(ctx, user, subject)
}

func (h CLIHandler) Statistics(ctx context.Context, user, subject string) (progressdto.StatisticsOutput, error) {
	return h.usecase.Statistics(ctx, user, subject)
}

func (h CLIHandler) Recent(ctx context.Context, user string, days int) ([]progressdto.NoteOutput, error) {
	return h.usecase.RecentActivity(ctx, user, days)
}

func (h CLIHandler) Search(ctx context.Context, user, query string) ([]progressdto.NoteOutput, error) {
	return h.usecase.Search(ctx, user, query)
}

func (h CLIHandler) Delete(ctx context.Context, user string, id int) error {
	return h.usecase.DeleteNote(ctx, user, id)
}

func (h CLIHandler) Export(ctx context.Context, user, subject string) (progressdto.ExportOutput, error) {
	return h.usecase.ExportTimeline(ctx, user, subject)
}
