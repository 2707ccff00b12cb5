package usecase

import (
	"context"

	"studytrack/internal/modules/progress/domain"
	progressdto "studytrack/internal/modules/progress/dto"
	progressin "studytrack/internal/modules/progress/port/in"
	"studytrack/internal/modules/progress/service"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) AddSessionNote(ctx context.Context, input progressdto.SessionNoteInput) (progressdto.NoteOutput, error) {
	note, err := i.svc.AddSessionNote(ctx, input.User, input.Subject, input.Topic, input.DurationMin, input.SessionID)
	if err != nil {
		return progressdto.NoteOutput{}, err
	}
	return toNoteOutput(note), nil
}

func (i *Interactor) AddMilestone(ctx context.Context, input progressdto.MilestoneInput) (progressdto.NoteOutput, error) {
	note, err := i.svc.AddMilestone(ctx, input.User, input.Subject, input.Topic, input.Description)
	if err != nil {
		return progressdto.NoteOutput{}, err
	}
	return toNoteOutput(note), nil
}

func (i *Interactor) ListNotes(ctx context.Context, user, subject string) ([]progressdto.NoteOutput, error) {
	return toNoteOutputs(i.svc.List(ctx, user, subject)), nil
}

func (i *Interactor) Timeline(ctx context.Context, user, subject string) ([]progressdto.TimelineEntryOutput, error) {
	entries := i.svc.Timeline(ctx, user, subject)
	out := make([]progressdto.TimelineEntryOutput, 0, len(entries))
	for _, e := range entries {
		out = append(out, progressdto.TimelineEntryOutput{
			Note:            toNoteOutput(e.Note),
			SessionLabel:    e.SessionLabel,
			CumulativeLabel: e.CumulativeLabel,
		})
	}
	return out, nil
}

func (i *Interactor) Statistics(ctx context.Context, user, subject string) (progressdto.StatisticsOutput, error) {
	stats := i.svc.Statistics(ctx, user, subject)
	out := progressdto.StatisticsOutput{
		Subject:             stats.Subject,
		TotalSessions:       stats.TotalSessions,
		TotalHours:          stats.TotalHours,
		SessionsWithNotes:   stats.SessionsWithNotes,
		NoteCoveragePct:     stats.NoteCoveragePct,
		DistinctTopics:      stats.DistinctTopics,
		MilestonesCompleted: stats.MilestonesCompleted,
		AvgHoursPerTopic:    stats.AvgHoursPerTopic,
	}
	if !stats.LastActivity.IsZero() {
		last := stats.LastActivity
		out.LastActivity = &last
	}
	return out, nil
}

func (i *Interactor) RecentActivity(ctx context.Context, user string, days int) ([]progressdto.NoteOutput, error) {
	return toNoteOutputs(i.svc.RecentActivity(ctx, user, days)), nil
}

func (i *Interactor) Search(ctx context.Context, user, query string) ([]progressdto.NoteOutput, error) {
	return toNoteOutputs(i.svc.Search(ctx, user, query)), nil
}

func (i *Interactor) DeleteNote(ctx context.Context, user string, id int) error {
	return i.svc.Delete(ctx, user, id)
}

func (i *Interactor) ExportTimeline(ctx context.Context, user, subject string) (progressdto.ExportOutput, error) {
	path, n, err := i.svc.Export(ctx, user, subject)
	if err != nil {
		return progressdto.ExportOutput{}, err
	}
	return progressdto.ExportOutput{Path: path, Entries: n}, nil
}

func toNoteOutputs(notes []domain.Note) []progressdto.NoteOutput {
	out := make([]progressdto.NoteOutput, 0, len(notes))
	for _, n := range notes {
		out = append(out, toNoteOutput(n))
	}
	return out
}

func toNoteOutput(n domain.Note) progressdto.NoteOutput {
	return progressdto.NoteOutput{
		ID:                 n.ID,
		User:               n.User,
		Subject:            n.Subject,
		Topic:              n.Topic,
		Kind:               string(n.Kind),
		Timestamp:          n.Timestamp,
		SessionDurationMin: n.SessionDurationMin,
		Description:        n.Description,
		CumulativeHours:    n.CumulativeHours,
		SessionID:          n.SessionID,
	}
}
