package usecase

import (
	"context"

	"studytrack/internal/modules/goal/domain"
	goaldto "studytrack/internal/modules/goal/dto"
	goalin "studytrack/internal/modules/goal/port/in"
	goalout "studytrack/internal/modules/goal/port/out"
	"studytrack/internal/modules/goal/service"
	"studytrack/internal/platform/logging"
)

type Interactor struct {
	svc      *service.GoalService
	notifier goalout.Notifier
	log      logging.Logger
}

func NewInteractor(svc *service.GoalService, notifier goalout.Notifier, log logging.Logger) goalin.Usecase {
	return &Interactor{svc: svc, notifier: notifier, log: log}
}

func (i *Interactor) CreateGoal(ctx context.Context, input goaldto.CreateGoalInput) (goaldto.GoalOutput, error) {
	goal, err := i.svc.Create(ctx, input.User, input.Subject, input.Hours, input.Minutes, input.Interval)
	if err != nil {
		return goaldto.GoalOutput{}, err
	}
	return toOutput(goal, i.svc.Progress(ctx, goal)), nil
}

func (i *Interactor) ListGoals(ctx context.Context, user string) ([]goaldto.GoalOutput, error) {
	goals, progress := i.svc.List(ctx, user)
	out := make([]goaldto.GoalOutput, 0, len(goals))
	for idx, g := range goals {
		out = append(out, toOutput(g, progress[idx]))
	}
	return out, nil
}

func (i *Interactor) DeleteGoal(ctx context.Context, user string, id int) error {
	return i.svc.Delete(ctx, user, id)
}

// CheckCompletions announces each newly completed goal. A notifier failure is
// logged and does not affect the result.
func (i *Interactor) CheckCompletions(ctx context.Context, user string) ([]goaldto.GoalOutput, error) {
	changed, err := i.svc.CheckCompletions(ctx, user)
	if err != nil {
		return nil, err
	}
	out := make([]goaldto.GoalOutput, 0, len(changed))
	for _, g := range changed {
		if i.notifier != nil {
			if err := i.notifier.GoalCompleted(ctx, g); err != nil {
				i.log.Warn(ctx, "goal notification failed", "goal", g.ID, "error", err)
			}
		}
		out = append(out, toOutput(g, i.svc.Progress(ctx, g)))
	}
	return out, nil
}

func toOutput(g domain.Goal, p domain.Progress) goaldto.GoalOutput {
	out := goaldto.GoalOutput{
		ID:          g.ID,
		User:        g.User,
		Subject:     g.Subject,
		TargetMin:   g.TargetMin,
		TargetLabel: g.TargetLabel(),
		Interval:    string(g.Interval),
		CreatedAt:   g.CreatedAt,
		Completed:   g.Completed,
		StudiedMin:  p.StudiedMin,
		Percent:     p.Percent,
		Band:        string(p.Band),
		PeriodStart: p.PeriodStart,
	}
	if !g.CompletedAt.IsZero() {
		at := g.CompletedAt
		out.CompletedAt = &at
	}
	return out
}
