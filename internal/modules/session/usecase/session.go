package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goaldto "studytrack/internal/modules/goal/dto"
	goalin "studytrack/internal/modules/goal/port/in"
	progressdto "studytrack/internal/modules/progress/dto"
	progressin "studytrack/internal/modules/progress/port/in"
	"studytrack/internal/modules/session/domain"
	sessiondto "studytrack/internal/modules/session/dto"
	sessionin "studytrack/internal/modules/session/port/in"
	sessionout "studytrack/internal/modules/session/port/out"
	"studytrack/internal/modules/session/service"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/logging"
)

type Interactor struct {
	svc         *service.SessionService
	goals       goalin.Usecase
	notes       progressin.Usecase
	activeStore sessionout.ActiveSessionStore
	log         logging.Logger
}

func NewInteractor(svc *service.SessionService, goals goalin.Usecase, notes progressin.Usecase, activeStore sessionout.ActiveSessionStore, log logging.Logger) sessionin.Usecase {
	return &Interactor{svc: svc, goals: goals, notes: notes, activeStore: activeStore, log: log}
}

// Save appends the session, then runs the goal check and records the optional
// note. Neither side effect can fail the save; failures come back as warnings.
func (i *Interactor) Save(ctx context.Context, input sessiondto.SaveInput) (sessiondto.SaveOutput, error) {
	record, err := i.svc.Save(ctx, input.User, input.Subject, input.DurationMin, input.Note)
	if err != nil {
		return sessiondto.SaveOutput{}, err
	}
	return i.afterSave(ctx, record), nil
}

func (i *Interactor) afterSave(ctx context.Context, record domain.Record) sessiondto.SaveOutput {
	out := sessiondto.SaveOutput{Record: toRecordOutput(record)}
	if i.goals != nil {
		completed, err := i.goals.CheckCompletions(ctx, record.User)
		if err != nil {
			i.log.Warn(ctx, "goal check after save failed", "user", record.User, "session", record.ID, "error", err)
			out.Warnings = append(out.Warnings, "goal check failed: "+err.Error())
		}
		for _, g := range completed {
			out.CompletedGoals = append(out.CompletedGoals, toCompletedGoal(g))
		}
	}
	if record.Note != "" && i.notes != nil {
		sessionID := record.ID
		_, err := i.notes.AddSessionNote(ctx, progressdto.SessionNoteInput{
			User:        record.User,
			Subject:     record.Subject,
			Topic:       record.Note,
			DurationMin: record.DurationMin,
			SessionID:   &sessionID,
		})
		if err != nil {
			i.log.Warn(ctx, "session note not recorded", "user", record.User, "session", record.ID, "error", err)
			out.Warnings = append(out.Warnings, "note not recorded: "+err.Error())
		}
	}
	return out
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	if i.activeStore == nil {
		return sessiondto.StartOutput{}, fmt.Errorf("active session store is not configured")
	}
	_, err := i.activeStore.LoadActive(ctx, strings.TrimSpace(input.User))
	if err == nil {
		return sessiondto.StartOutput{}, apperrors.ErrActiveSessionExists
	}
	if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.StartOutput{}, err
	}

	active, err := i.svc.Start(ctx, input.User, input.Subject)
	if err != nil {
		return sessiondto.StartOutput{}, err
	}
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{User: active.User, Subject: active.Subject, StartedAt: active.StartedAt}, nil
}

// Stop ends the user's running timer and saves it with the clamped duration.
func (i *Interactor) Stop(ctx context.Context, input sessiondto.StopInput) (sessiondto.SaveOutput, error) {
	if i.activeStore == nil {
		return sessiondto.SaveOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx, strings.TrimSpace(input.User))
	if err != nil {
		return sessiondto.SaveOutput{}, err
	}
	minutes := domain.ClampTimerMinutes(i.svc.Elapsed(active))
	record, err := i.svc.Save(ctx, active.User, active.Subject, minutes, input.Note)
	if err != nil {
		return sessiondto.SaveOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx, active.User); err != nil {
		return sessiondto.SaveOutput{}, err
	}
	return i.afterSave(ctx, record), nil
}

func (i *Interactor) GetActive(ctx context.Context, user string) (sessiondto.ActiveSessionOutput, error) {
	if i.activeStore == nil {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx, strings.TrimSpace(user))
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	return sessiondto.ActiveSessionOutput{
		User:      active.User,
		Subject:   active.Subject,
		StartedAt: active.StartedAt,
		Elapsed:   i.svc.Elapsed(active),
	}, nil
}

// History returns the newest records first. limit <= 0 means no limit.
func (i *Interactor) History(ctx context.Context, user string, limit int) ([]sessiondto.RecordOutput, error) {
	records := i.svc.Records(ctx, user)
	out := make([]sessiondto.RecordOutput, 0, len(records))
	for idx := len(records) - 1; idx >= 0; idx-- {
		out = append(out, toRecordOutput(records[idx]))
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (i *Interactor) Reindex(ctx context.Context) (int, error) {
	return i.svc.Reindex(ctx)
}

func (i *Interactor) IndexedTotals(ctx context.Context, user string) (map[string]float64, error) {
	return i.svc.IndexedTotals(ctx, user)
}

func toRecordOutput(r domain.Record) sessiondto.RecordOutput {
	return sessiondto.RecordOutput{
		ID:           r.ID,
		User:         r.User,
		Subject:      r.Subject,
		DurationMin:  r.DurationMin,
		Timestamp:    r.Timestamp,
		HasTimestamp: r.HasTimestamp,
		RawTimestamp: r.RawTimestamp,
		Note:         r.Note,
	}
}

func toCompletedGoal(g goaldto.GoalOutput) sessiondto.CompletedGoal {
	return sessiondto.CompletedGoal{ID: g.ID, Subject: g.Subject, TargetMin: g.TargetMin, Interval: g.Interval}
}
