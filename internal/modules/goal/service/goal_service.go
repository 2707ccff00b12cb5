package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studytrack/internal/modules/goal/domain"
	goalout "studytrack/internal/modules/goal/port/out"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/logging"
	"studytrack/internal/platform/subject"
	"studytrack/internal/platform/tx"
)

type GoalService struct {
	clock    clock.Clock
	loc      *time.Location
	log      logging.Logger
	store    goalout.GoalStore
	sessions goalout.SessionSource
	tx       tx.Manager
}

func NewGoalService(clk clock.Clock, loc *time.Location, log logging.Logger, store goalout.GoalStore, sessions goalout.SessionSource, txm tx.Manager) *GoalService {
	if loc == nil {
		loc = time.Local
	}
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &GoalService{clock: clk, loc: loc, log: log, store: store, sessions: sessions, tx: txm}
}

func (s *GoalService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *GoalService) Create(ctx context.Context, user, subjectName string, hours, minutes int, interval string) (domain.Goal, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return domain.Goal{}, fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	name, err := subject.Validate(subjectName)
	if err != nil {
		return domain.Goal{}, err
	}
	iv, err := domain.ParseInterval(interval)
	if err != nil {
		return domain.Goal{}, err
	}

	var created domain.Goal
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		entries, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		goal, err := domain.NewGoal(domain.NextID(entries), user, name, hours, minutes, iv, s.now().Truncate(time.Second))
		if err != nil {
			return err
		}
		if err := s.store.Save(ctx, append(entries, domain.Entry{Goal: goal})); err != nil {
			return err
		}
		created = goal
		return nil
	})
	return created, err
}

// List returns the user's well-formed goals with live progress. An unreadable
// store yields no goals.
func (s *GoalService) List(ctx context.Context, user string) ([]domain.Goal, []domain.Progress) {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "goal store unreadable, treating as empty", "error", err)
		return nil, nil
	}
	sessions := s.loadSessions(ctx, user)
	now := s.now()
	var goals []domain.Goal
	var progress []domain.Progress
	for _, e := range entries {
		if e.Malformed() || e.Goal.User != user {
			continue
		}
		p := domain.Evaluate(e.Goal, domain.StudiedMinutes(e.Goal, sessions, now))
		p.PeriodStart = domain.PeriodStart(e.Goal.Interval, now)
		goals = append(goals, e.Goal)
		progress = append(progress, p)
	}
	return goals, progress
}

func (s *GoalService) Delete(ctx context.Context, user string, id int) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		entries, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		kept := entries[:0:0]
		found := false
		for _, e := range entries {
			if !e.Malformed() && e.Goal.ID == id && e.Goal.User == user {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if !found {
			return fmt.Errorf("%w: goal %d", apperrors.ErrNotFound, id)
		}
		return s.store.Save(ctx, kept)
	})
}

// CheckCompletions evaluates the user's goals against the current period and
// persists the set only when something changed.
func (s *GoalService) CheckCompletions(ctx context.Context, user string) ([]domain.Goal, error) {
	var changed []domain.Goal
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		entries, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		goals := make([]domain.Goal, 0, len(entries))
		positions := make([]int, 0, len(entries))
		for i, e := range entries {
			if e.Malformed() {
				s.log.Debug(ctx, "skipping malformed goal", "index", i)
				continue
			}
			goals = append(goals, e.Goal)
			positions = append(positions, i)
		}
		updated, newly := domain.CheckCompletions(user, goals, s.loadSessions(ctx, user), s.now().Truncate(time.Second))
		if len(newly) == 0 {
			return nil
		}
		for j, g := range updated {
			entries[positions[j]].Goal = g
		}
		if err := s.store.Save(ctx, entries); err != nil {
			return err
		}
		changed = newly
		return nil
	})
	if err != nil {
		return nil, err
	}
	return changed, nil
}

func (s *GoalService) Progress(ctx context.Context, goal domain.Goal) domain.Progress {
	now := s.now()
	p := domain.Evaluate(goal, domain.StudiedMinutes(goal, s.loadSessions(ctx, goal.User), now))
	p.PeriodStart = domain.PeriodStart(goal.Interval, now)
	return p
}

func (s *GoalService) loadSessions(ctx context.Context, user string) []domain.Session {
	sessions, err := s.sessions.Sessions(ctx, user)
	if err != nil {
		s.log.Warn(ctx, "session source unreadable, treating as empty", "user", user, "error", err)
		return nil
	}
	return sessions
}
