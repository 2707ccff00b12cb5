package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"studytrack/internal/modules/progress/domain"
	progressout "studytrack/internal/modules/progress/port/out"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/logging"
	"studytrack/internal/platform/subject"
	"studytrack/internal/platform/tx"
)

type ProgressService struct {
	clock    clock.Clock
	loc      *time.Location
	log      logging.Logger
	store    progressout.NoteStore
	sessions progressout.SessionSource
	exporter progressout.TimelineExporter
	tx       tx.Manager
}

func NewProgressService(
	clk clock.Clock,
	loc *time.Location,
	log logging.Logger,
	store progressout.NoteStore,
	sessions progressout.SessionSource,
	exporter progressout.TimelineExporter,
	txm tx.Manager,
) *ProgressService {
	if loc == nil {
		loc = time.Local
	}
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &ProgressService{clock: clk, loc: loc, log: log, store: store, sessions: sessions, exporter: exporter, tx: txm}
}

func (s *ProgressService) now() time.Time {
	return s.clock.Now().In(s.loc)
}

func (s *ProgressService) AddSessionNote(ctx context.Context, user, subjectName, topic string, durationMin float64, sessionID *int) (domain.Note, error) {
	user, name, err := s.validate(user, subjectName)
	if err != nil {
		return domain.Note{}, err
	}
	hours := domain.SubjectHours(s.loadSessions(ctx, user), name)
	return s.append(ctx, func(id int) (domain.Note, error) {
		return domain.NewSessionNote(id, user, name, topic, durationMin, sessionID, hours, s.now())
	})
}

func (s *ProgressService) AddMilestone(ctx context.Context, user, subjectName, topic, description string) (domain.Note, error) {
	user, name, err := s.validate(user, subjectName)
	if err != nil {
		return domain.Note{}, err
	}
	hours := domain.SubjectHours(s.loadSessions(ctx, user), name)
	return s.append(ctx, func(id int) (domain.Note, error) {
		return domain.NewMilestone(id, user, name, topic, description, hours, s.now())
	})
}

func (s *ProgressService) validate(user, subjectName string) (string, string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", "", fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	name, err := subject.Validate(subjectName)
	if err != nil {
		return "", "", err
	}
	return user, name, nil
}

func (s *ProgressService) append(ctx context.Context, build func(id int) (domain.Note, error)) (domain.Note, error) {
	var created domain.Note
	err := s.tx.Within(ctx, func(ctx context.Context) error {
		entries, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		note, err := build(domain.NextID(entries))
		if err != nil {
			return err
		}
		if err := s.store.Save(ctx, append(entries, domain.Entry{Note: note})); err != nil {
			return err
		}
		created = note
		return nil
	})
	return created, err
}

// Notes returns the user's well-formed notes in log order. An unreadable
// store yields none.
func (s *ProgressService) Notes(ctx context.Context, user string) []domain.Note {
	entries, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "note store unreadable, treating as empty", "error", err)
		return nil
	}
	out := make([]domain.Note, 0, len(entries))
	for _, e := range entries {
		if !e.Malformed() && e.Note.User == user {
			out = append(out, e.Note)
		}
	}
	return out
}

func (s *ProgressService) List(ctx context.Context, user, subjectName string) []domain.Note {
	notes := domain.ForSubject(s.Notes(ctx, user), strings.TrimSpace(subjectName))
	domain.SortNewestFirst(notes)
	return notes
}

func (s *ProgressService) Timeline(ctx context.Context, user, subjectName string) []domain.TimelineEntry {
	return domain.Timeline(s.Notes(ctx, user), strings.TrimSpace(subjectName))
}

func (s *ProgressService) Statistics(ctx context.Context, user, subjectName string) domain.Statistics {
	return domain.SubjectStatistics(strings.TrimSpace(subjectName), s.loadSessions(ctx, user), s.Notes(ctx, user))
}

func (s *ProgressService) RecentActivity(ctx context.Context, user string, days int) []domain.Note {
	return domain.RecentActivity(s.Notes(ctx, user), s.now(), days)
}

func (s *ProgressService) Search(ctx context.Context, user, query string) []domain.Note {
	return domain.Search(s.Notes(ctx, user), query)
}

func (s *ProgressService) Delete(ctx context.Context, user string, id int) error {
	return s.tx.Within(ctx, func(ctx context.Context) error {
		entries, err := s.store.Load(ctx)
		if err != nil {
			return err
		}
		kept := entries[:0:0]
		found := false
		for _, e := range entries {
			if !e.Malformed() && e.Note.ID == id && e.Note.User == user {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if !found {
			return fmt.Errorf("%w: note %d", apperrors.ErrNotFound, id)
		}
		return s.store.Save(ctx, kept)
	})
}

// Export writes the subject timeline document through the exporter.
func (s *ProgressService) Export(ctx context.Context, user, subjectName string) (string, int, error) {
	if s.exporter == nil {
		return "", 0, fmt.Errorf("timeline exporter is not configured")
	}
	user, name, err := s.validate(user, subjectName)
	if err != nil {
		return "", 0, err
	}
	timeline := s.Timeline(ctx, user, name)
	path, err := s.exporter.Export(ctx, user, s.Statistics(ctx, user, name), timeline)
	if err != nil {
		return "", 0, err
	}
	return path, len(timeline), nil
}

func (s *ProgressService) loadSessions(ctx context.Context, user string) []domain.Session {
	sessions, err := s.sessions.Sessions(ctx, user)
	if err != nil {
		s.log.Warn(ctx, "session source unreadable, treating as empty", "user", user, "error", err)
		return nil
	}
	return sessions
}
