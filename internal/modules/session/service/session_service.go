package service

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"
	"studytrack/internal/platform/clock"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/logging"
	"studytrack/internal/platform/subject"
	"studytrack/internal/platform/tx"
)

type SessionService struct {
	clock    clock.Clock
	loc      *time.Location
	log      logging.Logger
	sessions sessionout.SessionLog
	subjects sessionout.SubjectStore
	users    sessionout.UserStore
	index    sessionout.SessionIndexProjector
	tx       tx.Manager
}

func NewSessionService(
	clk clock.Clock,
	loc *time.Location,
	log logging.Logger,
	sessions sessionout.SessionLog,
	subjects sessionout.SubjectStore,
	users sessionout.UserStore,
	index sessionout.SessionIndexProjector,
	txm tx.Manager,
) *SessionService {
	if loc == nil {
		loc = time.Local
	}
	if txm == nil {
		txm = tx.NoopManager{}
	}
	return &SessionService{clock: clk, loc: loc, log: log, sessions: sessions, subjects: subjects, users: users, index: index, tx: txm}
}

// Records returns the user's normalized sessions in log order. A store that
// cannot be read yields an empty set; the failure is only logged.
func (s *SessionService) Records(ctx context.Context, user string) []domain.Record {
	normalized := s.load(ctx)
	out := make([]domain.Record, 0, len(normalized.Records))
	for _, r := range normalized.Records {
		if r.User == user {
			out = append(out, r)
		}
	}
	return out
}

func (s *SessionService) load(ctx context.Context) domain.Normalized {
	raw, err := s.sessions.Load(ctx)
	if err != nil {
		s.log.Warn(ctx, "session log unreadable, treating as empty", "error", err)
		return domain.Normalized{}
	}
	for _, line := range raw.CorruptLines {
		s.log.Warn(ctx, "dropped corrupt session line", "line", line)
	}
	normalized := domain.Normalize(raw.Records, s.loc)
	for _, r := range normalized.Rejected {
		s.log.Warn(ctx, "dropped session record", "index", r.Index, "id", r.ID, "reason", r.Reason)
	}
	return normalized
}

// Save validates and appends a new record with the next id and the current time.
// A log that cannot be read fails the save, since the next id would be unknown.
func (s *SessionService) Save(ctx context.Context, user, subjectName string, minutes int, note string) (domain.Record, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return domain.Record{}, fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	name, err := s.requireSubject(ctx, user, subjectName)
	if err != nil {
		return domain.Record{}, err
	}
	if minutes < 1 {
		return domain.Record{}, fmt.Errorf("%w: duration must be at least 1 minute", apperrors.ErrInvalidInput)
	}

	var record domain.Record
	err = s.tx.Within(ctx, func(ctx context.Context) error {
		raw, err := s.sessions.Load(ctx)
		if err != nil {
			return fmt.Errorf("read session log: %w", err)
		}
		now := s.clock.Now().In(s.loc).Truncate(time.Second)
		record = domain.Record{
			ID:           domain.MaxID(raw.Records) + 1,
			User:         user,
			Subject:      name,
			DurationMin:  float64(minutes),
			Timestamp:    now,
			HasTimestamp: true,
			RawTimestamp: now.Format(domain.TimestampLayout),
			Note:         strings.TrimSpace(note),
		}
		return s.sessions.Append(ctx, record)
	})
	if err != nil {
		return domain.Record{}, err
	}
	if s.index != nil {
		if err := s.index.UpsertSession(ctx, record); err != nil {
			s.log.Warn(ctx, "session index update failed", "id", record.ID, "error", err)
		}
	}
	return record, nil
}

// Start validates the subject and stamps a new running timer for user.
func (s *SessionService) Start(ctx context.Context, user, subjectName string) (domain.ActiveSession, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return domain.ActiveSession{}, fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	name, err := s.requireSubject(ctx, user, subjectName)
	if err != nil {
		return domain.ActiveSession{}, err
	}
	return domain.ActiveSession{User: user, Subject: name, StartedAt: s.clock.Now()}, nil
}

// Elapsed reports how long an active session has been running.
func (s *SessionService) Elapsed(active domain.ActiveSession) time.Duration {
	elapsed := s.clock.Now().Sub(active.StartedAt)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (s *SessionService) Reindex(ctx context.Context) (int, error) {
	if s.index == nil {
		return 0, fmt.Errorf("session index is not configured")
	}
	raw, err := s.sessions.Load(ctx)
	if err != nil {
		return 0, err
	}
	if err := s.index.Reset(ctx); err != nil {
		return 0, err
	}
	normalized := domain.Normalize(raw.Records, s.loc)
	for _, r := range normalized.Records {
		if err := s.index.UpsertSession(ctx, r); err != nil {
			return 0, err
		}
	}
	return len(normalized.Records), nil
}

// IndexedTotals reads per-subject minutes from the index rather than the log.
func (s *SessionService) IndexedTotals(ctx context.Context, user string) (map[string]float64, error) {
	if s.index == nil {
		return nil, fmt.Errorf("session index is not configured")
	}
	return s.index.SubjectTotals(ctx, strings.TrimSpace(user))
}

func (s *SessionService) requireSubject(ctx context.Context, user, subjectName string) (string, error) {
	name, err := subject.Validate(subjectName)
	if err != nil {
		return "", err
	}
	registered, err := s.ListSubjects(ctx, user)
	if err != nil {
		return "", err
	}
	if len(registered) == 0 {
		return "", apperrors.ErrNoSubjects
	}
	if !slices.Contains(registered, name) {
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownSubject, name)
	}
	return name, nil
}

func (s *SessionService) ListSubjects(ctx context.Context, user string) ([]string, error) {
	all, err := s.subjects.Load(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(all[user]), nil
}

func (s *SessionService) AddSubject(ctx context.Context, user, subjectName string) (string, error) {
	user = strings.TrimSpace(user)
	if user == "" {
		return "", fmt.Errorf("%w: user is required", apperrors.ErrInvalidInput)
	}
	name, err := subject.Validate(subjectName)
	if err != nil {
		return "", err
	}
	all, err := s.subjects.Load(ctx)
	if err != nil {
		return "", err
	}
	if slices.Contains(all[user], name) {
		return "", fmt.Errorf("%w: subject %q already exists", apperrors.ErrInvalidInput, name)
	}
	all[user] = append(all[user], name)
	if err := s.subjects.Save(ctx, all); err != nil {
		return "", err
	}
	return name, nil
}

// RemoveSubject forgets the name only. Sessions, goals and notes keep referring
// to it by string.
func (s *SessionService) RemoveSubject(ctx context.Context, user, subjectName string) error {
	name := strings.TrimSpace(subjectName)
	all, err := s.subjects.Load(ctx)
	if err != nil {
		return err
	}
	idx := slices.Index(all[user], name)
	if idx < 0 {
		return fmt.Errorf("%w: subject %q", apperrors.ErrNotFound, name)
	}
	all[user] = slices.Delete(all[user], idx, idx+1)
	return s.subjects.Save(ctx, all)
}

func (s *SessionService) ListUsers(ctx context.Context) ([]string, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(users)
	return users, nil
}

func (s *SessionService) AddUser(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: user name is required", apperrors.ErrInvalidInput)
	}
	if strings.ContainsAny(name, "\r\n") {
		return "", fmt.Errorf("%w: user name must be a single line", apperrors.ErrInvalidInput)
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return "", err
	}
	if slices.Contains(users, name) {
		return "", fmt.Errorf("%w: user %q already exists", apperrors.ErrInvalidInput, name)
	}
	if err := s.users.Save(ctx, append(users, name)); err != nil {
		return "", err
	}
	return name, nil
}
