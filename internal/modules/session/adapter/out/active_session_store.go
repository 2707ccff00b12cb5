package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"
	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/slug"
)

// FileActiveSessionStore keeps one running timer per user under the state dir.
type FileActiveSessionStore struct {
	dir string
}

func NewFileActiveSessionStore(stateDir string) sessionout.ActiveSessionStore {
	return &FileActiveSessionStore{dir: filepath.Join(stateDir, "active")}
}

func (s *FileActiveSessionStore) path(user string) string {
	return filepath.Join(s.dir, slug.Make(user)+".json")
}

func (s *FileActiveSessionStore) SaveActive(_ context.Context, session domain.ActiveSession) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create active session dir: %w", err)
	}
	payload, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal active session: %w", err)
	}
	if err := os.WriteFile(s.path(session.User), payload, 0o644); err != nil {
		return fmt.Errorf("write active session: %w", err)
	}
	return nil
}

func (s *FileActiveSessionStore) LoadActive(_ context.Context, user string) (domain.ActiveSession, error) {
	payload, err := os.ReadFile(s.path(user))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.ActiveSession{}, apperrors.ErrNoActiveSession
		}
		return domain.ActiveSession{}, fmt.Errorf("read active session: %w", err)
	}
	active := domain.ActiveSession{}
	if err := json.Unmarshal(payload, &active); err != nil {
		return domain.ActiveSession{}, fmt.Errorf("decode active session: %w", err)
	}
	if active.User != user || active.Subject == "" {
		return domain.ActiveSession{}, apperrors.ErrNoActiveSession
	}
	return active, nil
}

func (s *FileActiveSessionStore) ClearActive(_ context.Context, user string) error {
	if err := os.Remove(s.path(user)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear active session: %w", err)
	}
	return nil
}
