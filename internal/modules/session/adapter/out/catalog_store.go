package out

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sessionout "studytrack/internal/modules/session/port/out"
)

// FileSubjectStore is subjects.json: {"user": ["subject", ...]}.
type FileSubjectStore struct {
	path string
}

func NewFileSubjectStore(dataDir string) sessionout.SubjectStore {
	return &FileSubjectStore{path: filepath.Join(dataDir, "subjects.json")}
}

func (s *FileSubjectStore) Load(_ context.Context) (map[string][]string, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, fmt.Errorf("read subjects: %w", err)
	}
	subjects := map[string][]string{}
	if err := json.Unmarshal(payload, &subjects); err != nil {
		return nil, fmt.Errorf("decode subjects: %w", err)
	}
	return subjects, nil
}

func (s *FileSubjectStore) Save(_ context.Context, subjects map[string][]string) error {
	payload, err := json.MarshalIndent(subjects, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal subjects: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write subjects: %w", err)
	}
	return nil
}

// FileUserStore is users.txt, one user per line.
type FileUserStore struct {
	path string
}

func NewFileUserStore(dataDir string) sessionout.UserStore {
	return &FileUserStore{path: filepath.Join(dataDir, "users.txt")}
}

func (s *FileUserStore) List(_ context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open users: %w", err)
	}
	defer f.Close()
	var users []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name := strings.TrimSpace(scanner.Text()); name != "" {
			users = append(users, name)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

func (s *FileUserStore) Save(_ context.Context, users []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	var sb strings.Builder
	for _, u := range users {
		sb.WriteString(u)
		sb.WriteString("\n")
	}
	if err := os.WriteFile(s.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write users: %w", err)
	}
	return nil
}
