package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"studytrack/internal/modules/goal/domain"
	goalout "studytrack/internal/modules/goal/port/out"
)

const isoLayout = "2006-01-02T15:04:05.000000"

var acceptedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

var storedIntervals = map[domain.Interval]string{
	domain.IntervalDay:   "giorno",
	domain.IntervalWeek:  "settimana",
	domain.IntervalMonth: "mese",
}

// FileGoalStore is goals.json, a JSON array rewritten wholesale.
type FileGoalStore struct {
	path string
	loc  *time.Location
}

func NewFileGoalStore(dataDir string, loc *time.Location) goalout.GoalStore {
	if loc == nil {
		loc = time.Local
	}
	return &FileGoalStore{path: filepath.Join(dataDir, "goals.json"), loc: loc}
}

type goalJSON struct {
	ID                *int    `json:"id"`
	User              *string `json:"user"`
	Materia           *string `json:"materia"`
	OreTarget         int     `json:"ore_target"`
	MinutiTarget      int     `json:"minuti_target"`
	TempoTargetMinuti *int    `json:"tempo_target_minuti"`
	Intervallo        *string `json:"intervallo"`
	DataCreazione     string  `json:"data_creazione"`
	Completato        bool    `json:"completato"`
	DataCompletamento *string `json:"data_completamento"`
}

func (s *FileGoalStore) Load(_ context.Context) ([]domain.Entry, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read goals: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode goals: %w", err)
	}
	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		goal, ok := s.decode(item)
		if !ok {
			entries = append(entries, domain.Entry{Goal: domain.Goal{ID: goal.ID}, Raw: append([]byte(nil), item...)})
			continue
		}
		entries = append(entries, domain.Entry{Goal: goal})
	}
	return entries, nil
}

// decode reports false for entries missing a required field or with a
// non-positive target. The returned goal still carries the id when one was readable.
func (s *FileGoalStore) decode(item json.RawMessage) (domain.Goal, bool) {
	var raw goalJSON
	if err := json.Unmarshal(item, &raw); err != nil {
		return domain.Goal{}, false
	}
	goal := domain.Goal{}
	if raw.ID != nil {
		goal.ID = *raw.ID
	}
	if raw.ID == nil || raw.User == nil || raw.Materia == nil || raw.TempoTargetMinuti == nil || raw.Intervallo == nil {
		return goal, false
	}
	if *raw.TempoTargetMinuti <= 0 {
		return goal, false
	}
	interval, err := domain.ParseInterval(*raw.Intervallo)
	if err != nil {
		return goal, false
	}
	goal.User = *raw.User
	goal.Subject = *raw.Materia
	goal.TargetHours = raw.OreTarget
	goal.TargetMins = raw.MinutiTarget
	goal.TargetMin = *raw.TempoTargetMinuti
	goal.Interval = interval
	goal.CreatedAt, _ = s.parseTime(raw.DataCreazione)
	goal.Completed = raw.Completato
	if raw.DataCompletamento != nil {
		goal.CompletedAt, _ = s.parseTime(*raw.DataCompletamento)
	}
	return goal, true
}

func (s *FileGoalStore) parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, s.loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func (s *FileGoalStore) Save(_ context.Context, entries []domain.Entry) error {
	items := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		if e.Malformed() {
			items = append(items, e.Raw)
			continue
		}
		encoded, err := json.Marshal(encode(e.Goal))
		if err != nil {
			return fmt.Errorf("marshal goal %d: %w", e.Goal.ID, err)
		}
		items = append(items, encoded)
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write goals: %w", err)
	}
	return nil
}

func encode(g domain.Goal) goalJSON {
	id, user, subject, target := g.ID, g.User, g.Subject, g.TargetMin
	interval := storedIntervals[g.Interval]
	out := goalJSON{
		ID:                &id,
		User:              &user,
		Materia:           &subject,
		OreTarget:         g.TargetHours,
		MinutiTarget:      g.TargetMins,
		TempoTargetMinuti: &target,
		Intervallo:        &interval,
		Completato:        g.Completed,
	}
	if !g.CreatedAt.IsZero() {
		out.DataCreazione = g.CreatedAt.Format(isoLayout)
	}
	if !g.CompletedAt.IsZero() {
		at := g.CompletedAt.Format(isoLayout)
		out.DataCompletamento = &at
	}
	return out
}
