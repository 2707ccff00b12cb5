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

	"studytrack/internal/modules/progress/domain"
	progressout "studytrack/internal/modules/progress/port/out"
)

const isoLayout = "2006-01-02T15:04:05.000000"

var acceptedTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// FileNoteStore is progress_notes.json, a JSON array rewritten wholesale.
type FileNoteStore struct {
	path string
	loc  *time.Location
}

func NewFileNoteStore(dataDir string, loc *time.Location) progressout.NoteStore {
	if loc == nil {
		loc = time.Local
	}
	return &FileNoteStore{path: filepath.Join(dataDir, "progress_notes.json"), loc: loc}
}

type noteJSON struct {
	ID               *int     `json:"id"`
	User             *string  `json:"user"`
	Materia          *string  `json:"materia"`
	Argomento        string   `json:"argomento"`
	Tipo             *string  `json:"tipo"`
	Timestamp        string   `json:"timestamp"`
	DurataSessione   *float64 `json:"durata_sessione,omitempty"`
	Descrizione      *string  `json:"descrizione,omitempty"`
	OreTotaliMateria float64  `json:"ore_totali_materia"`
	SessionID        *int     `json:"session_id,omitempty"`
}

func (s *FileNoteStore) Load(_ context.Context) ([]domain.Entry, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read notes: %w", err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	entries := make([]domain.Entry, 0, len(items))
	for _, item := range items {
		note, ok := s.decode(item)
		if !ok {
			entries = append(entries, domain.Entry{Note: domain.Note{ID: note.ID}, Raw: append([]byte(nil), item...)})
			continue
		}
		entries = append(entries, domain.Entry{Note: note})
	}
	return entries, nil
}

func (s *FileNoteStore) decode(item json.RawMessage) (domain.Note, bool) {
	var raw noteJSON
	if err := json.Unmarshal(item, &raw); err != nil {
		return domain.Note{}, false
	}
	note := domain.Note{}
	if raw.ID != nil {
		note.ID = *raw.ID
	}
	if raw.ID == nil || raw.User == nil || raw.Materia == nil || raw.Tipo == nil {
		return note, false
	}
	switch *raw.Tipo {
	case "sessione", "session":
		note.Kind = domain.KindSession
	case "milestone":
		note.Kind = domain.KindMilestone
	default:
		return note, false
	}
	note.User = *raw.User
	note.Subject = *raw.Materia
	note.Topic = raw.Argomento
	note.Timestamp = s.parseTime(raw.Timestamp)
	if raw.DurataSessione != nil {
		note.SessionDurationMin = *raw.DurataSessione
	}
	if raw.Descrizione != nil {
		note.Description = *raw.Descrizione
	}
	note.CumulativeHours = raw.OreTotaliMateria
	note.SessionID = raw.SessionID
	return note, true
}

func (s *FileNoteStore) parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range acceptedTimeLayouts {
		if t, err := time.ParseInLocation(layout, value, s.loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (s *FileNoteStore) Save(_ context.Context, entries []domain.Entry) error {
	items := make([]json.RawMessage, 0, len(entries))
	for _, e := range entries {
		if e.Malformed() {
			items = append(items, e.Raw)
			continue
		}
		encoded, err := json.Marshal(encode(e.Note))
		if err != nil {
			return fmt.Errorf("marshal note %d: %w", e.Note.ID, err)
		}
		items = append(items, encoded)
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write notes: %w", err)
	}
	return nil
}

func encode(n domain.Note) noteJSON {
	id, user, subject := n.ID, n.User, n.Subject
	out := noteJSON{
		ID:               &id,
		User:             &user,
		Materia:          &subject,
		Argomento:        n.Topic,
		OreTotaliMateria: n.CumulativeHours,
	}
	if !n.Timestamp.IsZero() {
		out.Timestamp = n.Timestamp.Format(isoLayout)
	}
	switch n.Kind {
	case domain.KindSession:
		kind, duration := "sessione", n.SessionDurationMin
		out.Tipo = &kind
		out.DurataSessione = &duration
		out.SessionID = n.SessionID
	case domain.KindMilestone:
		kind, description := "milestone", n.Description
		out.Tipo = &kind
		out.Descrizione = &description
	}
	return out
}
