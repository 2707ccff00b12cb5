package out

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"
)

// JSONLSessionLog is the append-only sessions.jsonl file, one object per line.
type JSONLSessionLog struct {
	path string
}

func NewJSONLSessionLog(dataDir string) sessionout.SessionLog {
	return &JSONLSessionLog{path: filepath.Join(dataDir, "sessions.jsonl")}
}

// logLine keeps the Italian field names used by existing session logs.
type logLine struct {
	ID        int     `json:"id"`
	User      string  `json:"user"`
	Materia   string  `json:"materia"`
	Durata    float64 `json:"durata"`
	Timestamp string  `json:"timestamp"`
	Note      string  `json:"note,omitempty"`
}

func (l *JSONLSessionLog) Load(_ context.Context) (domain.RawLog, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.RawLog{}, nil
		}
		return domain.RawLog{}, fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()

	// Lines are read whole, whatever their length; only lines that fail to
	// decode are reported as corrupt.
	out := domain.RawLog{}
	reader := bufio.NewReader(f)
	for lineNo := 1; ; lineNo++ {
		chunk, readErr := reader.ReadBytes('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return domain.RawLog{}, fmt.Errorf("read session log line %d: %w", lineNo, readErr)
		}
		if line := bytes.TrimSpace(chunk); len(line) > 0 {
			dec := json.NewDecoder(bytes.NewReader(line))
			dec.UseNumber()
			rec := domain.RawRecord{}
			if err := dec.Decode(&rec); err != nil {
				out.CorruptLines = append(out.CorruptLines, lineNo)
			} else {
				out.Records = append(out.Records, rec)
			}
		}
		if readErr != nil {
			return out, nil
		}
	}
}

func (l *JSONLSessionLog) Append(_ context.Context, record domain.Record) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	payload, err := json.Marshal(logLine{
		ID:        record.ID,
		User:      record.User,
		Materia:   record.Subject,
		Durata:    record.DurationMin,
		Timestamp: record.RawTimestamp,
		Note:      record.Note,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open session log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("append session: %w", err)
	}
	return nil
}
