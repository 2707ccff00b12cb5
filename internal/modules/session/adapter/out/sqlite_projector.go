package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"studytrack/internal/modules/session/domain"
	sessionout "studytrack/internal/modules/session/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteSessionProjector struct {
	db *sql.DB
}

func NewSQLiteSessionProjector(dbPath string) (*SQLiteSessionProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteSessionProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return projector, nil
}

var _ sessionout.SessionIndexProjector = (*SQLiteSessionProjector)(nil)

func (s *SQLiteSessionProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  user TEXT NOT NULL,
  id INTEGER NOT NULL,
  subject TEXT NOT NULL,
  duration_min REAL NOT NULL,
  started_at TEXT,
  note TEXT,
  PRIMARY KEY (user, id)
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("reset sessions: %w", err)
	}
	return nil
}

func (s *SQLiteSessionProjector) UpsertSession(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sessions (user, id, subject, duration_min, started_at, note)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(user, id) DO UPDATE SET
  subject=excluded.subject,
  duration_min=excluded.duration_min,
  started_at=excluded.started_at,
  note=excluded.note;
`
	var startedAt any
	if record.HasTimestamp {
		startedAt = record.Timestamp.Format(domain.TimestampLayout)
	}
	_, err := s.db.ExecContext(ctx, stmt,
		record.User,
		record.ID,
		record.Subject,
		record.DurationMin,
		startedAt,
		record.Note,
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// SubjectTotals returns indexed minutes per subject for a user.
func (s *SQLiteSessionProjector) SubjectTotals(ctx context.Context, user string) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, SUM(duration_min) FROM sessions WHERE user = ? GROUP BY subject`, user)
	if err != nil {
		return nil, fmt.Errorf("query subject totals: %w", err)
	}
	defer rows.Close()
	totals := map[string]float64{}
	for rows.Next() {
		var subject string
		var minutes float64
		if err := rows.Scan(&subject, &minutes); err != nil {
			return nil, fmt.Errorf("scan subject totals: %w", err)
		}
		totals[subject] = minutes
	}
	return totals, rows.Err()
}

func (s *SQLiteSessionProjector) Close() error {
	return s.db.Close()
}
