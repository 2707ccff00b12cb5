package domain

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	apperrors "studytrack/internal/platform/errors"
	"studytrack/internal/platform/humanize"
)

type Kind string

const (
	KindSession   Kind = "session"
	KindMilestone Kind = "milestone"
)

// Note annotates a subject. CumulativeHours is the subject total at the moment
// the note was written and is never recomputed.
type Note struct {
	ID                 int
	User               string
	Subject            string
	Topic              string
	Kind               Kind
	Timestamp          time.Time
	SessionDurationMin float64
	Description        string
	CumulativeHours    float64
	SessionID          *int
}

// Entry is one element of the persisted note set; Raw keeps undecodable
// elements so a rewrite does not lose them.
type Entry struct {
	Note Note
	Raw  []byte
}

func (e Entry) Malformed() bool {
	return e.Raw != nil
}

func NextID(entries []Entry) int {
	maxID := 0
	for _, e := range entries {
		if e.Note.ID > maxID {
			maxID = e.Note.ID
		}
	}
	return maxID + 1
}

// Session is the part of a session record the tracker reads.
type Session struct {
	ID          int
	Subject     string
	DurationMin float64
	Note        string
}

// SubjectHours totals every session of subject, timestamped or not.
func SubjectHours(sessions []Session, subject string) float64 {
	total := 0.0
	for _, s := range sessions {
		if s.Subject == subject {
			total += s.DurationMin
		}
	}
	return total / 60.0
}

func Round(value float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(value*p) / p
}

func NewSessionNote(id int, user, subject, topic string, durationMin float64, sessionID *int, cumulativeHours float64, now time.Time) (Note, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Note{}, fmt.Errorf("%w: topic is required", apperrors.ErrInvalidInput)
	}
	if durationMin < 0 {
		return Note{}, fmt.Errorf("%w: session duration must not be negative", apperrors.ErrInvalidInput)
	}
	return Note{
		ID:                 id,
		User:               user,
		Subject:            subject,
		Topic:              topic,
		Kind:               KindSession,
		Timestamp:          now,
		SessionDurationMin: durationMin,
		CumulativeHours:    Round(cumulativeHours, 2),
		SessionID:          sessionID,
	}, nil
}

func NewMilestone(id int, user, subject, topic, description string, cumulativeHours float64, now time.Time) (Note, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return Note{}, fmt.Errorf("%w: milestone title is required", apperrors.ErrInvalidInput)
	}
	return Note{
		ID:              id,
		User:            user,
		Subject:         subject,
		Topic:           topic,
		Kind:            KindMilestone,
		Timestamp:       now,
		Description:     strings.TrimSpace(description),
		CumulativeHours: Round(cumulativeHours, 2),
	}, nil
}

// SortNewestFirst orders notes by timestamp, newest first; ties keep log order.
func SortNewestFirst(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].Timestamp.After(notes[j].Timestamp)
	})
}

// ForSubject keeps notes of subject, or all notes when subject is empty.
func ForSubject(notes []Note, subject string) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if subject == "" || n.Subject == subject {
			out = append(out, n)
		}
	}
	return out
}

// RecentActivity returns notes written in the last days days, newest first.
func RecentActivity(notes []Note, now time.Time, days int) []Note {
	cutoff := now.AddDate(0, 0, -days)
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if !n.Timestamp.IsZero() && !n.Timestamp.Before(cutoff) {
			out = append(out, n)
		}
	}
	SortNewestFirst(out)
	return out
}

// Search matches query case-insensitively against subject, topic and description.
func Search(notes []Note, query string) []Note {
	q := strings.ToLower(query)
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		for _, field := range []string{n.Topic, n.Subject, n.Description} {
			if field != "" && strings.Contains(strings.ToLower(field), q) {
				out = append(out, n)
				break
			}
		}
	}
	SortNewestFirst(out)
	return out
}

type Statistics struct {
	Subject             string
	TotalSessions       int
	TotalHours          float64
	SessionsWithNotes   int
	NoteCoveragePct     float64
	DistinctTopics      int
	MilestonesCompleted int
	AvgHoursPerTopic    float64
	LastActivity        time.Time
}

// SubjectStatistics combines the user's sessions and notes for one subject.
//
// A session counts as noted when a session note references its id or when it
// carries an inline note. Session notes without an id count once each. The
// count is capped at the number of sessions.
func SubjectStatistics(subject string, sessions []Session, notes []Note) Statistics {
	stats := Statistics{Subject: subject}
	sessionIDs := map[int]bool{}
	noted := map[int]bool{}
	for _, s := range sessions {
		if s.Subject != subject {
			continue
		}
		stats.TotalSessions++
		stats.TotalHours += s.DurationMin
		sessionIDs[s.ID] = true
		if strings.TrimSpace(s.Note) != "" {
			noted[s.ID] = true
		}
	}
	stats.TotalHours /= 60.0

	unlinked := 0
	topics := map[string]bool{}
	for _, n := range notes {
		if n.Subject != subject {
			continue
		}
		if n.Topic != "" {
			topics[n.Topic] = true
		}
		if n.Timestamp.After(stats.LastActivity) {
			stats.LastActivity = n.Timestamp
		}
		switch n.Kind {
		case KindMilestone:
			stats.MilestonesCompleted++
		case KindSession:
			if n.SessionID != nil && sessionIDs[*n.SessionID] {
				noted[*n.SessionID] = true
			} else {
				unlinked++
			}
		}
	}

	stats.SessionsWithNotes = min(len(noted)+unlinked, stats.TotalSessions)
	if stats.TotalSessions > 0 {
		stats.NoteCoveragePct = min(100, Round(float64(stats.SessionsWithNotes)/float64(stats.TotalSessions)*100, 1))
	}
	stats.DistinctTopics = len(topics)
	stats.AvgHoursPerTopic = Round(stats.TotalHours/float64(max(stats.DistinctTopics, 1)), 2)
	stats.TotalHours = Round(stats.TotalHours, 2)
	return stats
}

type TimelineEntry struct {
	Note            Note
	SessionLabel    string
	CumulativeLabel string
}

// Timeline lists a subject's notes newest first with display labels.
func Timeline(notes []Note, subject string) []TimelineEntry {
	selected := ForSubject(notes, subject)
	SortNewestFirst(selected)
	out := make([]TimelineEntry, 0, len(selected))
	for _, n := range selected {
		entry := TimelineEntry{Note: n, CumulativeLabel: humanize.Minutes(int(n.CumulativeHours * 60))}
		if n.Kind == KindSession {
			entry.SessionLabel = humanize.Minutes(int(n.SessionDurationMin))
		}
		out = append(out, entry)
	}
	return out
}
