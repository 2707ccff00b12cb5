package app

import (
	"context"
	"testing"
	"time"

	analyticsinadapter "studytrack/internal/modules/analytics/adapter/in"
	goaldto "studytrack/internal/modules/goal/dto"
	progressdto "studytrack/internal/modules/progress/dto"
	sessiondto "studytrack/internal/modules/session/dto"
	apperrors "studytrack/internal/platform/errors"
)

type fakeSession struct {
	saved []string
}

func (f *fakeSession) Save(_ context.Context, user, subject string, minutes int, note string) (sessiondto.SaveOutput, error) {
	f.saved = append(f.saved, subject)
	return sessiondto.SaveOutput{Record: sessiondto.RecordOutput{ID: 1, User: user, Subject: subject, DurationMin: float64(minutes), Note: note}}, nil
}

func (f *fakeSession) Start(_ context.Context, user, subject string) (sessiondto.StartOutput, error) {
	return sessiondto.StartOutput{User: user, Subject: subject, StartedAt: time.Now()}, nil
}

func (f *fakeSession) Stop(_ context.Context, user, _ string) (sessiondto.SaveOutput, error) {
	return sessiondto.SaveOutput{Record: sessiondto.RecordOutput{ID: 2, User: user, Subject: "Math", DurationMin: 1}}, nil
}

func (f *fakeSession) GetActive(context.Context, string) (sessiondto.ActiveSessionOutput, error) {
	return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
}

type fakeGoals struct{ checked int }

func (f *fakeGoals) List(context.Context, string) ([]goaldto.GoalOutput, error) { return nil, nil }

func (f *fakeGoals) Check(context.Context, string) ([]goaldto.GoalOutput, error) {
	f.checked++
	return []goaldto.GoalOutput{{ID: 1}}, nil
}

type fakeNotes struct{}

func (fakeNotes) Recent(context.Context, string, int) ([]progressdto.NoteOutput, error) {
	return nil, nil
}

func (fakeNotes) Statistics(context.Context, string, string) (progressdto.StatisticsOutput, error) {
	return progressdto.StatisticsOutput{}, nil
}

type fakeReport struct{}

func (fakeReport) Report(context.Context, string, analyticsinadapter.ReportOptions) (analyticsinadapter.Report, error) {
	return analyticsinadapter.Report{}, nil
}

func newTestModel() (Model, *fakeSession, *fakeGoals) {
	s := &fakeSession{}
	g := &fakeGoals{}
	return NewModel("Ann", s, g, fakeNotes{}, fakeReport{}), s, g
}

func TestPaletteSwitchesTabs(t *testing.T) {
	m, _, _ := newTestModel()

	next, _ := m.executePalette("tab:notes")
	if got := next.(Model).activeTab; got != tabNotes {
		t.Fatalf("expected notes tab, got %d", got)
	}
	next, _ = next.(Model).executePalette("tab:nope")
	model := next.(Model)
	if model.activeTab != tabNotes || model.status != "unknown tab: nope" {
		t.Fatalf("unexpected state: tab=%d status=%q", model.activeTab, model.status)
	}
}

func TestPaletteSaveRunsSessionAndReportsStatus(t *testing.T) {
	m, sess, _ := newTestModel()

	next, cmd := m.executePalette("session:save Math 45 derivatives")
	if cmd == nil {
		t.Fatalf("expected a command")
	}
	msg := cmd()
	if len(sess.saved) != 1 || sess.saved[0] != "Math" {
		t.Fatalf("expected one save for Math, got %v", sess.saved)
	}
	updated, _ := next.(Model).Update(msg)
	if got := updated.(Model).status; got != "saved 45min of Math" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestPaletteRejectsBadMinutes(t *testing.T) {
	m, sess, _ := newTestModel()

	next, cmd := m.executePalette("session:save Math ten")
	if cmd != nil {
		t.Fatalf("expected no command")
	}
	if next.(Model).status != "invalid minutes" || len(sess.saved) != 0 {
		t.Fatalf("unexpected state: %q saved=%v", next.(Model).status, sess.saved)
	}
}

func TestGoalCheckSwitchesToGoals(t *testing.T) {
	m, _, goals := newTestModel()

	next, cmd := m.executePalette("goal:check")
	if next.(Model).activeTab != tabGoals {
		t.Fatalf("expected goals tab")
	}
	updated, _ := next.(Model).Update(cmd())
	if goals.checked != 1 {
		t.Fatalf("expected one check, got %d", goals.checked)
	}
	if got := updated.(Model).status; got != "goal check: 1 newly completed" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestStopClearsTimer(t *testing.T) {
	m, _, _ := newTestModel()

	started, _ := m.Update(sessionStartedMsg{out: sessiondto.StartOutput{User: "Ann", Subject: "Math", StartedAt: time.Now()}})
	if !started.(Model).hasActive {
		t.Fatalf("expected active timer")
	}
	next, cmd := started.(Model).executePalette("session:stop")
	stopped, _ := next.(Model).Update(cmd())
	if stopped.(Model).hasActive {
		t.Fatalf("expected timer cleared")
	}
}
