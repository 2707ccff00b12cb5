package out

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"

	"studytrack/internal/modules/goal/domain"
	goalout "studytrack/internal/modules/goal/port/out"
	"studytrack/internal/platform/logging"
)

const notifyTitle = "studytrack"

type alertFunc func(title, message, icon string) error

// DesktopNotifier raises a desktop alert per completed goal.
type DesktopNotifier struct {
	alert alertFunc
}

func NewDesktopNotifier() goalout.Notifier {
	beeep.AppName = notifyTitle
	return &DesktopNotifier{alert: func(title, message, icon string) error {
		return beeep.Alert(title, message, icon)
	}}
}

func (n *DesktopNotifier) GoalCompleted(_ context.Context, goal domain.Goal) error {
	return n.alert(notifyTitle, CompletionMessage(goal), "")
}

// CompletionMessage is the text shown for a completed goal.
func CompletionMessage(goal domain.Goal) string {
	return fmt.Sprintf("Goal reached: %s %s per %s", goal.Subject, goal.TargetLabel(), goal.Interval)
}

// LogNotifier records completions in the log only.
type LogNotifier struct {
	log logging.Logger
}

func NewLogNotifier(log logging.Logger) goalout.Notifier {
	return LogNotifier{log: log}
}

func (n LogNotifier) GoalCompleted(ctx context.Context, goal domain.Goal) error {
	n.log.Info(ctx, "goal completed", "goal", goal.ID, "user", goal.User, "subject", goal.Subject)
	return nil
}
