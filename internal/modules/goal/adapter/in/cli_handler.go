package in

import (
	"context"

	goaldto "studytrack/internal/modules/goal/dto"
	goalin "studytrack/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, user, subject string, hours, minutes int, interval string) (goaldto.GoalOutput, error) {
	return h.usecase.CreateGoal(ctx, goaldto.CreateGoalInput{User: user, Subject: subject, Hours: hours, Minutes: minutes, Interval: interval})
}

func (h CLIHandler) List(ctx context.Context, user string) ([]goaldto.GoalOutput, error) {
	return h.usecase.ListGoals(ctx, user)
}

func (h CLIHandler) Delete(ctx context.Context, user string, id int) error {
	return h.usecase.DeleteGoal(ctx, user, id)
}

func (h CLIHandler) Check(ctx context.Context, user string) ([]goaldto.GoalOutput, error) {
	return h.usecase.CheckCompletions(ctx, user)
}
