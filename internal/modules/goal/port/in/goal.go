package in

import (
	"context"

	"studytrack/internal/modules/goal/dto"
)

type Usecase interface {
	CreateGoal(ctx context.Context, input dto.CreateGoalInput) (dto.GoalOutput, error)
	ListGoals(ctx context.Context, user string) ([]dto.GoalOutput, error)
	DeleteGoal(ctx context.Context, user string, id int) error
	// CheckCompletions returns only the goals completed by this call.
	CheckCompletions(ctx context.Context, user string) ([]dto.GoalOutput, error)
}
