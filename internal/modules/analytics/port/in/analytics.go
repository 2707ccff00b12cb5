package in

import (
	"context"

	"studytrack/internal/modules/analytics/dto"
)

// Usecase exposes the aggregation engine per user. Periods are all, today,
// week (rolling 7 days) and month (rolling 30 days).
type Usecase interface {
	TotalTime(ctx context.Context, user, period string) (float64, error)
	TimeBySubject(ctx context.Context, user, period string) ([]dto.SubjectHours, error)
	DailyStats(ctx context.Context, user string, daysBack int) ([]dto.DailyStat, error)
	WeeklyStats(ctx context.Context, user string, weeksBack int) ([]dto.WeeklyStat, error)
	MonthlyStats(ctx context.Context, user string, monthsBack int) ([]dto.MonthlyStat, error)
	PatternByHour(ctx context.Context, user string) (map[int]float64, error)
	PatternByWeekday(ctx context.Context, user string) ([]dto.WeekdayHours, error)
	Productivity(ctx context.Context, user string) (dto.ProductivityOutput, error)
	Insights(ctx context.Context, user string) ([]dto.InsightOutput, error)
	Summary(ctx context.Context, user string) (dto.SummaryOutput, error)
}
