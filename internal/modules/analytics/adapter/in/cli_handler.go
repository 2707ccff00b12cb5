package in

import (
	"context"

	analyticsdto "studytrack/internal/modules/analytics/dto"
	analyticsin "studytrack/internal/modules/analytics/port/in"
)

// Report bundles everything the stats command prints.
type Report struct {
	Summary      analyticsdto.SummaryOutput      `json:"summary"`
	Period       string                          `json:"period"`
	PeriodHours  float64                         `json:"period_hours"`
	BySubject    []analyticsdto.SubjectHours     `json:"by_subject"`
	Daily        []analyticsdto.DailyStat        `json:"daily"`
	Weekly       []analyticsdto.WeeklyStat       `json:"weekly"`
	Monthly      []analyticsdto.MonthlyStat      `json:"monthly"`
	ByHour       map[int]float64                 `json:"by_hour"`
	ByWeekday    []analyticsdto.WeekdayHours     `json:"by_weekday"`
	Productivity analyticsdto.ProductivityOutput `json:"productivity"`
	Insights     []analyticsdto.InsightOutput    `json:"insights"`
}

type ReportOptions struct {
	Period     string
	DaysBack   int
	WeeksBack  int
	MonthsBack int
}

type CLIHandler struct {
	usecase analyticsin.Usecase
}

func NewCLIHandler(usecase analyticsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context, user string, opts ReportOptions) (Report, error) {
	var (
		r   = Report{Period: opts.Period}
		err error
	)
	if r.Summary, err = h.usecase.Summary(ctx, user); err != nil {
		return Report{}, err
	}
	if r.PeriodHours, err = h.usecase.TotalTime(ctx, user, opts.Period); err != nil {
		return Report{}, err
	}
	if r.BySubject, err = h.usecase.TimeBySubject(ctx, user, opts.Period); err != nil {
		return Report{}, err
	}
	if r.Daily, err = h.usecase.DailyStats(ctx, user, opts.DaysBack); err != nil {
		return Report{}, err
	}
	if r.Weekly, err = h.usecase.WeeklyStats(ctx, user, opts.WeeksBack); err != nil {
		return Report{}, err
	}
	if r.Monthly, err = h.usecase.MonthlyStats(ctx, user, opts.MonthsBack); err != nil {
		return Report{}, err
	}
	if r.ByHour, err = h.usecase.PatternByHour(ctx, user); err != nil {
		return Report{}, err
	}
	if r.ByWeekday, err = h.usecase.PatternByWeekday(ctx, user); err != nil {
		return Report{}, err
	}
	if r.Productivity, err = h.usecase.Productivity(ctx, user); err != nil {
		return Report{}, err
	}
	if r.Insights, err = h.usecase.Insights(ctx, user); err != nil {
		return Report{}, err
	}
	return r, nil
}

func (h CLIHandler) Insights(ctx context.Context, user string) ([]analyticsdto.InsightOutput, error) {
	return h.usecase.Insights(ctx, user)
}

func (h CLIHandler) Summary(ctx context.Context, user string) (analyticsdto.SummaryOutput, error) {
	return h.usecase.Summary(ctx, user)
}
