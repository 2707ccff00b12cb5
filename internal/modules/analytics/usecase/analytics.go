package usecase

import (
	"context"

	"studytrack/internal/modules/analytics/domain"
	analyticsdto "studytrack/internal/modules/analytics/dto"
	analyticsin "studytrack/internal/modules/analytics/port/in"
	"studytrack/internal/modules/analytics/service"
	"studytrack/internal/platform/humanize"
)

type Interactor struct {
	svc *service.AnalyticsService
}

func NewInteractor(svc *service.AnalyticsService) analyticsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) TotalTime(ctx context.Context, user, period string) (float64, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return 0, err
	}
	return domain.TotalTime(i.svc.Sessions(ctx, user), p, i.svc.Now()), nil
}

func (i *Interactor) TimeBySubject(ctx context.Context, user, period string) ([]analyticsdto.SubjectHours, error) {
	p, err := domain.ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	breakdown := domain.SubjectBreakdown(i.svc.Sessions(ctx, user), p, i.svc.Now())
	out := make([]analyticsdto.SubjectHours, 0, len(breakdown))
	for _, b := range breakdown {
		out = append(out, analyticsdto.SubjectHours{Subject: b.Subject, Hours: b.Hours})
	}
	return out, nil
}

func (i *Interactor) DailyStats(ctx context.Context, user string, daysBack int) ([]analyticsdto.DailyStat, error) {
	stats := domain.DailyStats(i.svc.Sessions(ctx, user), daysBack, i.svc.Now())
	out := make([]analyticsdto.DailyStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, analyticsdto.DailyStat{
			Date:             s.Date.Format("2006-01-02"),
			TotalHours:       s.TotalHours,
			Sessions:         s.Sessions,
			DistinctSubjects: s.DistinctSubjects,
		})
	}
	return out, nil
}

func (i *Interactor) WeeklyStats(ctx context.Context, user string, weeksBack int) ([]analyticsdto.WeeklyStat, error) {
	stats := domain.WeeklyStats(i.svc.Sessions(ctx, user), weeksBack, i.svc.Now())
	out := make([]analyticsdto.WeeklyStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, analyticsdto.WeeklyStat{Year: s.Year, Week: s.Week, TotalHours: s.TotalHours, Sessions: s.Sessions})
	}
	return out, nil
}

func (i *Interactor) MonthlyStats(ctx context.Context, user string, monthsBack int) ([]analyticsdto.MonthlyStat, error) {
	stats := domain.MonthlyStats(i.svc.Sessions(ctx, user), monthsBack, i.svc.Now())
	out := make([]analyticsdto.MonthlyStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, analyticsdto.MonthlyStat{Year: s.Year, Month: int(s.Month), TotalHours: s.TotalHours, Sessions: s.Sessions})
	}
	return out, nil
}

func (i *Interactor) PatternByHour(ctx context.Context, user string) (map[int]float64, error) {
	return domain.PatternByHour(i.svc.Sessions(ctx, user)), nil
}

func (i *Interactor) PatternByWeekday(ctx context.Context, user string) ([]analyticsdto.WeekdayHours, error) {
	pattern := domain.PatternByWeekday(i.svc.Sessions(ctx, user))
	out := make([]analyticsdto.WeekdayHours, 0, len(pattern))
	for _, p := range pattern {
		out = append(out, analyticsdto.WeekdayHours{Day: p.Day.String(), Hours: p.Hours})
	}
	return out, nil
}

func (i *Interactor) Productivity(ctx context.Context, user string) (analyticsdto.ProductivityOutput, error) {
	p := domain.Productivity(i.svc.Sessions(ctx, user))
	return analyticsdto.ProductivityOutput{
		TotalSessions:   p.TotalSessions,
		TotalHours:      p.TotalHours,
		AvgSessionHours: p.AvgSessionHours,
		TopSubject:      p.TopSubject,
		TopHour:         p.TopHour,
		TopDay:          p.TopDay,
	}, nil
}

func (i *Interactor) Insights(ctx context.Context, user string) ([]analyticsdto.InsightOutput, error) {
	insights := domain.GenerateInsights(i.svc.Sessions(ctx, user), i.svc.Now())
	out := make([]analyticsdto.InsightOutput, 0, len(insights))
	for _, in := range insights {
		out = append(out, analyticsdto.InsightOutput{Kind: string(in.Kind), Level: string(in.Level), Message: in.Message})
	}
	return out, nil
}

func (i *Interactor) Summary(ctx context.Context, user string) (analyticsdto.SummaryOutput, error) {
	s := domain.Summarize(i.svc.Sessions(ctx, user), i.svc.Now())
	out := analyticsdto.SummaryOutput{
		TotalSessions:     s.TotalSessions,
		TotalMinutes:      s.TotalMinutes,
		TotalHours:        s.TotalHours,
		TotalLabel:        humanize.Hours(s.TotalHours),
		AverageSessionMin: s.AverageSessionMin,
		FavouriteSubject:  s.FavouriteSubject,
		Last7DaysMin:      s.Last7DaysMin,
		Last30DaysMin:     s.Last30DaysMin,
	}
	for _, subj := range s.Subjects {
		out.Subjects = append(out.Subjects, analyticsdto.SubjectStat{Subject: subj.Subject, Minutes: subj.Minutes, Sessions: subj.Sessions})
	}
	return out, nil
}
