// Package domain holds the pure aggregation engine. Every function recomputes
// its result from the sessions it is given and never mutates them.
package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "studytrack/internal/platform/errors"
)

// NotAvailable is reported for "top" selections over empty input.
const NotAvailable = "N/A"

// Session is the part of a normalized record the engine reads.
type Session struct {
	ID           int
	Subject      string
	DurationMin  float64
	Timestamp    time.Time
	HasTimestamp bool
}

func (s Session) Hours() float64 {
	return s.DurationMin / 60.0
}

type Period string

const (
	PeriodAll   Period = "all"
	PeriodToday Period = "today"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

func ParsePeriod(value string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "all":
		return PeriodAll, nil
	case "today", "day":
		return PeriodToday, nil
	case "week", "this_week":
		return PeriodWeek, nil
	case "month", "this_month":
		return PeriodMonth, nil
	default:
		return "", fmt.Errorf("%w: unknown period %q", apperrors.ErrInvalidInput, value)
	}
}

// FilterByPeriod keeps every session for PeriodAll. Other periods need a
// timestamp: today is the calendar date of now, week and month are the
// rolling 7 and 30 days before now.
func FilterByPeriod(sessions []Session, period Period, now time.Time) []Session {
	if period == PeriodAll {
		return sessions
	}
	today := dateOf(now, now.Location())
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if !s.HasTimestamp {
			continue
		}
		switch period {
		case PeriodToday:
			if dateOf(s.Timestamp, now.Location()).Equal(today) {
				out = append(out, s)
			}
		case PeriodWeek:
			if !s.Timestamp.Before(now.AddDate(0, 0, -7)) {
				out = append(out, s)
			}
		case PeriodMonth:
			if !s.Timestamp.Before(now.AddDate(0, 0, -30)) {
				out = append(out, s)
			}
		}
	}
	return out
}

func timed(sessions []Session) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.HasTimestamp {
			out = append(out, s)
		}
	}
	return out
}

func dateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// TotalTime sums hours over the period.
func TotalTime(sessions []Session, period Period, now time.Time) float64 {
	total := 0.0
	for _, s := range FilterByPeriod(sessions, period, now) {
		total += s.Hours()
	}
	return total
}

func TimeBySubject(sessions []Session, period Period, now time.Time) map[string]float64 {
	out := map[string]float64{}
	for _, s := range FilterByPeriod(sessions, period, now) {
		out[s.Subject] += s.Hours()
	}
	return out
}

type SubjectHours struct {
	Subject string
	Hours   float64
}

// SubjectBreakdown is TimeBySubject as a list, largest first; ties keep the
// order in which subjects first appear.
func SubjectBreakdown(sessions []Session, period Period, now time.Time) []SubjectHours {
	var out []SubjectHours
	index := map[string]int{}
	for _, s := range FilterByPeriod(sessions, period, now) {
		i, ok := index[s.Subject]
		if !ok {
			i = len(out)
			index[s.Subject] = i
			out = append(out, SubjectHours{Subject: s.Subject})
		}
		out[i].Hours += s.Hours()
	}
	sort.SliceStable(out, func(a, b int) bool { return out[a].Hours > out[b].Hours })
	return out
}

type DailyStat struct {
	Date             time.Time
	TotalHours       float64
	Sessions         int
	DistinctSubjects int
}

// DailyStats groups the last daysBack days (today included) by calendar date.
// Dates without sessions are not synthesized.
func DailyStats(sessions []Session, daysBack int, now time.Time) []DailyStat {
	loc := now.Location()
	today := dateOf(now, loc)
	start := today.AddDate(0, 0, -daysBack)
	byDate := map[time.Time]*DailyStat{}
	subjects := map[time.Time]map[string]bool{}
	for _, s := range timed(sessions) {
		d := dateOf(s.Timestamp, loc)
		if d.Before(start) || d.After(today) {
			continue
		}
		stat, ok := byDate[d]
		if !ok {
			stat = &DailyStat{Date: d}
			byDate[d] = stat
			subjects[d] = map[string]bool{}
		}
		stat.TotalHours += s.Hours()
		stat.Sessions++
		subjects[d][s.Subject] = true
	}
	out := make([]DailyStat, 0, len(byDate))
	for d, stat := range byDate {
		stat.DistinctSubjects = len(subjects[d])
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

type WeeklyStat struct {
	Year       int
	Week       int
	TotalHours float64
	Sessions   int
}

// weeksInYear is the number of ISO weeks in year: 52 or 53.
func weeksInYear(year int) int {
	_, w := time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return w
}

// WeeklyStats groups by ISO year and week. A session is kept when it falls in
// the current ISO year with week >= current-weeksBack, or in the previous ISO
// year with week >= weeksInYear(previous)-(weeksBack-current). Later weeks of
// the current year are not cut off.
func WeeklyStats(sessions []Session, weeksBack int, now time.Time) []WeeklyStat {
	curYear, curWeek := now.ISOWeek()
	prevFloor := weeksInYear(curYear-1) - (weeksBack - curWeek)
	type key struct{ year, week int }
	byWeek := map[key]*WeeklyStat{}
	for _, s := range timed(sessions) {
		y, w := s.Timestamp.In(now.Location()).ISOWeek()
		keep := (y == curYear && w >= curWeek-weeksBack) || (y == curYear-1 && w >= prevFloor)
		if !keep {
			continue
		}
		k := key{y, w}
		stat, ok := byWeek[k]
		if !ok {
			stat = &WeeklyStat{Year: y, Week: w}
			byWeek[k] = stat
		}
		stat.TotalHours += s.Hours()
		stat.Sessions++
	}
	out := make([]WeeklyStat, 0, len(byWeek))
	for _, stat := range byWeek {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Week < out[j].Week
	})
	return out
}

type MonthlyStat struct {
	Year       int
	Month      time.Month
	TotalHours float64
	Sessions   int
}

// MonthlyStats groups by calendar month. A session is kept when it falls in
// the current year with month >= current-monthsBack, or in the previous year
// with month >= 12-(monthsBack-current). When monthsBack equals the current
// month the second clause admits December of the previous year.
func MonthlyStats(sessions []Session, monthsBack int, now time.Time) []MonthlyStat {
	curYear, curMonth := now.Year(), int(now.Month())
	prevFloor := 12 - (monthsBack - curMonth)
	type key struct {
		year  int
		month time.Month
	}
	byMonth := map[key]*MonthlyStat{}
	for _, s := range timed(sessions) {
		t := s.Timestamp.In(now.Location())
		y, m := t.Year(), int(t.Month())
		keep := (y == curYear && m >= curMonth-monthsBack) || (y == curYear-1 && m >= prevFloor)
		if !keep {
			continue
		}
		k := key{y, t.Month()}
		stat, ok := byMonth[k]
		if !ok {
			stat = &MonthlyStat{Year: y, Month: t.Month()}
			byMonth[k] = stat
		}
		stat.TotalHours += s.Hours()
		stat.Sessions++
	}
	out := make([]MonthlyStat, 0, len(byMonth))
	for _, stat := range byMonth {
		out = append(out, *stat)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Year != out[j].Year {
			return out[i].Year < out[j].Year
		}
		return out[i].Month < out[j].Month
	})
	return out
}

// PatternByHour sums hours per hour of day. Hours without sessions are absent.
func PatternByHour(sessions []Session) map[int]float64 {
	out := map[int]float64{}
	for _, s := range timed(sessions) {
		out[s.Timestamp.Hour()] += s.Hours()
	}
	return out
}

type WeekdayHours struct {
	Day   time.Weekday
	Hours float64
}

// Weekdays lists Monday through Sunday.
var Weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// PatternByWeekday always returns seven entries, Monday first.
func PatternByWeekday(sessions []Session) []WeekdayHours {
	sums := map[time.Weekday]float64{}
	for _, s := range timed(sessions) {
		sums[s.Timestamp.Weekday()] += s.Hours()
	}
	out := make([]WeekdayHours, 0, len(Weekdays))
	for _, d := range Weekdays {
		out = append(out, WeekdayHours{Day: d, Hours: sums[d]})
	}
	return out
}

type ProductivityInsights struct {
	TotalSessions   int
	TotalHours      float64
	AvgSessionHours float64
	TopSubject      string
	TopHour         string
	TopDay          string
}

// orderedSum accumulates values per key and remembers first-seen key order.
type orderedSum[K comparable] struct {
	keys []K
	sums map[K]float64
}

func newOrderedSum[K comparable]() *orderedSum[K] {
	return &orderedSum[K]{sums: map[K]float64{}}
}

func (o *orderedSum[K]) add(k K, v float64) {
	if _, ok := o.sums[k]; !ok {
		o.keys = append(o.keys, k)
	}
	o.sums[k] += v
}

// argmax returns the key with the largest sum; the first-seen key wins ties.
func (o *orderedSum[K]) argmax() (K, bool) {
	var best K
	if len(o.keys) == 0 {
		return best, false
	}
	best = o.keys[0]
	for _, k := range o.keys[1:] {
		if o.sums[k] > o.sums[best] {
			best = k
		}
	}
	return best, true
}

// Productivity summarizes all sessions. Totals include sessions without a
// timestamp; the top hour and top day use timestamped sessions only.
func Productivity(sessions []Session) ProductivityInsights {
	out := ProductivityInsights{TopSubject: NotAvailable, TopHour: NotAvailable, TopDay: NotAvailable}
	if len(sessions) == 0 {
		return out
	}
	subjects := newOrderedSum[string]()
	hours := newOrderedSum[int]()
	days := newOrderedSum[time.Weekday]()
	for _, s := range sessions {
		out.TotalSessions++
		out.TotalHours += s.Hours()
		subjects.add(s.Subject, s.Hours())
		if s.HasTimestamp {
			hours.add(s.Timestamp.Hour(), s.Hours())
			days.add(s.Timestamp.Weekday(), s.Hours())
		}
	}
	out.AvgSessionHours = out.TotalHours / float64(out.TotalSessions)
	if top, ok := subjects.argmax(); ok {
		out.TopSubject = top
	}
	if top, ok := hours.argmax(); ok {
		out.TopHour = fmt.Sprintf("%d:00", top)
	}
	if top, ok := days.argmax(); ok {
		out.TopDay = top.String()
	}
	return out
}
