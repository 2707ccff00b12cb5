package domain

import (
	"fmt"
	"time"
)

// MinSessionsForInsights is the smallest history that yields real insights.
const MinSessionsForInsights = 5

const maxInsights = 3

type InsightKind string

const (
	InsightMoreData    InsightKind = "more_data"
	InsightConsistency InsightKind = "consistency"
	InsightFocus       InsightKind = "focus"
	InsightVariety     InsightKind = "variety"
	InsightRecency     InsightKind = "recency"
)

type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelLow       Level = "low"
)

type Insight struct {
	Kind    InsightKind
	Level   Level
	Message string
}

// GenerateInsights derives at most three messages in the order consistency,
// focus, variety, recency. Consistency is only reported when something was
// studied in the last seven days.
func GenerateInsights(sessions []Session, now time.Time) []Insight {
	if len(sessions) < MinSessionsForInsights {
		return []Insight{{Kind: InsightMoreData, Level: LevelLow, Message: "Accumulate more sessions to see personalised insights"}}
	}
	summary := Summarize(sessions, now)
	var out []Insight

	if summary.Last7DaysMin > 0 {
		daily := summary.Last7DaysMin / 7
		switch {
		case daily >= 60:
			out = append(out, Insight{InsightConsistency, LevelExcellent, fmt.Sprintf("Excellent consistency! You study %.0f minutes a day on average", daily)})
		case daily >= 30:
			out = append(out, Insight{InsightConsistency, LevelGood, fmt.Sprintf("Good consistency with %.0f minutes a day", daily)})
		default:
			out = append(out, Insight{InsightConsistency, LevelLow, fmt.Sprintf("Try to study more regularly: %.0f min/day", daily)})
		}
	}

	switch avg := summary.AverageSessionMin; {
	case avg >= 45:
		out = append(out, Insight{InsightFocus, LevelExcellent, "Excellent focus! Long, productive sessions"})
	case avg >= 25:
		out = append(out, Insight{InsightFocus, LevelGood, "Good study rhythm with balanced sessions"})
	default:
		out = append(out, Insight{InsightFocus, LevelLow, "Try longer sessions for deeper concentration"})
	}

	switch n := len(summary.Subjects); {
	case n >= 4:
		out = append(out, Insight{InsightVariety, LevelExcellent, "Great variety of study! Keep the balance"})
	case n >= 2:
		out = append(out, Insight{InsightVariety, LevelGood, "Good diversification across subjects"})
	default:
		out = append(out, Insight{InsightVariety, LevelLow, "Consider adding more subjects for variety"})
	}

	recent := min(len(sessions), 7)
	switch {
	case recent >= 5:
		out = append(out, Insight{InsightRecency, LevelExcellent, "You are in a great productive period!"})
	case recent >= 3:
		out = append(out, Insight{InsightRecency, LevelGood, "You are keeping a good study pace"})
	}

	if len(out) > maxInsights {
		out = out[:maxInsights]
	}
	return out
}

type SubjectStat struct {
	Subject  string
	Minutes  float64
	Sessions int
}

// Summary is the statistics panel for one user.
type Summary struct {
	TotalSessions     int
	TotalMinutes      float64
	TotalHours        float64
	AverageSessionMin float64
	FavouriteSubject  string
	// Subjects are listed in order of first appearance.
	Subjects      []SubjectStat
	Last7DaysMin  float64
	Last30DaysMin float64
}

func Summarize(sessions []Session, now time.Time) Summary {
	out := Summary{FavouriteSubject: NotAvailable}
	if len(sessions) == 0 {
		return out
	}
	minutes := newOrderedSum[string]()
	counts := map[string]int{}
	for _, s := range sessions {
		out.TotalSessions++
		out.TotalMinutes += s.DurationMin
		minutes.add(s.Subject, s.DurationMin)
		counts[s.Subject]++
	}
	out.TotalHours = out.TotalMinutes / 60.0
	out.AverageSessionMin = out.TotalMinutes / float64(out.TotalSessions)
	if top, ok := minutes.argmax(); ok {
		out.FavouriteSubject = top
	}
	for _, subject := range minutes.keys {
		out.Subjects = append(out.Subjects, SubjectStat{Subject: subject, Minutes: minutes.sums[subject], Sessions: counts[subject]})
	}
	for _, s := range FilterByPeriod(sessions, PeriodWeek, now) {
		out.Last7DaysMin += s.DurationMin
	}
	for _, s := range FilterByPeriod(sessions, PeriodMonth, now) {
		out.Last30DaysMin += s.DurationMin
	}
	return out
}
