package dto

type SubjectHours struct {
	Subject string  `json:"subject"`
	Hours   float64 `json:"hours"`
}

type DailyStat struct {
	Date             string  `json:"date"`
	TotalHours       float64 `json:"total_hours"`
	Sessions         int     `json:"sessions"`
	DistinctSubjects int     `json:"distinct_subjects"`
}

type WeeklyStat struct {
	Year       int     `json:"year"`
	Week       int     `json:"week"`
	TotalHours float64 `json:"total_hours"`
	Sessions   int     `json:"sessions"`
}

type MonthlyStat struct {
	Year       int     `json:"year"`
	Month      int     `json:"month"`
	TotalHours float64 `json:"total_hours"`
	Sessions   int     `json:"sessions"`
}

type WeekdayHours struct {
	Day   string  `json:"day"`
	Hours float64 `json:"hours"`
}

type ProductivityOutput struct {
	TotalSessions   int     `json:"total_sessions"`
	TotalHours      float64 `json:"total_hours"`
	AvgSessionHours float64 `json:"avg_session_hours"`
	TopSubject      string  `json:"top_subject"`
	TopHour         string  `json:"top_hour"`
	TopDay          string  `json:"top_day"`
}

type InsightOutput struct {
	Kind    string `json:"kind"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

type SubjectStat struct {
	Subject  string  `json:"subject"`
	Minutes  float64 `json:"minutes"`
	Sessions int     `json:"sessions"`
}

type SummaryOutput struct {
	TotalSessions     int           `json:"total_sessions"`
	TotalMinutes      float64       `json:"total_minutes"`
	TotalHours        float64       `json:"total_hours"`
	TotalLabel        string        `json:"total_label"`
	AverageSessionMin float64       `json:"average_session_min"`
	FavouriteSubject  string        `json:"favourite_subject"`
	Subjects          []SubjectStat `json:"subjects"`
	Last7DaysMin      float64       `json:"last_7_days_min"`
	Last30DaysMin     float64       `json:"last_30_days_min"`
}
