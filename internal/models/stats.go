package models

import "time"

// StatusCounts aggregates appointments by lifecycle status.
type StatusCounts struct {
	Total     int `db:"total" json:"total"`
	Pending   int `db:"pending" json:"pending"`
	Confirmed int `db:"confirmed" json:"confirmed"`
	Cancelled int `db:"cancelled" json:"cancelled"`
	Completed int `db:"completed" json:"completed"`
}

// DailyCount is the number of appointments booked on a single date.
type DailyCount struct {
	Date  time.Time `db:"appointment_date" json:"date"`
	Count int       `db:"count" json:"count"`
}

// DemographicCounts buckets appointments by client priority category.
type DemographicCounts struct {
	PWD      int `db:"pwd" json:"pwd"`
	Pregnant int `db:"pregnant" json:"pregnant"`
	Senior   int `db:"senior" json:"senior"`
	Regular  int `db:"regular" json:"regular"`
}

// NatureCount pairs an inquiry nature with its appointment volume.
type NatureCount struct {
	NatureID   string `db:"nature_id" json:"nature_id"`
	NatureName string `db:"nature_name" json:"nature_name"`
	Count      int    `db:"count" json:"count"`
}

// FeedbackSummary aggregates feedback ratings and sentiment labels.
type FeedbackSummary struct {
	AverageRating float64 `db:"average_rating" json:"average_rating"`
	Responses     int     `db:"responses" json:"responses"`
	Positive      int     `db:"positive" json:"positive"`
	Neutral       int     `db:"neutral" json:"neutral"`
	Negative      int     `db:"negative" json:"negative"`
}

// DashboardStats is the composed payload served to the dashboard.
type DashboardStats struct {
	Statuses     StatusCounts      `json:"statuses"`
	Upcoming     []DailyCount      `json:"upcoming"`
	Demographics DemographicCounts `json:"demographics"`
	TopNatures   []NatureCount     `json:"top_natures"`
	Feedback     FeedbackSummary   `json:"feedback"`
	GeneratedAt  time.Time         `json:"generated_at"`
}
