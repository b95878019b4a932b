package models

// DailyStats represents a per-day count used for dashboard charts
type DailyStats struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// StatusCount represents an aggregated count per license status
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// NameCount represents an aggregated count keyed by a free-text name,
// e.g. specialization or region distributions.
type NameCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}
