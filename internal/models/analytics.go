package models

// SummaryStats aggregates all expenses in scope.
type SummaryStats struct {
	TotalExpenses  float64 `json:"totalExpenses"`
	TotalCount     int64   `json:"totalCount"`
	AverageExpense float64 `json:"averageExpense"`
}

// CategoryStats is a per-category aggregate.
type CategoryStats struct {
	Category      string  `json:"category"`
	TotalAmount   float64 `json:"totalAmount"`
	Count         int64   `json:"count"`
	AverageAmount float64 `json:"averageAmount"`
}

// MonthlyStats is a per-calendar-month aggregate. Month is formatted as
// "YYYY-MM".
type MonthlyStats struct {
	Month       string  `json:"month"`
	TotalAmount float64 `json:"totalAmount"`
	Count       int64   `json:"count"`
}

// StatusStats is a per-status aggregate, reported only on the
// organization-wide view.
type StatusStats struct {
	Status      string  `json:"status"`
	Count       int64   `json:"count"`
	TotalAmount float64 `json:"totalAmount"`
}

// Analytics is the full analytics payload. StatusBreakdown is empty for
// personal (owner-scoped) views.
type Analytics struct {
	Summary         SummaryStats    `json:"summary"`
	CategoryStats   []CategoryStats `json:"categoryStats"`
	MonthlyStats    []MonthlyStats  `json:"monthlyStats"`
	StatusBreakdown []StatusStats   `json:"statusBreakdown"`
}
