package domain

import "time"

// Expense is a single spending record. OwnerID is always derived from the
// authenticated principal, never from client input.
type Expense struct {
	ID          int64
	OwnerID     int64
	CategoryID  int64
	Description string
	Amount      float64
	Date        time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategorySummary is one row of the per-category aggregation backing charts.
type CategorySummary struct {
	CategoryName string  `json:"category"`
	Total        float64 `json:"total"`
	Count        int64   `json:"count"`
	Percentage   float64 `json:"percentage"`
}

// ExpenseSummary bundles the per-category breakdown with the grand total.
type ExpenseSummary struct {
	Categories []CategorySummary `json:"categories"`
	Total      float64           `json:"total"`
}
