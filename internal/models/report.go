package models

// MonthlyReport lists a month's expenses, newest first, with their sum.
type MonthlyReport struct {
	Month    string    `json:"month"`
	Total    float64   `json:"total"`
	Expenses []Expense `json:"expenses"`
}

// CategoryReport is one row of the spending breakdown by category label.
type CategoryReport struct {
	Category   string  `json:"category"`
	Total      float64 `json:"total"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}
