package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/storage"
	"expense-tracker-api/internal/validation"
)

var hundred = decimal.NewFromInt(100)

// ReportService aggregates a user's expenses.
type ReportService struct {
	expenses ExpenseStore
	now      func() time.Time
}

func NewReportService(expenses ExpenseStore) *ReportService {
	return &ReportService{expenses: expenses, now: time.Now}
}

// Monthly lists the expenses dated within month (YYYY-MM, default the
// current UTC month), newest first. The upper bound is the literal day 31.
func (s *ReportService) Monthly(ctx context.Context, userID, month string) (*models.MonthlyReport, error) {
	if month == "" {
		month = s.now().UTC().Format("2006-01")
	}
	if !validation.IsMonth(month) {
		return nil, apperr.Invalid("Month must be in YYYY-MM format")
	}

	filter := models.ExpenseFilter{StartDate: month + "-01", EndDate: month + "-31"}
	items, err := s.expenses.Find(ctx, userID, filter, storage.FindOptions{
		SortBy:    models.SortByDate,
		SortOrder: models.SortDesc,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "monthly report", err)
	}

	total := decimal.Zero
	for _, e := range items {
		total = total.Add(decimal.NewFromFloat(e.Amount))
	}
	return &models.MonthlyReport{
		Month:    month,
		Total:    total.InexactFloat64(),
		Expenses: items,
	}, nil
}

// ByCategory breaks spending down per category label, optionally within a
// date range. Rows are ordered by total, largest first.
func (s *ReportService) ByCategory(ctx context.Context, userID, startDate, endDate string) ([]models.CategoryReport, error) {
	if startDate != "" && !validation.IsDate(startDate) {
		return nil, apperr.Invalid("startDate must be in YYYY-MM-DD format")
	}
	if endDate != "" && !validation.IsDate(endDate) {
		return nil, apperr.Invalid("endDate must be in YYYY-MM-DD format")
	}

	totals, err := s.expenses.TotalsByCategory(ctx, userID, models.ExpenseFilter{StartDate: startDate, EndDate: endDate})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "category report", err)
	}

	grand := decimal.Zero
	for _, t := range totals {
		grand = grand.Add(decimal.NewFromFloat(t.Total))
	}

	out := make([]models.CategoryReport, 0, len(totals))
	for _, t := range totals {
		amount := decimal.NewFromFloat(t.Total)
		pct := decimal.Zero
		if !grand.IsZero() {
			pct = amount.Div(grand).Mul(hundred).Round(2)
		}
		out = append(out, models.CategoryReport{
			Category:   t.Category,
			Total:      amount.InexactFloat64(),
			Count:      t.Count,
			Percentage: pct.InexactFloat64(),
		})
	}

	slices.SortFunc(out, func(a, b models.CategoryReport) int {
		if c := cmp.Compare(b.Total, a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	return out, nil
}
