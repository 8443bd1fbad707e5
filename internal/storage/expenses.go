package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"expense-tracker-api/internal/models"
)

var expenseColumns = []string{"id", "user_id", "amount", "description", "category", "spent_on", "created_at", "updated_at"}

// sortColumns maps API sort keys to columns.
var sortColumns = map[string]string{
	models.SortByDate:      "spent_on",
	models.SortByAmount:    "amount",
	models.SortByCreatedAt: "created_at",
}

// FindOptions orders and windows a Find. A zero Limit returns every match.
type FindOptions struct {
	SortBy    string
	SortOrder string
	Limit     int
	Offset    int
}

// ExpenseRepository persists expenses.
type ExpenseRepository struct {
	h *Handle
}

func NewExpenseRepository(h *Handle) *ExpenseRepository {
	return &ExpenseRepository{h: h}
}

func filterCond(userID string, f models.ExpenseFilter) sq.And {
	cond := sq.And{sq.Eq{"user_id": userID}}
	if f.StartDate != "" {
		cond = append(cond, sq.GtOrEq{"spent_on": f.StartDate})
	}
	if f.EndDate != "" {
		cond = append(cond, sq.LtOrEq{"spent_on": f.EndDate})
	}
	if f.Category != "" {
		cond = append(cond, sq.Eq{"category": f.Category})
	}
	if f.MinAmount != nil {
		cond = append(cond, sq.GtOrEq{"amount": *f.MinAmount})
	}
	if f.MaxAmount != nil {
		cond = append(cond, sq.LtOrEq{"amount": *f.MaxAmount})
	}
	return cond
}

// Insert writes doc.
func (r *ExpenseRepository) Insert(ctx context.Context, doc ExpenseDocument) error {
	db, err := r.h.DB(ctx)
	if err != nil {
		return err
	}
	query, args, err := r.h.Builder().
		Insert("expenses").
		Columns(expenseColumns...).
		Values(doc.ID, doc.UserID, doc.Amount, doc.Description, doc.Category, doc.Date, doc.CreatedAt, doc.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert expense: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// Count returns how many of the user's expenses match f.
func (r *ExpenseRepository) Count(ctx context.Context, userID string, f models.ExpenseFilter) (int, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return 0, err
	}
	query, args, err := r.h.Builder().Select("COUNT(*)").From("expenses").Where(filterCond(userID, f)).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count expenses: %w", err)
	}
	var total int
	if err := db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count expenses: %w", err)
	}
	return total, nil
}

// Find returns the user's expenses matching f, ordered and windowed by opts.
// Ties on the sort key are broken by id in the same direction.
func (r *ExpenseRepository) Find(ctx context.Context, userID string, f models.ExpenseFilter, opts FindOptions) ([]models.Expense, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return nil, err
	}
	col, ok := sortColumns[opts.SortBy]
	if !ok {
		col = sortColumns[models.SortByDate]
	}
	dir := "DESC"
	if opts.SortOrder == models.SortAsc {
		dir = "ASC"
	}

	b := r.h.Builder().
		Select(expenseColumns...).
		From("expenses").
		Where(filterCond(userID, f)).
		OrderBy(col+" "+dir, "id "+dir)
	if opts.Limit > 0 {
		b = b.Limit(uint64(opts.Limit)).Offset(uint64(max(opts.Offset, 0)))
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find expenses: %w", err)
	}

	var docs []ExpenseDocument
	if err := db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	return expensesFromDocuments(docs), nil
}

// Get returns the user's expense with id or ErrNotFound.
func (r *ExpenseRepository) Get(ctx context.Context, userID, id string) (*models.Expense, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return nil, err
	}
	query, args, err := r.h.Builder().
		Select(expenseColumns...).
		From("expenses").
		Where(sq.Eq{"id": id, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get expense: %w", err)
	}
	var doc ExpenseDocument
	if err := db.GetContext(ctx, &doc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get expense: %w", err)
	}
	e := doc.Expense()
	return &e, nil
}

// Update applies the non-nil fields of patch and sets updated_at. It reports
// how many rows matched (0 or 1).
func (r *ExpenseRepository) Update(ctx context.Context, userID, id string, patch models.UpdateExpenseInput, updatedAt string) (int64, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return 0, err
	}
	b := r.h.Builder().Update("expenses").Set("updated_at", updatedAt)
	if patch.Amount != nil {
		b = b.Set("amount", *patch.Amount)
	}
	if patch.Description != nil {
		b = b.Set("description", *patch.Description)
	}
	if patch.Category != nil {
		b = b.Set("category", *patch.Category)
	}
	if patch.Date != nil {
		b = b.Set("spent_on", *patch.Date)
	}
	query, args, err := b.Where(sq.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update expense: %w", err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update expense: %w", err)
	}
	return res.RowsAffected()
}

// Delete removes the user's expense with id and reports how many rows went.
func (r *ExpenseRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return 0, err
	}
	query, args, err := r.h.Builder().Delete("expenses").Where(sq.Eq{"id": id, "user_id": userID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete expense: %w", err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete expense: %w", err)
	}
	return res.RowsAffected()
}

// TotalsByCategory sums the user's expenses matching f per category label.
// Rows come back in no particular order.
func (r *ExpenseRepository) TotalsByCategory(ctx context.Context, userID string, f models.ExpenseFilter) ([]CategoryTotal, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return nil, err
	}
	query, args, err := r.h.Builder().
		Select("category", "SUM(amount) AS total", "COUNT(*) AS count").
		From("expenses").
		Where(filterCond(userID, f)).
		GroupBy("category").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build category totals: %w", err)
	}
	var totals []CategoryTotal
	if err := db.SelectContext(ctx, &totals, query, args...); err != nil {
		return nil, fmt.Errorf("category totals: %w", err)
	}
	return totals, nil
}
