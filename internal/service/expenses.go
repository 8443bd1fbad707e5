package service

import (
	"context"
	"errors"
	"time"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/storage"
	"expense-tracker-api/internal/validation"
)

var errExpenseNotFound = apperr.Missing("Expense not found")

// ExpenseService manages a user's expenses.
type ExpenseService struct {
	expenses ExpenseStore
	now      func() time.Time
}

func NewExpenseService(expenses ExpenseStore) *ExpenseService {
	return &ExpenseService{expenses: expenses, now: time.Now}
}

func (s *ExpenseService) Create(ctx context.Context, userID string, in models.CreateExpenseInput) (*models.Expense, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	now := timestamp(s.now())
	doc := storage.ExpenseDocument{
		ID:          newID("exp"),
		UserID:      userID,
		Amount:      in.Amount,
		Description: in.Description,
		Category:    in.Category,
		Date:        in.Date,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.expenses.Insert(ctx, doc); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "create expense", err)
	}
	e := doc.Expense()
	return &e, nil
}

// List returns one page of the user's expenses matching q. Total and
// TotalPages cover every match, not just the page.
func (s *ExpenseService) List(ctx context.Context, userID string, q models.ExpenseQuery) (*models.Page[models.Expense], error) {
	if err := validation.Struct(q); err != nil {
		return nil, err
	}

	total, err := s.expenses.Count(ctx, userID, q.ExpenseFilter)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "count expenses", err)
	}
	items, err := s.expenses.Find(ctx, userID, q.ExpenseFilter, storage.FindOptions{
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Limit:     q.PageSize,
		Offset:    (q.Page - 1) * q.PageSize,
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "find expenses", err)
	}

	return &models.Page[models.Expense]{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: (total + q.PageSize - 1) / q.PageSize,
	}, nil
}

func (s *ExpenseService) Get(ctx context.Context, userID, id string) (*models.Expense, error) {
	e, err := s.expenses.Get(ctx, userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errExpenseNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "get expense", err)
	}
	return e, nil
}

// Update changes only the fields set in patch and always refreshes
// updatedAt.
func (s *ExpenseService) Update(ctx context.Context, userID, id string, patch models.UpdateExpenseInput) (*models.Expense, error) {
	if err := validation.Struct(patch); err != nil {
		return nil, err
	}

	n, err := s.expenses.Update(ctx, userID, id, patch, timestamp(s.now()))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "update expense", err)
	}
	if n == 0 {
		return nil, errExpenseNotFound
	}
	return s.Get(ctx, userID, id)
}

func (s *ExpenseService) Delete(ctx context.Context, userID, id string) error {
	n, err := s.expenses.Delete(ctx, userID, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "delete expense", err)
	}
	if n == 0 {
		return errExpenseNotFound
	}
	return nil
}
