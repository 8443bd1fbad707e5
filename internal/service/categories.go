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

var (
	errCategoryNotFound = apperr.Missing("Category not found")
	errCategoryExists   = apperr.Duplicate("Category already exists")
	errDefaultCategory  = apperr.Forbidden("Cannot delete default categories")
)

// CategoryService manages a user's category labels.
type CategoryService struct {
	categories CategoryStore
	now        func() time.Time
}

func NewCategoryService(categories CategoryStore) *CategoryService {
	return &CategoryService{categories: categories, now: time.Now}
}

// List returns the user's categories sorted by name.
func (s *CategoryService) List(ctx context.Context, userID string) ([]models.Category, error) {
	list, err := s.categories.List(ctx, userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "list categories", err)
	}
	return list, nil
}

// Create adds a non-default category. Names are unique per user.
func (s *CategoryService) Create(ctx context.Context, userID string, in models.CreateCategoryInput) (*models.Category, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	_, err := s.categories.GetByName(ctx, userID, in.Name)
	switch {
	case err == nil:
		return nil, errCategoryExists
	case !errors.Is(err, storage.ErrNotFound):
		return nil, apperr.Wrap(apperr.Internal, "look up category", err)
	}

	doc := storage.CategoryDocument{
		ID:        newID("cat"),
		UserID:    userID,
		Name:      in.Name,
		CreatedAt: timestamp(s.now()),
	}
	if err := s.categories.Insert(ctx, doc); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, errCategoryExists
		}
		return nil, apperr.Wrap(apperr.Internal, "create category", err)
	}
	c := doc.Category()
	return &c, nil
}

// Delete removes one of the user's categories. Default categories stay.
// Expenses labelled with the category are left as they are.
func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	doc, err := s.categories.Get(ctx, userID, id)
	if errors.Is(err, storage.ErrNotFound) {
		return errCategoryNotFound
	}
	if err != nil {
		return apperr.Wrap(apperr.Internal, "look up category", err)
	}
	if doc.IsDefault {
		return errDefaultCategory
	}

	n, err := s.categories.Delete(ctx, userID, id)
	if err != nil {
		return apperr.Wrap(apperr.Internal, "delete category", err)
	}
	if n == 0 {
		return errCategoryNotFound
	}
	return nil
}
