package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"expense-tracker-api/internal/models"
)

var categoryColumns = []string{"id", "user_id", "name", "is_default", "created_at"}

// CategoryRepository persists per-user category labels.
type CategoryRepository struct {
	h *Handle
}

func NewCategoryRepository(h *Handle) *CategoryRepository {
	return &CategoryRepository{h: h}
}

// Insert writes one or more categories in a single statement. A name the
// user already has yields ErrDuplicate.
func (r *CategoryRepository) Insert(ctx context.Context, docs ...CategoryDocument) error {
	if len(docs) == 0 {
		return nil
	}
	db, err := r.h.DB(ctx)
	if err != nil {
		return err
	}
	b := r.h.Builder().Insert("categories").Columns(categoryColumns...)
	for _, d := range docs {
		b = b.Values(d.ID, d.UserID, d.Name, d.IsDefault, d.CreatedAt)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return fmt.Errorf("build insert categories: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert categories: %w", ErrDuplicate)
		}
		return fmt.Errorf("insert categories: %w", err)
	}
	return nil
}

// List returns the user's categories ordered by name.
func (r *CategoryRepository) List(ctx context.Context, userID string) ([]models.Category, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return nil, err
	}
	query, args, err := r.h.Builder().
		Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list categories: %w", err)
	}
	var docs []CategoryDocument
	if err := db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	out := make([]models.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Category())
	}
	return out, nil
}

// Get returns the user's category with id or ErrNotFound.
func (r *CategoryRepository) Get(ctx context.Context, userID, id string) (*CategoryDocument, error) {
	return r.getOne(ctx, sq.Eq{"id": id, "user_id": userID})
}

// GetByName returns the user's category called name or ErrNotFound.
func (r *CategoryRepository) GetByName(ctx context.Context, userID, name string) (*CategoryDocument, error) {
	return r.getOne(ctx, sq.Eq{"user_id": userID, "name": name})
}

func (r *CategoryRepository) getOne(ctx context.Context, where sq.Eq) (*CategoryDocument, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return nil, err
	}
	query, args, err := r.h.Builder().Select(categoryColumns...).From("categories").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select category: %w", err)
	}
	var doc CategoryDocument
	if err := db.GetContext(ctx, &doc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select category: %w", err)
	}
	return &doc, nil
}

// Delete removes the user's category with id and reports how many rows went.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) (int64, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return 0, err
	}
	query, args, err := r.h.Builder().
		Delete("categories").
		Where(sq.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete category: %w", err)
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete category: %w", err)
	}
	return res.RowsAffected()
}
