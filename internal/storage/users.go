package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var userColumns = []string{"id", "email", "password_hash", "created_at", "updated_at"}

// UserRepository persists accounts.
type UserRepository struct {
	h *Handle
}

func NewUserRepository(h *Handle) *UserRepository {
	return &UserRepository{h: h}
}

// Create inserts doc. A taken email yields ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, doc UserDocument) error {
	db, err := r.h.DB(ctx)
	if err != nil {
		return err
	}
	query, args, err := r.h.Builder().
		Insert("users").
		Columns(userColumns...).
		Values(doc.ID, doc.Email, doc.PasswordHash, doc.CreatedAt, doc.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert user: %w", ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByEmail returns the user with email or ErrNotFound.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*UserDocument, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

// GetByID returns the user with id or ErrNotFound.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*UserDocument, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *UserRepository) getOne(ctx context.Context, where sq.Eq) (*UserDocument, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return nil, err
	}
	query, args, err := r.h.Builder().Select(userColumns...).From("users").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user: %w", err)
	}
	var doc UserDocument
	if err := db.GetContext(ctx, &doc, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select user: %w", err)
	}
	return &doc, nil
}

// Count returns the number of users.
func (r *UserRepository) Count(ctx context.Context) (int, error) {
	db, err := r.h.DB(ctx)
	if err != nil {
		return 0, err
	}
	var count int
	if err := db.GetContext(ctx, &count, "SELECT COUNT(*) FROM users"); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}
