// Package service implements the account, category, expense and report
// operations on top of the storage repositories. Every method is scoped to
// a user id and returns *apperr.Error values for anything the caller can act on.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/storage"
)

// timestampLayout renders UTC times with millisecond precision. Fixed width
// keeps created_at sortable as text.
const timestampLayout = "2006-01-02T15:04:05.000Z"

func timestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

// UserStore is the subset of storage.UserRepository the services need.
type UserStore interface {
	Create(ctx context.Context, doc storage.UserDocument) error
	GetByEmail(ctx context.Context, email string) (*storage.UserDocument, error)
	GetByID(ctx context.Context, id string) (*storage.UserDocument, error)
}

// CategoryStore is the subset of storage.CategoryRepository the services need.
type CategoryStore interface {
	Insert(ctx context.Context, docs ...storage.CategoryDocument) error
	List(ctx context.Context, userID string) ([]models.Category, error)
	Get(ctx context.Context, userID, id string) (*storage.CategoryDocument, error)
	GetByName(ctx context.Context, userID, name string) (*storage.CategoryDocument, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
}

// ExpenseStore is the subset of storage.ExpenseRepository the services need.
type ExpenseStore interface {
	Insert(ctx context.Context, doc storage.ExpenseDocument) error
	Count(ctx context.Context, userID string, f models.ExpenseFilter) (int, error)
	Find(ctx context.Context, userID string, f models.ExpenseFilter, opts storage.FindOptions) ([]models.Expense, error)
	Get(ctx context.Context, userID, id string) (*models.Expense, error)
	Update(ctx context.Context, userID, id string, patch models.UpdateExpenseInput, updatedAt string) (int64, error)
	Delete(ctx context.Context, userID, id string) (int64, error)
	TotalsByCategory(ctx context.Context, userID string, f models.ExpenseFilter) ([]storage.CategoryTotal, error)
}

// TokenIssuer signs access tokens. *auth.TokenCodec satisfies it.
type TokenIssuer interface {
	Issue(user models.User) (string, error)
}

// Services bundles the four services over one database handle.
type Services struct {
	Auth       *AuthService
	Categories *CategoryService
	Expenses   *ExpenseService
	Reports    *ReportService
}

// New wires every service to the repositories backed by h. tokens may be
// nil when only CreateAccount is used.
func New(h *storage.Handle, tokens TokenIssuer, log *slog.Logger) *Services {
	users := storage.NewUserRepository(h)
	categories := storage.NewCategoryRepository(h)
	expenses := storage.NewExpenseRepository(h)

	return &Services{
		Auth:       NewAuthService(users, categories, tokens, log),
		Categories: NewCategoryService(categories),
		Expenses:   NewExpenseService(expenses),
		Reports:    NewReportService(expenses),
	}
}
