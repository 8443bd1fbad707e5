package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/config"
	"expense-tracker-api/internal/logging"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/storage"
)

// testClock is a settable clock shared by every service under test.
type testClock struct{ t time.Time }

func (c *testClock) Now() time.Time { return c.t }

func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type testEnv struct {
	ctx    context.Context
	h      *storage.Handle
	svc    *Services
	tokens *auth.TokenCodec
	clock  *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	h, err := storage.Open(ctx, config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"}, logging.Discard())
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { h.Close() })

	clock := &testClock{t: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	tokens := auth.NewTokenCodec("test-secret", 0).WithClock(clock.Now)

	svc := New(h, tokens, logging.Discard())
	svc.Auth.now = clock.Now
	svc.Categories.now = clock.Now
	svc.Expenses.now = clock.Now
	svc.Reports.now = clock.Now

	return &testEnv{ctx: ctx, h: h, svc: svc, tokens: tokens, clock: clock}
}

// register creates an account and returns its id.
func (e *testEnv) register(t *testing.T, email string) string {
	t.Helper()
	res, err := e.svc.Auth.Register(e.ctx, models.Credentials{Email: email, Password: "correct-horse"})
	require.NoError(t, err)
	return res.User.ID
}

func (e *testEnv) addExpense(t *testing.T, userID string, amount float64, category, date string) *models.Expense {
	t.Helper()
	exp, err := e.svc.Expenses.Create(e.ctx, userID, models.CreateExpenseInput{
		Amount: amount, Description: "spent on " + category, Category: category, Date: date,
	})
	require.NoError(t, err)
	return exp
}

func ptr[T any](v T) *T { return &v }
