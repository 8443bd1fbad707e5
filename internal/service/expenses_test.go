package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/models"
)

func TestExpenseCreateThenGet(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "ada@example.com")

	in := models.CreateExpenseInput{Amount: 12.5, Description: "Lunch", Category: "Food", Date: "2024-03-14"}
	created, err := env.svc.Expenses.Create(env.ctx, userID, in)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.ID, "exp_"))
	assert.Equal(t, "2024-03-15T12:00:00.000Z", created.CreatedAt)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	got, err := env.svc.Expenses.Get(env.ctx, userID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestExpenseCreate_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		in   models.CreateExpenseInput
		msg  string
	}{
		{"zero amount", models.CreateExpenseInput{Amount: 0, Description: "x", Category: "Food", Date: "2024-01-01"}, "Amount must be positive"},
		{"empty description", models.CreateExpenseInput{Amount: 1, Category: "Food", Date: "2024-01-01"}, "Description is required"},
		{"long description", models.CreateExpenseInput{Amount: 1, Description: strings.Repeat("x", 201), Category: "Food", Date: "2024-01-01"}, "Description too long"},
		{"bad date", models.CreateExpenseInput{Amount: 1, Description: "x", Category: "Food", Date: "01/02/2024"}, "Date must be in YYYY-MM-DD format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.svc.Expenses.Create(env.ctx, "user_1", tt.in)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Validation))
			assert.Equal(t, tt.msg, apperr.PublicMessage(err))
		})
	}
}

func TestExpenseList_Pagination(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "ada@example.com")
	for i := 1; i <= 15; i++ {
		env.addExpense(t, userID, float64(i), "Food", fmt.Sprintf("2024-02-%02d", i))
	}

	q := models.NewExpenseQuery()
	q.Page = 2
	q.PageSize = 10
	page, err := env.svc.Expenses.List(env.ctx, userID, q)
	require.NoError(t, err)

	assert.Len(t, page.Items, 5)
	assert.Equal(t, 15, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 10, page.PageSize)
	assert.Equal(t, "2024-02-05", page.Items[0].Date, "default order is date descending")
}

func TestExpenseList_Filters(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "ada@example.com")
	env.addExpense(t, userID, 10, "Food", "2024-01-10")
	env.addExpense(t, userID, 50, "Bills", "2024-01-20")
	env.addExpense(t, userID, 30, "Food", "2024-02-05")

	q := models.NewExpenseQuery()
	q.Category = "Food"
	q.MinAmount = ptr(20.0)
	page, err := env.svc.Expenses.List(env.ctx, userID, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 30.0, page.Items[0].Amount)

	q = models.NewExpenseQuery()
	q.EndDate = "2024-01-31"
	q.SortBy = models.SortByAmount
	q.SortOrder = models.SortAsc
	page, err = env.svc.Expenses.List(env.ctx, userID, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 10.0, page.Items[0].Amount)
	assert.Equal(t, 50.0, page.Items[1].Amount)
	assert.Equal(t, 1, page.TotalPages)
}

func TestExpenseList_EmptyIsNotNil(t *testing.T) {
	env := newTestEnv(t)

	page, err := env.svc.Expenses.List(env.ctx, "user_nobody", models.NewExpenseQuery())
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Zero(t, page.Total)
	assert.Zero(t, page.TotalPages)
}

func TestExpenseList_RejectsBadQuery(t *testing.T) {
	env := newTestEnv(t)

	q := models.NewExpenseQuery()
	q.PageSize = 101
	_, err := env.svc.Expenses.List(env.ctx, "user_1", q)
	assert.True(t, apperr.Is(err, apperr.Validation))

	q = models.NewExpenseQuery()
	q.SortBy = "description"
	_, err = env.svc.Expenses.List(env.ctx, "user_1", q)
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestExpenseUpdate_PartialMerge(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "ada@example.com")
	orig := env.addExpense(t, userID, 12.5, "Food", "2024-03-14")

	env.clock.Advance(time.Hour)
	updated, err := env.svc.Expenses.Update(env.ctx, userID, orig.ID, models.UpdateExpenseInput{Amount: ptr(20.0)})
	require.NoError(t, err)

	assert.Equal(t, 20.0, updated.Amount)
	assert.Equal(t, orig.Description, updated.Description)
	assert.Equal(t, orig.Category, updated.Category)
	assert.Equal(t, orig.Date, updated.Date)
	assert.Equal(t, orig.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "2024-03-15T13:00:00.000Z", updated.UpdatedAt)

	env.clock.Advance(time.Minute)
	touched, err := env.svc.Expenses.Update(env.ctx, userID, orig.ID, models.UpdateExpenseInput{})
	require.NoError(t, err)
	assert.Equal(t, 20.0, touched.Amount)
	assert.Equal(t, "2024-03-15T13:01:00.000Z", touched.UpdatedAt, "updatedAt is refreshed even for an empty patch")

	_, err = env.svc.Expenses.Update(env.ctx, userID, orig.ID, models.UpdateExpenseInput{Amount: ptr(-1.0)})
	assert.True(t, apperr.Is(err, apperr.Validation))
}

func TestExpense_CrossUserIsolation(t *testing.T) {
	env := newTestEnv(t)
	owner := env.register(t, "ada@example.com")
	other := env.register(t, "bob@example.com")
	exp := env.addExpense(t, owner, 9.99, "Food", "2024-03-01")

	_, err := env.svc.Expenses.Get(env.ctx, other, exp.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
	assert.Equal(t, "Expense not found", apperr.PublicMessage(err))

	_, err = env.svc.Expenses.Update(env.ctx, other, exp.ID, models.UpdateExpenseInput{Amount: ptr(1.0)})
	assert.True(t, apperr.Is(err, apperr.NotFound))

	err = env.svc.Expenses.Delete(env.ctx, other, exp.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))

	page, err := env.svc.Expenses.List(env.ctx, other, models.NewExpenseQuery())
	require.NoError(t, err)
	assert.Empty(t, page.Items)

	got, err := env.svc.Expenses.Get(env.ctx, owner, exp.ID)
	require.NoError(t, err)
	assert.Equal(t, 9.99, got.Amount, "the owner's expense is untouched")
}

func TestExpenseDelete(t *testing.T) {
	env := newTestEnv(t)
	userID := env.register(t, "ada@example.com")
	exp := env.addExpense(t, userID, 5, "Food", "2024-03-01")

	require.NoError(t, env.svc.Expenses.Delete(env.ctx, userID, exp.ID))

	err := env.svc.Expenses.Delete(env.ctx, userID, exp.ID)
	assert.True(t, apperr.Is(err, apperr.NotFound))
}
