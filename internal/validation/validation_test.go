package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/models"
)

func ptr[T any](v T) *T { return &v }

func TestStruct_CreateExpense(t *testing.T) {
	valid := models.CreateExpenseInput{Amount: 12.5, Description: "Lunch", Category: "Food", Date: "2024-03-15"}
	require.NoError(t, Struct(valid))

	tests := []struct {
		name   string
		mutate func(*models.CreateExpenseInput)
		want   string
	}{
		{"zero amount", func(in *models.CreateExpenseInput) { in.Amount = 0 }, "Amount must be positive"},
		{"negative amount", func(in *models.CreateExpenseInput) { in.Amount = -3 }, "Amount must be positive"},
		{"empty description", func(in *models.CreateExpenseInput) { in.Description = "" }, "Description is required"},
		{"long description", func(in *models.CreateExpenseInput) {
			in.Description = string(make([]byte, 201))
		}, "Description too long"},
		{"empty category", func(in *models.CreateExpenseInput) { in.Category = "" }, "Category is required"},
		{"bad date", func(in *models.CreateExpenseInput) { in.Date = "15/03/2024" }, "Date must be in YYYY-MM-DD format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := Struct(in)
			require.Error(t, err)
			assert.True(t, apperr.Is(err, apperr.Validation))
			assert.Equal(t, tt.want, apperr.PublicMessage(err))
		})
	}
}

func TestStruct_DateIsShapeOnly(t *testing.T) {
	in := models.CreateExpenseInput{Amount: 1, Description: "x", Category: "Food", Date: "2024-02-31"}
	assert.NoError(t, Struct(in))
}

func TestStruct_UpdateExpensePartial(t *testing.T) {
	assert.NoError(t, Struct(models.UpdateExpenseInput{}))
	assert.NoError(t, Struct(models.UpdateExpenseInput{Amount: ptr(3.0)}))

	err := Struct(models.UpdateExpenseInput{Description: ptr("")})
	require.Error(t, err)
	assert.Equal(t, "Description is required", apperr.PublicMessage(err))

	err = Struct(models.UpdateExpenseInput{Amount: ptr(0.0)})
	require.Error(t, err)
	assert.Equal(t, "Amount must be positive", apperr.PublicMessage(err))
}

func TestStruct_ExpenseQuery(t *testing.T) {
	q := models.NewExpenseQuery()
	require.NoError(t, Struct(q))

	q.PageSize = 101
	assert.Equal(t, "pageSize must be at most 100", apperr.PublicMessage(Struct(q)))

	q = models.NewExpenseQuery()
	q.SortBy = "description"
	assert.Equal(t, "sortBy must be one of date, amount, createdAt", apperr.PublicMessage(Struct(q)))

	q = models.NewExpenseQuery()
	q.StartDate = "2024-1-1"
	assert.Equal(t, "startDate must be in YYYY-MM-DD format", apperr.PublicMessage(Struct(q)))
}

func TestStruct_Credentials(t *testing.T) {
	assert.NoError(t, Struct(models.Credentials{Email: "a@b.co", Password: "longenough"}))
	assert.Equal(t, "Invalid email address", apperr.PublicMessage(Struct(models.Credentials{Email: "nope", Password: "longenough"})))
	assert.Equal(t, "Password must be at least 8 characters", apperr.PublicMessage(Struct(models.Credentials{Email: "a@b.co", Password: "short"})))
	assert.Equal(t, "Password is required", apperr.PublicMessage(Struct(models.LoginInput{Email: "a@b.co"})))
}

func TestIsMonth(t *testing.T) {
	assert.True(t, IsMonth("2024-02"))
	assert.False(t, IsMonth("2024-2"))
	assert.False(t, IsMonth("2024-02-01"))
}
