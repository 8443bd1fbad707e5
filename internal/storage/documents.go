package storage

import "expense-tracker-api/internal/models"

// UserDocument is a row of the users table.
type UserDocument struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func (d UserDocument) User() models.User {
	return models.User{
		ID:        d.ID,
		Email:     d.Email,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// CategoryDocument is a row of the categories table.
type CategoryDocument struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Name      string `db:"name"`
	IsDefault bool   `db:"is_default"`
	CreatedAt string `db:"created_at"`
}

func (d CategoryDocument) Category() models.Category {
	return models.Category{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		IsDefault: d.IsDefault,
		CreatedAt: d.CreatedAt,
	}
}

// ExpenseDocument is a row of the expenses table. The expense date is kept
// as a YYYY-MM-DD string in spent_on so range filters compare lexically.
type ExpenseDocument struct {
	ID          string  `db:"id"`
	UserID      string  `db:"user_id"`
	Amount      float64 `db:"amount"`
	Description string  `db:"description"`
	Category    string  `db:"category"`
	Date        string  `db:"spent_on"`
	CreatedAt   string  `db:"created_at"`
	UpdatedAt   string  `db:"updated_at"`
}

func (d ExpenseDocument) Expense() models.Expense {
	return models.Expense{
		ID:          d.ID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Description: d.Description,
		Category:    d.Category,
		Date:        d.Date,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

func expensesFromDocuments(docs []ExpenseDocument) []models.Expense {
	out := make([]models.Expense, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Expense())
	}
	return out
}

// CategoryTotal is the aggregate of one category label.
type CategoryTotal struct {
	Category string  `db:"category"`
	Total    float64 `db:"total"`
	Count    int     `db:"count"`
}
