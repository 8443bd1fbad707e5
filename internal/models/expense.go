package models

// Expense is the API shape of a single spending record. Category is a free
// text label matched to a Category by name only.
type Expense struct {
	ID          string  `json:"id"`
	UserID      string  `json:"userId"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// CreateExpenseInput is the body of POST /expenses.
type CreateExpenseInput struct {
	Amount      float64 `json:"amount" validate:"gt=0"`
	Description string  `json:"description" validate:"min=1,max=200"`
	Category    string  `json:"category" validate:"min=1"`
	Date        string  `json:"date" validate:"ymd"`
}

// UpdateExpenseInput is the body of PUT /expenses/{id}. Nil fields are left
// unchanged.
type UpdateExpenseInput struct {
	Amount      *float64 `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1,max=200"`
	Category    *string  `json:"category,omitempty" validate:"omitempty,min=1"`
	Date        *string  `json:"date,omitempty" validate:"omitempty,ymd"`
}

// Empty reports whether the patch sets no field.
func (in UpdateExpenseInput) Empty() bool {
	return in.Amount == nil && in.Description == nil && in.Category == nil && in.Date == nil
}

// ExpenseFilter narrows a listing. All set fields must match.
type ExpenseFilter struct {
	StartDate string   `json:"startDate,omitempty" validate:"omitempty,ymd"`
	EndDate   string   `json:"endDate,omitempty" validate:"omitempty,ymd"`
	Category  string   `json:"category,omitempty"`
	MinAmount *float64 `json:"minAmount,omitempty" validate:"omitempty,gt=0"`
	MaxAmount *float64 `json:"maxAmount,omitempty" validate:"omitempty,gt=0"`
}

// Sort keys accepted by ExpenseQuery.SortBy.
const (
	SortByDate      = "date"
	SortByAmount    = "amount"
	SortByCreatedAt = "createdAt"
)

// Sort directions accepted by ExpenseQuery.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Defaults applied to ExpenseQuery.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ExpenseQuery is the parsed query string of GET /expenses.
type ExpenseQuery struct {
	ExpenseFilter
	Page      int    `json:"page" validate:"gte=1"`
	PageSize  int    `json:"pageSize" validate:"gte=1,lte=100"`
	SortBy    string `json:"sortBy" validate:"oneof=date amount createdAt"`
	SortOrder string `json:"sortOrder" validate:"oneof=asc desc"`
}

// NewExpenseQuery returns a query with the documented defaults.
func NewExpenseQuery() ExpenseQuery {
	return ExpenseQuery{
		Page:      DefaultPage,
		PageSize:  DefaultPageSize,
		SortBy:    SortByDate,
		SortOrder: SortDesc,
	}
}

// Page is one window of a paginated listing.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalPages int `json:"totalPages"`
}
