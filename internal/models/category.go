package models

// DefaultCategories are seeded for every new user and cannot be deleted.
var DefaultCategories = []string{
	"Food",
	"Transport",
	"Entertainment",
	"Shopping",
	"Bills",
	"Healthcare",
	"Education",
	"Other",
}

// Category is a named label owned by one user.
type Category struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	IsDefault bool   `json:"isDefault"`
	CreatedAt string `json:"createdAt"`
}

// CreateCategoryInput is the body of POST /categories.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"min=1,max=50"`
}
