package models

// User is the API shape of an account. The password hash never leaves the
// storage layer.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Credentials is the body of POST /auth/register.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=8"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthTokens holds the credentials issued at login or registration.
type AuthTokens struct {
	AccessToken string `json:"accessToken"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User   User       `json:"user"`
	Tokens AuthTokens `json:"tokens"`
}
