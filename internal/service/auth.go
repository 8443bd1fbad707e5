package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/auth"
	"expense-tracker-api/internal/logging"
	"expense-tracker-api/internal/models"
	"expense-tracker-api/internal/storage"
	"expense-tracker-api/internal/validation"
)

var (
	errUserExists         = apperr.Duplicate("User already exists")
	errInvalidCredentials = apperr.Unauthenticated("Invalid email or password")
	errUserNotFound       = apperr.Missing("User not found")
)

// AuthService registers and authenticates users.
type AuthService struct {
	users      UserStore
	categories CategoryStore
	tokens     TokenIssuer
	log        *slog.Logger
	now        func() time.Time
}

func NewAuthService(users UserStore, categories CategoryStore, tokens TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		categories: categories,
		tokens:     tokens,
		log:        logging.Component(log, "auth"),
		now:        time.Now,
	}
}

// Register creates an account with the default categories and returns it
// together with an access token.
func (s *AuthService) Register(ctx context.Context, in models.Credentials) (*models.AuthResponse, error) {
	user, err := s.CreateAccount(ctx, in)
	if err != nil {
		return nil, err
	}
	return s.respond(*user)
}

// Login checks the credentials. An unknown email and a wrong password fail
// with the same error.
func (s *AuthService) Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	doc, err := s.users.GetByEmail(ctx, in.Email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "look up user", err)
	}
	if !auth.CheckPassword(in.Password, doc.PasswordHash) {
		return nil, errInvalidCredentials
	}
	return s.respond(doc.User())
}

// CreateAccount stores a new user and seeds the default categories. The two
// writes are not atomic: if seeding fails the user exists without categories.
func (s *AuthService) CreateAccount(ctx context.Context, in models.Credentials) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	_, err := s.users.GetByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, errUserExists
	case !errors.Is(err, storage.ErrNotFound):
		return nil, apperr.Wrap(apperr.Internal, "look up user", err)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "hash password", err)
	}

	now := timestamp(s.now())
	doc := storage.UserDocument{
		ID:           newID("user"),
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, doc); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, errUserExists
		}
		return nil, apperr.Wrap(apperr.Internal, "create user", err)
	}

	if err := s.categories.Insert(ctx, defaultCategories(doc.ID, now)...); err != nil {
		s.log.Error("seeding default categories failed", "user_id", doc.ID, "error", err)
		return nil, apperr.Wrap(apperr.Internal, "seed default categories", err)
	}

	s.log.Info("user registered", "user_id", doc.ID)
	user := doc.User()
	return &user, nil
}

// Me returns the user with id.
func (s *AuthService) Me(ctx context.Context, userID string) (*models.User, error) {
	doc, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, errUserNotFound
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "look up user", err)
	}
	user := doc.User()
	return &user, nil
}

func (s *AuthService) respond(user models.User) (*models.AuthResponse, error) {
	if s.tokens == nil {
		return nil, apperr.New(apperr.Internal, "no token issuer configured")
	}
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "issue token", err)
	}
	return &models.AuthResponse{User: user, Tokens: models.AuthTokens{AccessToken: token}}, nil
}

// defaultCategories builds the seeded categories for userID. Their ids are
// derived from the user id and the lowercased name.
func defaultCategories(userID, createdAt string) []storage.CategoryDocument {
	docs := make([]storage.CategoryDocument, 0, len(models.DefaultCategories))
	for _, name := range models.DefaultCategories {
		docs = append(docs, storage.CategoryDocument{
			ID:        "cat_" + userID + "_" + strings.ToLower(name),
			UserID:    userID,
			Name:      name,
			IsDefault: true,
			CreatedAt: createdAt,
		})
	}
	return docs
}
