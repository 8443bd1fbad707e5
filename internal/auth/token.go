package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"expense-tracker-api/internal/apperr"
	"expense-tracker-api/internal/models"
)

// DefaultTokenTTL is how long an access token stays valid.
const DefaultTokenTTL = 7 * 24 * time.Hour

// ErrInvalidToken is returned by Verify for any bad or expired token.
var ErrInvalidToken = apperr.Unauthenticated("Invalid or expired token")

// Claims is the payload of an access token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies access tokens with a shared secret.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec returns a codec using HS256 with secret. A non-positive ttl
// falls back to DefaultTokenTTL.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of c that reads the current time from now.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	cp := *c
	cp.now = now
	return &cp
}

// Issue signs a token for user.
func (c *TokenCodec) Issue(user models.User) (string, error) {
	now := c.now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

// Verify checks the signature and expiry of token and returns its claims.
func (c *TokenCodec) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, ErrInvalidToken.Message, err)
	}
	if !parsed.Valid || claims.UserID == "" {
		return nil, apperr.Wrap(apperr.Unauthorized, ErrInvalidToken.Message, errors.New("token carries no user id"))
	}
	return claims, nil
}
