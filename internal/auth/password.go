// Package auth holds the credential primitives: password hashing, signed
// access tokens and bearer header parsing.
package auth

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor for stored password hashes.
const PasswordCost = 10

// HashPassword returns the bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash. The comparison is
// constant time.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
