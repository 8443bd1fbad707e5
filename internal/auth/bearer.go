package auth

import "strings"

const bearerPrefix = "Bearer "

// ExtractBearer returns the token from an Authorization header value of the
// form "Bearer <token>". Any other scheme, or an empty token, yields false.
func ExtractBearer(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
