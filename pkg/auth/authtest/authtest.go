// Package authtest builds session credentials for tests.
package authtest

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var signingKey = []byte("authtest-signing-key")

// Encode signs claims into a compact HS256 token with a throwaway key
func Encode(claims jwt.MapClaims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
}

// Token is Encode for tests; it fails the test on error
func Token(t testing.TB, claims jwt.MapClaims) string {
	t.Helper()
	token, err := Encode(claims)
	if err != nil {
		t.Fatalf("failed to encode token: %v", err)
	}
	return token
}

// ValidToken returns a token for sub/email expiring in an hour
func ValidToken(t testing.TB) string {
	t.Helper()
	return Token(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "admin@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
}

// ExpiredToken returns a token whose exp is one second in the past
func ExpiredToken(t testing.TB) string {
	t.Helper()
	return Token(t, jwt.MapClaims{
		"sub":   "user-1",
		"email": "admin@example.com",
		"exp":   time.Now().Add(-time.Second).Unix(),
	})
}
