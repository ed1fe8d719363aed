// Package session holds the console's only piece of session state: the
// upstream-issued credential, kept in an HttpOnly cookie.
package session

import (
	"net/http"
)

const (
	// CookieName is the cookie carrying the raw credential
	CookieName = "access_token"
	// MaxAge is the cookie lifetime in seconds, matching the upstream token TTL
	MaxAge = 3600
)

// Store reads and writes the session credential for a single request/response pair.
// Implementations must never expose the credential to client-side script.
type Store interface {
	// Token returns the credential carried by the request, if any
	Token(r *http.Request) (string, bool)
	// Set stores the credential on the response
	Set(w http.ResponseWriter, token string)
	// Clear removes the credential on the response
	Clear(w http.ResponseWriter)
}

// CookieStore keeps the credential in an HttpOnly, SameSite=Lax cookie scoped to "/"
type CookieStore struct {
	secure bool
}

// NewCookieStore creates a cookie store. secure should be true in production so
// the cookie is only sent over HTTPS.
func NewCookieStore(secure bool) *CookieStore {
	return &CookieStore{secure: secure}
}

// Token returns the cookie value. An empty value counts as absent.
func (s *CookieStore) Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Set writes the credential with a MaxAge of one hour
func (s *CookieStore) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, MaxAge))
}

// Clear overwrites the cookie with an empty value and Max-Age=0.
// Path and flags must match Set or the browser keeps the old cookie.
func (s *CookieStore) Clear(w http.ResponseWriter) {
	// net/http serializes a negative MaxAge as "Max-Age=0"
	http.SetCookie(w, s.cookie("", -1))
}

// Secure reports whether cookies are written with the Secure flag
func (s *CookieStore) Secure() bool {
	return s.secure
}

func (s *CookieStore) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secure,
		MaxAge:   maxAge,
	}
}
