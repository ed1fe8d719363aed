package auth

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Payload is the decoded claim set of a session credential
type Payload struct {
	claims jwt.MapClaims
}

// Identity is the public view of the logged-in user returned by /api/auth/me
type Identity struct {
	ID    any    `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
}

// Subject returns the sub claim as it appeared in the token (string or number)
func (p *Payload) Subject() any {
	return p.claims["sub"]
}

// SubjectString returns the sub claim formatted as a string
func (p *Payload) SubjectString() string {
	switch v := p.claims["sub"].(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return fmt.Sprintf("%.0f", v)
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}

// Email returns the email claim, or "" if absent
func (p *Payload) Email() string {
	email, _ := p.claims["email"].(string)
	return email
}

// ExpiresAt returns the exp claim. ok is false when the claim is missing or
// not numeric.
func (p *Payload) ExpiresAt() (exp time.Time, ok bool) {
	date, err := p.claims.GetExpirationTime()
	if err != nil || date == nil {
		return time.Time{}, false
	}
	return date.Time, true
}

// ExpiredAt reports whether the credential is expired at now. Payloads without
// a numeric exp claim never expire.
func (p *Payload) ExpiredAt(now time.Time) bool {
	exp, ok := p.expSeconds()
	if !ok {
		return false
	}
	return exp <= float64(now.Unix())
}

func (p *Payload) expSeconds() (float64, bool) {
	switch v := p.claims["exp"].(type) {
	case float64:
		return v, true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Identity projects the payload onto the fields exposed to the browser
func (p *Payload) Identity() Identity {
	return Identity{
		ID:    p.Subject(),
		Email: p.Email(),
	}
}
