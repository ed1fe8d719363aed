package auth

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const segmentSeparator = "."

// segmentParser is only used for its base64url segment decoding; claims are
// never validated through it.
var segmentParser = jwt.NewParser(jwt.WithPaddingAllowed())

var base64StdToURL = strings.NewReplacer("+", "-", "/", "_")

// Decode extracts the payload of a compact token without checking its
// signature. It returns nil for any malformed input.
func Decode(token string) *Payload {
	parts := strings.Split(token, segmentSeparator)
	if len(parts) < 2 {
		return nil
	}

	raw, err := decodeSegment(parts[1])
	if err != nil {
		return nil
	}

	var claims jwt.MapClaims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return nil
	}
	// "null" unmarshals into a nil map without error
	if claims == nil {
		return nil
	}

	return &Payload{claims: claims}
}

func decodeSegment(seg string) ([]byte, error) {
	return segmentParser.DecodeSegment(base64StdToURL.Replace(seg))
}

// IsExpired reports whether the payload's exp claim is in the past.
// A nil payload is considered expired.
func IsExpired(p *Payload) bool {
	if p == nil {
		return true
	}
	return p.ExpiredAt(time.Now())
}

// Valid decodes token and reports whether it is usable as a session
// credential: it decodes and has not expired.
func Valid(token string) (*Payload, bool) {
	if token == "" {
		return nil, false
	}
	payload := Decode(token)
	if payload == nil || IsExpired(payload) {
		return payload, false
	}
	return payload, true
}
