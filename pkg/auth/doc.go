// Package auth decodes the session credential issued by the upstream API.
//
// # Overview
//
// The console never mints or verifies credentials. The upstream auth service
// issues a compact token (header.payload.signature, each segment base64url) at
// login, and this package only reads its payload to answer two questions:
// who is logged in, and has the credential expired.
//
//	payload := auth.Decode(token)
//	if payload == nil || auth.IsExpired(payload) {
//		// treat as logged out
//	}
//
// # Decoding Rules
//
//   - At least two dot-separated segments are required; the signature segment
//     may be missing.
//   - The payload segment is base64url with or without padding. Standard
//     base64 characters ('+', '/') are accepted as well.
//   - The payload must be a JSON object. Anything else decodes to nil.
//
// Decode never panics and never returns an error: a malformed credential is
// indistinguishable from an absent one.
//
// # Expiry Policy
//
// A payload without a numeric "exp" claim never expires. Tokens issued by the
// upstream service normally carry one; the console does not add a second
// lifetime on top of the cookie's own Max-Age.
//
// # Signature
//
// The signature is not checked here. The credential only ever enters the
// system from the upstream login response and then lives in an HttpOnly
// cookie, and the upstream API verifies it on every proxied call.
package auth
