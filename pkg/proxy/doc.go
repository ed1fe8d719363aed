// Package proxy implements the console's same-origin /api endpoints.
//
// Each resource endpoint reads the session credential from the session
// store, forwards the request to the upstream API with an
// "Authorization: Bearer" header and relays the upstream status and JSON body
// unchanged. Requests without a credential are rejected with 401 before any
// upstream call. The inbound Cookie header is never forwarded.
//
// Local failures (unparseable inbound body, unreachable upstream) are logged
// and answered with 500 and a fixed, resource-specific message such as
// "Error fetching categories".
//
// The auth endpoints exchange credentials for a session cookie
// (POST /api/auth/login), clear it (POST /api/auth/logout) and report the
// identity it carries (GET /api/auth/me).
package proxy
