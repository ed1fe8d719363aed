// Package middleware provides the console's route guard.
//
// # Overview
//
// Gateway runs in front of every page request. It decides, from the session
// cookie alone, whether a navigation proceeds, is sent to the login page, or
// skips the login page because the visitor is already signed in.
//
//	gw := middleware.NewGateway(store, "/ventas", logger, metrics)
//	router.PathPrefix("/").Handler(gw.Handler(pages))
//
// # Decisions
//
// Excluded paths (/api, /_next, /favicon, /images, /fonts, /assets, /static
// and anything with a file extension) pass through untouched.
//
// /login and paths below it are public. A visitor holding a valid credential
// is redirected (307) to the next query parameter when it is a local path, or
// to the landing page.
//
// Any other path requires a valid credential. Without one the visitor is
// redirected (307) to /login?next=<requested path and query>, and a stale
// cookie is cleared on the same response.
//
// The credential is decoded but its signature is not checked here; the
// upstream API remains the authority on every data request.
//
// # Related Packages
//
//   - pkg/auth: credential decoding and expiry
//   - pkg/session: cookie storage
package middleware
