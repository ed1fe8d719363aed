// Package client is a Go client for the console's same-origin proxy API.
//
// It talks to the console server (never to the upstream data service) and
// keeps the session cookie in a cookie jar, the way a browser would:
//
//	c, err := client.New("http://localhost:3000")
//	if err := c.Auth.Login(ctx, "admin@example.com", "secret"); err != nil { ... }
//	page, err := c.Products.List(ctx, 1, 10)
//
// Every non-2xx response and every transport failure is returned as an
// *Error carrying a Kind, the HTTP status and a display message:
//
//	var apiErr *client.Error
//	if errors.As(err, &apiErr) && apiErr.Kind == client.KindUnauthenticated {
//		// log in again
//	}
//
// No response is cached and no request is retried.
package client
