// Package cli implements backoffice-cli, a terminal client for the console.
//
// Commands talk to the console's /api proxy exactly like the browser does:
// login stores the HttpOnly session cookie in a local file (mode 0600) and
// later commands send it back.
//
//	backoffice-cli login -e admin@example.com
//	backoffice-cli products list --page 2 --limit 20 -o json
//	backoffice-cli sales create --item 12:2 --item 40:1
//	backoffice-cli browse categories
//
// browse keeps a paginate.Resource in sync with navigation commands read
// from stdin, one per line.
package cli
