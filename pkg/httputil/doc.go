// Package httputil provides HTTP helpers shared by the console's handlers.
//
// # Response Helpers
//
// Every error the console produces has the shape {"message": "..."}:
//
//	httputil.WriteMessage(w, http.StatusInternalServerError, "Error fetching products")
//	httputil.WriteUnauthorized(w)            // 401 {"message":"Unauthorized"}
//	httputil.WriteOK(w)                      // 200 {"ok":true}
//
// Upstream bodies that are already JSON are relayed untouched:
//
//	httputil.WriteRawJSON(w, resp.StatusCode, body)
//
// # Request Parsing
//
//	body, err := httputil.ReadJSONBody(r)   // raw JSON, validated
//	id, err := httputil.ParsePathString(r, "id")
//	page := httputil.ParseQueryString(r, "page", "1")
//
// # Middleware
//
//	httputil.Chain(
//		httputil.RecoveryMiddleware(logger),
//		httputil.RequestIDMiddleware(logger),
//		httputil.LoggingMiddleware(),
//		httputil.MaxBytesMiddleware(1<<20),
//	)
package httputil
