// Package api assembles the console's HTTP server.
//
// # Overview
//
// Server combines the upstream proxy (pkg/proxy) with the exported console
// pages. Pages are guarded by the session gateway (pkg/middleware); /api
// routes check the session themselves and answer with JSON.
//
//	server := api.NewServer(api.Dependencies{
//		UpstreamURL: cfg.Upstream.URL,
//		Store:       session.NewCookieStore(cfg.Production()),
//		Logger:      logger,
//		Metrics:     metrics,
//		StaticDir:   cfg.Console.StaticDir,
//		LandingPath: cfg.Console.LandingPath,
//	})
//	http.ListenAndServe(":3000", server)
//
// # Routing
//
//	POST   /api/auth/login, /api/auth/logout
//	GET    /api/auth/me
//	GET    /api/{categories,products,sales}[/{id}]
//	POST   /api/{categories,products,sales}
//	PATCH  /api/{categories,products}/{id}
//	DELETE /api/{categories,products}/{id}
//	GET    everything else: guarded pages
//
// Unknown /api paths answer 404 {"message":"Not found"}; known paths with an
// unsupported method answer 405.
//
// # Middleware
//
// Every request passes through panic recovery, request ID assignment,
// request logging and a body size limit. Matched routes are also recorded
// in the HTTP Prometheus metrics under their route template.
//
// # Pages
//
// PageHandler resolves /ventas to ventas, ventas.html or ventas/index.html
// under the static directory and falls back to the root index.html so
// client-side routes load the application shell.
package api
