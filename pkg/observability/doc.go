// Package observability provides structured logging, Prometheus metrics,
// OpenTelemetry tracing, health probes and graceful shutdown for the console.
//
// # Structured Logging
//
// Logs are JSON lines written through logrus:
//
//	logger := observability.NewLogger(observability.ParseLogLevel("info"), os.Stdout)
//	logger.WithField("resource", "products").Info("proxying request")
//
// Request-scoped loggers carry request_id, user_id and, when a span is
// recording, trace_id and span_id:
//
//	observability.FromContext(r.Context()).Warn("upstream unreachable")
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	metrics.GatewayDecision(observability.DecisionLogin)
//
// All helper methods accept a nil *Metrics.
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(cfg.Upstream.URL, nil, version)
//	observability.RegisterHealthRoutes(mux, checker)
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, otelCfg, logger)
//	defer observability.ShutdownOTel(ctx, providers, logger)
//
// NewTransport and InstrumentHandler wrap the upstream client and the
// console router with otelhttp.
package observability
