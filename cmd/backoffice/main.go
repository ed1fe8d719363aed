// Command backoffice serves the back-office console: the /api proxy to the
// upstream API and the session-guarded console pages.
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/platinummonkey/backoffice/pkg/api"
	"github.com/platinummonkey/backoffice/pkg/config"
	"github.com/platinummonkey/backoffice/pkg/observability"
	"github.com/platinummonkey/backoffice/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(cfg.LogLevel(), os.Stdout).WithFields(map[string]interface{}{
		"service": cfg.Observability.OTelServiceName,
		"version": version,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := observability.InitOTel(ctx, cfg.OTel(), logger)
	if err != nil {
		return fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	var metrics *observability.Metrics
	if cfg.Observability.MetricsEnabled {
		metrics = observability.NewMetrics(registry)
	}

	if cfg.Upstream.URL == "" {
		logger.Warn("API_URL is not set; proxied requests will fail with 500")
	}

	upstreamClient := &http.Client{
		Transport: observability.NewTransport(nil),
		Timeout:   cfg.Upstream.Timeout,
	}

	store := session.NewCookieStore(cfg.Production())

	server := api.NewServer(api.Dependencies{
		UpstreamURL: cfg.Upstream.URL,
		Client:      upstreamClient,
		Store:       store,
		Logger:      logger,
		Metrics:     metrics,
		StaticDir:   cfg.Console.StaticDir,
		LandingPath: cfg.Console.LandingPath,
	})

	appServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      observability.InstrumentHandler(server, "backoffice"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	healthMux := http.NewServeMux()
	observability.RegisterHealthRoutes(healthMux, observability.NewHealthChecker(cfg.Upstream.URL, nil, version))
	if cfg.Observability.MetricsEnabled {
		observability.RegisterMetricsEndpoint(healthMux, registry)
	}
	healthServer := &http.Server{
		Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.HealthPort),
		Handler: healthMux,
	}

	shutdown := observability.NewShutdownManager(logger, cfg.Server.ShutdownTimeout, appServer, healthServer)
	shutdown.RegisterShutdownFunc(func(ctx context.Context) error {
		return observability.ShutdownOTel(ctx, providers, logger)
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.WithFields(map[string]interface{}{
			"addr":           appServer.Addr,
			"upstream":       cfg.Upstream.URL,
			"secure_cookies": store.Secure(),
		}).Info("Starting console server")
		return serve(appServer)
	})
	g.Go(func() error {
		logger.WithField("addr", healthServer.Addr).Info("Starting health server")
		return serve(healthServer)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		return shutdown.Shutdown(context.Background())
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("Shutdown complete")
	return nil
}

func serve(srv *http.Server) error {
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server %s: %w", srv.Addr, err)
	}
	return nil
}
