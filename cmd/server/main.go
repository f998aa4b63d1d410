package main

import (
	"context"
	goerrors "errors"
	"fmt"
	"net/http"
	"nutzy-site/infrastructure/http/server"
	"nutzy-site/infrastructure/pocketbase"
	"nutzy-site/internal"
	"nutzy-site/moderation"
	"nutzy-site/observability"
	"nutzy-site/repositories"
	"nutzy-site/runtime"
	"nutzy-site/runtime/workers"
	"nutzy-site/services"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Exit codes for the service manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

// Version is set at build time with -ldflags.
var Version = "dev"

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run wires every component and owns their lifecycle, so deferred cleanup
// always executes before the process exits.
func run() (int, error) {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return exitConfig, err
	}
	censorChar, err := internal.CharacterRune(config.CharReplacement)
	if err != nil {
		return exitConfig, err
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Tracing
	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfig{
		ServiceName:    observability.DefaultServiceName,
		ServiceVersion: Version,
		Stdout:         config.TraceStdout,
	})
	if err != nil {
		return exitRuntime, fmt.Errorf("tracing setup failed: %w", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Warn("Tracer shutdown failed", "error", err)
		}
	}()

	// 3. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return exitRuntime, fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 4. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(registry)

	// 5. Remote store & repositories
	remote := pocketbase.NewClient(config.PocketBase(), log, pocketbase.WithObserver(metrics))
	digests := repositories.NewDigestRepository(db, log)
	subscriptions := repositories.NewSubscriptionRepository(db, log, config.ClaimTTL)

	// 6. Content pipeline
	site, err := runtime.NewSite(remote,
		runtime.Collections{Blog: config.BlogCollection, Events: config.EventCollection},
		log,
		runtime.WithDigests(digests),
		runtime.WithLoadObserver(metrics),
		runtime.OnIndexed(metrics.SetIndexSize),
	)
	if err != nil {
		return exitRuntime, fmt.Errorf("content pipeline setup failed: %w", err)
	}
	defer func() { _ = site.Close() }()

	// 7. Forms
	blocklist, err := runtime.DefaultBlocklist()
	if err != nil {
		return exitRuntime, fmt.Errorf("blocklist loading failed: %w", err)
	}
	blocklist.Merge(config.BlockedTerms())
	moderator, err := moderation.NewModerator(blocklist.Words, censorChar, log)
	if err != nil {
		return exitRuntime, fmt.Errorf("moderator setup failed: %w", err)
	}
	forms := services.NewFormService(remote, log,
		services.WithSubscriptions(subscriptions),
		services.WithModerator(moderator),
		services.WithSubmissionObserver(metrics),
	)

	// 8. Orchestration
	health := workers.NewHealthWorker(log, observability.NewMonitor(log), config.HealthInterval)
	orchestrator := runtime.NewOrchestrator(log, workers.NewSupervisor(log), config.RefreshInterval, site.Loaders()...)
	orchestrator.Add(health)
	orchestrator.Prime(ctx)
	orchestrator.Start(ctx)

	// 9. HTTP server
	handler := server.NewServer(log, config.SiteURL, site.Posts, site.Events, forms, site.Index,
		server.WithMetrics(metrics.Handler()),
		server.WithHealth(health.Latest),
	).Handler()
	httpServer := &http.Server{
		Addr:              config.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "address", config.Address(), "version", Version)
		if err := httpServer.ListenAndServe(); err != nil && !goerrors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// 10. Wait for Stop or Error
	code := exitOK
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down gracefully...")
	case runErr = <-errChan:
		code = exitRuntime
	}

	// 11. Final Cleanup
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("HTTP shutdown incomplete", "error", err)
	}
	orchestrator.Stop()
	log.Info("Program stopped cleanly")
	return code, runErr
}
