// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	http_api "provenance/internal/api/http"
	"provenance/internal/config"
	"provenance/internal/domain"
	http_infra "provenance/internal/infra/http"
	"provenance/internal/infra/memory"
	"provenance/internal/logging"
	"provenance/internal/scheduler"
	"provenance/internal/tracing"
	"provenance/internal/usecase"
	"provenance/internal/workflow"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the config file")
	pflag.Parse()

	// 1. Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// 2. Initialize logger and tracer
	logger := logging.New(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	tracerShutdown, err := tracing.Setup(tracing.Options{
		Enabled:     cfg.TracingEnabled,
		ServiceName: "provenance-server",
		Writer:      os.Stderr,
	})
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tracerShutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", "error", err)
		}
	}()

	// 3. Root context cancelled on SIGINT/SIGTERM
	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	setupGracefulShutdown(cancel, logger)

	// 4. Instantiate stores and services
	articles := memory.NewArticleGateway(cfg.ArticleRecords(), time.Now().UnixNano())
	endpoints := memory.NewEndpointGateway(cfg.EndpointRecords())
	outcomes := memory.NewOutcomeRepository(cfg.HistoryLimit, logger)

	articleService := usecase.NewArticleService(articles, logger)
	historyService := usecase.NewHistoryService(outcomes)

	// 5. Wire the endpoint worker into the scheduler
	finder := usecase.NewEndpointWorkFinder(endpoints, cfg.EndpointAccept, logger)
	endpointWorker := usecase.NewEndpointWorker(http_infra.NewRestClient(cfg.HTTPTimeout), articles, logger)
	dispatcher := workflow.NewDispatcher[domain.EndpointTask](outcomes, logger)
	workScheduler := scheduler.NewWorkScheduler[domain.EndpointTask](
		finder,
		[]domain.Worker[domain.EndpointTask]{endpointWorker},
		cfg.SchedulerInterval,
		dispatcher,
		logger,
		scheduler.WithConcurrencyPolicy[domain.EndpointTask](cfg.ConcurrencyPolicy),
		scheduler.WithTaskKey(func(t domain.EndpointTask) string { return t.Endpoint }),
	)

	// 6. Register routes and metrics endpoint
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	http_api.NewArticleHandler(articleService, logger).RegisterRoutes(mux)
	http_api.NewHistoryHandler(historyService, logger).RegisterRoutes(mux)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 7. Run the scheduler and the HTTP server until one fails or a signal arrives
	g, ctx := errgroup.WithContext(rootCtx)
	g.Go(func() error {
		if err := workScheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("work scheduler: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		logger.Info("starting http server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("shutting down application gracefully")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer shutdownCancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("application stopped with error", "error", err)
	}
	logger.Info("application shut down")
}

func setupGracefulShutdown(cancel context.CancelFunc, logger *slog.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Info("received signal, initiating graceful shutdown", "signal", sig.String())
		cancel()
	}()
}
