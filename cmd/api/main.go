package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/wolfman30/review-rocket-leads/internal/api/router"
	"github.com/wolfman30/review-rocket-leads/internal/app/bootstrap"
	appconfig "github.com/wolfman30/review-rocket-leads/internal/config"
	"github.com/wolfman30/review-rocket-leads/internal/leads"
	"github.com/wolfman30/review-rocket-leads/internal/observability/metrics"
	"github.com/wolfman30/review-rocket-leads/pkg/logging"
)

func main() {
	// A local .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting review-rocket lead intake server",
		"env", cfg.Env,
		"port", cfg.Port,
		"mail_provider", cfg.MailProvider,
	)

	sender, err := bootstrap.BuildEmailSender(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to build email sender", "error", err)
		os.Exit(1)
	}

	leadMetrics, metricsHandler := setupMetrics(cfg.MetricsEnabled)

	service, err := bootstrap.BuildLeadService(cfg, sender, leadMetrics, logger)
	if err != nil {
		logger.Error("failed to build lead service", "error", err)
		os.Exit(1)
	}

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leads.NewHandler(service, logger),
		LeadRoute:          cfg.LeadRoute,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // two sequential SMTP round trips
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "lead_route", cfg.LeadRoute)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}

// setupMetrics returns nil values when metrics are disabled; the router then
// skips the /metrics route and the service records nothing.
func setupMetrics(enabled bool) (*metrics.LeadMetrics, http.Handler) {
	if !enabled {
		return nil, nil
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewGoCollector(), prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	return metrics.NewLeadMetrics(reg), promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
