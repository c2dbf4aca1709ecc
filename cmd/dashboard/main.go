package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/V4T54L/transit-complaints/internal/adapter/api"
	"github.com/V4T54L/transit-complaints/internal/adapter/api/handler"
	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/adapter/repository/memory"
	redisrepo "github.com/V4T54L/transit-complaints/internal/adapter/repository/redis"
	"github.com/V4T54L/transit-complaints/internal/adapter/source"
	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/pkg/config"
	"github.com/V4T54L/transit-complaints/internal/pkg/logger"
	"github.com/V4T54L/transit-complaints/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logger.New(cfg.LogLevel)
	slog.SetDefault(logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewDashboardMetrics(reg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Settings Store ---
	var settings domain.SettingsStore
	if cfg.RedisURL != "" {
		redisClient, err := redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		settings = redisrepo.NewSettingsStore(redisClient, logger)
		logger.Info("storing settings in redis")
	} else {
		settings = memory.NewSettingsStore()
	}

	// --- Poller and Event Stream ---
	upstream := source.NewHTTPSource(cfg.ComplaintsAPIURL)
	poller := usecase.NewComplaintPoller(upstream, usecase.PollerConfig{
		Interval:     cfg.PollInterval,
		Timeout:      cfg.PollTimeout,
		RetryCount:   cfg.PollRetryCount,
		RetryBackoff: cfg.PollRetryBackoff,
	}, logger.With("component", "poller"), m)

	broker := handler.NewSSEBroker(ctx, logger, m)
	poller.Subscribe(broker.PublishPollState)

	changes, err := settings.Subscribe(ctx)
	if err != nil {
		logger.Error("failed to subscribe to settings changes", "error", err)
		os.Exit(1)
	}
	go broker.ForwardSettings(changes)

	go poller.Run(ctx)

	// --- Servers ---
	router := api.NewDashboardRouter(
		cfg,
		logger,
		handler.NewDashboardHandler(poller, settings, upstream.URL(), logger),
		handler.NewSettingsHandler(settings, logger),
		broker,
	)
	dashboardServer := &http.Server{
		Addr:        cfg.DashboardServerAddr,
		Handler:     router,
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 60 * time.Second,
		// No WriteTimeout: the event stream is long-lived.
	}
	adminServer := &http.Server{
		Addr:    cfg.DashboardAdminAddr,
		Handler: api.NewAdminRouter(reg, nil, logger),
	}

	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()
	go func() {
		logger.Info("starting dashboard server", "addr", dashboardServer.Addr, "upstream", upstream.URL())
		if err := dashboardServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("dashboard server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := dashboardServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("dashboard server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
