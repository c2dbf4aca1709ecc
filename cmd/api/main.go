package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/V4T54L/transit-complaints/internal/adapter/api"
	"github.com/V4T54L/transit-complaints/internal/adapter/api/handler"
	"github.com/V4T54L/transit-complaints/internal/adapter/metrics"
	"github.com/V4T54L/transit-complaints/internal/adapter/repository/memory"
	"github.com/V4T54L/transit-complaints/internal/adapter/repository/postgres"
	redisrepo "github.com/V4T54L/transit-complaints/internal/adapter/repository/redis"
	"github.com/V4T54L/transit-complaints/internal/domain"
	"github.com/V4T54L/transit-complaints/internal/pkg/config"
	"github.com/V4T54L/transit-complaints/internal/pkg/logger"
	"github.com/V4T54L/transit-complaints/internal/usecase"

	_ "github.com/lib/pq" // postgres driver
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
	m := metrics.NewAPIMetrics(reg)

	// --- Graceful Shutdown Context ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Optional Postgres and Redis Connections ---
	var db *sql.DB
	if cfg.DatabaseURL != "" {
		db, err = postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgres.CreateSchema(ctx, db); err != nil {
			logger.Error("failed to prepare schema", "error", err)
			os.Exit(1)
		}
		logger.Info("connected to postgres")
	}

	var redisClient *goredis.Client
	if cfg.RedisURL != "" {
		redisClient, err = redisrepo.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		logger.Info("connected to redis")
	}

	// --- Initialize Repositories ---
	var reader domain.ComplaintReader
	var pgRepo *postgres.ComplaintRepository
	if db != nil {
		pgRepo = postgres.NewComplaintRepository(db, logger, cfg.ComplaintsCacheTTL, m)
		reader = pgRepo
	} else {
		logger.Info("DATABASE_URL not set, serving demo complaints")
		reader = memory.NewComplaintRepository(cfg.MockLatency)
	}

	var sink domain.SubmissionSink
	var adminHandler *handler.AdminHandler
	switch {
	case redisClient != nil:
		sink = redisrepo.NewSubmissionRepository(redisClient, logger, cfg.SubmissionStream, cfg.SubmissionDLQ)
		adminRepo := redisrepo.NewAdminRepository(redisClient, logger, cfg.SubmissionStream, cfg.SubmissionDLQ)
		adminHandler = handler.NewAdminHandler(usecase.NewAdminQueueUseCase(adminRepo, cfg.ConsumerGroup), logger)
		logger.Info("buffering submissions in redis stream", "stream", cfg.SubmissionStream)
	case pgRepo != nil:
		sink = pgRepo
		logger.Info("writing submissions directly to postgres")
	default:
		sink = memory.NewDiscardSink(logger)
		logger.Info("no storage configured, submissions are logged and dropped")
	}

	// --- Initialize Use Cases and Handlers ---
	submitUseCase := usecase.NewSubmitComplaintUseCase(sink, logger)
	listUseCase := usecase.NewListComplaintsUseCase(reader)
	complaintHandler := handler.NewComplaintHandler(submitUseCase, listUseCase, logger, m, cfg.MaxSubmissionSize)

	// --- Start Admin and Metrics Server ---
	adminServer := &http.Server{
		Addr:    cfg.AdminServerAddr,
		Handler: api.NewAdminRouter(reg, adminHandler, logger),
	}
	go func() {
		logger.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("admin & metrics server failed", "error", err)
		}
	}()

	// --- Start API Server ---
	apiServer := &http.Server{
		Addr:         cfg.APIServerAddr,
		Handler:      api.NewRouter(cfg, logger, complaintHandler),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  15 * time.Second,
	}
	go func() {
		logger.Info("starting complaints api server", "addr", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("complaints api server failed", "error", err)
			stop() // Trigger shutdown on server error
		}
	}()

	// --- Wait for shutdown signal ---
	<-ctx.Done()
	logger.Info("shutting down servers...")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("admin server shutdown failed", "error", err)
	}
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("api server shutdown failed", "error", err)
	}

	logger.Info("servers shut down gracefully")
}
