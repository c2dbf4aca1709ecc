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
	"github.com/V4T54L/transit-complaints/internal/adapter/repository/postgres"
	redisrepo "github.com/V4T54L/transit-complaints/internal/adapter/repository/redis"
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

	log := logger.New(cfg.LogLevel)
	log.Info("starting submission consumer")

	if cfg.RedisURL == "" || cfg.DatabaseURL == "" {
		log.Error("consumer requires both REDIS_URL and DATABASE_URL")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClient, err := redisrepo.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	log.Info("connected to redis")

	db, err := postgres.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := postgres.CreateSchema(ctx, db); err != nil {
		log.Error("failed to prepare schema", "error", err)
		os.Exit(1)
	}
	log.Info("connected to postgres")

	// Create a unique consumer name for this instance
	consumerName, err := os.Hostname()
	if err != nil {
		log.Warn("could not get hostname for consumer name, using default", "error", err)
		consumerName = "consumer-default"
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewConsumerMetrics(reg)

	// Instantiate repositories
	queue := redisrepo.NewSubmissionRepository(redisClient, log, cfg.SubmissionStream, cfg.SubmissionDLQ)
	if err := queue.SetupConsumerGroup(ctx, cfg.ConsumerGroup); err != nil {
		log.Error("failed to set up consumer group", "error", err)
		os.Exit(1)
	}
	writer := postgres.NewComplaintRepository(db, log, 0, nil)

	processUseCase := usecase.NewProcessSubmissionsUseCase(
		queue, writer, log, m,
		cfg.ConsumerGroup, consumerName,
		cfg.ConsumerBatchSize, cfg.SinkRetryCount, cfg.SinkRetryBackoff,
	)

	adminRepo := redisrepo.NewAdminRepository(redisClient, log, cfg.SubmissionStream, cfg.SubmissionDLQ)
	adminHandler := handler.NewAdminHandler(usecase.NewAdminQueueUseCase(adminRepo, cfg.ConsumerGroup), log)
	adminServer := &http.Server{
		Addr:    cfg.ConsumerAdminAddr,
		Handler: api.NewAdminRouter(reg, adminHandler, log),
	}
	go func() {
		log.Info("starting admin & metrics server", "addr", adminServer.Addr)
		if err := adminServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("admin & metrics server failed", "error", err)
		}
	}()

	// Start the consumer processing loop
	ticker := time.NewTicker(cfg.ConsumerInterval)
	defer ticker.Stop()

	log.Info("consumer worker started", "group", cfg.ConsumerGroup, "consumer", consumerName)

Loop:
	for {
		select {
		case <-ticker.C:
			// Drain while there is backlog instead of waiting a tick per batch.
			for {
				processed, err := processUseCase.ProcessBatch(ctx)
				if err != nil {
					if ctx.Err() == nil {
						log.Error("error processing batch", "error", err)
					}
					break
				}
				if processed < cfg.ConsumerBatchSize {
					break
				}
			}
		case <-ctx.Done():
			log.Info("context cancelled, shutting down consumer loop")
			break Loop
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Error("admin server shutdown failed", "error", err)
	}

	log.Info("consumer worker shut down gracefully")
}
