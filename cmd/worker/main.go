package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/delivery-tracker/internal/config"
	"github.com/delivery-tracker/internal/domain"
	routingClient "github.com/delivery-tracker/internal/infrastructure/routing"
	"github.com/delivery-tracker/internal/pkg/logger"
	"github.com/delivery-tracker/internal/repository/cache"
	redisRepo "github.com/delivery-tracker/internal/repository/redis"
	"github.com/delivery-tracker/internal/usecase"
	"github.com/delivery-tracker/internal/worker"
	"github.com/delivery-tracker/internal/worker/schedule"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "delivery-worker")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Delivery Schedule Worker",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Int("max_retries", cfg.Worker.MaxRetries))

	// 3. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 4. Repositories and routing
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	routing, err := routingClient.New(&cfg.Routing, cacheRepo, cfg.Cache.RouteCacheTTL, log)
	if err != nil {
		log.Fatal("Failed to initialize routing client", zap.Error(err))
	}

	// 5. Use cases
	scheduleUC := usecase.NewScheduleUseCase(
		routing,
		domain.SchedulePolicy{
			ProcessingDays: cfg.Delivery.ProcessingDays,
			BufferDays:     cfg.Delivery.BufferDays,
		},
		time.Now,
		log,
	)

	// 6. Workers
	manager := worker.NewManager(log)
	manager.Register(schedule.NewEstimatorWorker(
		streamRepo,
		scheduleUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.MaxRetries,
		log,
	))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := manager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	// 7. Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()

	if err := manager.Stop(stopCtx); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}
	cancel()

	log.Info("Worker shutdown complete")
}
