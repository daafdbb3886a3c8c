package main

// @title Delivery Tracker API
// @version 1.0
// @description Карта доставки для партнерского портала: маршрут от отправителя до адреса доставки, график доставки и статус просрочки.
// @description
// @description Основные возможности:
// @description - Карта доставки заказа с анимацией грузовика (снимок в GeoJSON)
// @description - Расчет графика доставки по дате активации и расстоянию
// @description - Проверка просрочки ожидаемой даты
// @description - Корзина товаров партнера

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/delivery-tracker/docs"
	"github.com/delivery-tracker/internal/animation"
	"github.com/delivery-tracker/internal/config"
	httpDelivery "github.com/delivery-tracker/internal/delivery/http"
	"github.com/delivery-tracker/internal/delivery/http/handler"
	"github.com/delivery-tracker/internal/domain"
	routingClient "github.com/delivery-tracker/internal/infrastructure/routing"
	"github.com/delivery-tracker/internal/pkg/logger"
	"github.com/delivery-tracker/internal/render"
	"github.com/delivery-tracker/internal/repository/cache"
	"github.com/delivery-tracker/internal/repository/postgres"
	redisRepo "github.com/delivery-tracker/internal/repository/redis"
	"github.com/delivery-tracker/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level, "delivery-api")
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Delivery Tracker API")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("routing_url", cfg.Routing.BaseURL),
	)

	// 3. Connect to PostgreSQL (заказы и аккаунты)
	db, err := postgres.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}()

	// 4. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	// 5. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.Health(ctx); err != nil {
		log.Fatal("PostgreSQL health check failed", zap.Error(err))
	}
	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 6. Repositories
	orderRepo := postgres.NewOrderRepository(db)
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(redisClient.Client(), log)

	routing, err := routingClient.New(&cfg.Routing, cacheRepo, cfg.Cache.RouteCacheTTL, log)
	if err != nil {
		log.Fatal("Failed to initialize routing client", zap.Error(err))
	}

	// 7. Use cases
	policy := domain.SchedulePolicy{
		ProcessingDays: cfg.Delivery.ProcessingDays,
		BufferDays:     cfg.Delivery.BufferDays,
	}
	animCfg := animation.Config{
		FrameInterval: cfg.Animation.FrameInterval,
		RouteDuration: cfg.Animation.RouteDuration,
		TrailSize:     cfg.Animation.TrailSize,
	}

	scheduleUC := usecase.NewScheduleUseCase(routing, policy, time.Now, log)

	newView := func() *usecase.MapRenderer {
		return usecase.NewMapRenderer(routing, streamRepo, render.SceneFactory(), animCfg, policy, time.Now, log)
	}
	trackingUC := usecase.NewTrackingUseCase(orderRepo, scheduleUC, newView, cfg.Delivery.OriginName, time.Now, log)

	// брошенные вкладками карты закрываются по простою
	evictCtx, stopEviction := context.WithCancel(context.Background())
	go trackingUC.RunEviction(evictCtx, time.Minute, cfg.Animation.ViewIdleTTL)

	cartUC := usecase.NewCartUseCase(cacheRepo, cfg.Cache.CartCacheTTL, time.Now, log)

	log.Info("Use cases initialized")

	// 8. HTTP handlers and server
	server := httpDelivery.NewServer(
		cfg,
		log,
		handler.NewTrackingHandler(trackingUC, log),
		handler.NewScheduleHandler(scheduleUC, log),
		handler.NewCartHandler(cartUC, log),
	)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 9. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	// анимации останавливаются после сервера: новых запросов уже не будет
	stopEviction()
	trackingUC.Shutdown()

	log.Info("Server stopped successfully", zap.Int("active_views", trackingUC.ActiveViews()))
}
