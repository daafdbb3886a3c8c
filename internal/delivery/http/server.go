package http

import (
	"context"
	"errors"
	"time"

	"github.com/delivery-tracker/internal/config"
	"github.com/delivery-tracker/internal/delivery/http/handler"
	"github.com/delivery-tracker/internal/delivery/http/middleware"
	apperrors "github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	trackingHandler *handler.TrackingHandler
	scheduleHandler *handler.ScheduleHandler
	cartHandler     *handler.CartHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	trackingHandler *handler.TrackingHandler,
	scheduleHandler *handler.ScheduleHandler,
	cartHandler *handler.CartHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Delivery Tracker",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // трекинг ждет ответ маршрутизатора
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		trackingHandler: trackingHandler,
		scheduleHandler: scheduleHandler,
		cartHandler:     cartHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

func (s *Server) setupRoutes() {
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	api := s.app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Карта доставки заказа
	orders := api.Group("/orders/:id/tracking")
	orders.Post("/", s.trackingHandler.Track)
	orders.Delete("/", s.trackingHandler.Stop)
	orders.Get("/map", s.trackingHandler.Map)
	orders.Get("/animation", s.trackingHandler.Animation)

	// График доставки
	api.Post("/schedule", s.scheduleHandler.Compute)
	api.Get("/delivery/status", s.scheduleHandler.Status)
	api.Post("/delivery/estimates", s.trackingHandler.BatchEstimate)

	// Корзина
	api.Post("/carts", s.cartHandler.Create)
	api.Get("/carts/:id", s.cartHandler.Get)
	api.Put("/carts/:id", s.cartHandler.Save)
	api.Delete("/carts/:id", s.cartHandler.Clear)
}

// App - для тестов через app.Test
func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - ошибки, не обработанные хендлерами (404 роутера, паники)
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			logger.Debug("HTTP error",
				zap.String("path", c.Path()),
				zap.Int("status", fe.Code),
				zap.Error(err))
			return utils.SendError(c, apperrors.New("HTTP_ERROR", fe.Message, fe.Code))
		}

		logger.Error("Unhandled HTTP error",
			zap.String("path", c.Path()),
			zap.Error(err))
		return utils.SendError(c, err)
	}
}
