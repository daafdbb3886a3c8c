package routing

import (
	"fmt"
	"time"

	"github.com/delivery-tracker/internal/config"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/infrastructure/mapbox"
	"github.com/delivery-tracker/internal/infrastructure/osrm"
	"go.uber.org/zap"
)

// New собирает клиент маршрутизации по конфигу и оборачивает его кешем.
// cache == nil - без кеша.
func New(
	cfg *config.RoutingConfig,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) (repository.RoutingRepository, error) {
	var client repository.RoutingRepository

	switch cfg.Provider {
	case config.RoutingProviderOSRM, "":
		client = osrm.NewClient(cfg, logger)
	case config.RoutingProviderMapbox:
		client = mapbox.NewClient(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown routing provider %q", cfg.Provider)
	}

	logger.Info("Routing client initialized",
		zap.String("provider", cfg.Provider),
		zap.String("base_url", cfg.BaseURL),
		zap.String("profile", cfg.Profile))

	if cache == nil {
		return client, nil
	}
	return osrm.NewCachedClient(client, cache, ttl, logger), nil
}
