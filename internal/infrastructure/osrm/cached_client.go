package osrm

import (
	"context"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"go.uber.org/zap"
)

type cachedClient struct {
	next   repository.RoutingRepository
	cache  repository.CacheRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient оборачивает клиент кешем маршрутов.
// Кешируются только успешные ответы, сбои кеша не влияют на результат.
func NewCachedClient(
	next repository.RoutingRepository,
	cache repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) repository.RoutingRepository {
	return &cachedClient{
		next:   next,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *cachedClient) FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) domain.RouteResult {
	cached, err := c.cache.GetRoute(ctx, origin, destination)
	if err != nil {
		c.logger.Warn("Route cache read failed", zap.Error(err))
	} else if cached != nil {
		c.logger.Debug("Route cache hit",
			zap.Stringer("origin", origin),
			zap.Stringer("destination", destination))
		return *cached
	}

	result := c.next.FetchRoute(ctx, origin, destination)
	if !result.OK {
		return result
	}

	if err := c.cache.SetRoute(ctx, origin, destination, result, c.ttl); err != nil {
		c.logger.Warn("Route cache write failed", zap.Error(err))
	}

	return result
}
