package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // промах
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

func (r *cacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		r.logger.Error("Failed to check cache existence", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("cache exists error: %w", err)
	}

	return val > 0, nil
}

// RouteKey - ключ маршрута; 5 знаков после запятой ~ 1 метр
func RouteKey(origin, destination domain.GeoPoint) string {
	return fmt.Sprintf("route:%.5f,%.5f:%.5f,%.5f", origin.Lat, origin.Lon, destination.Lat, destination.Lon)
}

// CartKey - корзина хранится под фиксированным ключом внутри пространства cart id
func CartKey(cartID string) string {
	return fmt.Sprintf("cart:%s:%s", cartID, domain.CartStorageKey)
}

func (r *cacheRepository) GetRoute(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RouteResult, error) {
	var route domain.RouteResult
	found, err := r.getJSON(ctx, RouteKey(origin, destination), &route)
	if err != nil || !found {
		return nil, err
	}
	// в кеш попадают только успешные маршруты, битую запись считаем промахом
	if !route.OK || len(route.Geometry) < 2 {
		return nil, nil
	}
	return &route, nil
}

func (r *cacheRepository) SetRoute(
	ctx context.Context,
	origin, destination domain.GeoPoint,
	route domain.RouteResult,
	ttl time.Duration,
) error {
	return r.setJSON(ctx, RouteKey(origin, destination), route, ttl)
}

func (r *cacheRepository) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cart domain.Cart
	found, err := r.getJSON(ctx, CartKey(cartID), &cart)
	if err != nil || !found {
		return nil, err
	}
	return &cart, nil
}

func (r *cacheRepository) SetCart(ctx context.Context, cart *domain.Cart, ttl time.Duration) error {
	return r.setJSON(ctx, CartKey(cart.ID), cart, ttl)
}

func (r *cacheRepository) DeleteCart(ctx context.Context, cartID string) error {
	return r.Delete(ctx, CartKey(cartID))
}

func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal value", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}
