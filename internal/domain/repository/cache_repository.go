package repository

import (
	"context"
	"time"

	"github.com/delivery-tracker/internal/domain"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Exists проверяет существование ключа
	Exists(ctx context.Context, key string) (bool, error)

	// GetRoute получает маршрут между двумя точками (nil при промахе)
	GetRoute(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RouteResult, error)

	// SetRoute сохраняет успешный маршрут
	SetRoute(ctx context.Context, origin, destination domain.GeoPoint, route domain.RouteResult, ttl time.Duration) error

	// GetCart получает корзину (nil при промахе)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)

	// SetCart сохраняет корзину
	SetCart(ctx context.Context, cart *domain.Cart, ttl time.Duration) error

	// DeleteCart очищает корзину
	DeleteCart(ctx context.Context, cartID string) error
}
