package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/repository/cache"
)

var (
	mumbai = domain.GeoPoint{Lat: 19.0760, Lon: 72.8777}
	delhi  = domain.GeoPoint{Lat: 28.6139, Lon: 77.2090}
)

func getTestRedis(t *testing.T) *cache.Redis {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for integration tests: %v", err)
	}

	t.Cleanup(func() { client.Close() })
	return cache.NewRedisFromClient(client, zap.NewNop())
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "route:19.07600,72.87770:28.61390,77.20900", cache.RouteKey(mumbai, delhi))
	assert.Equal(t, "cart:c-1:productsCart", cache.CartKey("c-1"))
}

func TestCacheRepository_Route(t *testing.T) {
	rdb := getTestRedis(t)
	repo := cache.NewCacheRepository(rdb)
	ctx := context.Background()
	defer rdb.Client().Del(ctx, cache.RouteKey(mumbai, delhi))

	miss, err := repo.GetRoute(ctx, mumbai, delhi)
	require.NoError(t, err)
	assert.Nil(t, miss)

	route := domain.RouteResult{
		Geometry:        []domain.GeoPoint{mumbai, {Lat: 23, Lon: 75}, delhi},
		DistanceMeters:  1400000,
		DurationSeconds: 86400,
		OK:              true,
	}
	require.NoError(t, repo.SetRoute(ctx, mumbai, delhi, route, time.Minute))

	hit, err := repo.GetRoute(ctx, mumbai, delhi)
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, route, *hit)
}

func TestCacheRepository_Cart(t *testing.T) {
	rdb := getTestRedis(t)
	repo := cache.NewCacheRepository(rdb)
	ctx := context.Background()
	defer repo.DeleteCart(ctx, "test-cart")

	cart := &domain.Cart{
		ID:        "test-cart",
		Items:     []domain.CartItem{{ProductID: "p-1", Quantity: 2, UnitPrice: 10.5}},
		UpdatedAt: time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.SetCart(ctx, cart, time.Minute))

	exists, err := repo.Exists(ctx, cache.CartKey("test-cart"))
	require.NoError(t, err)
	assert.True(t, exists)

	got, err := repo.GetCart(ctx, "test-cart")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, cart.Items, got.Items)
	assert.True(t, cart.UpdatedAt.Equal(got.UpdatedAt))

	require.NoError(t, repo.DeleteCart(ctx, "test-cart"))
	got, err = repo.GetCart(ctx, "test-cart")
	require.NoError(t, err)
	assert.Nil(t, got)
}
