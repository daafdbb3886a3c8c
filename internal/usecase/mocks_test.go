package usecase_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/delivery-tracker/internal/domain"
)

type MockRoutingRepository struct {
	mock.Mock
}

func (m *MockRoutingRepository) FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) domain.RouteResult {
	args := m.Called(ctx, origin, destination)
	return args.Get(0).(domain.RouteResult)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) GetDeliveryLocation(ctx context.Context, orderID string) (*domain.DeliveryLocation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeliveryLocation), args.Error(1)
}

func (m *MockOrderRepository) ListDeliveryLocations(ctx context.Context, orderIDs []string) ([]domain.DeliveryLocation, error) {
	args := m.Called(ctx, orderIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeliveryLocation), args.Error(1)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	return m.Called(ctx, stream, data).Error(0)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheRepository) GetRoute(ctx context.Context, origin, destination domain.GeoPoint) (*domain.RouteResult, error) {
	args := m.Called(ctx, origin, destination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RouteResult), args.Error(1)
}

func (m *MockCacheRepository) SetRoute(ctx context.Context, origin, destination domain.GeoPoint, route domain.RouteResult, ttl time.Duration) error {
	return m.Called(ctx, origin, destination, route, ttl).Error(0)
}

func (m *MockCacheRepository) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *MockCacheRepository) SetCart(ctx context.Context, cart *domain.Cart, ttl time.Duration) error {
	return m.Called(ctx, cart, ttl).Error(0)
}

func (m *MockCacheRepository) DeleteCart(ctx context.Context, cartID string) error {
	return m.Called(ctx, cartID).Error(0)
}

// blockingRouting держит FetchRoute до закрытия release
type blockingRouting struct {
	started chan struct{}
	release chan struct{}
	result  domain.RouteResult
}

func newBlockingRouting(result domain.RouteResult) *blockingRouting {
	return &blockingRouting{
		started: make(chan struct{}),
		release: make(chan struct{}),
		result:  result,
	}
}

func (b *blockingRouting) FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) domain.RouteResult {
	close(b.started)
	<-b.release
	return b.result
}
