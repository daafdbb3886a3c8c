package usecase

import (
	"context"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CartUseCase - корзина товаров партнера, хранится в Redis
type CartUseCase struct {
	cache  repository.CacheRepository
	ttl    time.Duration
	now    Clock
	logger *zap.Logger
}

func NewCartUseCase(cache repository.CacheRepository, ttl time.Duration, now Clock, logger *zap.Logger) *CartUseCase {
	return &CartUseCase{
		cache:  cache,
		ttl:    ttl,
		now:    now,
		logger: logger,
	}
}

// Create заводит пустую корзину с новым идентификатором
func (uc *CartUseCase) Create(ctx context.Context) (*dto.CartResponse, error) {
	cart := &domain.Cart{
		ID:        uuid.New().String(),
		Items:     []domain.CartItem{},
		UpdatedAt: uc.now().UTC(),
	}
	if err := uc.cache.SetCart(ctx, cart, uc.ttl); err != nil {
		uc.logger.Error("Failed to create cart", zap.Error(err))
		return nil, errors.ErrCacheError
	}
	return dto.NewCartResponse(cart), nil
}

// Get возвращает корзину; несохраненная корзина - пустая
func (uc *CartUseCase) Get(ctx context.Context, cartID string) (*dto.CartResponse, error) {
	cart, err := uc.cache.GetCart(ctx, cartID)
	if err != nil {
		uc.logger.Error("Failed to load cart", zap.String("cart_id", cartID), zap.Error(err))
		return nil, errors.ErrCacheError
	}
	if cart == nil {
		cart = &domain.Cart{ID: cartID}
	}
	return dto.NewCartResponse(cart), nil
}

// Save заменяет содержимое корзины целиком
func (uc *CartUseCase) Save(ctx context.Context, cartID string, req dto.SaveCartRequest) (*dto.CartResponse, error) {
	items := req.Items
	if items == nil {
		items = []domain.CartItem{}
	}

	cart := &domain.Cart{
		ID:        cartID,
		Items:     items,
		UpdatedAt: uc.now().UTC(),
	}
	if err := uc.cache.SetCart(ctx, cart, uc.ttl); err != nil {
		uc.logger.Error("Failed to save cart", zap.String("cart_id", cartID), zap.Error(err))
		return nil, errors.ErrCacheError
	}

	uc.logger.Debug("Cart saved",
		zap.String("cart_id", cartID),
		zap.Int("items", len(items)))

	return dto.NewCartResponse(cart), nil
}

// Clear удаляет корзину; ErrCartNotFound если ее не было
func (uc *CartUseCase) Clear(ctx context.Context, cartID string) error {
	cart, err := uc.cache.GetCart(ctx, cartID)
	if err != nil {
		uc.logger.Error("Failed to load cart", zap.String("cart_id", cartID), zap.Error(err))
		return errors.ErrCacheError
	}
	if cart == nil {
		return errors.ErrCartNotFound.WithDetails(map[string]interface{}{"cart_id": cartID})
	}

	if err := uc.cache.DeleteCart(ctx, cartID); err != nil {
		uc.logger.Error("Failed to clear cart", zap.String("cart_id", cartID), zap.Error(err))
		return errors.ErrCacheError
	}
	return nil
}
