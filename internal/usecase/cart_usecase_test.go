package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery-tracker/internal/domain"
	apperrors "github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/usecase"
	"github.com/delivery-tracker/internal/usecase/dto"
)

const cartTTL = 24 * time.Hour

func TestCartUseCase(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("create assigns uuid", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("SetCart", ctx, mock.AnythingOfType("*domain.Cart"), cartTTL).Return(nil)
		uc := usecase.NewCartUseCase(cache, cartTTL, fixedClock(now), zap.NewNop())

		resp, err := uc.Create(ctx)
		require.NoError(t, err)

		_, err = uuid.Parse(resp.ID)
		assert.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Zero(t, resp.Total)
	})

	t.Run("missing cart is empty", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetCart", ctx, "c-1").Return(nil, nil)
		uc := usecase.NewCartUseCase(cache, cartTTL, fixedClock(now), zap.NewNop())

		resp, err := uc.Get(ctx, "c-1")
		require.NoError(t, err)
		assert.Equal(t, "c-1", resp.ID)
		assert.NotNil(t, resp.Items)
		assert.Empty(t, resp.Items)
		assert.Nil(t, resp.UpdatedAt)
	})

	t.Run("save replaces items and totals", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("SetCart", ctx, mock.MatchedBy(func(c *domain.Cart) bool {
			return c.ID == "c-1" && len(c.Items) == 2 && c.UpdatedAt.Equal(now)
		}), cartTTL).Return(nil)
		uc := usecase.NewCartUseCase(cache, cartTTL, fixedClock(now), zap.NewNop())

		resp, err := uc.Save(ctx, "c-1", dto.SaveCartRequest{Items: []domain.CartItem{
			{ProductID: "p-1", Quantity: 2, UnitPrice: 10.5},
			{ProductID: "p-2", Quantity: 1, UnitPrice: 4},
		}})
		require.NoError(t, err)
		assert.Equal(t, 25.0, resp.Total)
		require.NotNil(t, resp.UpdatedAt)
		cache.AssertExpectations(t)
	})

	t.Run("cache failure", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetCart", ctx, "c-1").Return(nil, errors.New("redis down"))
		uc := usecase.NewCartUseCase(cache, cartTTL, fixedClock(now), zap.NewNop())

		_, err := uc.Get(ctx, "c-1")
		assert.ErrorIs(t, err, apperrors.ErrCacheError)
	})

	t.Run("clear", func(t *testing.T) {
		cache := &MockCacheRepository{}
		cache.On("GetCart", ctx, "c-1").Return(&domain.Cart{ID: "c-1"}, nil)
		cache.On("DeleteCart", ctx, "c-1").Return(nil)
		cache.On("GetCart", ctx, "c-2").Return(nil, nil)
		uc := usecase.NewCartUseCase(cache, cartTTL, fixedClock(now), zap.NewNop())

		assert.NoError(t, uc.Clear(ctx, "c-1"))
		assert.ErrorIs(t, uc.Clear(ctx, "c-2"), apperrors.ErrCartNotFound)
		cache.AssertNumberOfCalls(t, "DeleteCart", 1)
	})
}
