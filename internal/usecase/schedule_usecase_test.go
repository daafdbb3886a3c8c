package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/delivery-tracker/internal/domain"
	apperrors "github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/usecase"
	"github.com/delivery-tracker/internal/usecase/dto"
)

func newScheduleUseCase(routing *MockRoutingRepository, now time.Time) *usecase.ScheduleUseCase {
	return usecase.NewScheduleUseCase(routing, domain.DefaultSchedulePolicy, fixedClock(now), zap.NewNop())
}

func TestScheduleUseCase_Compute(t *testing.T) {
	uc := newScheduleUseCase(&MockRoutingRepository{}, date(2024, 3, 1))

	t.Run("with activation date", func(t *testing.T) {
		resp, err := uc.Compute(dto.ScheduleRequest{ActivationDate: "2024-01-01", DistanceKm: 1400})
		require.NoError(t, err)

		assert.Equal(t, "2024-01-01", resp.ActivationDate)
		assert.Equal(t, "2024-01-02", resp.DispatchDate)
		assert.Equal(t, "2024-01-07", resp.ExpectedDate)
		assert.Equal(t, "2024-01-07", resp.EarliestDate)
		assert.Equal(t, "2024-01-08", resp.LatestDate)
		assert.Equal(t, 4, resp.TransitDays)
		assert.True(t, resp.Delayed)
	})

	t.Run("without activation date starts today", func(t *testing.T) {
		now := time.Date(2024, 3, 1, 18, 45, 0, 0, time.UTC)
		uc := newScheduleUseCase(&MockRoutingRepository{}, now)

		resp, err := uc.Compute(dto.ScheduleRequest{DistanceKm: 250})
		require.NoError(t, err)

		assert.Equal(t, "2024-03-01", resp.ActivationDate)
		assert.Equal(t, "2024-03-02", resp.DispatchDate)
		assert.Equal(t, "2024-03-04", resp.ExpectedDate)
		assert.Equal(t, 1, resp.TransitDays)
		assert.False(t, resp.Delayed)
	})

	t.Run("invalid activation date", func(t *testing.T) {
		_, err := uc.Compute(dto.ScheduleRequest{ActivationDate: "01/01/2024", DistanceKm: 10})
		assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
	})
}

func TestScheduleUseCase_Status(t *testing.T) {
	uc := newScheduleUseCase(&MockRoutingRepository{}, time.Date(2024, 1, 7, 23, 59, 0, 0, time.UTC))

	tests := []struct {
		expected string
		status   domain.DeliveryStatus
		delayed  bool
	}{
		{"2024-01-06", domain.DeliveryStatusDelayed, true},
		{"2024-01-07", domain.DeliveryStatusDelayed, true},
		{"2024-01-08", domain.DeliveryStatusOnTime, false},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			resp, err := uc.Status(dto.DeliveryStatusRequest{ExpectedDate: tt.expected})
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.delayed, resp.Delayed)
			assert.Equal(t, "2024-01-07", resp.Today)
			assert.Equal(t, tt.status.Label(), resp.Label)
		})
	}

	_, err := uc.Status(dto.DeliveryStatusRequest{ExpectedDate: "soon"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidRequest)
}

func TestScheduleUseCase_Estimate(t *testing.T) {
	ctx := context.Background()
	routing := &MockRoutingRepository{}
	uc := newScheduleUseCase(routing, date(2024, 1, 1))

	t.Run("routed distance", func(t *testing.T) {
		routing.On("FetchRoute", ctx, mumbai, delhi).Return(routedResult()).Once()

		activation := date(2024, 1, 1)
		est := uc.Estimate(ctx, &activation, mumbai, delhi)

		assert.Equal(t, domain.RouteSourceRouted, est.Route.Source)
		assert.Equal(t, date(2024, 1, 7), est.Schedule.ExpectedDate)
	})

	t.Run("unreachable router falls back to great-circle distance", func(t *testing.T) {
		routing.On("FetchRoute", ctx, mumbai, delhi).Return(domain.FailedRoute()).Once()

		est := uc.Estimate(ctx, nil, mumbai, delhi)

		assert.Equal(t, domain.RouteSourceFallback, est.Route.Source)
		assert.Equal(t, []domain.GeoPoint{mumbai, delhi}, est.Route.Path)
		assert.Equal(t, domain.TransitDays(est.Route.DistanceKm()), est.Schedule.TransitDays)
		assert.Equal(t, date(2024, 1, 1), est.Schedule.ActivationDate)
	})
}
