package usecase

import (
	"context"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/usecase/dto"
	"go.uber.org/zap"
)

// ScheduleUseCase - расчет графика доставки и статуса просрочки
type ScheduleUseCase struct {
	routing repository.RoutingRepository
	policy  domain.SchedulePolicy
	now     Clock
	logger  *zap.Logger
}

func NewScheduleUseCase(
	routing repository.RoutingRepository,
	policy domain.SchedulePolicy,
	now Clock,
	logger *zap.Logger,
) *ScheduleUseCase {
	return &ScheduleUseCase{
		routing: routing,
		policy:  policy,
		now:     now,
		logger:  logger,
	}
}

// today - все календарные вычисления ведутся в UTC
func (uc *ScheduleUseCase) today() time.Time {
	return uc.now().UTC()
}

// Compute считает график по дате активации (пусто - сегодня) и расстоянию
func (uc *ScheduleUseCase) Compute(req dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	var activation *time.Time
	if req.ActivationDate != "" {
		t, err := parseDate(req.ActivationDate)
		if err != nil {
			return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
				"activationDate": "datetime",
			})
		}
		activation = &t
	}

	today := uc.today()
	schedule := uc.policy.Compute(activation, req.DistanceKm, today)

	return &dto.ScheduleResponse{
		DeliveryInfo: *dto.NewScheduleInfo(schedule),
		Delayed:      domain.IsDelayed(schedule.ExpectedDate, today),
	}, nil
}

// Status классифицирует ожидаемую дату относительно сегодняшней
func (uc *ScheduleUseCase) Status(req dto.DeliveryStatusRequest) (*dto.DeliveryStatusResponse, error) {
	expected, err := parseDate(req.ExpectedDate)
	if err != nil {
		return nil, errors.ErrInvalidRequest.WithDetails(map[string]interface{}{
			"expectedDate": "datetime",
		})
	}

	today := uc.today()
	status := domain.ClassifyDelivery(domain.OrderStatusActivated, &expected, today)

	return &dto.DeliveryStatusResponse{
		ExpectedDate: expected.Format(dto.DateLayout),
		Today:        today.Format(dto.DateLayout),
		Delayed:      status == domain.DeliveryStatusDelayed,
		Status:       status,
		Label:        status.Label(),
	}, nil
}

// Estimate - маршрут и график без отрисовки карты (воркер, пакетные запросы)
func (uc *ScheduleUseCase) Estimate(
	ctx context.Context,
	activation *time.Time,
	origin, destination domain.GeoPoint,
) domain.DeliveryEstimate {
	result := uc.routing.FetchRoute(ctx, origin, destination)
	est := domain.Estimate(result, origin, destination, activation, uc.policy, uc.today())

	uc.logger.Debug("Delivery estimated",
		zap.String("route_source", string(est.Route.Source)),
		zap.Float64("distance_km", est.Route.DistanceKm()),
		zap.Int("transit_days", est.Schedule.TransitDays))

	return est
}

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dto.DateLayout, s, time.UTC)
}
