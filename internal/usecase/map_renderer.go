package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/delivery-tracker/internal/animation"
	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/render"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// Clock - источник текущего времени
type Clock func() time.Time

// RenderRequest - все, что нужно для отрисовки карты доставки одного заказа
type RenderRequest struct {
	OrderID         string
	Origin          domain.GeoPoint
	Destination     domain.GeoPoint
	Activation      *time.Time
	OriginName      string
	AccountName     string
	BillingAddress  string
	ShippingAddress string
}

// MapRenderer - контекст отрисовки одной карты доставки.
// Повторный Render уничтожает предыдущую карту и анимацию; ответ маршрутизатора,
// пришедший после более нового Render или Teardown, отбрасывается по поколению.
type MapRenderer struct {
	routing   repository.RoutingRepository
	publisher repository.EventPublisher
	factory   render.Factory
	policy    domain.SchedulePolicy
	now       Clock
	logger    *zap.Logger

	mu         sync.Mutex
	generation uint64
	renderer   render.Renderer
	animator   *animation.Animator
	estimate   *domain.DeliveryEstimate
}

// NewMapRenderer создает контекст отрисовки. publisher может быть nil.
func NewMapRenderer(
	routing repository.RoutingRepository,
	publisher repository.EventPublisher,
	factory render.Factory,
	animCfg animation.Config,
	policy domain.SchedulePolicy,
	now Clock,
	logger *zap.Logger,
) *MapRenderer {
	return &MapRenderer{
		routing:   routing,
		publisher: publisher,
		factory:   factory,
		policy:    policy,
		now:       now,
		logger:    logger,
		animator:  animation.NewAnimator(animCfg, logger, animation.WithClock(now)),
	}
}

// Render рисует карту: маркеры сразу, маршрут и анимацию после ответа маршрутизатора.
// Ошибка маршрутизации не возвращается: рисуется прямая линия, график считается по ней.
func (m *MapRenderer) Render(ctx context.Context, req RenderRequest) (*domain.DeliveryEstimate, error) {
	gen, err := m.begin(req)
	if err != nil {
		return nil, err
	}

	result := m.routing.FetchRoute(ctx, req.Origin, req.Destination)

	estimate, err := m.finish(gen, req, result)
	if err != nil {
		return nil, err
	}

	m.publish(ctx, req.OrderID, *estimate)
	return estimate, nil
}

// begin сносит предыдущую карту и ставит маркеры на новую
func (m *MapRenderer) begin(req RenderRequest) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.resetLocked()

	r, err := m.factory()
	if err != nil {
		m.logger.Error("Failed to create map renderer",
			zap.String("order_id", req.OrderID),
			zap.Error(err))
		return 0, errors.ErrResourceLoadFailure
	}
	m.renderer = r

	r.SetView(domain.Midpoint(req.Origin, req.Destination), render.DefaultZoom)
	r.PlaceMarker(req.Origin, render.MarkerOrigin, originPopup(req))
	r.PlaceMarker(req.Destination, render.MarkerDestination, destinationPopup(req))

	return m.generation, nil
}

func (m *MapRenderer) finish(gen uint64, req RenderRequest, result domain.RouteResult) (*domain.DeliveryEstimate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if gen != m.generation || m.renderer == nil {
		m.logger.Debug("Discarding stale route response", zap.String("order_id", req.OrderID))
		return nil, errors.ErrRenderSuperseded
	}

	// календарь в UTC, как в ScheduleUseCase: иначе прогнозы карты и API расходятся
	estimate := domain.Estimate(result, req.Origin, req.Destination, req.Activation, m.policy, m.now().UTC())
	path := estimate.Route.Path

	if estimate.Route.Source == domain.RouteSourceRouted {
		m.renderer.DrawPolyline(path, render.RouteStyle)
		m.renderer.FitBounds(path, render.RoutePadding)
		m.renderer.OpenPopup(domain.Midpoint(req.Origin, req.Destination), distancePopup(estimate.Route))
	} else {
		m.renderer.DrawPolyline(path, render.FallbackStyle)
		m.renderer.FitBounds(path, render.FallbackPadding)
	}

	truck := m.renderer.PlaceMarker(path[0], render.MarkerTruck, "")
	trail := m.renderer.DrawPolyline(nil, render.TrailStyle)
	m.animator.Start(path, truck, trail)

	m.estimate = &estimate

	m.logger.Info("Delivery map rendered",
		zap.String("order_id", req.OrderID),
		zap.String("route_source", string(estimate.Route.Source)),
		zap.Float64("distance_km", estimate.Route.DistanceKm()),
		zap.Time("expected_date", estimate.Schedule.ExpectedDate))

	return &estimate, nil
}

// publish - событие schedule-ready; сбой публикации не влияет на карту
func (m *MapRenderer) publish(ctx context.Context, orderID string, estimate domain.DeliveryEstimate) {
	if m.publisher == nil {
		return
	}
	event := domain.NewScheduleReadyEvent(orderID, estimate, m.now().UTC())
	if err := m.publisher.PublishToStream(ctx, domain.StreamScheduleReady, event); err != nil {
		m.logger.Warn("Failed to publish schedule-ready event",
			zap.String("order_id", orderID),
			zap.Error(err))
	}
}

// Teardown останавливает анимацию и освобождает карту. Запрос маршрута в полете
// после этого будет отброшен.
func (m *MapRenderer) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.generation++
	m.resetLocked()
}

func (m *MapRenderer) resetLocked() {
	m.animator.Stop()
	if m.renderer != nil {
		m.renderer.Dispose()
		m.renderer = nil
	}
	m.estimate = nil
}

// Estimate - прогноз последнего завершенного рендера
func (m *MapRenderer) Estimate() (*domain.DeliveryEstimate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.estimate, m.estimate != nil
}

// Snapshot - текущая сцена в GeoJSON, если рендерер это поддерживает
func (m *MapRenderer) Snapshot() (*geojson.FeatureCollection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.renderer.(render.Snapshotter)
	if !ok {
		return nil, errors.ErrViewNotFound
	}
	return s.Snapshot(), nil
}

// Animation - состояние анимации грузовика
func (m *MapRenderer) Animation() animation.AnimationState {
	h := m.animator.Current()
	if h == nil {
		return animation.AnimationState{State: animation.StateStopped.String()}
	}
	return h.Snapshot()
}

func originPopup(req RenderRequest) string {
	return fmt.Sprintf("<b>Billing / Origin</b><br>%s<br>%s", req.OriginName, req.BillingAddress)
}

func destinationPopup(req RenderRequest) string {
	return fmt.Sprintf("<b>Shipping / Destination</b><br>%s<br>%s", req.AccountName, req.ShippingAddress)
}

func distancePopup(r domain.PlannedRoute) string {
	h, mins := r.DriveTime()
	return fmt.Sprintf("🚚 %.1f km<br>%dh %dm drive", r.DistanceKm(), h, mins)
}
