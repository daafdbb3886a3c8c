package usecase

import (
	"context"
	stderrors "errors"
	"sync"
	"time"

	"github.com/delivery-tracker/internal/animation"
	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/usecase/dto"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// ViewFactory создает новый контекст отрисовки для заказа
type ViewFactory func() *MapRenderer

// TrackingUseCase - карты доставки по заказам, по одной на заказ
type TrackingUseCase struct {
	orderRepo  repository.OrderRepository
	scheduleUC *ScheduleUseCase
	newView    ViewFactory
	originName string
	now        Clock
	logger     *zap.Logger

	mu    sync.Mutex
	views map[string]*trackedView
}

// trackedView - карта заказа и время последнего обращения к ней
type trackedView struct {
	renderer *MapRenderer
	lastSeen time.Time
}

func NewTrackingUseCase(
	orderRepo repository.OrderRepository,
	scheduleUC *ScheduleUseCase,
	newView ViewFactory,
	originName string,
	now Clock,
	logger *zap.Logger,
) *TrackingUseCase {
	return &TrackingUseCase{
		orderRepo:  orderRepo,
		scheduleUC: scheduleUC,
		newView:    newView,
		originName: originName,
		now:        now,
		logger:     logger,
		views:      make(map[string]*trackedView),
	}
}

// Track загружает заказ и (пере)рисует его карту доставки
func (uc *TrackingUseCase) Track(ctx context.Context, orderID string) (*dto.TrackingResponse, error) {
	loc, err := uc.loadLocation(ctx, orderID)
	if err != nil {
		return nil, err
	}

	resp := &dto.TrackingResponse{
		OrderID:     loc.OrderID,
		OrderNumber: loc.OrderNumber,
		OrderStatus: loc.Status,
	}

	// карта нужна только активированным заказам
	if !loc.IsActivated() {
		uc.dropView(orderID)
		resp.DeliveryStatus = domain.DeliveryStatusNotInitiated
		resp.StatusLabel = resp.DeliveryStatus.Label()
		return resp, nil
	}

	origin, destination, err := loc.Coordinates()
	if err != nil {
		uc.logger.Warn("Order has invalid coordinates",
			zap.String("order_id", orderID),
			zap.Error(err))
		return nil, err
	}

	estimate, err := uc.view(orderID).Render(ctx, RenderRequest{
		OrderID:         loc.OrderID,
		Origin:          origin,
		Destination:     destination,
		Activation:      loc.ActivatedDate,
		OriginName:      uc.originName,
		AccountName:     loc.AccountName,
		BillingAddress:  loc.BillingAddress,
		ShippingAddress: loc.ShippingAddress,
	})
	if err != nil {
		return nil, err
	}

	resp.DeliveryStatus = domain.ClassifyDelivery(loc.Status, &estimate.Schedule.ExpectedDate, uc.now().UTC())
	resp.StatusLabel = resp.DeliveryStatus.Label()
	resp.DeliveryInfo = dto.NewDeliveryInfo(*estimate)

	return resp, nil
}

// Stop закрывает карту заказа
func (uc *TrackingUseCase) Stop(orderID string) error {
	if !uc.dropView(orderID) {
		return errors.ErrViewNotFound.WithDetails(map[string]interface{}{"order_id": orderID})
	}
	uc.logger.Info("Delivery map closed", zap.String("order_id", orderID))
	return nil
}

// Snapshot - текущая сцена карты заказа в GeoJSON
func (uc *TrackingUseCase) Snapshot(orderID string) (*geojson.FeatureCollection, error) {
	v, ok := uc.lookup(orderID)
	if !ok {
		return nil, errors.ErrViewNotFound.WithDetails(map[string]interface{}{"order_id": orderID})
	}
	return v.Snapshot()
}

// Animation - состояние анимации грузовика на карте заказа
func (uc *TrackingUseCase) Animation(orderID string) (*animation.AnimationState, error) {
	v, ok := uc.lookup(orderID)
	if !ok {
		return nil, errors.ErrViewNotFound.WithDetails(map[string]interface{}{"order_id": orderID})
	}
	state := v.Animation()
	return &state, nil
}

// BatchEstimate - прогнозы для списка заказов без карт. Ошибки отдельных заказов
// попадают в их элементы и не валят весь ответ.
func (uc *TrackingUseCase) BatchEstimate(ctx context.Context, req dto.BatchEstimateRequest) (*dto.BatchEstimateResponse, error) {
	locs, err := uc.orderRepo.ListDeliveryLocations(ctx, req.OrderIDs)
	if err != nil {
		uc.logger.Error("Failed to list delivery locations", zap.Error(err))
		return nil, errors.ErrDataFetchFailure
	}

	byID := make(map[string]domain.DeliveryLocation, len(locs))
	for _, l := range locs {
		byID[l.OrderID] = l
	}

	today := uc.now().UTC()
	results := make([]dto.BatchEstimateItem, 0, len(req.OrderIDs))
	for _, id := range req.OrderIDs {
		item := dto.BatchEstimateItem{OrderID: id}

		loc, ok := byID[id]
		switch {
		case !ok:
			item.Error = errors.ErrOrderNotFound.Code
		case !loc.IsActivated():
			item.DeliveryStatus = domain.DeliveryStatusNotInitiated
		default:
			origin, destination, err := loc.Coordinates()
			if err != nil {
				item.Error = errors.ErrInvalidCoordinates.Code
				break
			}
			est := uc.scheduleUC.Estimate(ctx, loc.ActivatedDate, origin, destination)
			item.DeliveryStatus = domain.ClassifyDelivery(loc.Status, &est.Schedule.ExpectedDate, today)
			item.DeliveryInfo = dto.NewDeliveryInfo(est)
		}

		results = append(results, item)
	}

	return &dto.BatchEstimateResponse{Results: results}, nil
}

// Shutdown закрывает все карты; после возврата ни одна анимация не работает
func (uc *TrackingUseCase) Shutdown() {
	uc.mu.Lock()
	views := uc.views
	uc.views = make(map[string]*trackedView)
	uc.mu.Unlock()

	for _, v := range views {
		v.renderer.Teardown()
	}
	uc.logger.Info("All delivery maps closed", zap.Int("count", len(views)))
}

// ActiveViews - количество открытых карт
func (uc *TrackingUseCase) ActiveViews() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.views)
}

func (uc *TrackingUseCase) loadLocation(ctx context.Context, orderID string) (*domain.DeliveryLocation, error) {
	loc, err := uc.orderRepo.GetDeliveryLocation(ctx, orderID)
	if err == nil {
		return loc, nil
	}

	if stderrors.Is(err, errors.ErrOrderNotFound) {
		return nil, err
	}

	uc.logger.Error("Failed to fetch delivery location",
		zap.String("order_id", orderID),
		zap.Error(err))
	return nil, errors.ErrDataFetchFailure
}

// EvictIdle закрывает карты, к которым не обращались дольше maxIdle.
// Возвращает число закрытых карт.
func (uc *TrackingUseCase) EvictIdle(maxIdle time.Duration) int {
	now := uc.now()

	uc.mu.Lock()
	var idle []*MapRenderer
	for id, v := range uc.views {
		if now.Sub(v.lastSeen) > maxIdle {
			idle = append(idle, v.renderer)
			delete(uc.views, id)
		}
	}
	uc.mu.Unlock()

	for _, v := range idle {
		v.Teardown()
	}
	if len(idle) > 0 {
		uc.logger.Info("Idle delivery maps closed", zap.Int("count", len(idle)))
	}
	return len(idle)
}

// RunEviction вызывает EvictIdle каждые interval до отмены ctx
func (uc *TrackingUseCase) RunEviction(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			uc.EvictIdle(maxIdle)
		}
	}
}

func (uc *TrackingUseCase) view(orderID string) *MapRenderer {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	v, ok := uc.views[orderID]
	if !ok {
		v = &trackedView{renderer: uc.newView()}
		uc.views[orderID] = v
	}
	v.lastSeen = uc.now()
	return v.renderer
}

func (uc *TrackingUseCase) lookup(orderID string) (*MapRenderer, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	v, ok := uc.views[orderID]
	if !ok {
		return nil, false
	}
	v.lastSeen = uc.now()
	return v.renderer, true
}

func (uc *TrackingUseCase) dropView(orderID string) bool {
	uc.mu.Lock()
	v, ok := uc.views[orderID]
	delete(uc.views, orderID)
	uc.mu.Unlock()

	if ok {
		v.renderer.Teardown()
	}
	return ok
}
