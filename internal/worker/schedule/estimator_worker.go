package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/worker"
	"go.uber.org/zap"
)

const (
	WorkerName = "schedule-estimator"

	defaultRetryDelay = 500 * time.Millisecond
)

// Estimator - маршрут и график по паре точек
type Estimator interface {
	Estimate(ctx context.Context, activation *time.Time, origin, destination domain.GeoPoint) domain.DeliveryEstimate
}

// Option - настройка EstimatorWorker
type Option func(*EstimatorWorker)

// WithRetryDelay - базовая пауза между попытками публикации
func WithRetryDelay(d time.Duration) Option {
	return func(w *EstimatorWorker) {
		w.retryDelay = d
	}
}

// WithClock подменяет источник времени для EmittedAt
func WithClock(now func() time.Time) Option {
	return func(w *EstimatorWorker) {
		w.now = now
	}
}

// EstimatorWorker читает активированные заказы и публикует рассчитанную дату доставки
type EstimatorWorker struct {
	*worker.BaseWorker
	streamRepo repository.StreamRepository
	estimator  Estimator
	maxRetries int
	retryDelay time.Duration
	now        func() time.Time
}

func NewEstimatorWorker(
	streamRepo repository.StreamRepository,
	estimator Estimator,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
	opts ...Option,
) *EstimatorWorker {
	if maxRetries < 1 {
		maxRetries = 1
	}

	w := &EstimatorWorker{
		BaseWorker: worker.NewBaseWorker(WorkerName, consumerGroup, logger),
		streamRepo: streamRepo,
		estimator:  estimator,
		maxRetries: maxRetries,
		retryDelay: defaultRetryDelay,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start блокирует до Stop, отмены ctx или закрытия стрима
func (w *EstimatorWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting schedule estimator",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamOrderActivated, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	consumeCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(consumeCtx, domain.StreamOrderActivated, w.ConsumerGroup(), w.ConsumerName())
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// handle обрабатывает одно сообщение. Битые сообщения подтверждаются сразу,
// иначе они навсегда останутся в pending.
func (w *EstimatorWorker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.OrderActivatedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse message, skipping", zap.Error(err))
		w.ack(ctx, msg.ID)
		return
	}

	if !event.Validate() {
		logger.Warn("Invalid order activated event, skipping",
			zap.String("order_id", event.OrderID),
			zap.Float64("billing_lat", event.Billing.Lat),
			zap.Float64("billing_lon", event.Billing.Lon),
			zap.Float64("shipping_lat", event.Shipping.Lat),
			zap.Float64("shipping_lon", event.Shipping.Lon))
		w.ack(ctx, msg.ID)
		return
	}

	est := w.estimator.Estimate(ctx, event.ActivatedDate, event.Billing, event.Shipping)
	ready := domain.NewScheduleReadyEvent(event.OrderID, est, w.now().UTC())

	if err := w.publish(ctx, ready); err != nil {
		// без ack: сообщение останется в pending группы
		logger.Error("Failed to publish schedule ready event",
			zap.String("order_id", event.OrderID),
			zap.Error(err))
		return
	}

	w.ack(ctx, msg.ID)

	logger.Info("Delivery schedule published",
		zap.String("order_id", event.OrderID),
		zap.String("expected_date", ready.ExpectedDate.Format("2006-01-02")),
		zap.String("route_source", string(ready.RouteSource)))
}

func (w *EstimatorWorker) publish(ctx context.Context, event domain.ScheduleReadyEvent) error {
	var err error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		if err = w.streamRepo.PublishToStream(ctx, domain.StreamScheduleReady, event); err == nil {
			return nil
		}
		if attempt == w.maxRetries {
			break
		}

		w.Logger().Warn("Publish failed, retrying",
			zap.Int("attempt", attempt),
			zap.Error(err))

		select {
		case <-time.After(time.Duration(attempt) * w.retryDelay):
		case <-ctx.Done():
			return ctx.Err()
		case <-w.StopChan():
			return fmt.Errorf("worker stopped: %w", err)
		}
	}
	return fmt.Errorf("publish failed after %d attempts: %w", w.maxRetries, err)
}

func (w *EstimatorWorker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamOrderActivated, w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}
