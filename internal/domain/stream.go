package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamOrderActivated = "stream:order:activated"
	StreamScheduleReady  = "stream:delivery:schedule-ready"
)

// OrderActivatedEvent - входящее событие: заказ активирован, нужен прогноз доставки
type OrderActivatedEvent struct {
	OrderID       string     `json:"order_id"`
	ActivatedDate *time.Time `json:"activated_date,omitempty"`
	Billing       GeoPoint   `json:"billing"`
	Shipping      GeoPoint   `json:"shipping"`
}

// Validate проверяет обязательные поля события
func (e *OrderActivatedEvent) Validate() bool {
	return e.OrderID != "" && e.Billing.Valid() && e.Shipping.Valid()
}

// ScheduleReadyEvent - уведомление о рассчитанной дате доставки.
// Потребители (страница заказа) строят по нему бейдж статуса.
type ScheduleReadyEvent struct {
	EventID      uuid.UUID   `json:"event_id"`
	OrderID      string      `json:"order_id"`
	ExpectedDate time.Time   `json:"expected_date"`
	EarliestDate time.Time   `json:"earliest_date"`
	LatestDate   time.Time   `json:"latest_date"`
	TransitDays  int         `json:"transit_days"`
	DistanceKm   float64     `json:"distance_km"`
	RouteSource  RouteSource `json:"route_source"`
	EmittedAt    time.Time   `json:"emitted_at"`
}

// NewScheduleReadyEvent собирает событие из прогноза
func NewScheduleReadyEvent(orderID string, estimate DeliveryEstimate, now time.Time) ScheduleReadyEvent {
	return ScheduleReadyEvent{
		EventID:      uuid.New(),
		OrderID:      orderID,
		ExpectedDate: estimate.Schedule.ExpectedDate,
		EarliestDate: estimate.Schedule.EarliestDate,
		LatestDate:   estimate.Schedule.LatestDate,
		TransitDays:  estimate.Schedule.TransitDays,
		DistanceKm:   estimate.Route.DistanceKm(),
		RouteSource:  estimate.Route.Source,
		EmittedAt:    now,
	}
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
