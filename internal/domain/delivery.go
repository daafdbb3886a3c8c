package domain

import "time"

// DeliveryStatus - статус доставки для бейджа на странице заказа
type DeliveryStatus string

const (
	DeliveryStatusNotInitiated DeliveryStatus = "NOT_INITIATED"
	DeliveryStatusOnTime       DeliveryStatus = "ON_TIME"
	DeliveryStatusDelayed      DeliveryStatus = "DELAYED"
)

// Label - текст статуса для отображения
func (s DeliveryStatus) Label() string {
	switch s {
	case DeliveryStatusDelayed:
		return "Delayed"
	case DeliveryStatusOnTime:
		return "On Time"
	default:
		return "Delivery Not Initiated Yet"
	}
}

// ClassifyDelivery пересчитывается на каждый запрос: "сегодня" меняется со временем
func ClassifyDelivery(orderStatus string, expected *time.Time, today time.Time) DeliveryStatus {
	if orderStatus != OrderStatusActivated || expected == nil {
		return DeliveryStatusNotInitiated
	}
	if IsDelayed(*expected, today) {
		return DeliveryStatusDelayed
	}
	return DeliveryStatusOnTime
}

// DeliveryEstimate - маршрут и график, рассчитанные вместе
type DeliveryEstimate struct {
	Route    PlannedRoute     `json:"route"`
	Schedule DeliverySchedule `json:"schedule"`
}

// Estimate собирает прогноз из ответа маршрутизатора. Ошибка маршрутизации
// не блокирует график: расстояние берется по прямой.
func Estimate(
	result RouteResult,
	origin, destination GeoPoint,
	activation *time.Time,
	policy SchedulePolicy,
	today time.Time,
) DeliveryEstimate {
	route := PlanRoute(result, origin, destination)
	return DeliveryEstimate{
		Route:    route,
		Schedule: policy.Compute(activation, route.DistanceKm(), today),
	}
}
