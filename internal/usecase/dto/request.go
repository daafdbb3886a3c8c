package dto

import "github.com/delivery-tracker/internal/domain"

// DateLayout - формат дат в API
const DateLayout = "2006-01-02"

// ScheduleRequest - расчет графика по дате активации и расстоянию
type ScheduleRequest struct {
	ActivationDate string  `json:"activationDate" validate:"omitempty,datetime=2006-01-02"`
	DistanceKm     float64 `json:"distanceKm" validate:"gte=0"`
}

// DeliveryStatusRequest - проверка просрочки ожидаемой даты
type DeliveryStatusRequest struct {
	ExpectedDate string `query:"expectedDate" json:"expectedDate" validate:"required,datetime=2006-01-02"`
}

// BatchEstimateRequest - прогноз доставки для нескольких заказов без отрисовки карты
type BatchEstimateRequest struct {
	OrderIDs []string `json:"orderIds" validate:"required,min=1,max=50,dive,required"`
}

// SaveCartRequest - полная замена содержимого корзины
type SaveCartRequest struct {
	Items []domain.CartItem `json:"items" validate:"dive"`
}
