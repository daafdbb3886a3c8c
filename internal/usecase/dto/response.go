package dto

import (
	"time"

	"github.com/delivery-tracker/internal/domain"
)

// DeliveryInfo - блок "информация о доставке" под картой
type DeliveryInfo struct {
	RouteSource    domain.RouteSource `json:"routeSource"`
	DistanceKm     float64            `json:"distanceKm"`
	DriveHours     int                `json:"driveHours"`
	DriveMinutes   int                `json:"driveMinutes"`
	ProcessingDays int                `json:"processingDays"`
	TransitDays    int                `json:"transitDays"`
	BufferDays     int                `json:"bufferDays"`
	TotalDays      int                `json:"totalDays"`
	ActivationDate string             `json:"activationDate"`
	DispatchDate   string             `json:"dispatchDate"`
	ExpectedDate   string             `json:"expectedDate"`
	EarliestDate   string             `json:"earliestDate"`
	LatestDate     string             `json:"latestDate"`
}

// NewDeliveryInfo собирает DeliveryInfo из прогноза
func NewDeliveryInfo(est domain.DeliveryEstimate) *DeliveryInfo {
	info := NewScheduleInfo(est.Schedule)
	info.RouteSource = est.Route.Source
	info.DistanceKm = est.Route.DistanceKm()
	info.DriveHours, info.DriveMinutes = est.Route.DriveTime()
	return info
}

// NewScheduleInfo - только даты графика, без маршрута
func NewScheduleInfo(s domain.DeliverySchedule) *DeliveryInfo {
	return &DeliveryInfo{
		ProcessingDays: s.ProcessingDays,
		TransitDays:    s.TransitDays,
		BufferDays:     s.BufferDays,
		TotalDays:      s.TotalDays,
		ActivationDate: s.ActivationDate.Format(DateLayout),
		DispatchDate:   s.DispatchDate.Format(DateLayout),
		ExpectedDate:   s.ExpectedDate.Format(DateLayout),
		EarliestDate:   s.EarliestDate.Format(DateLayout),
		LatestDate:     s.LatestDate.Format(DateLayout),
	}
}

// TrackingResponse - состояние карты доставки заказа
type TrackingResponse struct {
	OrderID        string                `json:"orderId"`
	OrderNumber    string                `json:"orderNumber"`
	OrderStatus    string                `json:"orderStatus"`
	DeliveryStatus domain.DeliveryStatus `json:"deliveryStatus"`
	StatusLabel    string                `json:"statusLabel"`
	DeliveryInfo   *DeliveryInfo         `json:"deliveryInfo,omitempty"`
}

// ScheduleResponse - результат расчета графика
type ScheduleResponse struct {
	DeliveryInfo
	Delayed bool `json:"delayed"`
}

// DeliveryStatusResponse - результат проверки просрочки
type DeliveryStatusResponse struct {
	ExpectedDate string                `json:"expectedDate"`
	Today        string                `json:"today"`
	Delayed      bool                  `json:"delayed"`
	Status       domain.DeliveryStatus `json:"status"`
	Label        string                `json:"label"`
}

// BatchEstimateItem - прогноз по одному заказу; Error заполняется вместо DeliveryInfo
type BatchEstimateItem struct {
	OrderID        string                `json:"orderId"`
	DeliveryStatus domain.DeliveryStatus `json:"deliveryStatus"`
	DeliveryInfo   *DeliveryInfo         `json:"deliveryInfo,omitempty"`
	Error          string                `json:"error,omitempty"`
}

type BatchEstimateResponse struct {
	Results []BatchEstimateItem `json:"results"`
}

// CartResponse - корзина с итоговой суммой
type CartResponse struct {
	ID        string            `json:"id"`
	Items     []domain.CartItem `json:"items"`
	Total     float64           `json:"total"`
	UpdatedAt *time.Time        `json:"updatedAt,omitempty"`
}

// NewCartResponse - nil UpdatedAt у корзины, которая еще не сохранялась
func NewCartResponse(cart *domain.Cart) *CartResponse {
	resp := &CartResponse{
		ID:    cart.ID,
		Items: cart.Items,
		Total: cart.Total(),
	}
	if resp.Items == nil {
		resp.Items = []domain.CartItem{}
	}
	if !cart.UpdatedAt.IsZero() {
		updated := cart.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
