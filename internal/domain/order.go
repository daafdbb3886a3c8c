package domain

import (
	"time"

	"github.com/delivery-tracker/internal/pkg/errors"
)

const OrderStatusActivated = "Activated"

// DeliveryLocation - данные заказа, нужные карте доставки.
// Координаты nullable: в CRM они могут быть не заполнены.
type DeliveryLocation struct {
	OrderID         string     `json:"order_id" db:"order_id"`
	OrderNumber     string     `json:"order_number" db:"order_number"`
	Status          string     `json:"status" db:"status"`
	ActivatedDate   *time.Time `json:"activated_date,omitempty" db:"activated_date"`
	AccountName     string     `json:"account_name" db:"account_name"`
	BillingAddress  string     `json:"billing_address" db:"billing_address"`
	ShippingAddress string     `json:"shipping_address" db:"shipping_address"`
	BillingLat      *float64   `json:"billing_lat,omitempty" db:"billing_lat"`
	BillingLon      *float64   `json:"billing_lon,omitempty" db:"billing_lon"`
	ShippingLat     *float64   `json:"shipping_lat,omitempty" db:"shipping_lat"`
	ShippingLon     *float64   `json:"shipping_lon,omitempty" db:"shipping_lon"`
}

// IsActivated - доставка стартует только для активированных заказов
func (l *DeliveryLocation) IsActivated() bool {
	return l.Status == OrderStatusActivated
}

// Coordinates возвращает пару billing (origin) / shipping (destination)
func (l *DeliveryLocation) Coordinates() (billing, shipping GeoPoint, err error) {
	if l.BillingLat == nil || l.BillingLon == nil || l.ShippingLat == nil || l.ShippingLon == nil {
		return GeoPoint{}, GeoPoint{}, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"order_id": l.OrderID,
			"reason":   "missing coordinates",
		})
	}

	billing = GeoPoint{Lat: *l.BillingLat, Lon: *l.BillingLon}
	shipping = GeoPoint{Lat: *l.ShippingLat, Lon: *l.ShippingLon}

	if !billing.Valid() || !shipping.Valid() {
		return GeoPoint{}, GeoPoint{}, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"order_id": l.OrderID,
			"reason":   "coordinates out of range",
		})
	}

	return billing, shipping, nil
}
