package repository

import (
	"context"

	"github.com/delivery-tracker/internal/domain"
)

// OrderRepository - доступ к данным заказов, нужным для доставки
type OrderRepository interface {
	// GetDeliveryLocation возвращает локации заказа; errors.ErrOrderNotFound если заказа нет
	GetDeliveryLocation(ctx context.Context, orderID string) (*domain.DeliveryLocation, error)

	// ListDeliveryLocations возвращает локации для набора заказов (отсутствующие пропускаются)
	ListDeliveryLocations(ctx context.Context, orderIDs []string) ([]domain.DeliveryLocation, error)
}
