package repository

import (
	"context"

	"github.com/delivery-tracker/internal/domain"
)

// RoutingRepository определяет методы для работы с сервисом маршрутизации
type RoutingRepository interface {
	// FetchRoute возвращает автомобильный маршрут origin -> destination.
	// Никогда не возвращает ошибку: любой сбой превращается в RouteResult{OK: false}.
	FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) domain.RouteResult
}
