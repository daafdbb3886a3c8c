package domain

import "github.com/delivery-tracker/internal/pkg/utils"

// RouteResult - ответ сервиса маршрутизации.
// При OK == false геометрия всегда пустая, а расстояние и длительность нулевые.
type RouteResult struct {
	Geometry        []GeoPoint `json:"geometry"`
	DistanceMeters  float64    `json:"distance_meters"`
	DurationSeconds float64    `json:"duration_seconds"`
	OK              bool       `json:"ok"`
}

// FailedRoute - единый результат для любой ошибки маршрутизации
func FailedRoute() RouteResult {
	return RouteResult{Geometry: []GeoPoint{}}
}

// RouteSource - откуда взята геометрия маршрута
type RouteSource string

const (
	RouteSourceRouted   RouteSource = "route"
	RouteSourceFallback RouteSource = "fallback"
)

// PlannedRoute - маршрут, по которому рисуется карта и считается доставка.
// Всегда содержит хотя бы две точки.
type PlannedRoute struct {
	Path            []GeoPoint  `json:"path"`
	DistanceMeters  float64     `json:"distance_meters"`
	DurationSeconds float64     `json:"duration_seconds"`
	Source          RouteSource `json:"source"`
}

// PlanRoute выбирает геометрию: маршрут от сервиса или прямую линию.
// Для прямой линии расстояние берется по большому кругу, длительность неизвестна.
func PlanRoute(result RouteResult, origin, destination GeoPoint) PlannedRoute {
	if result.OK && len(result.Geometry) >= 2 {
		return PlannedRoute{
			Path:            result.Geometry,
			DistanceMeters:  result.DistanceMeters,
			DurationSeconds: result.DurationSeconds,
			Source:          RouteSourceRouted,
		}
	}

	return PlannedRoute{
		Path:           []GeoPoint{origin, destination},
		DistanceMeters: DistanceKm(origin, destination) * 1000,
		Source:         RouteSourceFallback,
	}
}

// DistanceKm округляется до десятых, как показывается пользователю
func (r PlannedRoute) DistanceKm() float64 {
	return utils.Round(r.DistanceMeters/1000, 1)
}

// DriveTime раскладывает длительность на часы и минуты
func (r PlannedRoute) DriveTime() (hours, minutes int) {
	total := int(r.DurationSeconds)
	return total / 3600, (total % 3600) / 60
}
