// Package render описывает адаптер карты: маркеры, линии и окно просмотра.
// Логика анимации и построения карты работает только через эти интерфейсы
// и не зависит от конкретной картографической библиотеки.
package render

import (
	"github.com/delivery-tracker/internal/domain"
	"github.com/paulmach/orb/geojson"
)

// MarkerKind - тип маркера на карте
type MarkerKind string

const (
	MarkerOrigin      MarkerKind = "origin"
	MarkerDestination MarkerKind = "destination"
	MarkerTruck       MarkerKind = "truck"
)

// LineStyle - стиль ломаной
type LineStyle struct {
	Name      string  `json:"name"`
	Color     string  `json:"color"`
	Weight    int     `json:"weight"`
	Opacity   float64 `json:"opacity"`
	DashArray string  `json:"dash_array,omitempty"`
}

var (
	RouteStyle    = LineStyle{Name: "route", Color: "#e85d04", Weight: 4, Opacity: 0.8, DashArray: "8, 4"}
	FallbackStyle = LineStyle{Name: "fallback", Color: "#e85d04", Weight: 3, Opacity: 0.7, DashArray: "10, 8"}
	TrailStyle    = LineStyle{Name: "trail", Color: "#1a1a2e", Weight: 3, Opacity: 0.5}
)

const (
	RoutePadding    = 50
	FallbackPadding = 60
	DefaultZoom     = 6
)

// Marker - ссылка на конкретный маркер, возвращается при создании
type Marker interface {
	SetPosition(p domain.GeoPoint)
	// SetRotation задает поворот иконки в градусах от севера по часовой стрелке
	SetRotation(degrees float64)
}

// Polyline - ссылка на конкретную ломаную
type Polyline interface {
	SetPoints(points []domain.GeoPoint)
}

// Renderer - адаптер карты. После Dispose все вызовы (включая вызовы
// через ранее выданные Marker/Polyline) игнорируются.
type Renderer interface {
	SetView(center domain.GeoPoint, zoom int)
	PlaceMarker(at domain.GeoPoint, kind MarkerKind, popup string) Marker
	DrawPolyline(points []domain.GeoPoint, style LineStyle) Polyline
	FitBounds(points []domain.GeoPoint, paddingPx int)
	OpenPopup(at domain.GeoPoint, content string)
	Dispose()
}

// Snapshotter - рендерер, умеющий отдать текущее состояние карты
type Snapshotter interface {
	Snapshot() *geojson.FeatureCollection
}

// Factory создает новый экземпляр карты на каждый рендер
type Factory func() (Renderer, error)
