package domain

import (
	"fmt"

	"github.com/delivery-tracker/internal/pkg/utils"
	"github.com/paulmach/orb"
)

// GeoPoint - координата в градусах WGS84
type GeoPoint struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// Valid проверяет, что координаты конечны и лежат в допустимых диапазонах
func (p GeoPoint) Valid() bool {
	return utils.ValidateCoordinates(p.Lat, p.Lon)
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lon)
}

// Orb возвращает точку в порядке [lon, lat], как принято в GeoJSON
func (p GeoPoint) Orb() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// GeoPointFromOrb - обратное преобразование из [lon, lat]
func GeoPointFromOrb(p orb.Point) GeoPoint {
	return GeoPoint{Lat: p.Lat(), Lon: p.Lon()}
}

// Midpoint - арифметическая середина между двумя точками (центр карты)
func Midpoint(a, b GeoPoint) GeoPoint {
	return GeoPoint{
		Lat: (a.Lat + b.Lat) / 2,
		Lon: (a.Lon + b.Lon) / 2,
	}
}

// DistanceKm - расстояние по большому кругу
func DistanceKm(a, b GeoPoint) float64 {
	return utils.HaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon)
}

// LineString переводит последовательность точек в orb.LineString
func LineString(points []GeoPoint) orb.LineString {
	ls := make(orb.LineString, 0, len(points))
	for _, p := range points {
		ls = append(ls, p.Orb())
	}
	return ls
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// BoundsOf возвращает охватывающий прямоугольник; false для пустого набора
func BoundsOf(points []GeoPoint) (BoundingBox, bool) {
	if len(points) == 0 {
		return BoundingBox{}, false
	}

	b := LineString(points).Bound()
	return BoundingBox{
		MinLat: b.Min.Lat(),
		MinLon: b.Min.Lon(),
		MaxLat: b.Max.Lat(),
		MaxLon: b.Max.Lon(),
	}, true
}
