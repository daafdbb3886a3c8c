package animation

import (
	"math"

	"github.com/delivery-tracker/internal/domain"
)

// EaseInOutQuad - квадратичное сглаживание с симметричным разгоном и торможением
func EaseInOutQuad(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Lerp интерполирует широту и долготу независимо
func Lerp(from, to domain.GeoPoint, t float64) domain.GeoPoint {
	return domain.GeoPoint{
		Lat: from.Lat + (to.Lat-from.Lat)*t,
		Lon: from.Lon + (to.Lon-from.Lon)*t,
	}
}

// Heading - курс от from к to в градусах относительно севера: atan2(Δlon, Δlat).
// Для отрезка нулевой длины возвращает 0.
func Heading(from, to domain.GeoPoint) float64 {
	dLat := to.Lat - from.Lat
	dLon := to.Lon - from.Lon
	if dLat == 0 && dLon == 0 {
		return 0
	}
	return math.Atan2(dLon, dLat) * 180 / math.Pi
}

// TrailStride - шаг по индексам точек, с которым пополняется след
func TrailStride(waypoints int) int {
	if stride := waypoints / 100; stride > 1 {
		return stride
	}
	return 1
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
