package usecase_test

import (
	"time"

	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/delivery-tracker/internal/animation"
	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/render"
	"github.com/delivery-tracker/internal/usecase"
)

var (
	mumbai = domain.GeoPoint{Lat: 19.0760, Lon: 72.8777}
	delhi  = domain.GeoPoint{Lat: 28.6139, Lon: 77.2090}
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) usecase.Clock {
	return func() time.Time { return t }
}

func routedResult() domain.RouteResult {
	return domain.RouteResult{
		Geometry:        []domain.GeoPoint{mumbai, {Lat: 23.0, Lon: 75.0}, delhi},
		DistanceMeters:  1400000,
		DurationSeconds: 25*3600 + 30*60,
		OK:              true,
	}
}

func fastAnimation() animation.Config {
	return animation.Config{
		FrameInterval: time.Millisecond,
		RouteDuration: 50 * time.Millisecond,
		TrailSize:     20,
	}
}

// sceneRecorder запоминает все созданные сцены
type sceneRecorder struct {
	scenes []*render.Scene
}

func (r *sceneRecorder) factory() render.Factory {
	return func() (render.Renderer, error) {
		s := render.NewScene()
		r.scenes = append(r.scenes, s)
		return s, nil
	}
}

func (r *sceneRecorder) last() *render.Scene {
	return r.scenes[len(r.scenes)-1]
}

func newMapRenderer(
	routing repository.RoutingRepository,
	publisher repository.EventPublisher,
	rec *sceneRecorder,
	now time.Time,
) *usecase.MapRenderer {
	return usecase.NewMapRenderer(
		routing,
		publisher,
		rec.factory(),
		fastAnimation(),
		domain.DefaultSchedulePolicy,
		fixedClock(now),
		zap.NewNop(),
	)
}

func activatedLocation(id string, activated time.Time) *domain.DeliveryLocation {
	bLat, bLon := mumbai.Lat, mumbai.Lon
	sLat, sLon := delhi.Lat, delhi.Lon
	return &domain.DeliveryLocation{
		OrderID:         id,
		OrderNumber:     "0000" + id,
		Status:          domain.OrderStatusActivated,
		ActivatedDate:   &activated,
		AccountName:     "Delhi Traders",
		BillingAddress:  "Andheri East, Mumbai",
		ShippingAddress: "Connaught Place, New Delhi",
		BillingLat:      &bLat,
		BillingLon:      &bLon,
		ShippingLat:     &sLat,
		ShippingLon:     &sLon,
	}
}

// features отбирает элементы сцены по значению свойства type/name/kind
func features(fc *geojson.FeatureCollection, key, value string) []*geojson.Feature {
	var out []*geojson.Feature
	for _, f := range fc.Features {
		if v, ok := f.Properties[key].(string); ok && v == value {
			out = append(out, f)
		}
	}
	return out
}
