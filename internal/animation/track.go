package animation

import (
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/delivery-tracker/internal/render"
	"go.uber.org/zap"
)

// track - покадровое состояние движения маркера по маршруту.
// Единственный писатель - цикл анимации своего Handle.
type track struct {
	route           []domain.GeoPoint
	marker          render.Marker
	trail           render.Polyline
	segmentDuration time.Duration
	trailSize       int
	trailStride     int
	logger          *zap.Logger

	index        int
	progress     float64
	segmentStart time.Time
	position     domain.GeoPoint
	heading      float64
	trailPoints  []domain.GeoPoint
}

func newTrack(
	route []domain.GeoPoint,
	marker render.Marker,
	trail render.Polyline,
	cfg Config,
	start time.Time,
	logger *zap.Logger,
) *track {
	segments := len(route) - 1
	return &track{
		route:           route,
		marker:          marker,
		trail:           trail,
		segmentDuration: cfg.RouteDuration / time.Duration(segments),
		trailSize:       cfg.TrailSize,
		trailStride:     TrailStride(len(route)),
		logger:          logger,
		segmentStart:    start,
		position:        route[0],
		trailPoints:     make([]domain.GeoPoint, 0, cfg.TrailSize),
	}
}

func (t *track) segments() int {
	return len(t.route) - 1
}

// step - один кадр анимации
func (t *track) step(now time.Time) {
	if t.index+1 >= len(t.route) {
		t.index = 0
	}
	i := t.index
	from, to := t.route[i], t.route[i+1]

	if !from.Valid() || !to.Valid() {
		t.logger.Warn("Skipping malformed waypoint",
			zap.String("code", errors.ErrAnimationDataFailure.Code),
			zap.Int("segment", i),
			zap.Stringer("from", from),
			zap.Stringer("to", to))
		t.advance(now)
		return
	}

	t.progress = 1
	if t.segmentDuration > 0 {
		t.progress = clamp01(float64(now.Sub(t.segmentStart)) / float64(t.segmentDuration))
	}

	t.position = Lerp(from, to, EaseInOutQuad(t.progress))
	t.marker.SetPosition(t.position)

	t.heading = Heading(from, to)
	t.marker.SetRotation(t.heading)

	if i%t.trailStride == 0 {
		t.pushTrail(t.position)
	}

	if t.progress >= 1 {
		t.advance(now)
	}
}

// safeStep не дает сбою одного кадра остановить анимацию
func (t *track) safeStep(now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("Animation frame failed, skipping segment",
				zap.String("code", errors.ErrAnimationDataFailure.Code),
				zap.Int("segment", t.index),
				zap.Any("panic", r))
			t.advance(now)
		}
	}()
	t.step(now)
}

func (t *track) advance(now time.Time) {
	t.index++
	if t.index >= t.segments() {
		t.index = 0
	}
	t.progress = 0
	t.segmentStart = now
}

func (t *track) pushTrail(p domain.GeoPoint) {
	t.trailPoints = append(t.trailPoints, p)
	if over := len(t.trailPoints) - t.trailSize; over > 0 {
		t.trailPoints = append(t.trailPoints[:0], t.trailPoints[over:]...)
	}
	t.trail.SetPoints(t.trailPoints)
}

func (t *track) snapshot() AnimationState {
	trail := make([]domain.GeoPoint, len(t.trailPoints))
	copy(trail, t.trailPoints)

	return AnimationState{
		SegmentIndex:    t.index,
		SegmentProgress: t.progress,
		Position:        t.position,
		Heading:         t.heading,
		Trail:           trail,
	}
}
