package render

import (
	"sync"

	"github.com/delivery-tracker/internal/domain"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Scene - рендерер без графики: хранит состояние карты в памяти и
// отдает его клиентам как GeoJSON. Безопасен для конкурентного доступа
// (анимация пишет из своей горутины, HTTP читает снимки).
type Scene struct {
	mu       sync.RWMutex
	center   domain.GeoPoint
	zoom     int
	markers  []*sceneMarker
	lines    []*scenePolyline
	popups   []popup
	bounds   *orb.Bound
	padding  int
	disposed bool
	version  uint64
}

type popup struct {
	at      domain.GeoPoint
	content string
}

// NewScene создает пустую карту
func NewScene() *Scene {
	return &Scene{zoom: DefaultZoom}
}

// SceneFactory - фабрика для MapRenderer
func SceneFactory() Factory {
	return func() (Renderer, error) {
		return NewScene(), nil
	}
}

func (s *Scene) SetView(center domain.GeoPoint, zoom int) {
	s.mutate(func() {
		s.center = center
		s.zoom = zoom
	})
}

func (s *Scene) PlaceMarker(at domain.GeoPoint, kind MarkerKind, popupText string) Marker {
	m := &sceneMarker{scene: s, kind: kind, popup: popupText, position: at}
	s.mutate(func() {
		s.markers = append(s.markers, m)
	})
	return m
}

func (s *Scene) DrawPolyline(points []domain.GeoPoint, style LineStyle) Polyline {
	l := &scenePolyline{scene: s, style: style, points: clonePoints(points)}
	s.mutate(func() {
		s.lines = append(s.lines, l)
	})
	return l
}

func (s *Scene) FitBounds(points []domain.GeoPoint, paddingPx int) {
	if len(points) == 0 {
		return
	}
	b := domain.LineString(points).Bound()
	s.mutate(func() {
		s.bounds = &b
		s.padding = paddingPx
	})
}

func (s *Scene) OpenPopup(at domain.GeoPoint, content string) {
	s.mutate(func() {
		s.popups = append(s.popups, popup{at: at, content: content})
	})
}

// Dispose освобождает карту; повторный вызов безопасен
func (s *Scene) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.disposed = true
	s.markers = nil
	s.lines = nil
	s.popups = nil
	s.bounds = nil
	s.version++
}

// Disposed сообщает, была ли карта освобождена
func (s *Scene) Disposed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.disposed
}

// Version растет на каждое изменение карты
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Padding - отступ последнего FitBounds в пикселях
func (s *Scene) Padding() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.padding
}

// Snapshot возвращает карту как FeatureCollection: маркеры и попапы - точки,
// линии - LineString. Окно просмотра уходит в bbox и extra members.
func (s *Scene) Snapshot() *geojson.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fc := geojson.NewFeatureCollection()

	for _, l := range s.lines {
		f := geojson.NewFeature(domain.LineString(l.points))
		f.Properties["type"] = "polyline"
		f.Properties["name"] = l.style.Name
		f.Properties["color"] = l.style.Color
		f.Properties["weight"] = l.style.Weight
		f.Properties["opacity"] = l.style.Opacity
		if l.style.DashArray != "" {
			f.Properties["dash_array"] = l.style.DashArray
		}
		fc.Append(f)
	}

	for _, m := range s.markers {
		f := geojson.NewFeature(m.position.Orb())
		f.Properties["type"] = "marker"
		f.Properties["kind"] = string(m.kind)
		f.Properties["rotation"] = m.rotation
		if m.popup != "" {
			f.Properties["popup"] = m.popup
		}
		fc.Append(f)
	}

	for _, p := range s.popups {
		f := geojson.NewFeature(p.at.Orb())
		f.Properties["type"] = "popup"
		f.Properties["content"] = p.content
		fc.Append(f)
	}

	if s.bounds != nil {
		fc.BBox = geojson.NewBBox(*s.bounds)
	}

	fc.ExtraMembers = geojson.Properties{
		"center":   []float64{s.center.Lon, s.center.Lat},
		"zoom":     s.zoom,
		"padding":  s.padding,
		"disposed": s.disposed,
		"version":  s.version,
	}

	return fc
}

func (s *Scene) mutate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	fn()
	s.version++
}

type sceneMarker struct {
	scene    *Scene
	kind     MarkerKind
	popup    string
	position domain.GeoPoint
	rotation float64
}

func (m *sceneMarker) SetPosition(p domain.GeoPoint) {
	m.scene.mutate(func() {
		m.position = p
	})
}

func (m *sceneMarker) SetRotation(degrees float64) {
	m.scene.mutate(func() {
		m.rotation = degrees
	})
}

type scenePolyline struct {
	scene  *Scene
	style  LineStyle
	points []domain.GeoPoint
}

func (l *scenePolyline) SetPoints(points []domain.GeoPoint) {
	cp := clonePoints(points)
	l.scene.mutate(func() {
		l.points = cp
	})
}

func clonePoints(points []domain.GeoPoint) []domain.GeoPoint {
	cp := make([]domain.GeoPoint, len(points))
	copy(cp, points)
	return cp
}
