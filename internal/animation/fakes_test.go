package animation

import (
	"sync"

	"github.com/delivery-tracker/internal/domain"
)

type fakeMarker struct {
	mu        sync.Mutex
	positions []domain.GeoPoint
	rotations []float64
	panicOn   bool
}

func (m *fakeMarker) SetPosition(p domain.GeoPoint) {
	if m.panicOn {
		panic("marker detached")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = append(m.positions, p)
}

func (m *fakeMarker) SetRotation(deg float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rotations = append(m.rotations, deg)
}

func (m *fakeMarker) updates() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.positions)
}

func (m *fakeMarker) last() domain.GeoPoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.positions[len(m.positions)-1]
}

type fakePolyline struct {
	mu     sync.Mutex
	points []domain.GeoPoint
	calls  int
}

func (p *fakePolyline) SetPoints(points []domain.GeoPoint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.points = append([]domain.GeoPoint(nil), points...)
	p.calls++
}
