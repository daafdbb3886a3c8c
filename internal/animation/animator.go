// Package animation двигает маркер грузовика вдоль маршрута.
//
// Каждый запуск - отдельный Handle со своим циклом кадров. Animator
// гарантирует, что в любой момент маркером управляет не больше одного цикла:
// Start синхронно останавливает предыдущий Handle, прежде чем запустить новый.
package animation

import (
	"sync"
	"time"

	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/render"
	"go.uber.org/zap"
)

// State - состояние конкретного запуска анимации
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopped
	StateReplaced
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	case StateReplaced:
		return "replaced"
	default:
		return "idle"
	}
}

// AnimationState - снимок состояния анимации
type AnimationState struct {
	State           string            `json:"state"`
	IsRunning       bool              `json:"is_running"`
	SegmentIndex    int               `json:"current_segment_index"`
	SegmentProgress float64           `json:"segment_progress"`
	Position        domain.GeoPoint   `json:"position"`
	Heading         float64           `json:"heading"`
	Trail           []domain.GeoPoint `json:"trail"`
}

type Config struct {
	FrameInterval time.Duration
	RouteDuration time.Duration // время одного полного прохода маршрута
	TrailSize     int
}

// DefaultConfig - ~60 кадров в секунду, проход за 30 секунд, след из 20 точек
func DefaultConfig() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		RouteDuration: 30 * time.Second,
		TrailSize:     20,
	}
}

// Animator управляет анимацией одной пары маркер/след
type Animator struct {
	cfg    Config
	logger *zap.Logger
	now    func() time.Time

	mu      sync.Mutex
	current *Handle
}

type Option func(*Animator)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(a *Animator) {
		a.now = now
	}
}

// NewAnimator создает новый Animator
func NewAnimator(cfg Config, logger *zap.Logger, opts ...Option) *Animator {
	def := DefaultConfig()
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.RouteDuration <= 0 {
		cfg.RouteDuration = def.RouteDuration
	}
	if cfg.TrailSize <= 0 {
		cfg.TrailSize = def.TrailSize
	}

	a := &Animator{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Start останавливает текущую анимацию и запускает новую по маршруту.
// Маршрут короче двух точек не анимируется: возвращается Handle в состоянии Idle.
func (a *Animator) Start(route []domain.GeoPoint, marker render.Marker, trail render.Polyline) *Handle {
	h, animate := a.replace(route, marker, trail)
	if animate {
		go h.run(a.cfg.FrameInterval, a.now)
	}
	return h
}

// replace заменяет текущий Handle новым, не запуская цикл кадров.
// Для Handle с animate == true вызывающий обязан запустить run.
func (a *Animator) replace(route []domain.GeoPoint, marker render.Marker, trail render.Polyline) (*Handle, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		a.current.halt(StateReplaced)
		a.current = nil
	}

	if len(route) < 2 {
		a.logger.Info("Route has too few waypoints, animation skipped",
			zap.Int("waypoints", len(route)))
		h := newIdleHandle()
		a.current = h
		return h, false
	}

	h := &Handle{
		state: StateRunning,
		track: newTrack(route, marker, trail, a.cfg, a.now(), a.logger),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	a.current = h

	a.logger.Debug("Animation started",
		zap.Int("waypoints", len(route)),
		zap.Duration("segment_duration", h.track.segmentDuration),
		zap.Int("trail_stride", h.track.trailStride))

	return h, true
}

// Stop останавливает текущую анимацию; после возврата цикл гарантированно завершен
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.current != nil {
		a.current.Stop()
		a.current = nil
	}
}

// Current возвращает активный Handle или nil
func (a *Animator) Current() *Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Handle - отменяемый запуск анимации
type Handle struct {
	mu    sync.Mutex
	state State
	track *track

	stop     chan struct{}
	done     chan struct{}
	haltOnce sync.Once
}

func newIdleHandle() *Handle {
	done := make(chan struct{})
	close(done)
	return &Handle{
		state: StateIdle,
		stop:  make(chan struct{}),
		done:  done,
	}
}

// Stop останавливает цикл и ждет его завершения. Повторный вызов безопасен.
func (h *Handle) Stop() {
	h.halt(StateStopped)
}

// Done закрывается, когда цикл кадров завершен
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Snapshot - текущее состояние анимации
func (h *Handle) Snapshot() AnimationState {
	h.mu.Lock()
	defer h.mu.Unlock()

	var s AnimationState
	if h.track != nil {
		s = h.track.snapshot()
	}
	s.State = h.state.String()
	s.IsRunning = h.state == StateRunning
	return s
}

func (h *Handle) halt(final State) {
	h.haltOnce.Do(func() {
		h.mu.Lock()
		if h.state == StateRunning || h.state == StateIdle {
			h.state = final
		}
		h.mu.Unlock()
		close(h.stop)
	})
	<-h.done
}

func (h *Handle) run(interval time.Duration, now func() time.Time) {
	defer close(h.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
			if !h.frame(now()) {
				return
			}
		}
	}
}

// frame выполняет кадр, если запуск все еще в состоянии Running
func (h *Handle) frame(now time.Time) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state != StateRunning {
		return false
	}
	h.track.safeStep(now)
	return true
}
