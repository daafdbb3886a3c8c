package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/delivery-tracker/internal/config"
	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/pkg/errors"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"
)

// routeResponse - ответ OSRM /route/v1
type routeResponse struct {
	Code    string  `json:"code"`
	Message string  `json:"message,omitempty"`
	Routes  []route `json:"routes"`
}

type route struct {
	Geometry geojson.Geometry `json:"geometry"`
	Distance float64          `json:"distance"`
	Duration float64          `json:"duration"`
}

type client struct {
	httpClient *http.Client
	baseURL    string
	profile    string
	logger     *zap.Logger
}

// NewClient создает клиент для OSRM-совместимого сервиса маршрутизации
func NewClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		profile: cfg.Profile,
		logger:  logger,
	}
}

// FetchRoute возвращает маршрут origin -> destination.
// Любая ошибка логируется и превращается в FailedRoute.
func (c *client) FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) domain.RouteResult {
	result, err := c.fetch(ctx, origin, destination)
	if err != nil {
		c.logger.Warn("Routing failed, falling back to straight line",
			zap.String("code", errors.ErrRoutingFailure.Code),
			zap.Stringer("origin", origin),
			zap.Stringer("destination", destination),
			zap.Error(err))
		return domain.FailedRoute()
	}
	return result
}

func (c *client) fetch(ctx context.Context, origin, destination domain.GeoPoint) (domain.RouteResult, error) {
	// OSRM ждет координаты в порядке lon,lat
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=full&geometries=geojson",
		c.baseURL,
		c.profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	c.logger.Debug("Calling routing service", zap.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return domain.RouteResult{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.RouteResult{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return domain.RouteResult{}, fmt.Errorf("routing API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	result, err := ParseRouteResponse(resp.Body)
	if err != nil {
		return domain.RouteResult{}, err
	}

	c.logger.Debug("Routing call successful",
		zap.Int("points", len(result.Geometry)),
		zap.Float64("distance_m", result.DistanceMeters),
		zap.Float64("duration_s", result.DurationSeconds))

	return result, nil
}

// ParseRouteResponse разбирает тело ответа в формате OSRM /route/v1.
// Тот же формат отдает Mapbox Directions API.
func ParseRouteResponse(body io.Reader) (domain.RouteResult, error) {
	var routeResp routeResponse
	if err := json.NewDecoder(body).Decode(&routeResp); err != nil {
		return domain.RouteResult{}, fmt.Errorf("failed to decode response: %w", err)
	}

	if routeResp.Code != "Ok" {
		return domain.RouteResult{}, fmt.Errorf("routing API returned code %q: %s", routeResp.Code, routeResp.Message)
	}
	if len(routeResp.Routes) == 0 {
		return domain.RouteResult{}, fmt.Errorf("routing API returned no routes")
	}

	first := routeResp.Routes[0]
	if !finiteNonNegative(first.Distance) || !finiteNonNegative(first.Duration) {
		return domain.RouteResult{}, fmt.Errorf("invalid distance %v or duration %v", first.Distance, first.Duration)
	}

	geometry, err := decodeLine(first.Geometry)
	if err != nil {
		return domain.RouteResult{}, err
	}

	return domain.RouteResult{
		Geometry:        geometry,
		DistanceMeters:  first.Distance,
		DurationSeconds: first.Duration,
		OK:              true,
	}, nil
}

// decodeLine достает LineString из GeoJSON-геометрии маршрута
func decodeLine(g geojson.Geometry) ([]domain.GeoPoint, error) {
	ls, ok := g.Geometry().(orb.LineString)
	if !ok {
		return nil, fmt.Errorf("unexpected geometry type %q", g.Type)
	}
	if len(ls) == 0 {
		return nil, fmt.Errorf("empty route geometry")
	}

	points := make([]domain.GeoPoint, 0, len(ls))
	for _, p := range ls {
		gp := domain.GeoPointFromOrb(p)
		if !gp.Valid() {
			return nil, fmt.Errorf("invalid route coordinate %v", p)
		}
		points = append(points, gp)
	}
	return points, nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
