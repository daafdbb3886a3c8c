package mapbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/delivery-tracker/internal/config"
	"github.com/delivery-tracker/internal/domain"
	"github.com/delivery-tracker/internal/domain/repository"
	"github.com/delivery-tracker/internal/infrastructure/osrm"
	"github.com/delivery-tracker/internal/pkg/errors"
	"go.uber.org/zap"
)

type client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	profile     string
	logger      *zap.Logger
}

// NewClient создает клиент Mapbox Directions API.
// Ответ Directions совместим с OSRM, разбор общий.
func NewClient(cfg *config.RoutingConfig, logger *zap.Logger) repository.RoutingRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL:     cfg.BaseURL,
		accessToken: cfg.AccessToken,
		profile:     cfg.Profile,
		logger:      logger,
	}
}

func (c *client) FetchRoute(ctx context.Context, origin, destination domain.GeoPoint) domain.RouteResult {
	result, err := c.fetch(ctx, origin, destination)
	if err != nil {
		c.logger.Warn("Mapbox routing failed, falling back to straight line",
			zap.String("code", errors.ErrRoutingFailure.Code),
			zap.Stringer("origin", origin),
			zap.Stringer("destination", destination),
			zap.Error(err))
		return domain.FailedRoute()
	}
	return result
}

func (c *client) fetch(ctx context.Context, origin, destination domain.GeoPoint) (domain.RouteResult, error) {
	if c.accessToken == "" {
		return domain.RouteResult{}, fmt.Errorf("mapbox access token is not configured")
	}

	path := fmt.Sprintf("%s/directions/v5/mapbox/%s/%f,%f;%f,%f",
		c.baseURL,
		c.profile,
		origin.Lon, origin.Lat,
		destination.Lon, destination.Lat,
	)

	// токен в лог не пишем
	c.logger.Debug("Calling Mapbox Directions API", zap.String("path", path))

	url := path + "?overview=full&geometries=geojson&access_token=" + c.accessToken

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
		return domain.RouteResult{}, fmt.Errorf("mapbox API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	result, err := osrm.ParseRouteResponse(resp.Body)
	if err != nil {
		return domain.RouteResult{}, err
	}

	c.logger.Debug("Mapbox Directions call successful",
		zap.Int("points", len(result.Geometry)),
		zap.Float64("distance_m", result.DistanceMeters))

	return result, nil
}
