package routing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/delivery-tracker/internal/config"
	"github.com/delivery-tracker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_SelectsProvider(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer server.Close()

	origin := domain.GeoPoint{Lat: 1, Lon: 2}
	destination := domain.GeoPoint{Lat: 3, Lon: 4}

	tests := []struct {
		provider   string
		pathPrefix string
	}{
		{config.RoutingProviderOSRM, "/route/v1/driving/"},
		{config.RoutingProviderMapbox, "/directions/v5/mapbox/driving/"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			cfg := &config.RoutingConfig{
				Provider:       tt.provider,
				BaseURL:        server.URL,
				Profile:        "driving",
				AccessToken:    "token",
				RequestTimeout: 5,
			}
			client, err := New(cfg, nil, 0, zap.NewNop())
			require.NoError(t, err)

			result := client.FetchRoute(context.Background(), origin, destination)
			assert.False(t, result.OK)
			assert.True(t, strings.HasPrefix(gotPath, tt.pathPrefix), gotPath)
		})
	}
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(&config.RoutingConfig{Provider: "here"}, nil, 0, zap.NewNop())
	assert.Error(t, err)
}
