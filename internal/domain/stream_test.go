package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestOrderActivatedEvent_Validate(t *testing.T) {
	mumbai := GeoPoint{Lat: 19.0760, Lon: 72.8777}
	delhi := GeoPoint{Lat: 28.6139, Lon: 77.2090}

	tests := []struct {
		name     string
		event    OrderActivatedEvent
		expected bool
	}{
		{
			name:     "complete event",
			event:    OrderActivatedEvent{OrderID: "801xx0001", Billing: mumbai, Shipping: delhi},
			expected: true,
		},
		{
			name:     "missing order id",
			event:    OrderActivatedEvent{Billing: mumbai, Shipping: delhi},
			expected: false,
		},
		{
			name:     "shipping out of range",
			event:    OrderActivatedEvent{OrderID: "801xx0001", Billing: mumbai, Shipping: GeoPoint{Lat: 128, Lon: 77}},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Validate())
		})
	}
}

func TestNewScheduleReadyEvent(t *testing.T) {
	activation := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC)
	estimate := Estimate(
		RouteResult{
			Geometry:       []GeoPoint{{Lat: 19.0760, Lon: 72.8777}, {Lat: 28.6139, Lon: 77.2090}},
			DistanceMeters: 1_400_000,
			OK:             true,
		},
		GeoPoint{Lat: 19.0760, Lon: 72.8777},
		GeoPoint{Lat: 28.6139, Lon: 77.2090},
		&activation,
		DefaultSchedulePolicy,
		now,
	)

	event := NewScheduleReadyEvent("801xx0001", estimate, now)

	assert.NotEqual(t, uuid.Nil, event.EventID)
	assert.Equal(t, "801xx0001", event.OrderID)
	assert.Equal(t, time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), event.ExpectedDate)
	assert.Equal(t, 4, event.TransitDays)
	assert.Equal(t, 1400.0, event.DistanceKm)
	assert.Equal(t, RouteSourceRouted, event.RouteSource)
	assert.Equal(t, now, event.EmittedAt)

	raw, err := json.Marshal(event)
	assert.NoError(t, err)
	var fields map[string]interface{}
	assert.NoError(t, json.Unmarshal(raw, &fields))
	assert.ElementsMatch(t, []string{
		"event_id", "order_id", "expected_date", "earliest_date", "latest_date",
		"transit_days", "distance_km", "route_source", "emitted_at",
	}, keys(fields))
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
