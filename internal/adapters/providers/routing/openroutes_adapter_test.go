package routing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

func TestOpenRoutesAdapter_TravelTimeMinutes(t *testing.T) {
	var gotPath string
	var gotBody struct {
		Locations [][]float64 `json:"locations"`
		Profile   string      `json:"profile"`
		Metrics   []string    `json:"metrics"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Write([]byte(`{"durations": [[0, 1530], [1530, 0]]}`))
	}))
	defer server.Close()

	adapter := NewOpenRoutesAdapter("ors-key", server.URL)

	home := providers.Coordinates{Latitude: 37.7749, Longitude: -122.4194}
	venue := providers.Coordinates{Latitude: 37.8044, Longitude: -122.2712}
	minutes, err := adapter.TravelTimeMinutes(context.Background(), home, venue, providers.TravelModeDriving)

	require.NoError(t, err)
	assert.Equal(t, 25, minutes)
	assert.Equal(t, "/v2/matrix/driving-car", gotPath)
	assert.Equal(t, "driving-car", gotBody.Profile)
	assert.Equal(t, []string{"duration"}, gotBody.Metrics)

	// Longitude first, per the matrix API coordinate order.
	require.Len(t, gotBody.Locations, 2)
	assert.Equal(t, []float64{-122.4194, 37.7749}, gotBody.Locations[0])
}

func TestOpenRoutesAdapter_DefaultsToDriving(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"durations": [[0, 60], [60, 0]]}`))
	}))
	defer server.Close()

	adapter := NewOpenRoutesAdapter("ors-key", server.URL)

	_, err := adapter.TravelTimeMinutes(context.Background(), providers.Coordinates{}, providers.Coordinates{}, "")

	require.NoError(t, err)
	assert.Equal(t, "/v2/matrix/driving-car", gotPath)
}

func TestOpenRoutesAdapter_MalformedMatrix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"durations": []}`))
	}))
	defer server.Close()

	adapter := NewOpenRoutesAdapter("ors-key", server.URL)

	_, err := adapter.TravelTimeMinutes(context.Background(), providers.Coordinates{}, providers.Coordinates{}, "driving-car")

	require.Error(t, err)
}
