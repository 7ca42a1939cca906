package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/eventfinder-ai/backend/internal/domain/providers"
)

// OpenRoutesAdapter implements RoutesProvider against the OpenRouteService
// matrix API.
type OpenRoutesAdapter struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenRoutesAdapter creates an OpenRouteService routing adapter.
func NewOpenRoutesAdapter(apiKey, baseURL string) providers.RoutesProvider {
	return &OpenRoutesAdapter{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// TravelTimeMinutes returns the travel time between two points for the given
// profile. The matrix API takes coordinates as [longitude, latitude] pairs.
func (a *OpenRoutesAdapter) TravelTimeMinutes(ctx context.Context, from, to providers.Coordinates, mode string) (int, error) {
	if mode == "" {
		mode = providers.TravelModeDriving
	}

	body := map[string]interface{}{
		"locations": [][]float64{
			{from.Longitude, from.Latitude},
			{to.Longitude, to.Latitude},
		},
		"profile": mode,
		"metrics": []string{"duration"},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/v2/matrix/%s", a.baseURL, mode)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Authorization", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("openrouteservice api error: status %d", resp.StatusCode)
	}

	var result struct {
		Durations [][]float64 `json:"durations"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, err
	}

	if len(result.Durations) == 0 || len(result.Durations[0]) < 2 {
		return 0, fmt.Errorf("openrouteservice response missing durations matrix")
	}

	return int(result.Durations[0][1] / 60), nil
}
