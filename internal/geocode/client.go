package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/citywx/weather-lookup/internal/lookup"
	"github.com/citywx/weather-lookup/internal/observability"
)

// Client resolves place names via the Open-Meteo geocoding API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	circuit    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a geocoding client. The circuit breaker fails fast when
// the upstream misbehaves; there are no retries.
func NewClient(client *http.Client, metrics *observability.Metrics, logger *slog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "geocode",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: client,
		baseURL:    "https://geocoding-api.open-meteo.com",
		circuit:    cb,
		metrics:    metrics,
		logger:     logger,
	}
}

// Resolve returns the best match for a non-empty, trimmed place name.
// It requests a single result and takes the first entry. lookup.ErrNotFound
// is returned when the response carries no results; any other failure is a
// transport error.
func (c *Client) Resolve(ctx context.Context, name string) (lookup.ResolvedLocation, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")

	u := fmt.Sprintf("%s/v1/search?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return lookup.ResolvedLocation{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	result, err := c.circuit.Execute(func() (interface{}, error) {
		resp, execErr := c.httpClient.Do(req)
		if execErr != nil {
			return nil, execErr
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return resp, nil
	})
	c.metrics.UpstreamDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return lookup.ResolvedLocation{}, fmt.Errorf("geocoding request: %w", err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Country   string  `json:"country"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		return lookup.ResolvedLocation{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(payload.Results) == 0 {
		c.metrics.UpstreamRequests.WithLabelValues("geocode", "error").Inc()
		c.logger.Debug("geocoding returned no results", "query", name)
		return lookup.ResolvedLocation{}, fmt.Errorf("resolve %q: %w", name, lookup.ErrNotFound)
	}

	c.metrics.UpstreamRequests.WithLabelValues("geocode", "success").Inc()

	best := payload.Results[0]
	return lookup.ResolvedLocation{
		Name:      best.Name,
		Country:   best.Country,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
	}, nil
}
