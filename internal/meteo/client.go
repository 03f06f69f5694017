package meteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"

	"github.com/citywx/weather-lookup/internal/lookup"
	"github.com/citywx/weather-lookup/internal/observability"
)

// currentFields is the fixed field list requested from the forecast API.
const currentFields = "temperature_2m,precipitation,rain,snowfall,relative_humidity_2m,wind_speed_10m"

// Client fetches current conditions from the Open-Meteo forecast API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	circuit    *gobreaker.CircuitBreaker
	metrics    *observability.Metrics
}

// NewClient creates a weather client with its own circuit breaker.
func NewClient(client *http.Client, metrics *observability.Metrics) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		httpClient: client,
		baseURL:    "https://api.open-meteo.com",
		circuit:    cb,
		metrics:    metrics,
	}
}

// FetchCurrent retrieves a current-conditions snapshot for the given
// coordinates. Coordinates come from a resolved location and are trusted as
// given. Values are returned exactly as the API reports them.
func (c *Client) FetchCurrent(ctx context.Context, lat, lon float64) (lookup.CurrentConditions, error) {
	values := url.Values{}
	values.Set("latitude", fmt.Sprintf("%f", lat))
	values.Set("longitude", fmt.Sprintf("%f", lon))
	values.Set("current", currentFields)

	u := fmt.Sprintf("%s/v1/forecast?%s", c.baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return lookup.CurrentConditions{}, fmt.Errorf("create request: %w", err)
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
	c.metrics.UpstreamDuration.WithLabelValues("weather").Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return lookup.CurrentConditions{}, fmt.Errorf("weather request: %w", err)
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	var payload struct {
		Current *lookup.CurrentConditions `json:"current"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return lookup.CurrentConditions{}, fmt.Errorf("decode weather response: %w", err)
	}
	if payload.Current == nil {
		c.metrics.UpstreamRequests.WithLabelValues("weather", "error").Inc()
		return lookup.CurrentConditions{}, fmt.Errorf("weather response missing current conditions")
	}

	c.metrics.UpstreamRequests.WithLabelValues("weather", "success").Inc()
	return *payload.Current, nil
}
