package meteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citywx/weather-lookup/internal/observability"
)

func testClient(baseURL string) *Client {
	c := NewClient(&http.Client{Timeout: 5 * time.Second}, observability.NewMetricsForTesting())
	c.baseURL = baseURL
	return c
}

func TestClient_FetchCurrent_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "48.856600", r.URL.Query().Get("latitude"))
		assert.Equal(t, "2.352200", r.URL.Query().Get("longitude"))
		assert.Equal(t, currentFields, r.URL.Query().Get("current"))

		w.Header().Set("Content-Type", "application/json")
		_, err := w.Write([]byte(`{
			"current": {
				"temperature_2m": 18.0,
				"relative_humidity_2m": 55,
				"precipitation": 0,
				"rain": 0,
				"snowfall": 0,
				"wind_speed_10m": 10
			}
		}`))
		require.NoError(t, err)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	cond, err := c.FetchCurrent(context.Background(), 48.8566, 2.3522)
	require.NoError(t, err)

	assert.Equal(t, 18.0, cond.Temperature)
	assert.Equal(t, 55.0, cond.RelativeHumidity)
	assert.Equal(t, 0.0, cond.Precipitation)
	assert.Equal(t, 10.0, cond.WindSpeed)
}

func TestClient_FetchCurrent_MissingCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"latitude": 48.86, "longitude": 2.35}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchCurrent(context.Background(), 48.8566, 2.3522)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing current")
}

func TestClient_FetchCurrent_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	_, err := c.FetchCurrent(context.Background(), 48.8566, 2.3522)
	require.Error(t, err)
}
