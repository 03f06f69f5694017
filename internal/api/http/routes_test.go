package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citywx/weather-lookup/internal/lookup"
	"github.com/citywx/weather-lookup/internal/observability"
	"github.com/citywx/weather-lookup/internal/state"
)

type geocoderFunc func(ctx context.Context, name string) (lookup.ResolvedLocation, error)

func (f geocoderFunc) Resolve(ctx context.Context, name string) (lookup.ResolvedLocation, error) {
	return f(ctx, name)
}

type weatherFunc func(ctx context.Context, lat, lon float64) (lookup.CurrentConditions, error)

func (f weatherFunc) FetchCurrent(ctx context.Context, lat, lon float64) (lookup.CurrentConditions, error) {
	return f(ctx, lat, lon)
}

func testApp(g lookup.Geocoder, w lookup.WeatherFetcher) (*fiber.App, *state.Store) {
	app := fiber.New()
	states := state.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := lookup.NewService(g, w, states, observability.NewMetricsForTesting(), logger)
	RegisterRoutes(app, svc, states)
	return app, states
}

func staticApp() (*fiber.App, *state.Store) {
	return testApp(
		geocoderFunc(func(context.Context, string) (lookup.ResolvedLocation, error) {
			return lookup.ResolvedLocation{Name: "Paris", Country: "France", Latitude: 48.8566, Longitude: 2.3522}, nil
		}),
		weatherFunc(func(context.Context, float64, float64) (lookup.CurrentConditions, error) {
			return lookup.CurrentConditions{Temperature: 18, RelativeHumidity: 55, WindSpeed: 10}, nil
		}),
	)
}

func TestLookupRoute_Success(t *testing.T) {
	app, _ := staticApp()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lookup?city=Paris", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view lookup.ViewSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))

	assert.Equal(t, lookup.StatusLoaded, view.Status)
	require.NotNil(t, view.Result)
	assert.Equal(t, "Paris", view.Result.Location.Name)
	assert.Equal(t, "France", view.Result.Location.Country)
	assert.Equal(t, 18.0, view.Result.Conditions.Temperature)
	assert.Equal(t, 48.8566, view.Position.Latitude)
}

func TestLookupRoute_MissingCity(t *testing.T) {
	app, states := staticApp()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lookup", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, lookup.StatusIdle, states.View().Status)
}

func TestLookupRoute_WhitespaceCityIgnored(t *testing.T) {
	called := false
	app, states := testApp(
		geocoderFunc(func(context.Context, string) (lookup.ResolvedLocation, error) {
			called = true
			return lookup.ResolvedLocation{}, nil
		}),
		weatherFunc(func(context.Context, float64, float64) (lookup.CurrentConditions, error) {
			called = true
			return lookup.CurrentConditions{}, nil
		}),
	)

	target := "/api/v1/lookup?city=" + url.QueryEscape("   ")
	req := httptest.NewRequest(http.MethodPost, target, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.False(t, called, "no outbound request for whitespace-only input")
	assert.Equal(t, lookup.StatusIdle, states.View().Status)
}

func TestLookupRoute_FailurePropagatesFixedMessage(t *testing.T) {
	app, _ := testApp(
		geocoderFunc(func(_ context.Context, name string) (lookup.ResolvedLocation, error) {
			return lookup.ResolvedLocation{}, lookup.ErrNotFound
		}),
		weatherFunc(func(context.Context, float64, float64) (lookup.CurrentConditions, error) {
			return lookup.CurrentConditions{}, nil
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/lookup?city=Zzzznotacity", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view lookup.ViewSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))

	assert.Equal(t, lookup.StatusError, view.Status)
	assert.Equal(t, lookup.FailureMessage, view.Message)
	assert.Equal(t, lookup.DefaultMapPosition, view.Position)
}

func TestStateRoute_ReflectsLastLookup(t *testing.T) {
	app, _ := staticApp()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view lookup.ViewSnapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, lookup.StatusIdle, view.Status)
	assert.Equal(t, lookup.DefaultMapPosition, view.Position)

	lookupReq := httptest.NewRequest(http.MethodPost, "/api/v1/lookup?city=Paris", nil)
	_, err = app.Test(lookupReq)
	require.NoError(t, err)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, lookup.StatusLoaded, view.Status)
}
