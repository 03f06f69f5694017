package lookup

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/citywx/weather-lookup/internal/observability"
)

// ErrNotFound is returned by a Geocoder when the query matches no location.
// All other client failures are transport errors.
var ErrNotFound = errors.New("no matching location")

// FailureMessage is the single user-facing message for any failed lookup.
// Both not-found and transport failures collapse into it; the distinct kinds
// stay available internally for logs and metrics.
const FailureMessage = "Failed to fetch weather data! Please enter a valid city name."

// Geocoder resolves a free-text place name to its best-matching location.
type Geocoder interface {
	Resolve(ctx context.Context, name string) (ResolvedLocation, error)
}

// WeatherFetcher retrieves current conditions for a coordinate pair.
type WeatherFetcher interface {
	FetchCurrent(ctx context.Context, lat, lon float64) (CurrentConditions, error)
}

// StateStore holds the single ViewState/MapPosition pair the UI renders.
type StateStore interface {
	SetLoading()
	SetError(msg string)
	SetLoaded(res Result)
	View() ViewSnapshot
}

// PositionFor returns the map framing for a resolved location.
func PositionFor(loc ResolvedLocation) MapPosition {
	return MapPosition{Latitude: loc.Latitude, Longitude: loc.Longitude, Zoom: resolvedZoom}
}

// Service sequences geocoding and the weather fetch, and owns every
// ViewState transition.
type Service struct {
	geocoder Geocoder
	weather  WeatherFetcher
	states   StateStore
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// NewService creates a lookup Service.
func NewService(geocoder Geocoder, weather WeatherFetcher, states StateStore, metrics *observability.Metrics, logger *slog.Logger) *Service {
	return &Service{
		geocoder: geocoder,
		weather:  weather,
		states:   states,
		metrics:  metrics,
		logger:   logger,
	}
}

// Lookup runs one full lookup sequence for the given query and returns the
// resulting view snapshot. Blank queries are ignored without touching state.
// Overlapping lookups are not coordinated: the last terminal transition to
// land wins.
func (s *Service) Lookup(ctx context.Context, query string) ViewSnapshot {
	q := strings.TrimSpace(query)
	if q == "" {
		return s.states.View()
	}

	s.states.SetLoading()

	loc, err := s.geocoder.Resolve(ctx, q)
	if err != nil {
		outcome := "transport_error"
		if errors.Is(err, ErrNotFound) {
			outcome = "not_found"
		}
		s.logger.Warn("geocoding failed", "query", q, "kind", outcome, "error", err)
		s.metrics.Lookups.WithLabelValues(outcome).Inc()
		s.states.SetError(FailureMessage)
		return s.states.View()
	}

	cond, err := s.weather.FetchCurrent(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		s.logger.Warn("weather fetch failed",
			"query", q,
			"lat", loc.Latitude,
			"lon", loc.Longitude,
			"error", err,
		)
		s.metrics.Lookups.WithLabelValues("transport_error").Inc()
		s.states.SetError(FailureMessage)
		return s.states.View()
	}

	s.states.SetLoaded(Result{Location: loc, Conditions: cond})
	s.metrics.Lookups.WithLabelValues("loaded").Inc()
	s.logger.Info("lookup completed", "query", q, "place", loc.Name, "country", loc.Country)
	return s.states.View()
}

// Refresh re-fetches current conditions for the active resolved location.
// It is a no-op unless the view is loaded, and a failed refresh keeps the
// last good result instead of surfacing an error to the UI.
func (s *Service) Refresh(ctx context.Context) error {
	view := s.states.View()
	if view.Status != StatusLoaded || view.Result == nil {
		s.metrics.Refreshes.WithLabelValues("skipped").Inc()
		return nil
	}

	loc := view.Result.Location
	cond, err := s.weather.FetchCurrent(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		s.logger.Warn("refresh failed; keeping last good result", "place", loc.Name, "error", err)
		s.metrics.Refreshes.WithLabelValues("error").Inc()
		return err
	}

	s.states.SetLoaded(Result{Location: loc, Conditions: cond})
	s.metrics.Refreshes.WithLabelValues("success").Inc()
	return nil
}
