package lookup

// ResolvedLocation is the geocoder's best match for a place-name query.
// Immutable once produced; replaced wholesale on each successful lookup.
type ResolvedLocation struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is a single-point-in-time weather snapshot. Values are
// passed through exactly as the upstream API reports them; no local unit
// conversion.
type CurrentConditions struct {
	Temperature      float64 `json:"temperature_2m"`
	RelativeHumidity float64 `json:"relative_humidity_2m"`
	Precipitation    float64 `json:"precipitation"`
	Rain             float64 `json:"rain"`
	Snowfall         float64 `json:"snowfall"`
	WindSpeed        float64 `json:"wind_speed_10m"`
}

// Result combines the resolved location with its current conditions. This is
// the unit the UI renders.
type Result struct {
	Location   ResolvedLocation  `json:"location"`
	Conditions CurrentConditions `json:"conditions"`
}

// Status enumerates the mutually exclusive view states.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusLoaded  Status = "loaded"
)

// MapPosition is the coordinate pair and zoom the map view centers on.
type MapPosition struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
}

// Default map framing: a wide world view before any lookup, a city-level
// zoom once a location resolves.
var (
	DefaultMapPosition = MapPosition{Latitude: 20, Longitude: 0, Zoom: 2}
	resolvedZoom       = 10
)

// ViewSnapshot is the full UI-facing state: exactly one status at a time,
// with Message set only for error and Result set only for loaded.
type ViewSnapshot struct {
	Status   Status      `json:"status"`
	Message  string      `json:"message,omitempty"`
	Result   *Result     `json:"result,omitempty"`
	Position MapPosition `json:"position"`
}
