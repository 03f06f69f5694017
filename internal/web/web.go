// Package web carries the embedded single-page UI: the input shell and the
// Leaflet map view, both driven by the JSON state endpoint.
package web

import _ "embed"

//go:embed static/index.html
var IndexHTML []byte
