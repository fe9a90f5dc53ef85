package httpserver

import (
	"net/http"

	"github.com/newstack-cloud/celerity-docs/internal/metrics"
	"github.com/newstack-cloud/celerity-docs/internal/search"
	"github.com/newstack-cloud/celerity-docs/internal/server/handlers"
)

// Options configures the runtime dependencies of the server.
type Options struct {
	// Content supplies the active content snapshot. Required.
	Content handlers.ContentProvider

	// Optional: search API. When nil, /api/search is not registered.
	Search *search.Service

	// Optional: metrics recorder and the /metrics handler.
	Recorder       metrics.Recorder
	MetricsHandler http.Handler
}
