package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/server/responses"
	"github.com/newstack-cloud/celerity-docs/internal/source"
	"github.com/newstack-cloud/celerity-docs/internal/version"
)

// MonitoringHandlers serves health and readiness endpoints.
type MonitoringHandlers struct {
	content       ContentProvider
	searchBackend string
	startTime     time.Time
	errorAdapter  *errors.HTTPErrorAdapter
}

// ContentProvider returns the active content snapshot.
type ContentProvider interface {
	Current() *source.Source
}

// NewMonitoringHandlers creates monitoring handlers. searchBackend may be
// empty when search is not configured.
func NewMonitoringHandlers(content ContentProvider, searchBackend string) *MonitoringHandlers {
	return &MonitoringHandlers{
		content:       content,
		searchBackend: searchBackend,
		startTime:     time.Now(),
		errorAdapter:  errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleHealthCheck reports liveness.
func (h *MonitoringHandlers) HandleHealthCheck(w http.ResponseWriter, r *http.Request) {
	health := &responses.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   version.Version,
		Uptime:    time.Since(h.startTime).Seconds(),
	}
	if err := writeJSONPretty(w, r, http.StatusOK, health); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write health response").Build())
	}
}

// HandleReadiness reports whether content is loaded.
func (h *MonitoringHandlers) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	src := h.content.Current()
	if src == nil || src.Len() == 0 {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.NewError(errors.CategoryRuntime, "no content loaded").Warning().Build())
		return
	}
	ready := &responses.ReadyResponse{
		Status:        "ready",
		Timestamp:     time.Now().UTC(),
		Pages:         src.Len(),
		SearchBackend: h.searchBackend,
	}
	if err := writeJSONPretty(w, r, http.StatusOK, ready); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write readiness response").Build())
	}
}
