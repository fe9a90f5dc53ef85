// Package responses defines API response types used by celerity-docs HTTP handlers.
package responses

import (
	"time"

	"github.com/newstack-cloud/celerity-docs/internal/search"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Uptime    float64   `json:"uptime"`
}

// ReadyResponse reports whether the service can answer content and search requests.
type ReadyResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Pages         int       `json:"pages"`
	SearchBackend string    `json:"search_backend,omitempty"`
}

// SearchResponse is the /api/search payload.
type SearchResponse struct {
	Query   string         `json:"query"`
	Empty   bool           `json:"empty"`
	Results []search.Entry `json:"results"`
}
