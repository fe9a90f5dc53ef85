package handlers

import (
	"log/slog"
	"net/http"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/search"
	"github.com/newstack-cloud/celerity-docs/internal/server/responses"
)

// MaxQueryLength is the longest query, in bytes, the search API accepts.
const MaxQueryLength = 512

// SearchHandlers serves the search API.
type SearchHandlers struct {
	service      *search.Service
	errorAdapter *errors.HTTPErrorAdapter
}

// NewSearchHandlers creates search handlers backed by service.
func NewSearchHandlers(service *search.Service) *SearchHandlers {
	return &SearchHandlers{
		service:      service,
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandleSearch serves GET /api/search?q=. Each request is answered
// independently; clients discard responses for superseded queries.
func (h *SearchHandlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if len(q) > MaxQueryLength {
		h.errorAdapter.WriteErrorResponse(w, r, errors.ValidationError("query too long").
			WithContext("max_length", MaxQueryLength).
			Build())
		return
	}

	res, err := h.service.Search(r.Context(), q)
	if err != nil {
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	payload := &responses.SearchResponse{Query: res.Query, Empty: res.Empty, Results: res.Entries}
	if err := writeJSONPretty(w, r, http.StatusOK, payload); err != nil {
		h.errorAdapter.WriteErrorResponse(w, r,
			errors.WrapError(err, errors.CategoryInternal, "failed to write search response").Build())
	}
}
