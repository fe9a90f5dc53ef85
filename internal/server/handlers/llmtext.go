package handlers

import (
	"log/slog"
	"net/http"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/llmtext"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/metrics"
	"github.com/newstack-cloud/celerity-docs/internal/routes"
)

const markdownContentType = "text/markdown; charset=utf-8"

// LLMTextHandlers serves the plain-text page route and the llms.txt index.
type LLMTextHandlers struct {
	content      ContentProvider
	renderer     llmtext.Renderer
	title        string
	summary      string
	recorder     metrics.Recorder
	errorAdapter *errors.HTTPErrorAdapter
}

// NewLLMTextHandlers creates the plain-text handlers.
func NewLLMTextHandlers(content ContentProvider, renderer llmtext.Renderer, title, summary string, recorder metrics.Recorder) *LLMTextHandlers {
	return &LLMTextHandlers{
		content:      content,
		renderer:     renderer,
		title:        title,
		summary:      summary,
		recorder:     metrics.OrNoop(recorder),
		errorAdapter: errors.NewHTTPErrorAdapter(slog.Default()),
	}
}

// HandlePage serves GET /llms.mdx/{slug...}.
func (h *LLMTextHandlers) HandlePage(w http.ResponseWriter, r *http.Request) {
	slug := routes.ParsePath(r.PathValue("slug"))
	page, err := llmtext.Lookup(h.content.Current(), slug)
	if err != nil {
		h.recorder.IncLLMTextRequest(metrics.ResultNotFound)
		h.errorAdapter.WriteErrorResponse(w, r, err)
		return
	}
	etag := `"` + page.Fingerprint + `"`
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		h.recorder.IncLLMTextRequest(metrics.ResultCached)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	h.recorder.IncLLMTextRequest(metrics.ResultSuccess)
	slog.Debug("Serving page text", logfields.Slug(page.Slug.Join()))
	writeText(w, markdownContentType, h.renderer.Render(page))
}

// HandleIndex serves GET /llms.txt.
func (h *LLMTextHandlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	writeText(w, "text/plain; charset=utf-8", h.renderer.Index(h.title, h.summary, h.content.Current().Pages()))
}
