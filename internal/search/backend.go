package search

import (
	"context"
	"strings"
)

// Defaults applied to queries built by the service.
const (
	DefaultHitsPerPage = 10
	DefaultDistinct    = 5
)

// Query is a search request.
type Query struct {
	Text        string
	HitsPerPage int
	Distinct    int
}

// NewQuery returns a query for text with the dialog defaults.
func NewQuery(text string) Query {
	return Query{Text: text, HitsPerPage: DefaultHitsPerPage, Distinct: DefaultDistinct}
}

// Blank reports whether the query has no searchable text.
func (q Query) Blank() bool {
	return strings.TrimSpace(q.Text) == ""
}

func (q Query) withDefaults() Query {
	if q.HitsPerPage <= 0 {
		q.HitsPerPage = DefaultHitsPerPage
	}
	if q.Distinct < 0 {
		q.Distinct = 0
	}
	return q
}

// Backend is a search index that can be queried and replaced.
type Backend interface {
	// Name identifies the backend in logs and metrics.
	Name() string
	// Search returns hits ordered by relevance.
	Search(ctx context.Context, q Query) ([]Hit, error)
	// Sync replaces the index contents with records.
	Sync(ctx context.Context, records []Record) error
}
