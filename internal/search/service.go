package search

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/metrics"
)

// DefaultCacheSize is the number of distinct queries kept by the service.
const DefaultCacheSize = 256

// Result is a grouped search response. Empty is set for blank queries, which
// never reach the backend.
type Result struct {
	Query   string  `json:"query"`
	Empty   bool    `json:"empty"`
	Entries []Entry `json:"entries"`
}

// Service runs queries against a Backend and groups the hits.
type Service struct {
	backend     Backend
	cache       *lru.Cache[string, []Entry]
	recorder    metrics.Recorder
	hitsPerPage int
	distinct    int
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) ServiceOption {
	return func(s *Service) { s.recorder = metrics.OrNoop(r) }
}

// WithPaging overrides the per-query hit limit and per-page distinct limit.
func WithPaging(hitsPerPage, distinct int) ServiceOption {
	return func(s *Service) {
		if hitsPerPage > 0 {
			s.hitsPerPage = hitsPerPage
		}
		if distinct >= 0 {
			s.distinct = distinct
		}
	}
}

// NewService creates a service with an LRU cache of cacheSize entries. A
// cacheSize of zero or less uses DefaultCacheSize.
func NewService(backend Backend, cacheSize int, opts ...ServiceOption) (*Service, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New[string, []Entry](cacheSize)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryInternal, "failed to create search cache").Build()
	}
	s := &Service{
		backend:     backend,
		cache:       cache,
		recorder:    metrics.NoopRecorder{},
		hitsPerPage: DefaultHitsPerPage,
		distinct:    DefaultDistinct,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Backend returns the service's backend.
func (s *Service) Backend() Backend { return s.backend }

// Search queries the backend for text and groups the hits. Callers own the
// returned entries; cached results are copied on the way in and out.
func (s *Service) Search(ctx context.Context, text string) (Result, error) {
	key := strings.TrimSpace(text)
	name := s.backend.Name()
	if key == "" {
		s.recorder.IncSearchResult(name, metrics.ResultEmpty)
		return Result{Query: text, Empty: true, Entries: []Entry{}}, nil
	}
	if entries, ok := s.cache.Get(key); ok {
		s.recorder.IncSearchResult(name, metrics.ResultCached)
		return Result{Query: text, Entries: slices.Clone(entries)}, nil
	}

	start := time.Now()
	hits, err := s.backend.Search(ctx, Query{Text: key, HitsPerPage: s.hitsPerPage, Distinct: s.distinct})
	s.recorder.ObserveSearchDuration(name, time.Since(start))
	if err != nil {
		s.recorder.IncSearchResult(name, metrics.ResultFailed)
		slog.Warn("Search failed", logfields.Backend(name), logfields.Query(key), logfields.Error(err))
		return Result{}, err
	}

	entries := Group(hits)
	s.cache.Add(key, slices.Clone(entries))
	s.recorder.IncSearchResult(name, metrics.ResultSuccess)
	slog.Debug("Search complete", logfields.Backend(name), logfields.Query(key),
		logfields.Hits(len(hits)), logfields.Entries(len(entries)))
	return Result{Query: text, Entries: entries}, nil
}

// Sync replaces the backend's index with records and drops cached results.
func (s *Service) Sync(ctx context.Context, records []Record) error {
	name := s.backend.Name()
	start := time.Now()
	err := s.backend.Sync(ctx, records)
	s.recorder.ObserveSyncDuration(name, time.Since(start), err == nil)
	if err != nil {
		return err
	}
	s.cache.Purge()
	s.recorder.SetIndexedRecords(len(records))
	slog.Info("Search index synced", logfields.Backend(name), slog.Int("records", len(records)),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))
	return nil
}
