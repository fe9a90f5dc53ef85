package search

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/algolia/algoliasearch-client-go/v4/algolia/call"
	algolia "github.com/algolia/algoliasearch-client-go/v4/algolia/search"
	"github.com/algolia/algoliasearch-client-go/v4/algolia/transport"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/retry"
)

// batchSize is the number of records uploaded per batch request.
const batchSize = 1000

// AlgoliaConfig configures an AlgoliaClient.
type AlgoliaConfig struct {
	AppID       string
	APIKey      string // search-only key
	AdminAPIKey string // write key, required by Sync
	IndexName   string
	// Host overrides the hosts derived from AppID (e.g. for a proxy or tests).
	// It is a URL such as "https://search.internal:8443".
	Host    string
	Timeout time.Duration
}

// AlgoliaClient queries and syncs an Algolia index.
type AlgoliaClient struct {
	cfg    AlgoliaConfig
	search *algolia.APIClient
	policy retry.Policy
}

// AlgoliaOption configures an AlgoliaClient.
type AlgoliaOption func(*AlgoliaClient)

// WithRetryPolicy replaces retry.DefaultPolicy.
func WithRetryPolicy(p retry.Policy) AlgoliaOption {
	return func(a *AlgoliaClient) { a.policy = p }
}

// NewAlgoliaClient creates a client for cfg.
func NewAlgoliaClient(cfg AlgoliaConfig, opts ...AlgoliaOption) (*AlgoliaClient, error) {
	if cfg.AppID == "" {
		return nil, errors.ConfigError("algolia app id is required").Build()
	}
	if cfg.APIKey == "" {
		return nil, errors.ConfigError("algolia search api key is required").Build()
	}
	if cfg.IndexName == "" {
		return nil, errors.ConfigError("algolia index name is required").Build()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	c := &AlgoliaClient{cfg: cfg, policy: retry.DefaultPolicy()}
	for _, opt := range opts {
		opt(c)
	}

	client, err := c.newAPIClient(cfg.APIKey)
	if err != nil {
		return nil, err
	}
	c.search = client
	return c, nil
}

func (c *AlgoliaClient) newAPIClient(apiKey string) (*algolia.APIClient, error) {
	conf := transport.Configuration{
		AppID:        c.cfg.AppID,
		ApiKey:       apiKey,
		ReadTimeout:  c.cfg.Timeout,
		WriteTimeout: c.cfg.Timeout,
	}
	if c.cfg.Host != "" {
		u, err := url.Parse(c.cfg.Host)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return nil, errors.ConfigError("algolia host must be an absolute URL").
				WithContext("host", c.cfg.Host).
				Build()
		}
		conf.Hosts = []transport.StatefulHost{transport.NewStatefulHost(u.Scheme, u.Host, call.IsReadWrite)}
	}
	client, err := algolia.NewClientWithConfig(algolia.SearchConfiguration{Configuration: conf})
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to create algolia client").Build()
	}
	return client, nil
}

// Name implements Backend.
func (c *AlgoliaClient) Name() string { return "algolia" }

// Search implements Backend.
func (c *AlgoliaClient) Search(ctx context.Context, q Query) ([]Hit, error) {
	q = q.withDefaults()
	params := algolia.NewEmptySearchParamsObject().
		SetQuery(q.Text).
		SetHitsPerPage(int32(q.HitsPerPage))
	if q.Distinct > 0 {
		params.SetDistinct(algolia.Int32AsDistinct(int32(q.Distinct)))
	}
	req := c.search.NewApiSearchSingleIndexRequest(c.cfg.IndexName).
		WithSearchParams(algolia.SearchParamsObjectAsSearchParams(params))

	var resp *algolia.SearchResponse
	err := c.policy.Do(ctx, func(ctx context.Context) error {
		var err error
		resp, err = c.search.SearchSingleIndex(req, algolia.WithContext(ctx))
		return classifyAlgoliaError(err, "search")
	})
	if err != nil {
		return nil, err
	}
	return decodeHits(resp.Hits)
}

// decodeHits converts SDK hits to Hit through their JSON form, which carries
// the record attributes and _highlightResult unchanged.
func decodeHits(sdkHits []algolia.Hit) ([]Hit, error) {
	if len(sdkHits) == 0 {
		return []Hit{}, nil
	}
	raw, err := json.Marshal(sdkHits)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategorySearch, "invalid algolia response").Build()
	}
	var hits []Hit
	if err := json.Unmarshal(raw, &hits); err != nil {
		return nil, errors.WrapError(err, errors.CategorySearch, "invalid algolia response").Build()
	}
	return hits, nil
}

// Sync implements Backend. It updates the index settings, clears the index and
// uploads records in batches.
func (c *AlgoliaClient) Sync(ctx context.Context, records []Record) error {
	if c.cfg.AdminAPIKey == "" {
		return errors.ConfigError("algolia admin api key is required for sync").Build()
	}
	admin, err := c.newAPIClient(c.cfg.AdminAPIKey)
	if err != nil {
		return err
	}
	index := c.cfg.IndexName

	settings := algolia.NewEmptyIndexSettings().
		SetSearchableAttributes([]string{"title", "section", "content"}).
		SetAttributeForDistinct("url").
		SetAttributesToSnippet([]string{"content:30"}).
		SetAttributesToHighlight([]string{"title", "content"})

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"settings", func(ctx context.Context) error {
			_, err := admin.SetSettings(admin.NewApiSetSettingsRequest(index, settings), algolia.WithContext(ctx))
			return err
		}},
		{"clear", func(ctx context.Context) error {
			_, err := admin.ClearObjects(admin.NewApiClearObjectsRequest(index), algolia.WithContext(ctx))
			return err
		}},
	}
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		ops := make([]algolia.BatchRequest, 0, end-start)
		for _, r := range records[start:end] {
			ops = append(ops, *algolia.NewEmptyBatchRequest().
				SetAction(algolia.ACTION_ADD_OBJECT).
				SetBody(recordBody(r)))
		}
		params := algolia.NewEmptyBatchWriteParams().SetRequests(ops)
		steps = append(steps, struct {
			name string
			run  func(context.Context) error
		}{"batch", func(ctx context.Context) error {
			_, err := admin.Batch(admin.NewApiBatchRequest(index, params), algolia.WithContext(ctx))
			return err
		}})
	}

	for _, step := range steps {
		err := c.policy.Do(ctx, func(ctx context.Context) error {
			return classifyAlgoliaError(step.run(ctx), step.name)
		})
		if err != nil {
			return err
		}
		slog.Debug("Algolia sync step complete", slog.String("step", step.name), logfields.Index(index))
	}
	return nil
}

func recordBody(r Record) map[string]any {
	body := map[string]any{
		"objectID": r.ObjectID,
		"title":    r.Title,
		"url":      r.URL,
		"section":  r.Section,
		"content":  r.Content,
	}
	if r.SectionID != "" {
		body["section_id"] = r.SectionID
	}
	return body
}

// classifyAlgoliaError maps SDK failures onto classified errors. API errors
// carry the HTTP status; anything else means no host answered.
func classifyAlgoliaError(err error, op string) error {
	if err == nil {
		return nil
	}
	var apiErr *algolia.APIError
	if !stderrors.As(err, &apiErr) {
		return errors.WrapError(err, errors.CategoryNetwork, "algolia request failed").
			Retryable().
			WithContext("operation", op).
			Build()
	}

	msg := fmt.Sprintf("algolia returned %d %s", apiErr.Status, http.StatusText(apiErr.Status))
	if apiErr.Message != "" {
		msg += ": " + apiErr.Message
	}
	var b *errors.ErrorBuilder
	switch {
	case apiErr.Status == http.StatusTooManyRequests:
		b = errors.NetworkError(msg).RateLimit()
	case apiErr.Status >= 500:
		b = errors.NetworkError(msg)
	case apiErr.Status == http.StatusUnauthorized || apiErr.Status == http.StatusForbidden:
		b = errors.ConfigError(msg)
	default:
		b = errors.SearchError(msg)
	}
	return b.WithContext("status", apiErr.Status).WithContext("operation", op).Build()
}
