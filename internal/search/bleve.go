package search

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/highlight/highlighter/html"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
)

// bleveBatchSize is the number of records submitted per bleve batch.
const bleveBatchSize = 100

// searchedFields are queried and highlighted. Titles weigh more than body text.
var searchedFields = []struct {
	name  string
	boost float64
}{
	{"title", 3},
	{"section", 2},
	{"content", 1},
}

// BleveIndex is a Backend backed by a local bleve index. An empty path keeps
// the index in memory.
type BleveIndex struct {
	path   string
	mu     sync.RWMutex
	index  bleve.Index
	rename func(oldpath, newpath string) error
}

// OpenBleveIndex opens the index at path if one exists. A missing index is
// not an error; Search fails until Sync has built one.
func OpenBleveIndex(path string) (*BleveIndex, error) {
	b := &BleveIndex{path: path, rename: os.Rename}
	if path == "" {
		return b, nil
	}
	idx, err := bleve.Open(path)
	switch {
	case err == nil:
		b.index = idx
	case err == bleve.ErrorIndexPathDoesNotExist:
		slog.Info("Search index not built yet", logfields.Path(path))
	default:
		return nil, errors.WrapError(err, errors.CategorySearch, "failed to open search index").
			WithContext("path", path).
			Build()
	}
	return b, nil
}

// Name implements Backend.
func (b *BleveIndex) Name() string { return "bleve" }

// Close releases the underlying index.
func (b *BleveIndex) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.index == nil {
		return nil
	}
	err := b.index.Close()
	b.index = nil
	return err
}

func newRecordMapping() mapping.IndexMapping {
	keyword := bleve.NewKeywordFieldMapping()
	keyword.IncludeInAll = false

	doc := bleve.NewDocumentMapping()
	for _, f := range searchedFields {
		doc.AddFieldMappingsAt(f.name, bleve.NewTextFieldMapping())
	}
	doc.AddFieldMappingsAt("objectID", keyword)
	doc.AddFieldMappingsAt("url", keyword)
	doc.AddFieldMappingsAt("section_id", keyword)

	m := bleve.NewIndexMapping()
	m.DefaultMapping = doc
	return m
}

// Search implements Backend.
func (b *BleveIndex) Search(ctx context.Context, q Query) ([]Hit, error) {
	q = q.withDefaults()

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.index == nil {
		return nil, errors.SearchError("search index has not been built; run sync first").Build()
	}

	queries := make([]bleveQuery.Query, 0, len(searchedFields))
	for _, f := range searchedFields {
		mq := bleve.NewMatchQuery(q.Text)
		mq.SetField(f.name)
		mq.SetBoost(f.boost)
		queries = append(queries, mq)
	}

	size := q.HitsPerPage
	if q.Distinct > 0 {
		size *= 4
	}
	req := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(queries...), size, 0, false)
	req.Fields = []string{"*"}
	req.Highlight = bleve.NewHighlightWithStyle(html.Name)
	req.Highlight.AddField("title")
	req.Highlight.AddField("content")

	res, err := b.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategorySearch, "search index query failed").
			WithContext("query", q.Text).
			Build()
	}

	hits := make([]Hit, 0, len(res.Hits))
	perURL := make(map[string]int)
	for _, doc := range res.Hits {
		hit := Hit{
			ObjectID:  doc.ID,
			URL:       stringField(doc.Fields, "url"),
			Title:     stringField(doc.Fields, "title"),
			Content:   stringField(doc.Fields, "content"),
			Section:   stringField(doc.Fields, "section"),
			SectionID: stringField(doc.Fields, "section_id"),
		}
		if q.Distinct > 0 {
			if perURL[hit.URL] >= q.Distinct {
				continue
			}
			perURL[hit.URL]++
		}
		hit.HighlightResult = &HighlightResults{
			Title:   fragmentHighlight(hit.Title, doc.Fragments["title"]),
			Content: fragmentHighlight(hit.Content, doc.Fragments["content"]),
		}
		hits = append(hits, hit)
		if len(hits) == q.HitsPerPage {
			break
		}
	}
	return hits, nil
}

func stringField(fields map[string]any, name string) string {
	if s, ok := fields[name].(string); ok {
		return s
	}
	return ""
}

func fragmentHighlight(plain string, fragments []string) *HighlightResult {
	if len(fragments) == 0 {
		return &HighlightResult{MatchLevel: MatchLevelNone, Value: &plain}
	}
	v := SanitizeHighlight(fragments[0])
	return &HighlightResult{MatchLevel: MatchLevelFull, Value: &v}
}

// Sync implements Backend. On disk the new index is built beside the old one
// and swapped in through a backup path. If the swap fails the previous index
// is restored and reopened.
func (b *BleveIndex) Sync(ctx context.Context, records []Record) error {
	build := func(path string) (bleve.Index, error) {
		if path == "" {
			return bleve.NewMemOnly(newRecordMapping())
		}
		return bleve.New(path, newRecordMapping())
	}

	tmpPath := ""
	if b.path != "" {
		tmpPath = b.path + ".tmp"
		_ = os.RemoveAll(tmpPath)
		if err := os.MkdirAll(filepath.Dir(tmpPath), 0o755); err != nil {
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to create index directory").
				WithContext("path", b.path).
				Build()
		}
	}

	idx, err := build(tmpPath)
	if err != nil {
		return errors.WrapError(err, errors.CategorySearch, "failed to create search index").Build()
	}
	if err := indexRecords(ctx, idx, records); err != nil {
		_ = idx.Close()
		if tmpPath != "" {
			_ = os.RemoveAll(tmpPath)
		}
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.path == "" {
		if b.index != nil {
			_ = b.index.Close()
		}
		b.index = idx
		return nil
	}

	if err := idx.Close(); err != nil {
		_ = os.RemoveAll(tmpPath)
		return errors.WrapError(err, errors.CategorySearch, "failed to close new search index").Build()
	}
	return b.swap(tmpPath)
}

// swap replaces the index at b.path with the one at tmpPath. The caller holds
// b.mu.
func (b *BleveIndex) swap(tmpPath string) error {
	backupPath := b.path + ".old"
	_ = os.RemoveAll(backupPath)

	if b.index != nil {
		_ = b.index.Close()
		b.index = nil
	}
	hadPrevious := false
	if _, err := os.Stat(b.path); err == nil {
		if err := b.rename(b.path, backupPath); err != nil {
			b.reopen(b.path)
			_ = os.RemoveAll(tmpPath)
			return errors.WrapError(err, errors.CategoryFileSystem, "failed to back up search index").
				WithContext("path", b.path).
				Build()
		}
		hadPrevious = true
	}

	if err := b.rename(tmpPath, b.path); err != nil {
		_ = os.RemoveAll(tmpPath)
		if hadPrevious && b.rename(backupPath, b.path) == nil {
			b.reopen(b.path)
		}
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to move search index into place").
			WithContext("path", b.path).
			Build()
	}
	_ = os.RemoveAll(backupPath)

	opened, err := bleve.Open(b.path)
	if err != nil {
		return errors.WrapError(err, errors.CategorySearch, "failed to reopen search index").Build()
	}
	b.index = opened
	return nil
}

func (b *BleveIndex) reopen(path string) {
	idx, err := bleve.Open(path)
	if err != nil {
		slog.Error("Failed to reopen previous search index", logfields.Path(path), logfields.Error(err))
		return
	}
	b.index = idx
}

func indexRecords(ctx context.Context, idx bleve.Index, records []Record) error {
	batch := idx.NewBatch()
	flush := func() error {
		if batch.Size() == 0 {
			return nil
		}
		if err := idx.Batch(batch); err != nil {
			return errors.WrapError(err, errors.CategorySearch, "failed to index records").Build()
		}
		batch = idx.NewBatch()
		return nil
	}

	for _, r := range records {
		if err := ctx.Err(); err != nil {
			return errors.WrapError(err, errors.CategoryRuntime, "search sync canceled").Build()
		}
		doc := map[string]any{
			"objectID":   r.ObjectID,
			"title":      r.Title,
			"url":        r.URL,
			"section":    r.Section,
			"section_id": r.SectionID,
			"content":    r.Content,
		}
		if err := batch.Index(r.ObjectID, doc); err != nil {
			return errors.WrapError(err, errors.CategorySearch, "failed to add record to batch").
				WithContext("object_id", r.ObjectID).
				Build()
		}
		if batch.Size() >= bleveBatchSize {
			if err := flush(); err != nil {
				return err
			}
		}
	}
	return flush()
}
