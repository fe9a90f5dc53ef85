package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "celerity_docs"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once            sync.Once
	searchDuration  *prom.HistogramVec
	searchResults   *prom.CounterVec
	llmTextRequests *prom.CounterVec
	httpDuration    *prom.HistogramVec
	exportedPages   prom.Counter
	syncDuration    *prom.HistogramVec
	indexedRecords  prom.Gauge
	contentReloads  *prom.CounterVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.searchDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "search_duration_seconds",
			Help:      "Duration of search backend queries",
			Buckets:   prom.DefBuckets,
		}, []string{"backend"})
		pr.searchResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "search_queries_total",
			Help:      "Search queries by backend and outcome",
		}, []string{"backend", "result"})
		pr.llmTextRequests = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "llmtext_requests_total",
			Help:      "Plain-text page requests by outcome",
		}, []string{"result"})
		pr.httpDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration by route and status",
			Buckets:   prom.DefBuckets,
		}, []string{"route", "status"})
		pr.exportedPages = prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "exported_pages_total",
			Help:      "Pages written by static export",
		})
		pr.syncDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "search_sync_duration_seconds",
			Help:      "Duration of search index syncs",
			Buckets:   prom.DefBuckets,
		}, []string{"backend", "result"})
		pr.indexedRecords = prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "search_indexed_records",
			Help:      "Records uploaded by the last successful sync",
		})
		pr.contentReloads = prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "content_reloads_total",
			Help:      "Content tree reloads by outcome",
		}, []string{"result"})
		reg.MustRegister(pr.searchDuration, pr.searchResults, pr.llmTextRequests, pr.httpDuration,
			pr.exportedPages, pr.syncDuration, pr.indexedRecords, pr.contentReloads)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveSearchDuration(backend string, d time.Duration) {
	if p == nil || p.searchDuration == nil {
		return
	}
	p.searchDuration.WithLabelValues(backend).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncSearchResult(backend string, result ResultLabel) {
	if p == nil || p.searchResults == nil {
		return
	}
	p.searchResults.WithLabelValues(backend, string(result)).Inc()
}

func (p *PrometheusRecorder) IncLLMTextRequest(result ResultLabel) {
	if p == nil || p.llmTextRequests == nil {
		return
	}
	p.llmTextRequests.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveHTTPRequest(route string, status int, d time.Duration) {
	if p == nil || p.httpDuration == nil {
		return
	}
	p.httpDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncExportedPages(n int) {
	if p == nil || p.exportedPages == nil {
		return
	}
	p.exportedPages.Add(float64(n))
}

func (p *PrometheusRecorder) ObserveSyncDuration(backend string, d time.Duration, success bool) {
	if p == nil || p.syncDuration == nil {
		return
	}
	p.syncDuration.WithLabelValues(backend, successLabel(success)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetIndexedRecords(n int) {
	if p == nil || p.indexedRecords == nil {
		return
	}
	p.indexedRecords.Set(float64(n))
}

func (p *PrometheusRecorder) IncContentReload(success bool) {
	if p == nil || p.contentReloads == nil {
		return
	}
	p.contentReloads.WithLabelValues(successLabel(success)).Inc()
}
