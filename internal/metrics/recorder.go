package metrics

import "time"

// ResultLabel enumerates outcome categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultNotFound ResultLabel = "not_found"
	ResultCached   ResultLabel = "cached"
	ResultEmpty    ResultLabel = "empty"
)

// Recorder defines the metrics operations used across the service.
type Recorder interface {
	ObserveSearchDuration(backend string, d time.Duration)
	IncSearchResult(backend string, result ResultLabel)
	IncLLMTextRequest(result ResultLabel)
	ObserveHTTPRequest(route string, status int, d time.Duration)
	IncExportedPages(n int)
	ObserveSyncDuration(backend string, d time.Duration, success bool)
	SetIndexedRecords(n int)
	IncContentReload(success bool)
}

// NoopRecorder is a Recorder that does nothing.
type NoopRecorder struct{}

func (NoopRecorder) ObserveSearchDuration(string, time.Duration)     {}
func (NoopRecorder) IncSearchResult(string, ResultLabel)             {}
func (NoopRecorder) IncLLMTextRequest(ResultLabel)                   {}
func (NoopRecorder) ObserveHTTPRequest(string, int, time.Duration)   {}
func (NoopRecorder) IncExportedPages(int)                            {}
func (NoopRecorder) ObserveSyncDuration(string, time.Duration, bool) {}
func (NoopRecorder) SetIndexedRecords(int)                           {}
func (NoopRecorder) IncContentReload(bool)                           {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}

func successLabel(ok bool) string {
	if ok {
		return string(ResultSuccess)
	}
	return string(ResultFailed)
}
