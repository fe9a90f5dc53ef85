package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySlug       = "slug"
	KeyURL        = "url"
	KeyQuery      = "query"
	KeyHits       = "hits"
	KeyEntries    = "entries"
	KeyPages      = "pages"
	KeyRoutes     = "routes"
	KeyBackend    = "backend"
	KeyIndex      = "index"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyRequestID  = "request_id"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Slug(s string) slog.Attr          { return slog.String(KeySlug, s) }
func URL(u string) slog.Attr           { return slog.String(KeyURL, u) }
func Query(q string) slog.Attr         { return slog.String(KeyQuery, q) }
func Hits(n int) slog.Attr             { return slog.Int(KeyHits, n) }
func Entries(n int) slog.Attr          { return slog.Int(KeyEntries, n) }
func Pages(n int) slog.Attr            { return slog.Int(KeyPages, n) }
func Routes(n int) slog.Attr           { return slog.Int(KeyRoutes, n) }
func Backend(b string) slog.Attr       { return slog.String(KeyBackend, b) }
func Index(name string) slog.Attr      { return slog.String(KeyIndex, name) }
func Path(p string) slog.Attr          { return slog.String(KeyPath, p) }
func File(f string) slog.Attr          { return slog.String(KeyFile, f) }
func Method(m string) slog.Attr        { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr        { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr    { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(addr string) slog.Attr { return slog.String(KeyRemoteAddr, addr) }
func RequestID(id string) slog.Attr    { return slog.String(KeyRequestID, id) }
func DurationMS(ms float64) slog.Attr  { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
