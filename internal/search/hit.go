package search

// MatchLevelNone marks a highlight result that matched nothing.
const MatchLevelNone = "none"

// MatchLevelFull marks a highlight result where every query word matched.
const MatchLevelFull = "full"

// HighlightResult is the backend's highlighting for one attribute. A nil
// Value means the backend sent no highlighted text.
type HighlightResult struct {
	MatchLevel string  `json:"matchLevel"`
	Value      *string `json:"value,omitempty"`
}

// HighlightResults holds highlighting for the attributes the dialog shows.
type HighlightResults struct {
	Title   *HighlightResult `json:"title,omitempty"`
	Content *HighlightResult `json:"content,omitempty"`
}

// Hit is one search index record as returned by the backend.
type Hit struct {
	ObjectID        string            `json:"objectID"`
	URL             string            `json:"url"`
	Title           string            `json:"title"`
	Content         string            `json:"content"`
	Section         string            `json:"section"`
	SectionID       string            `json:"section_id,omitempty"`
	HighlightResult *HighlightResults `json:"_highlightResult,omitempty"`
}

func (h Hit) titleHighlight() *HighlightResult {
	if h.HighlightResult == nil {
		return nil
	}
	return h.HighlightResult.Title
}

func (h Hit) contentHighlight() *HighlightResult {
	if h.HighlightResult == nil {
		return nil
	}
	return h.HighlightResult.Content
}

// EntryKind classifies a grouped entry.
type EntryKind string

const (
	EntryPage    EntryKind = "page"
	EntryHeading EntryKind = "heading"
	EntryText    EntryKind = "text"
)

// Entry is one display-ready search result. When Highlighted is true, Content
// is backend markup with <mark>/<em> tags rather than plain text.
type Entry struct {
	ID          string    `json:"id"`
	Kind        EntryKind `json:"type"`
	URL         string    `json:"url"`
	Content     string    `json:"content"`
	Highlighted bool      `json:"highlighted"`
}

// Record is what sync uploads to the backend: one row per page title,
// heading or paragraph.
type Record struct {
	ObjectID  string `json:"objectID"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Section   string `json:"section"`
	SectionID string `json:"section_id,omitempty"`
	Content   string `json:"content"`
}
