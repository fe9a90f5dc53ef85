package search

// Group turns backend hits into display entries in a single pass. The first
// hit for each URL is preceded by a page entry carrying the highlighted
// title; every hit then yields one heading or text entry.
func Group(hits []Hit) []Entry {
	entries := make([]Entry, 0, len(hits)*2)
	seen := make(map[string]struct{})

	for _, hit := range hits {
		if _, ok := seen[hit.URL]; !ok {
			seen[hit.URL] = struct{}{}
			content, highlighted := highlight(hit.Title, hit.titleHighlight())
			entries = append(entries, Entry{
				ID:          hit.URL,
				Kind:        EntryPage,
				URL:         hit.URL,
				Content:     content,
				Highlighted: highlighted,
			})
		}

		kind := EntryText
		if hit.Content == hit.Section {
			kind = EntryHeading
		}
		url := hit.URL
		if hit.SectionID != "" {
			url += "#" + hit.SectionID
		}
		content, highlighted := highlight(hit.Content, hit.contentHighlight())
		entries = append(entries, Entry{
			ID:          hit.ObjectID,
			Kind:        kind,
			URL:         url,
			Content:     content,
			Highlighted: highlighted,
		})
	}
	return entries
}

// highlight picks what to display for one attribute. A "none" match shows the
// plain value; otherwise the highlighted value wins when the backend sent one.
func highlight(plain string, hr *HighlightResult) (string, bool) {
	if hr == nil || hr.MatchLevel == MatchLevelNone || hr.Value == nil {
		return plain, false
	}
	return *hr.Value, true
}
