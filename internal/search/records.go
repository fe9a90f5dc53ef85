package search

import (
	"strconv"

	"github.com/newstack-cloud/celerity-docs/internal/markdown"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

// BuildRecords flattens pages into index records: one for the page itself,
// one per heading and one per paragraph under its nearest heading.
func BuildRecords(pages []*source.Page, docsRoute string) []Record {
	var records []Record
	for _, page := range pages {
		url := page.URL(docsRoute)
		id := page.Slug.Join()
		if id == "" {
			id = "index"
		}

		summary := page.Description
		if summary == "" {
			summary = page.Title
		}
		records = append(records, Record{
			ObjectID: id,
			Title:    page.Title,
			URL:      url,
			Content:  summary,
		})

		n := 0
		next := func() string {
			n++
			return id + "-" + strconv.Itoa(n)
		}
		for _, sec := range markdown.Sections(page.Body) {
			if sec.Heading != "" {
				records = append(records, Record{
					ObjectID:  next(),
					Title:     page.Title,
					URL:       url,
					Section:   sec.Heading,
					SectionID: sec.ID,
					Content:   sec.Heading,
				})
			}
			for _, p := range sec.Paragraphs {
				records = append(records, Record{
					ObjectID:  next(),
					Title:     page.Title,
					URL:       url,
					Section:   sec.Heading,
					SectionID: sec.ID,
					Content:   p,
				})
			}
		}
	}
	return records
}
