package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newstack-cloud/celerity-docs/internal/routes"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

func TestBuildRecords(t *testing.T) {
	pages := []*source.Page{
		{
			Slug:        routes.Path{"cli"},
			Title:       "CLI",
			Description: "The Celerity CLI",
			Body: []byte("Intro paragraph.\n\n" +
				"## Install\n\nRun the installer.\n\n```sh\ncurl example\n```\n\n" +
				"## Install\n\nAgain.\n"),
		},
		{Slug: routes.Path{}, Title: "Home"},
	}

	got := BuildRecords(pages, "/docs")

	require.Len(t, got, 7)
	assert.Equal(t, Record{ObjectID: "cli", Title: "CLI", URL: "/docs/cli", Content: "The Celerity CLI"}, got[0])
	assert.Equal(t, Record{ObjectID: "cli-1", Title: "CLI", URL: "/docs/cli", Content: "Intro paragraph."}, got[1])
	assert.Equal(t, Record{ObjectID: "cli-2", Title: "CLI", URL: "/docs/cli", Section: "Install", SectionID: "install", Content: "Install"}, got[2])
	assert.Equal(t, Record{ObjectID: "cli-3", Title: "CLI", URL: "/docs/cli", Section: "Install", SectionID: "install", Content: "Run the installer."}, got[3])
	assert.Equal(t, "install-1", got[4].SectionID, "repeated headings get unique anchors")
	assert.Equal(t, "Again.", got[5].Content)
	assert.Equal(t, Record{ObjectID: "index", Title: "Home", URL: "/docs", Content: "Home"}, got[6])

	// Heading records group as headings, paragraphs as text.
	entries := Group([]Hit{
		{ObjectID: got[2].ObjectID, URL: got[2].URL, Content: got[2].Content, Section: got[2].Section, SectionID: got[2].SectionID},
		{ObjectID: got[3].ObjectID, URL: got[3].URL, Content: got[3].Content, Section: got[3].Section, SectionID: got[3].SectionID},
	})
	assert.Equal(t, EntryHeading, entries[1].Kind)
	assert.Equal(t, EntryText, entries[2].Kind)
	assert.Equal(t, "/docs/cli#install", entries[1].URL)
}
