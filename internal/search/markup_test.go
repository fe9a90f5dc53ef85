package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeHighlight(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text", "hello world", "hello world"},
		{"mark kept", "a <mark>b</mark> c", "a <mark>b</mark> c"},
		{"em kept without attributes", `<em class="x">b</em>`, "<em>b</em>"},
		{"other tags dropped", "<b>bold</b> <a href=x>link</a>", "bold link"},
		{"script content dropped", "a<script>alert(1)</script>b", "ab"},
		{"entities stay escaped", "a &amp; b &lt;c&gt;", "a &amp; b &lt;c&gt;"},
		{"unclosed mark closed", "<mark>open", "<mark>open</mark>"},
		{"stray close removed", "text</mark>", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeHighlight(tt.in))
		})
	}
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "Deploy your app", StripMarkup("<mark>Deploy</mark> your <em>app</em>"))
	assert.Equal(t, "a & b", StripMarkup("a &amp; b"))
	assert.Equal(t, "ab", StripMarkup("a<style>x{}</style>b"))
}

func TestEntryDisplay(t *testing.T) {
	assert.Equal(t, "<b>raw</b>", Entry{Content: "<b>raw</b>"}.Display())
	assert.Equal(t, "marked", Entry{Content: "<mark>marked</mark>", Highlighted: true}.Display())
}
