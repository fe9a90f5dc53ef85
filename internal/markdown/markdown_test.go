package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineImageAuto(t *testing.T) {
	links := ExtractLinks([]byte("See [API](/docs/api). ![Diagram](diagram.png) <https://example.com/path>"))
	require.Len(t, links, 3)
	require.Equal(t, Link{Kind: LinkKindInline, Destination: "/docs/api"}, links[0])
	require.Equal(t, Link{Kind: LinkKindImage, Destination: "diagram.png"}, links[1])
	require.Equal(t, Link{Kind: LinkKindAuto, Destination: "https://example.com/path"}, links[2])
}

func TestExtractLinks_ReferenceLinkUsageAndDefinition(t *testing.T) {
	links := ExtractLinks([]byte("See [API][ref].\n\n[ref]: /docs/api\n"))
	require.Len(t, links, 2)
	require.Equal(t, LinkKindInline, links[0].Kind)
	require.Equal(t, LinkKindReferenceDefinition, links[1].Kind)
	require.Equal(t, "/docs/api", links[1].Destination)
}

func TestExtractLinks_SkipsInlineCodeAndCodeBlocks(t *testing.T) {
	src := []byte("" +
		"Inline code: `[Link](./ignored-inline.md)`\n" +
		"\n" +
		"```\n" +
		"[Link](./ignored-fence.md)\n" +
		"```\n" +
		"\n" +
		"Real: [OK](./real.md)\n")

	links := ExtractLinks(src)
	require.Len(t, links, 1)
	require.Equal(t, "./real.md", links[0].Destination)
}

func TestSections_GroupsParagraphsUnderHeadings(t *testing.T) {
	src := []byte("" +
		"Intro paragraph with **bold** text.\n" +
		"\n" +
		"## Getting Started\n" +
		"\n" +
		"First step.\n" +
		"\n" +
		"```go\n" +
		"fmt.Println(\"skipped\")\n" +
		"```\n" +
		"\n" +
		"- list item\n" +
		"\n" +
		"## Getting Started\n" +
		"\n" +
		"Again.\n")

	sections := Sections(src)
	require.Len(t, sections, 3)

	require.Equal(t, "", sections[0].Heading)
	require.Equal(t, []string{"Intro paragraph with bold text."}, sections[0].Paragraphs)

	require.Equal(t, "Getting Started", sections[1].Heading)
	require.Equal(t, "getting-started", sections[1].ID)
	require.Equal(t, 2, sections[1].Level)
	require.Equal(t, []string{"First step.", "list item"}, sections[1].Paragraphs)

	require.Equal(t, "getting-started-1", sections[2].ID)
	require.Equal(t, []string{"Again."}, sections[2].Paragraphs)
}

func TestSections_DropsEmptyLeadingSection(t *testing.T) {
	sections := Sections([]byte("# Title\n\nBody\n"))
	require.Len(t, sections, 1)
	require.Equal(t, "Title", sections[0].Heading)
	require.Equal(t, "title", sections[0].ID)
}

func TestSlugger(t *testing.T) {
	s := NewSlugger()
	require.Equal(t, "whats-new-in-v2", s.Slug("What's new in v2?"))
	require.Equal(t, "http_handler-config", s.Slug("HTTP_Handler Config"))
	require.Equal(t, "a", s.Slug("A"))
	require.Equal(t, "a-1", s.Slug("a"))
	require.Equal(t, "a-2", s.Slug("a"))
}

func TestStripESM(t *testing.T) {
	src := []byte("" +
		"import { Callout } from 'fumadocs-ui/components/callout';\n" +
		"import {\n" +
		"  Tab,\n" +
		"  Tabs,\n" +
		"} from 'fumadocs-ui/components/tabs';\n" +
		"export const meta = {\n" +
		"  hidden: true,\n" +
		"};\n" +
		"\n" +
		"# Handlers\n" +
		"\n" +
		"```ts\n" +
		"import { handler } from '@celerity-sdk/core';\n" +
		"```\n" +
		"\n" +
		"Text about exports and imports.\n")

	want := "" +
		"# Handlers\n" +
		"\n" +
		"```ts\n" +
		"import { handler } from '@celerity-sdk/core';\n" +
		"```\n" +
		"\n" +
		"Text about exports and imports.\n"

	require.Equal(t, want, string(StripESM(src)))
}

func TestExtractLinks_HTMLAndJSX(t *testing.T) {
	src := []byte("" +
		"<Cards>\n" +
		"  <Card title=\"CLI\" href=\"/docs/cli\" />\n" +
		"  <Card title=\"Dynamic\" href={dynamic} />\n" +
		"</Cards>\n" +
		"\n" +
		"Inline <a href=\"/docs/inline\">tag</a> here.\n")

	links := ExtractLinks(src)
	var dests []string
	for _, l := range links {
		require.Equal(t, LinkKindHTML, l.Kind)
		dests = append(dests, l.Destination)
	}
	require.Equal(t, []string{"/docs/cli", "/docs/inline"}, dests)
}
