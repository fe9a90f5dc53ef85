package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

func parse(body []byte) (gmast.Node, parser.Context) {
	ctx := parser.NewContext()
	root := goldmark.New().Parser().Parse(text.NewReader(body), parser.WithContext(ctx))
	return root, ctx
}

// ExtractLinks parses a Markdown body and extracts link-like constructs.
// Links inside code spans and fenced blocks are not reported.
func ExtractLinks(body []byte) []Link {
	root, ctx := parse(body)

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		case *gmast.HTMLBlock:
			var raw strings.Builder
			for i := 0; i < node.Lines().Len(); i++ {
				line := node.Lines().At(i)
				raw.Write(line.Value(body))
			}
			links = append(links, htmlLinks(raw.String())...)
		case *gmast.RawHTML:
			var raw strings.Builder
			for i := 0; i < node.Segments.Len(); i++ {
				seg := node.Segments.At(i)
				raw.Write(seg.Value(body))
			}
			links = append(links, htmlLinks(raw.String())...)
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}

// Sections splits a body into heading-delimited sections of plain paragraph
// text. Code blocks, raw HTML and JSX blocks are skipped.
func Sections(body []byte) []Section {
	root, _ := parse(body)
	slugger := NewSlugger()

	sections := []Section{{}}
	current := &sections[0]

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.Heading:
			heading := collectText(node, body)
			sections = append(sections, Section{
				Heading: heading,
				ID:      slugger.Slug(heading),
				Level:   node.Level,
			})
			current = &sections[len(sections)-1]
			return gmast.WalkSkipChildren, nil
		case *gmast.Paragraph, *gmast.TextBlock:
			if t := collectText(node, body); t != "" {
				current.Paragraphs = append(current.Paragraphs, t)
			}
			return gmast.WalkSkipChildren, nil
		case *gmast.FencedCodeBlock, *gmast.CodeBlock, *gmast.HTMLBlock:
			return gmast.WalkSkipChildren, nil
		}
		return gmast.WalkContinue, nil
	})

	if len(sections[0].Paragraphs) == 0 {
		return sections[1:]
	}
	return sections
}

// collectText concatenates the visible inline text below n.
func collectText(n gmast.Node, source []byte) string {
	var b strings.Builder
	var walk func(gmast.Node)
	walk = func(n gmast.Node) {
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			switch node := c.(type) {
			case *gmast.Text:
				b.Write(node.Segment.Value(source))
				if node.SoftLineBreak() || node.HardLineBreak() {
					b.WriteByte(' ')
				}
			case *gmast.String:
				b.Write(node.Value)
			case *gmast.AutoLink:
				b.Write(node.Label(source))
			case *gmast.RawHTML, *gmast.Image:
				// JSX and images carry no searchable text
			default:
				walk(c)
			}
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
