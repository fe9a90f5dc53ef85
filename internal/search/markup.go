package search

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// allowedHighlightTags are the only tags kept in highlighted content.
var allowedHighlightTags = map[atom.Atom]bool{
	atom.Mark: true,
	atom.Em:   true,
}

// SanitizeHighlight reduces backend markup to escaped text plus bare <mark>
// and <em> tags. Attributes are dropped and unbalanced closing tags removed.
func SanitizeHighlight(s string) string {
	var b strings.Builder
	open := map[atom.Atom]int{}
	skip := 0

	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			for _, a := range []atom.Atom{atom.Em, atom.Mark} {
				for ; open[a] > 0; open[a]-- {
					b.WriteString("</" + a.String() + ">")
				}
			}
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.WriteString(html.EscapeString(string(z.Text())))
			}
		case html.StartTagToken:
			tok := z.Token()
			switch {
			case tok.DataAtom == atom.Script || tok.DataAtom == atom.Style:
				skip++
			case allowedHighlightTags[tok.DataAtom] && skip == 0:
				open[tok.DataAtom]++
				b.WriteString("<" + tok.Data + ">")
			}
		case html.EndTagToken:
			tok := z.Token()
			switch {
			case tok.DataAtom == atom.Script || tok.DataAtom == atom.Style:
				if skip > 0 {
					skip--
				}
			case allowedHighlightTags[tok.DataAtom] && skip == 0 && open[tok.DataAtom] > 0:
				open[tok.DataAtom]--
				b.WriteString("</" + tok.Data + ">")
			}
		}
	}
}

// StripMarkup renders highlight markup as plain text.
func StripMarkup(s string) string {
	var b strings.Builder
	skip := 0
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if a := z.Token().DataAtom; a == atom.Script || a == atom.Style {
				skip++
			}
		case html.EndTagToken:
			if a := z.Token().DataAtom; (a == atom.Script || a == atom.Style) && skip > 0 {
				skip--
			}
		}
	}
}

// Display returns the entry content as plain text.
func (e Entry) Display() string {
	if e.Highlighted {
		return StripMarkup(e.Content)
	}
	return e.Content
}
