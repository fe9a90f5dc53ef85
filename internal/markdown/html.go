package markdown

import (
	"strings"

	"golang.org/x/net/html"
)

// linkAttributes are the attributes read from HTML and JSX tags.
var linkAttributes = map[string]bool{"href": true, "src": true}

// htmlLinks extracts href/src values from an HTML or JSX fragment. JSX
// expression values such as href={url} cannot be resolved and are skipped.
func htmlLinks(fragment string) []Link {
	var links []Link
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return links
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		for _, attr := range z.Token().Attr {
			if !linkAttributes[attr.Key] {
				continue
			}
			v := strings.TrimSpace(attr.Val)
			if v == "" || strings.HasPrefix(v, "{") {
				continue
			}
			links = append(links, Link{Kind: LinkKindHTML, Destination: v})
		}
	}
}
