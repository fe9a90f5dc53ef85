// Package llmtext renders documentation pages as plain Markdown for language
// models and resolves the slugs requested from the /llms.mdx route.
package llmtext

import (
	"fmt"
	"strings"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/markdown"
	"github.com/newstack-cloud/celerity-docs/internal/routes"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

// Lookup resolves slug to a page. It tries the literal slug, then the slug
// with "index" appended, then (for slugs ending in "index") the slug with
// that segment removed. A miss on all three is a not_found error.
func Lookup(src source.PageGetter, slug []string) (*source.Page, error) {
	if page, ok := src.GetPage(slug); ok {
		return page, nil
	}

	endsInIndex := len(slug) > 0 && slug[len(slug)-1] == routes.IndexSegment
	if len(slug) > 0 && !endsInIndex {
		if page, ok := src.GetPage(routes.Path(slug).WithIndex()); ok {
			return page, nil
		}
	}
	if endsInIndex {
		if page, ok := src.GetPage(slug[:len(slug)-1]); ok {
			return page, nil
		}
	}

	return nil, errors.NotFoundError("page not found").
		WithContext("slug", strings.Join(slug, "/")).
		Build()
}

// Renderer produces the plain-text form of pages.
type Renderer struct {
	SiteURL   string // absolute site origin, e.g. https://celerityframework.io
	DocsRoute string // path prefix of documentation pages, e.g. /docs
}

// PageURL returns the absolute URL of page on the site.
func (r Renderer) PageURL(page *source.Page) string {
	return strings.TrimSuffix(r.SiteURL, "/") + page.URL(r.DocsRoute)
}

// Render returns the page as a title line, its URL, the description and the
// Markdown body with frontmatter and MDX import/export statements removed.
func (r Renderer) Render(page *source.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", page.Title)
	fmt.Fprintf(&b, "URL: %s\n\n", r.PageURL(page))
	if page.Description != "" {
		b.WriteString(page.Description)
		b.WriteString("\n\n")
	}
	body := strings.TrimSpace(string(markdown.StripESM(page.Body)))
	if body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	return b.String()
}

// Index renders the llms.txt listing of every page.
func (r Renderer) Index(title, summary string, pages []*source.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if summary != "" {
		fmt.Fprintf(&b, "> %s\n\n", summary)
	}
	b.WriteString("## Docs\n\n")
	for _, page := range pages {
		fmt.Fprintf(&b, "- [%s](%s)", page.Title, r.PageURL(page))
		if page.Description != "" {
			fmt.Fprintf(&b, ": %s", page.Description)
		}
		b.WriteString("\n")
	}
	return b.String()
}
