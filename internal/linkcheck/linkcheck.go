// Package linkcheck validates internal documentation links in page sources.
package linkcheck

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/markdown"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

// Options configures Check.
type Options struct {
	// DocsRoute is the URL prefix of documentation pages, e.g. "/docs".
	DocsRoute string
	// SiteURL, when set, lets absolute links to the site itself be checked too.
	SiteURL string
}

// BrokenLink is an internal link that does not resolve to a page.
type BrokenLink struct {
	File        string `json:"file"`
	Destination string `json:"destination"`
	Slug        string `json:"slug"`
}

func (b BrokenLink) String() string {
	return fmt.Sprintf("%s: %s", b.File, b.Destination)
}

// Report is the outcome of a check.
type Report struct {
	Pages   int          `json:"pages"`
	Checked int          `json:"checked"`
	Broken  []BrokenLink `json:"broken"`
}

// OK reports whether no broken links were found.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Check extracts links from every page and reports internal doc links whose
// target page does not exist. The report is always returned; the error is a
// validation error when any link is broken.
func Check(src *source.Source, opts Options) (*Report, error) {
	prefix := "/" + strings.Trim(opts.DocsRoute, "/")
	var site *url.URL
	if opts.SiteURL != "" {
		if u, err := url.Parse(opts.SiteURL); err == nil {
			site = u
		}
	}

	report := &Report{Broken: []BrokenLink{}}
	for _, page := range src.Pages() {
		report.Pages++
		for _, link := range markdown.ExtractLinks(page.Body) {
			if link.Kind == markdown.LinkKindImage {
				continue
			}
			slug, ok := docSlug(link.Destination, prefix, site)
			if !ok {
				continue
			}
			report.Checked++
			if _, found := src.GetPage(slug); found {
				continue
			}
			broken := BrokenLink{File: page.File, Destination: link.Destination, Slug: strings.Join(slug, "/")}
			report.Broken = append(report.Broken, broken)
			slog.Debug("Broken link", logfields.File(page.File), logfields.URL(link.Destination))
		}
	}

	if !report.OK() {
		return report, errors.ValidationError(fmt.Sprintf("%d broken link(s) found", len(report.Broken))).
			WithContext("broken", len(report.Broken)).
			WithContext("first", report.Broken[0].String()).
			Build()
	}
	return report, nil
}

// docSlug returns the page slug a link points to when it is an internal doc
// link. Fragments, queries and trailing slashes are ignored.
func docSlug(dest, prefix string, site *url.URL) ([]string, bool) {
	u, err := url.Parse(strings.TrimSpace(dest))
	if err != nil {
		return nil, false
	}
	if u.Scheme != "" || u.Host != "" {
		if site == nil || !strings.EqualFold(u.Host, site.Host) {
			return nil, false
		}
	}

	p := strings.TrimSuffix(u.Path, "/")
	if prefix == "/" {
		prefix = ""
	}
	switch {
	case p == prefix:
		return []string{}, true
	case strings.HasPrefix(p, prefix+"/"):
		return strings.Split(strings.TrimPrefix(p, prefix+"/"), "/"), true
	default:
		return nil, false
	}
}
