// Package source loads the Markdown/MDX content tree and indexes pages by slug.
package source

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/inful/mdfp"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/frontmatter"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/routes"
)

// DefaultExtensions are the page file extensions loaded when none are given.
var DefaultExtensions = []string{".md", ".mdx"}

// Page is one documentation page.
type Page struct {
	Slug        routes.Path
	Title       string
	Description string
	File        string // path relative to the content root, slash separated
	Body        []byte // source with frontmatter removed
	Fields      map[string]any
	// Fingerprint is the mdfp content hash of the frontmatter and body.
	Fingerprint string
}

// Source is an immutable snapshot of the content tree.
type Source struct {
	root  string
	pages map[string]*Page
	order []*Page
}

// PageGetter resolves a slug to a page.
type PageGetter interface {
	GetPage(slug []string) (*Page, bool)
}

// Load walks root and parses every page file with one of the given extensions.
func Load(root string, extensions ...string) (*Source, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "content directory not accessible").
			WithContext("path", root).
			Build()
	}
	if !info.IsDir() {
		return nil, errors.ContentError("content path is not a directory").WithContext("path", root).Build()
	}

	src := &Source{root: root, pages: make(map[string]*Page)}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != root {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !hasExtension(path, extensions) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		page, err := loadPage(path, filepath.ToSlash(rel))
		if err != nil {
			return err
		}

		key := page.Slug.Join()
		if existing, dup := src.pages[key]; dup {
			return errors.ContentError("two files map to the same slug").
				WithContext("slug", key).
				WithContext("file", page.File).
				WithContext("existing", existing.File).
				Build()
		}
		src.pages[key] = page
		src.order = append(src.order, page)
		slog.Debug("Loaded page", logfields.File(page.File), logfields.Slug(key))
		return nil
	})
	if err != nil {
		if _, ok := errors.AsClassified(err); ok {
			return nil, err
		}
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to walk content directory").
			WithContext("path", root).
			Build()
	}

	sort.Slice(src.order, func(i, j int) bool {
		return src.order[i].Slug.Join() < src.order[j].Slug.Join()
	})
	slog.Info("Content loaded", logfields.Path(root), logfields.Pages(len(src.order)))
	return src, nil
}

func loadPage(path, rel string) (*Page, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read page").
			WithContext("file", rel).
			Build()
	}
	doc, err := frontmatter.Parse(content)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryContent, "invalid frontmatter").
			WithContext("file", rel).
			Build()
	}

	slug := SlugFor(rel)
	title := doc.Meta.Title
	if title == "" {
		title = titleFromSlug(slug, rel)
	}
	return &Page{
		Slug:        slug,
		Title:       title,
		Description: doc.Meta.Description,
		File:        rel,
		Body:        doc.Body,
		Fields:      doc.Fields,
		Fingerprint: mdfp.CalculateFingerprintFromParts(strings.TrimRight(string(doc.Raw), "\r\n"), string(doc.Body)),
	}, nil
}

// SlugFor derives a page slug from its slash-separated path relative to the
// content root. A trailing "index" file takes its directory's slug.
func SlugFor(rel string) routes.Path {
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	segments := strings.Split(rel, "/")
	if segments[len(segments)-1] == routes.IndexSegment {
		segments = segments[:len(segments)-1]
	}
	if len(segments) == 0 {
		return routes.Path{}
	}
	return routes.Path(segments)
}

func titleFromSlug(slug routes.Path, rel string) string {
	last := strings.TrimSuffix(filepath.Base(rel), filepath.Ext(rel))
	if len(slug) > 0 {
		last = slug[len(slug)-1]
	}
	words := strings.FieldsFunc(last, func(r rune) bool { return r == '-' || r == '_' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// Root returns the directory the source was loaded from.
func (s *Source) Root() string { return s.root }

// GetPage returns the page with exactly the given slug. A nil slug is the root page.
func (s *Source) GetPage(slug []string) (*Page, bool) {
	p, ok := s.pages[routes.Path(slug).Join()]
	return p, ok
}

// Pages returns every page ordered by joined slug.
func (s *Source) Pages() []*Page {
	out := make([]*Page, len(s.order))
	copy(out, s.order)
	return out
}

// Fingerprint hashes every page's slug and fingerprint, so it changes when
// any page is added, removed, moved or edited.
func (s *Source) Fingerprint() string {
	var slugs, prints strings.Builder
	for _, p := range s.order {
		slugs.WriteString(p.Slug.Join())
		slugs.WriteByte('\n')
		prints.WriteString(p.Fingerprint)
		prints.WriteByte('\n')
	}
	return mdfp.CalculateFingerprintFromParts(slugs.String(), prints.String())
}

// Len reports the number of pages.
func (s *Source) Len() int { return len(s.order) }

// GenerateParams returns one route param per page, in page order. Meta carries
// the page's source file under "file".
func (s *Source) GenerateParams() []routes.RouteParam {
	params := make([]routes.RouteParam, len(s.order))
	for i, p := range s.order {
		slug := make(routes.Path, len(p.Slug))
		copy(slug, p.Slug)
		params[i] = routes.RouteParam{
			Slug: slug,
			Meta: map[string]string{"file": p.File},
		}
	}
	return params
}

// URL returns the page's site-relative URL under docsRoute (e.g. "/docs").
func (p *Page) URL(docsRoute string) string {
	base := "/" + strings.Trim(docsRoute, "/")
	if base == "/" {
		base = ""
	}
	if len(p.Slug) == 0 {
		if base == "" {
			return "/"
		}
		return base
	}
	return base + "/" + p.Slug.Join()
}
