// Package routes computes the route parameters used by the static export.
//
// A documentation page that has children (for example "framework/applications"
// alongside "framework/applications/resources") cannot be written as both a
// file and a directory in the exported tree. ResolveParents gives such parent
// pages a trailing "index" segment so each route maps to a distinct file.
package routes

import "strings"

// IndexSegment is appended to the slug of every parent route.
const IndexSegment = "index"

// Path is an ordered sequence of URL segments identifying a page.
type Path []string

// Join returns the slash-joined form of the path.
func (p Path) Join() string {
	return strings.Join(p, "/")
}

// Equal reports segment-wise equality.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// IsParentOf reports whether p is a strict, position-wise prefix of other.
// The empty path is never a parent.
func (p Path) IsParentOf(other Path) bool {
	if len(p) == 0 || len(p) >= len(other) {
		return false
	}
	for i, segment := range p {
		if segment != other[i] {
			return false
		}
	}
	return true
}

// WithIndex returns a copy of p with IndexSegment appended.
func (p Path) WithIndex() Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, IndexSegment)
}

// RouteParam is one generated route plus whatever metadata the page source
// attached to it. A nil Slug is the site root.
type RouteParam struct {
	Slug Path              `json:"slug"`
	Meta map[string]string `json:"meta,omitempty"`
}

// ParsePath splits a slash-separated slug into a Path. Empty segments are
// dropped, so "", "/" and "a//b/" yield nil, nil and [a b].
func ParsePath(raw string) Path {
	var p Path
	for _, segment := range strings.Split(strings.TrimSpace(raw), "/") {
		if segment != "" {
			p = append(p, segment)
		}
	}
	return p
}

// Params builds route params from bare paths.
func Params(paths ...Path) []RouteParam {
	params := make([]RouteParam, len(paths))
	for i, p := range paths {
		params[i] = RouteParam{Slug: p}
	}
	return params
}

// ResolveParents returns params with "index" appended to every slug that is a
// strict prefix of another slug in the set. Output has the same length and
// order as the input, and the input is never modified.
func ResolveParents(params []RouteParam) []RouteParam {
	parents := make(map[string]struct{})
	for i := range params {
		for j := range params {
			if i != j && params[i].Slug.IsParentOf(params[j].Slug) {
				parents[params[i].Slug.Join()] = struct{}{}
			}
		}
	}

	resolved := make([]RouteParam, len(params))
	for i, param := range params {
		if _, ok := parents[param.Slug.Join()]; ok && len(param.Slug) > 0 {
			param.Slug = param.Slug.WithIndex()
		}
		resolved[i] = param
	}
	return resolved
}
