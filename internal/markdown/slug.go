package markdown

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugger produces heading anchors the way the site's renderer does:
// lower-cased, punctuation removed, spaces turned into hyphens, and repeated
// headings suffixed with -1, -2, ...
type Slugger struct {
	seen map[string]int
}

// NewSlugger returns a slugger with no recorded anchors.
func NewSlugger() *Slugger {
	return &Slugger{seen: make(map[string]int)}
}

// Slug returns the unique anchor for heading.
func (s *Slugger) Slug(heading string) string {
	base := slugify(heading)
	slug := base
	for {
		n, taken := s.seen[slug]
		if !taken {
			break
		}
		s.seen[slug] = n + 1
		slug = base + "-" + strconv.Itoa(n+1)
	}
	s.seen[slug] = 0
	return slug
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r == ' ':
			b.WriteByte('-')
		case r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.M, r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
