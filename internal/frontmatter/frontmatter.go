// Package frontmatter separates YAML frontmatter from Markdown/MDX page sources.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// frontmatter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Meta holds the frontmatter fields the site understands. Unknown keys are
// kept in Document.Fields.
type Meta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Draft       bool   `yaml:"draft"`
}

// Document is a parsed page source.
type Document struct {
	Meta   Meta
	Fields map[string]any
	Raw    []byte // frontmatter block without delimiters
	Body   []byte
	Had    bool
}

// Split separates YAML frontmatter (`---` delimited) from the Markdown body.
//
// If the document does not start with a delimiter, had is false and body is
// the full input.
func Split(content []byte) (frontmatter []byte, body []byte, had bool, err error) {
	nl := detectNewline(content)
	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	start := len(open)
	if bytes.HasPrefix(content[start:], open) {
		return []byte{}, content[start+len(open):], true, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(content[start:], closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without a trailing newline.
		if bytes.HasSuffix(content, []byte(nl+"---")) {
			end := len(content) - len(nl+"---")
			return content[start : end+len(nl)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	end := start + idx + len(nl)
	return content[start:end], content[start+idx+len(closeSeq):], true, nil
}

// Parse splits content and decodes its frontmatter.
func Parse(content []byte) (*Document, error) {
	fm, body, had, err := Split(content)
	if err != nil {
		return nil, err
	}
	doc := &Document{Body: body, Raw: fm, Had: had, Fields: map[string]any{}}
	if len(fm) == 0 {
		return doc, nil
	}
	if err := yaml.Unmarshal(fm, &doc.Fields); err != nil {
		return nil, err
	}
	if doc.Fields == nil {
		doc.Fields = map[string]any{}
	}
	if err := yaml.Unmarshal(fm, &doc.Meta); err != nil {
		return nil, err
	}
	return doc, nil
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
