package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontmatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_YAMLFrontmatter_SplitsFrontmatterAndBody(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Intro\n---\n# Title\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Intro\n"), fm)
	require.Equal(t, []byte("# Title\n"), body)
}

func TestSplit_CRLF(t *testing.T) {
	fm, body, had, err := Split([]byte("---\r\ntitle: Intro\r\n---\r\nBody\r\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Intro\r\n"), fm)
	require.Equal(t, []byte("Body\r\n"), body)
}

func TestSplit_EmptyBlock(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\nBody\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("Body\n"), body)
}

func TestSplit_FrontmatterOnly(t *testing.T) {
	fm, body, had, err := Split([]byte("---\ntitle: Only\n---"))
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("title: Only\n"), fm)
	require.Empty(t, body)
}

func TestSplit_MissingClosingDelimiter(t *testing.T) {
	_, _, had, err := Split([]byte("---\ntitle: x\n# Title\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestParse_DecodesMetaAndFields(t *testing.T) {
	doc, err := Parse([]byte("---\ntitle: Applications\ndescription: Build apps\nsidebar_position: 2\n---\nContent\n"))
	require.NoError(t, err)
	require.True(t, doc.Had)
	require.Equal(t, "Applications", doc.Meta.Title)
	require.Equal(t, "Build apps", doc.Meta.Description)
	require.Equal(t, 2, doc.Fields["sidebar_position"])
	require.Equal(t, []byte("Content\n"), doc.Body)
}

func TestParse_NoFrontmatter(t *testing.T) {
	doc, err := Parse([]byte("Just text"))
	require.NoError(t, err)
	require.False(t, doc.Had)
	require.Empty(t, doc.Meta.Title)
	require.Empty(t, doc.Fields)
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("---\n: not yaml\n---\n"))
	require.Error(t, err)
}
