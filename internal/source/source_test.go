package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/routes"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, root, "index.mdx", "---\ntitle: Celerity\ndescription: Docs home\n---\nWelcome.\n")
	writeFile(t, root, "framework/index.mdx", "---\ntitle: Framework\n---\nFramework overview.\n")
	writeFile(t, root, "framework/applications/index.mdx", "---\ntitle: Applications\n---\nApps.\n")
	writeFile(t, root, "framework/applications/resources.mdx", "---\ntitle: Resources\n---\nResources.\n")
	writeFile(t, root, "cli/getting-started.md", "No frontmatter here.\n")
	writeFile(t, root, "cli/meta.json", "{}")
	writeFile(t, root, ".drafts/hidden.mdx", "hidden")
	return root
}

func TestSlugFor(t *testing.T) {
	tests := []struct {
		rel  string
		want routes.Path
	}{
		{"index.mdx", routes.Path{}},
		{"a/index.mdx", routes.Path{"a"}},
		{"a/b.mdx", routes.Path{"a", "b"}},
		{"a/b/index.md", routes.Path{"a", "b"}},
		{"intro.md", routes.Path{"intro"}},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			assert.Equal(t, tt.want, SlugFor(tt.rel))
		})
	}
}

func TestLoad(t *testing.T) {
	src, err := Load(newTree(t))
	require.NoError(t, err)
	require.Equal(t, 5, src.Len())

	var slugs []string
	for _, p := range src.Pages() {
		slugs = append(slugs, p.Slug.Join())
	}
	assert.Equal(t, []string{
		"",
		"cli/getting-started",
		"framework",
		"framework/applications",
		"framework/applications/resources",
	}, slugs)

	home, ok := src.GetPage(nil)
	require.True(t, ok)
	assert.Equal(t, "Celerity", home.Title)
	assert.Equal(t, "Docs home", home.Description)
	assert.Equal(t, "Welcome.\n", string(home.Body))

	page, ok := src.GetPage([]string{"cli", "getting-started"})
	require.True(t, ok)
	assert.Equal(t, "Getting Started", page.Title)
	assert.Equal(t, "cli/getting-started.md", page.File)

	_, ok = src.GetPage([]string{"framework", "index"})
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryFileSystem))
	})

	t.Run("duplicate slug", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.mdx", "one")
		writeFile(t, root, "a/index.mdx", "two")
		_, err := Load(root)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryContent))
	})

	t.Run("unterminated frontmatter", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "a.mdx", "---\ntitle: x\n")
		_, err := Load(root)
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryContent))
	})
}

func TestGenerateParams(t *testing.T) {
	src, err := Load(newTree(t))
	require.NoError(t, err)

	params := src.GenerateParams()
	require.Len(t, params, 5)
	assert.Equal(t, routes.Path{"framework"}, params[2].Slug)
	assert.Equal(t, "framework/index.mdx", params[2].Meta["file"])

	resolved := routes.ResolveParents(params)
	assert.Equal(t, routes.Path{}, resolved[0].Slug, "root page is never rewritten")
	assert.Equal(t, routes.Path{"framework", "index"}, resolved[2].Slug)
	assert.Equal(t, routes.Path{"framework", "applications", "index"}, resolved[3].Slug)
	assert.Equal(t, routes.Path{"framework", "applications", "resources"}, resolved[4].Slug)
}

func TestPageURL(t *testing.T) {
	page := &Page{Slug: routes.Path{"framework", "applications"}}
	assert.Equal(t, "/docs/framework/applications", page.URL("/docs"))
	assert.Equal(t, "/docs/framework/applications", page.URL("docs/"))
	assert.Equal(t, "/framework/applications", page.URL(""))
	assert.Equal(t, "/docs", (&Page{}).URL("/docs"))
	assert.Equal(t, "/", (&Page{}).URL(""))
}

func TestStoreReload(t *testing.T) {
	root := newTree(t)
	src, err := Load(root)
	require.NoError(t, err)
	store := NewStore(src)

	writeFile(t, root, "cli/deploy.mdx", "---\ntitle: Deploy\n---\n")
	reloaded, err := store.Reload()
	require.NoError(t, err)
	assert.Equal(t, 6, reloaded.Len())

	page, ok := store.GetPage([]string{"cli", "deploy"})
	require.True(t, ok)
	assert.Equal(t, "Deploy", page.Title)

	writeFile(t, root, "broken.mdx", "---\nunterminated")
	_, err = store.Reload()
	require.Error(t, err)
	assert.Equal(t, 6, store.Current().Len(), "failed reload keeps the previous snapshot")
}

func TestWatcherReloadsOnChange(t *testing.T) {
	root := newTree(t)
	src, err := Load(root)
	require.NoError(t, err)
	store := NewStore(src)

	reloaded := make(chan *Source, 4)
	w, err := NewWatcher(store,
		WithDebounce(20*time.Millisecond),
		WithReloadHook(func(s *Source) { reloaded <- s }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))
	defer func() { _ = w.Stop() }()

	writeFile(t, root, "framework/new-page.mdx", "---\ntitle: New Page\n---\n")

	select {
	case s := <-reloaded:
		_, ok := s.GetPage([]string{"framework", "new-page"})
		assert.True(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not reload")
	}
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}

func TestFingerprint(t *testing.T) {
	root := newTree(t)
	first, err := Load(root)
	require.NoError(t, err)
	again, err := Load(root)
	require.NoError(t, err)

	require.NotEmpty(t, first.Fingerprint())
	assert.Equal(t, first.Fingerprint(), again.Fingerprint())
	for _, p := range first.Pages() {
		assert.NotEmpty(t, p.Fingerprint, p.File)
	}

	writeFile(t, root, "extra.md", "# Extra\n")
	changed, err := Load(root)
	require.NoError(t, err)
	assert.NotEqual(t, first.Fingerprint(), changed.Fingerprint())
}
