package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newstack-cloud/celerity-docs/internal/config"
	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
)

func writeContent(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	require.NoError(t, err)
	return ctx.Run(&Global{}, cli)
}

func TestExportCmd(t *testing.T) {
	content := writeContent(t, map[string]string{
		"index.mdx":              "---\ntitle: Home\n---\nHi.\n",
		"framework/index.mdx":    "---\ntitle: Framework\n---\nBody.\n",
		"framework/resources.md": "# Resources\n",
	})
	out := t.TempDir()
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")

	require.NoError(t, run(t, "-c", cfgPath, "--content", content, "export", "-o", out))

	for _, rel := range []string{"llms.mdx/index", "llms.mdx/framework/index", "llms.mdx/framework/resources", "llms.txt"} {
		assert.FileExists(t, filepath.Join(out, filepath.FromSlash(rel)))
	}
}

func TestCheckLinksCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")

	ok := writeContent(t, map[string]string{
		"a.mdx": "See [b](/docs/b).\n",
		"b.mdx": "B.\n",
	})
	require.NoError(t, run(t, "-c", cfgPath, "--content", ok, "check-links"))

	broken := writeContent(t, map[string]string{
		"a.mdx": "See [c](/docs/c#x).\n",
	})
	err := run(t, "-c", cfgPath, "--content", broken, "check-links")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
}

func TestSyncAndSearchCmd_Bleve(t *testing.T) {
	content := writeContent(t, map[string]string{
		"deploy.mdx": "---\ntitle: Deploy\n---\nDeploying applications.\n",
	})
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "celerity-docs.yaml")
	indexPath := filepath.Join(dir, "index.bleve")
	require.NoError(t, os.WriteFile(cfgPath, []byte("search:\n  provider: bleve\n  index_path: "+indexPath+"\n"), 0o644))

	require.NoError(t, run(t, "-c", cfgPath, "--content", content, "sync"))
	assert.DirExists(t, indexPath)
	require.NoError(t, run(t, "-c", cfgPath, "--content", content, "search", "deploy"))
}

func TestOpenBackend(t *testing.T) {
	t.Run("bleve", func(t *testing.T) {
		cfg := &config.Config{Search: config.SearchConfig{Provider: config.SearchProviderBleve, IndexPath: filepath.Join(t.TempDir(), "idx")}}
		require.NoError(t, config.ApplyDefaults(cfg))
		backend, closeFn, err := openBackend(cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, "bleve", backend.Name())
	})

	t.Run("algolia", func(t *testing.T) {
		cfg := &config.Config{Search: config.SearchConfig{AppID: "APP", APIKey: "key", IndexName: "docs"}}
		require.NoError(t, config.ApplyDefaults(cfg))
		backend, closeFn, err := openBackend(cfg)
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, "algolia", backend.Name())
	})

	t.Run("unsupported", func(t *testing.T) {
		cfg := &config.Config{Search: config.SearchConfig{Provider: "elastic"}}
		_, closeFn, err := openBackend(cfg)
		require.Error(t, err)
		assert.NotNil(t, closeFn)
		assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
	})
}

func TestExportCmd_PublishRequiresConfig(t *testing.T) {
	content := writeContent(t, map[string]string{"index.mdx": "# Home\n"})
	cfgPath := filepath.Join(t.TempDir(), "missing.yaml")

	err := run(t, "-c", cfgPath, "--content", content, "export", "-o", t.TempDir(), "--publish")
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}
