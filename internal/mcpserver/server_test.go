package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newstack-cloud/celerity-docs/internal/llmtext"
	"github.com/newstack-cloud/celerity-docs/internal/search"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

func newStore(t *testing.T) *source.Store {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.mdx":           "---\ntitle: Celerity\n---\nWelcome.\n",
		"framework/index.mdx": "---\ntitle: Framework\ndescription: Backend framework\n---\nHandlers and resources.\n",
		"cli/deploy.mdx":      "---\ntitle: Deploy\n---\nDeploy applications with the CLI.\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	src, err := source.Load(root)
	require.NoError(t, err)
	return source.NewStore(src)
}

func connect(t *testing.T, opts Options) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()
	srv := New(opts)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := srv.MCP().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func decode[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	var out T
	raw, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func baseOptions(t *testing.T) Options {
	return Options{
		Content:  newStore(t),
		Renderer: llmtext.Renderer{SiteURL: "https://celerityframework.io", DocsRoute: "/docs"},
		Title:    "Celerity",
		Summary:  "Backend framework docs",
	}
}

func TestGetPage(t *testing.T) {
	session := connect(t, baseOptions(t))
	ctx := context.Background()

	tests := []struct {
		name      string
		slug      string
		wantTitle string
	}{
		{"literal", "cli/deploy", "Deploy"},
		{"index suffix", "framework/index", "Framework"},
		{"home", "", "Celerity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := session.CallTool(ctx, &mcp.CallToolParams{
				Name:      "get_page",
				Arguments: map[string]any{"slug": tt.slug},
			})
			require.NoError(t, err)
			require.False(t, res.IsError)
			out := decode[GetPageOutput](t, res)
			assert.Equal(t, tt.wantTitle, out.Title)
			assert.Contains(t, out.Text, "# "+tt.wantTitle+"\n")
		})
	}

	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "get_page", Arguments: map[string]any{"slug": "missing"}})
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestListPages(t *testing.T) {
	session := connect(t, baseOptions(t))
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: "list_pages", Arguments: map[string]any{}})
	require.NoError(t, err)

	out := decode[ListPagesOutput](t, res)
	require.Len(t, out.Pages, 3)
	assert.Equal(t, "", out.Pages[0].Slug)
	assert.Equal(t, "https://celerityframework.io/docs/cli/deploy", out.Pages[1].URL)
	assert.Equal(t, "Backend framework", out.Pages[2].Description)
}

func TestSearchDocs(t *testing.T) {
	opts := baseOptions(t)
	idx, err := search.OpenBleveIndex("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	svc, err := search.NewService(idx, 8)
	require.NoError(t, err)
	require.NoError(t, svc.Sync(context.Background(), search.BuildRecords(opts.Content.Current().Pages(), "/docs")))
	opts.Search = svc

	session := connect(t, opts)
	res, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "search_docs",
		Arguments: map[string]any{"query": "deploy", "limit": 2},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)

	out := decode[SearchDocsOutput](t, res)
	require.Len(t, out.Results, 2)
	assert.Equal(t, search.EntryPage, out.Results[0].Kind)
	assert.Equal(t, "/docs/cli/deploy", out.Results[0].URL)
	assert.NotContains(t, out.Results[0].Text, "<mark>")
}

func TestSearchDocsNotRegisteredWithoutService(t *testing.T) {
	session := connect(t, baseOptions(t))
	tools, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"get_page", "list_pages"}, names)
}

func TestReadIndexResource(t *testing.T) {
	session := connect(t, baseOptions(t))
	res, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: IndexURI})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Contains(t, res.Contents[0].Text, "# Celerity\n\n> Backend framework docs\n")
	assert.Contains(t, res.Contents[0].Text, "- [Framework](https://celerityframework.io/docs/framework): Backend framework\n")
}
