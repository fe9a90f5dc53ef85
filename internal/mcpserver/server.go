// Package mcpserver exposes the documentation to LLM clients over the Model
// Context Protocol: page text, the page listing and search.
package mcpserver

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/newstack-cloud/celerity-docs/internal/llmtext"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/routes"
	"github.com/newstack-cloud/celerity-docs/internal/search"
	"github.com/newstack-cloud/celerity-docs/internal/source"
	"github.com/newstack-cloud/celerity-docs/internal/version"
)

const (
	serverName = "celerity-docs"
	// IndexURI is the resource URI of the llms.txt listing.
	IndexURI = "celerity-docs://llms.txt"

	maxSearchResults = 50
)

// ContentProvider supplies the active content snapshot.
type ContentProvider interface {
	Current() *source.Source
}

// Options configures New.
type Options struct {
	Content  ContentProvider
	Renderer llmtext.Renderer
	Title    string
	Summary  string
	// Search is optional; without it the search_docs tool is not registered.
	Search *search.Service
}

// Server wraps an MCP server bound to the documentation content.
type Server struct {
	opts Options
	mcp  *mcp.Server
}

// New creates the MCP server and registers its tools and resources.
func New(opts Options) *Server {
	s := &Server{
		opts: opts,
		mcp:  mcp.NewServer(&mcp.Implementation{Name: serverName, Version: version.Version}, nil),
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_page",
		Description: "Return the plain-text Markdown of a Celerity documentation page by slug, e.g. \"framework/applications\".",
	}, s.getPage)
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_pages",
		Description: "List every Celerity documentation page with its slug, title, URL and description.",
	}, s.listPages)
	if opts.Search != nil {
		mcp.AddTool(s.mcp, &mcp.Tool{
			Name:        "search_docs",
			Description: "Full-text search over the Celerity documentation. Results are grouped by page.",
		}, s.searchDocs)
	}

	s.mcp.AddResource(&mcp.Resource{
		URI:         IndexURI,
		Name:        "llms.txt",
		Description: "Index of all documentation pages",
		MIMEType:    "text/plain",
	}, s.readIndex)
	return s
}

// MCP returns the underlying server, e.g. to connect custom transports.
func (s *Server) MCP() *mcp.Server { return s.mcp }

// Run serves over stdio until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("MCP server ready", logfields.Pages(s.opts.Content.Current().Len()))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// GetPageInput is the input of the get_page tool.
type GetPageInput struct {
	Slug string `json:"slug" jsonschema:"Page slug relative to the docs root, segments separated by /. Empty for the docs home page."`
}

// GetPageOutput is the output of the get_page tool.
type GetPageOutput struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

func (s *Server) getPage(_ context.Context, _ *mcp.CallToolRequest, in GetPageInput) (*mcp.CallToolResult, GetPageOutput, error) {
	page, err := llmtext.Lookup(s.opts.Content.Current(), routes.ParsePath(in.Slug))
	if err != nil {
		return toolError("no documentation page for slug " + strings.TrimSpace(in.Slug)), GetPageOutput{}, nil
	}
	return nil, GetPageOutput{
		Slug:  page.Slug.Join(),
		Title: page.Title,
		URL:   s.opts.Renderer.PageURL(page),
		Text:  s.opts.Renderer.Render(page),
	}, nil
}

// ListPagesInput is the (empty) input of the list_pages tool.
type ListPagesInput struct{}

// PageSummary describes one page in list_pages output.
type PageSummary struct {
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// ListPagesOutput is the output of the list_pages tool.
type ListPagesOutput struct {
	Pages []PageSummary `json:"pages"`
}

func (s *Server) listPages(_ context.Context, _ *mcp.CallToolRequest, _ ListPagesInput) (*mcp.CallToolResult, ListPagesOutput, error) {
	pages := s.opts.Content.Current().Pages()
	out := ListPagesOutput{Pages: make([]PageSummary, 0, len(pages))}
	for _, p := range pages {
		out.Pages = append(out.Pages, PageSummary{
			Slug:        p.Slug.Join(),
			Title:       p.Title,
			URL:         s.opts.Renderer.PageURL(p),
			Description: p.Description,
		})
	}
	return nil, out, nil
}

// SearchDocsInput is the input of the search_docs tool.
type SearchDocsInput struct {
	Query string `json:"query" jsonschema:"Search terms"`
	Limit int    `json:"limit,omitempty" jsonschema:"Maximum number of entries to return (optional)"`
}

// SearchResult is one grouped search entry with markup removed.
type SearchResult struct {
	Kind search.EntryKind `json:"kind"`
	URL  string           `json:"url"`
	Text string           `json:"text"`
}

// SearchDocsOutput is the output of the search_docs tool.
type SearchDocsOutput struct {
	Query   string         `json:"query"`
	Results []SearchResult `json:"results"`
}

func (s *Server) searchDocs(ctx context.Context, _ *mcp.CallToolRequest, in SearchDocsInput) (*mcp.CallToolResult, SearchDocsOutput, error) {
	result, err := s.opts.Search.Search(ctx, in.Query)
	if err != nil {
		slog.Warn("MCP search failed", logfields.Query(in.Query), logfields.Error(err))
		return toolError("search failed: " + err.Error()), SearchDocsOutput{}, nil
	}

	limit := in.Limit
	if limit <= 0 || limit > maxSearchResults {
		limit = maxSearchResults
	}
	out := SearchDocsOutput{Query: in.Query, Results: []SearchResult{}}
	for _, e := range result.Entries {
		if len(out.Results) == limit {
			break
		}
		out.Results = append(out.Results, SearchResult{Kind: e.Kind, URL: e.URL, Text: e.Display()})
	}
	return nil, out, nil
}

func (s *Server) readIndex(_ context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	text := s.opts.Renderer.Index(s.opts.Title, s.opts.Summary, s.opts.Content.Current().Pages())
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{URI: req.Params.URI, MIMEType: "text/plain", Text: text}},
	}, nil
}

func toolError(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
