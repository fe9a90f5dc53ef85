package commands

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/newstack-cloud/celerity-docs/internal/llmtext"
	"github.com/newstack-cloud/celerity-docs/internal/mcpserver"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

// MCPCmd implements the 'mcp' command.
type MCPCmd struct {
	NoSearch bool `name:"no-search" help:"Do not expose the search_docs tool"`
	Watch    bool `help:"Reload content when files change"`
}

func (m *MCPCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	src, err := loadSource(cfg)
	if err != nil {
		return err
	}
	store := source.NewStore(src, cfg.Content.Extensions...)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := mcpserver.Options{
		Content:  store,
		Renderer: llmtext.Renderer{SiteURL: cfg.Site.URL, DocsRoute: cfg.Site.DocsRoute},
		Title:    cfg.Site.Title,
		Summary:  cfg.Site.Tagline,
	}
	if !m.NoSearch {
		svc, closeFn, err := newSearchService(cfg)
		if err != nil {
			return err
		}
		defer closeFn()
		opts.Search = svc
	}

	if m.Watch {
		watcher, err := source.NewWatcher(store)
		if err != nil {
			return err
		}
		if err := watcher.Start(ctx); err != nil {
			return err
		}
		defer func() { _ = watcher.Stop() }()
	}

	return mcpserver.New(opts).Run(ctx)
}
