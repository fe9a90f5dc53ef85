package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/newstack-cloud/celerity-docs/internal/config"
	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
	"github.com/newstack-cloud/celerity-docs/internal/logfields"
	"github.com/newstack-cloud/celerity-docs/internal/retry"
	"github.com/newstack-cloud/celerity-docs/internal/search"
	"github.com/newstack-cloud/celerity-docs/internal/source"
)

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"celerity-docs.yaml" env:"CELERITY_DOCS_CONFIG"`
	Content string           `help:"Content directory (overrides content.dir)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Routes     RoutesCmd     `cmd:"" help:"Print the generated plain-text route params"`
	Export     ExportCmd     `cmd:"" help:"Export page texts and llms.txt as static files"`
	Serve      ServeCmd      `cmd:"" help:"Serve page texts, search API and metrics over HTTP"`
	Search     SearchCmd     `cmd:"" help:"Query the search index and print grouped results"`
	Sync       SyncCmd       `cmd:"" help:"Rebuild the search index from the content tree"`
	CheckLinks CheckLinksCmd `cmd:"" name:"check-links" help:"Report internal links that do not resolve to a page"`
	MCP        MCPCmd        `cmd:"" name:"mcp" help:"Serve page texts and search to LLM clients over MCP (stdio)"`
	VersionCmd VersionCmd    `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	} else if v := os.Getenv(config.EnvLogLevel); v != "" {
		if err := level.UnmarshalText([]byte(strings.ToUpper(v))); err != nil {
			level = slog.LevelInfo
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig loads the configuration file and applies global flag overrides.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	if c.Content != "" {
		cfg.Content.Dir = c.Content
	}
	return cfg, nil
}

// loadSource reads the content tree named by cfg.
func loadSource(cfg *config.Config) (*source.Source, error) {
	src, err := source.Load(cfg.Content.Dir, cfg.Content.Extensions...)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded content", logfields.Path(src.Root()), logfields.Pages(src.Len()))
	return src, nil
}

// openBackend builds the configured search backend. The returned close
// function is never nil.
func openBackend(cfg *config.Config) (search.Backend, func(), error) {
	switch cfg.Search.Provider {
	case config.SearchProviderAlgolia:
		client, err := search.NewAlgoliaClient(search.AlgoliaConfig{
			AppID:       cfg.Search.AppID,
			APIKey:      cfg.Search.APIKey,
			AdminAPIKey: cfg.Search.AdminAPIKey,
			IndexName:   cfg.Search.IndexName,
			Host:        cfg.Search.Host,
			Timeout:     cfg.Search.TimeoutDuration(),
		}, search.WithRetryPolicy(retry.DefaultPolicy()))
		if err != nil {
			return nil, func() {}, err
		}
		return client, func() {}, nil
	case config.SearchProviderBleve:
		idx, err := search.OpenBleveIndex(cfg.Search.IndexPath)
		if err != nil {
			return nil, func() {}, err
		}
		return idx, func() {
			if err := idx.Close(); err != nil {
				slog.Warn("Failed to close search index", logfields.Error(err))
			}
		}, nil
	default:
		return nil, func() {}, errors.ConfigError("unsupported search provider").
			WithContext("provider", string(cfg.Search.Provider)).
			Build()
	}
}

// newSearchService wraps the configured backend in a caching service.
func newSearchService(cfg *config.Config, opts ...search.ServiceOption) (*search.Service, func(), error) {
	backend, closeFn, err := openBackend(cfg)
	if err != nil {
		return nil, closeFn, err
	}
	opts = append([]search.ServiceOption{search.WithPaging(cfg.Search.HitsPerPage, cfg.Search.Distinct)}, opts...)
	svc, err := search.NewService(backend, cfg.Search.CacheSize, opts...)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return svc, closeFn, nil
}
