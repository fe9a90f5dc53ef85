package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/newstack-cloud/celerity-docs/internal/foundation"
	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
)

// Config represents the application configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Search  SearchConfig  `yaml:"search"`
	Server  ServerConfig  `yaml:"server"`
	Export  ExportConfig  `yaml:"export"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Tagline     string `yaml:"tagline,omitempty"`
	URL         string `yaml:"url"`
	BasePath    string `yaml:"base_path,omitempty"`
	DocsRoute   string `yaml:"docs_route,omitempty"` // URL prefix of documentation pages
	GitHubURL   string `yaml:"github_url,omitempty"`
	EditURLBase string `yaml:"edit_url_base,omitempty"`
}

// ContentConfig locates the Markdown/MDX content tree.
type ContentConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions,omitempty"`
}

// SearchProvider selects the search backend.
type SearchProvider string

const (
	SearchProviderAlgolia SearchProvider = "algolia"
	SearchProviderBleve   SearchProvider = "bleve"
)

var searchProviders = foundation.NewNormalizer("search provider", map[string]SearchProvider{
	"algolia": SearchProviderAlgolia,
	"bleve":   SearchProviderBleve,
}, "")

// SearchConfig configures querying and syncing the search index.
type SearchConfig struct {
	Provider    SearchProvider `yaml:"provider"`
	AppID       string         `yaml:"app_id,omitempty"`
	APIKey      string         `yaml:"api_key,omitempty"`       // search-only key
	AdminAPIKey string         `yaml:"admin_api_key,omitempty"` // used by sync
	IndexName   string         `yaml:"index_name"`
	Host        string         `yaml:"host,omitempty"` // overrides the derived Algolia host
	IndexPath   string         `yaml:"index_path,omitempty"`
	HitsPerPage int            `yaml:"hits_per_page,omitempty"`
	Distinct    int            `yaml:"distinct,omitempty"`
	CacheSize   int            `yaml:"cache_size,omitempty"`
	Timeout     string         `yaml:"timeout,omitempty"`
	// SyncInterval enables periodic re-sync while serving (e.g. "1h"). Empty disables it.
	SyncInterval string `yaml:"sync_interval,omitempty"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr            string `yaml:"addr"`
	ReadTimeout     string `yaml:"read_timeout,omitempty"`
	ShutdownTimeout string `yaml:"shutdown_timeout,omitempty"`
	Watch           bool   `yaml:"watch,omitempty"`
}

// ExportConfig configures static export.
type ExportConfig struct {
	OutputDir string         `yaml:"output_dir"`
	Clean     bool           `yaml:"clean"`
	Publish   *PublishConfig `yaml:"publish,omitempty"`
}

// PublishConfig uploads an export to an S3-compatible bucket.
type PublishConfig struct {
	Endpoint  string `yaml:"endpoint"`
	Region    string `yaml:"region,omitempty"`
	Bucket    string `yaml:"bucket"`
	Prefix    string `yaml:"prefix,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Load loads configuration from the specified file. A missing file is not an
// error: defaults plus environment overrides are used instead.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	cfg := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if err := Parse(data, cfg); err != nil {
				return nil, err
			}
		case os.IsNotExist(err):
			// defaults only
		default:
			return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
				Fatal().
				WithContext("path", configPath).
				Build()
		}
	}

	applyEnvOverrides(cfg)
	if err := ApplyDefaults(cfg); err != nil {
		return nil, err
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse expands ${ENV} references and unmarshals YAML into cfg.
func Parse(data []byte, cfg *Config) error {
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	return nil
}
