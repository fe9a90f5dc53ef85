package config

import (
	"strings"
)

// DefaultApplier applies defaults for a specific configuration domain.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

// SiteDefaultApplier handles Site configuration defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Title == "" {
		cfg.Site.Title = "Celerity"
	}
	if cfg.Site.URL == "" {
		cfg.Site.URL = "https://celerityframework.io"
	}
	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")
	if cfg.Site.DocsRoute == "" {
		cfg.Site.DocsRoute = "/docs"
	}
	cfg.Site.DocsRoute = "/" + strings.Trim(cfg.Site.DocsRoute, "/")
	return nil
}

// ContentDefaultApplier handles Content configuration defaults.
type ContentDefaultApplier struct{}

func (ContentDefaultApplier) Domain() string { return "content" }

func (ContentDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "content/docs"
	}
	if len(cfg.Content.Extensions) == 0 {
		cfg.Content.Extensions = []string{".md", ".mdx"}
	}
	return nil
}

// SearchDefaultApplier handles Search configuration defaults.
type SearchDefaultApplier struct{}

func (SearchDefaultApplier) Domain() string { return "search" }

func (SearchDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Search.Provider == "" {
		if cfg.Search.AppID != "" {
			cfg.Search.Provider = SearchProviderAlgolia
		} else {
			cfg.Search.Provider = SearchProviderBleve
		}
	}
	if p, err := searchProviders.Parse(string(cfg.Search.Provider)); err == nil {
		cfg.Search.Provider = p
	}
	if cfg.Search.IndexName == "" {
		cfg.Search.IndexName = "celerity-docs"
	}
	if cfg.Search.IndexPath == "" {
		cfg.Search.IndexPath = ".search/index.bleve"
	}
	if cfg.Search.HitsPerPage <= 0 {
		cfg.Search.HitsPerPage = 10
	}
	if cfg.Search.Distinct <= 0 {
		cfg.Search.Distinct = 5
	}
	if cfg.Search.CacheSize <= 0 {
		cfg.Search.CacheSize = 256
	}
	if cfg.Search.Timeout == "" {
		cfg.Search.Timeout = "5s"
	}
	return nil
}

// ServerDefaultApplier handles Server configuration defaults.
type ServerDefaultApplier struct{}

func (ServerDefaultApplier) Domain() string { return "server" }

func (ServerDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":3000"
	}
	if cfg.Server.ReadTimeout == "" {
		cfg.Server.ReadTimeout = "10s"
	}
	if cfg.Server.ShutdownTimeout == "" {
		cfg.Server.ShutdownTimeout = "15s"
	}
	return nil
}

// ExportDefaultApplier handles Export configuration defaults.
type ExportDefaultApplier struct{}

func (ExportDefaultApplier) Domain() string { return "export" }

func (ExportDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Export.OutputDir == "" {
		cfg.Export.OutputDir = "out"
	}
	if p := cfg.Export.Publish; p != nil {
		if p.Region == "" {
			p.Region = "us-east-1"
		}
		p.Prefix = strings.Trim(p.Prefix, "/")
	}
	return nil
}

// ApplyDefaults runs every domain applier in order.
func ApplyDefaults(cfg *Config) error {
	appliers := []DefaultApplier{
		SiteDefaultApplier{},
		ContentDefaultApplier{},
		SearchDefaultApplier{},
		ServerDefaultApplier{},
		ExportDefaultApplier{},
	}
	for _, a := range appliers {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}
