package config

import (
	"net/url"
	"strings"
	"time"

	"github.com/newstack-cloud/celerity-docs/internal/foundation/errors"
)

// ValidateConfig validates the complete configuration after defaults are applied.
func ValidateConfig(cfg *Config) error {
	return newConfigurationValidator(cfg).validate()
}

type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateSite(); err != nil {
		return err
	}
	if err := cv.validateSearch(); err != nil {
		return err
	}
	if err := cv.validateServer(); err != nil {
		return err
	}
	return cv.validatePublish()
}

func (cv *configurationValidator) validateSite() error {
	u, err := url.Parse(cv.config.Site.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigError("site.url must be an absolute URL").
			WithContext("value", cv.config.Site.URL).
			Build()
	}
	return nil
}

func (cv *configurationValidator) validateSearch() error {
	s := cv.config.Search
	provider, err := searchProviders.Parse(string(s.Provider))
	if err != nil || provider == "" {
		return errors.ConfigError("unsupported search provider").
			WithContext("provider", string(s.Provider)).
			WithContext("valid", strings.Join(searchProviders.ValidKeys(), ", ")).
			Build()
	}
	if provider == SearchProviderAlgolia && s.AppID == "" {
		return errors.ConfigError("search.app_id is required for the algolia provider").Build()
	}
	if provider == SearchProviderAlgolia && s.APIKey == "" {
		return errors.ConfigError("search.api_key is required for the algolia provider").Build()
	}
	if _, err := time.ParseDuration(s.Timeout); err != nil {
		return errors.ConfigError("search.timeout is not a valid duration").
			WithContext("value", s.Timeout).
			Build()
	}
	if s.SyncInterval != "" {
		d, err := time.ParseDuration(s.SyncInterval)
		if err != nil || d < time.Minute {
			return errors.ConfigError("search.sync_interval must be a duration of at least 1m").
				WithContext("value", s.SyncInterval).
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	for field, value := range map[string]string{
		"server.read_timeout":     cv.config.Server.ReadTimeout,
		"server.shutdown_timeout": cv.config.Server.ShutdownTimeout,
	} {
		if _, err := time.ParseDuration(value); err != nil {
			return errors.ConfigError("invalid duration").
				WithContext("field", field).
				WithContext("value", value).
				Build()
		}
	}
	return nil
}

func (cv *configurationValidator) validatePublish() error {
	p := cv.config.Export.Publish
	if p == nil {
		return nil
	}
	for field, value := range map[string]string{
		"export.publish.endpoint":   p.Endpoint,
		"export.publish.bucket":     p.Bucket,
		"export.publish.access_key": p.AccessKey,
		"export.publish.secret_key": p.SecretKey,
	} {
		if strings.TrimSpace(value) == "" {
			return errors.ConfigError("missing required publish setting").
				WithContext("field", field).
				Build()
		}
	}
	if strings.Contains(p.Endpoint, "://") {
		return errors.ConfigError("export.publish.endpoint must be host[:port] without a scheme").
			WithContext("value", p.Endpoint).
			Build()
	}
	return nil
}

// Durations parsed from validated string fields. Validation guarantees they parse.

func (s SearchConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.Timeout)
	return d
}

func (s SearchConfig) SyncIntervalDuration() time.Duration {
	if s.SyncInterval == "" {
		return 0
	}
	d, _ := time.ParseDuration(s.SyncInterval)
	return d
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ReadTimeout)
	return d
}

func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ShutdownTimeout)
	return d
}
