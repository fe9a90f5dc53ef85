package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables honoured for search credentials. Values from the
// environment win over the config file so secrets can stay out of YAML.
const (
	EnvAlgoliaAppID       = "ALGOLIA_APP_ID"
	EnvAlgoliaAPIKey      = "ALGOLIA_API_KEY"
	EnvAlgoliaAdminAPIKey = "ALGOLIA_ADMIN_API_KEY"
	EnvAlgoliaIndexName   = "ALGOLIA_INDEX_NAME"
	EnvLogLevel           = "CELERITY_DOCS_LOG_LEVEL"
	EnvPublishAccessKey   = "CELERITY_DOCS_S3_ACCESS_KEY"
	EnvPublishSecretKey   = "CELERITY_DOCS_S3_SECRET_KEY"
)

// loadEnvFile loads environment variables from .env/.env.local files.
// It stops at the first file that loads. Existing process variables are not overwritten.
func loadEnvFile() error {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return nil
		}
	}
	return fmt.Errorf("no .env file found")
}

func applyEnvOverrides(cfg *Config) {
	override := func(dst *string, key string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	override(&cfg.Search.AppID, EnvAlgoliaAppID)
	override(&cfg.Search.APIKey, EnvAlgoliaAPIKey)
	override(&cfg.Search.AdminAPIKey, EnvAlgoliaAdminAPIKey)
	override(&cfg.Search.IndexName, EnvAlgoliaIndexName)
	if p := cfg.Export.Publish; p != nil {
		override(&p.AccessKey, EnvPublishAccessKey)
		override(&p.SecretKey, EnvPublishSecretKey)
	}
}
