// Package config collects the environment-driven settings for the
// frontend. A .env file is honored when present; real environment
// variables win over it.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config is the process configuration.
type Config struct {
	// ListenAddr is the address the frontend binds, e.g. ":3000".
	ListenAddr string
	// APIBaseURL is the root of the remote Emporium REST API.
	APIBaseURL string
	// WikiDataBaseURL overrides the public WikiData endpoint.
	WikiDataBaseURL string
	// TemplatesDir holds the html/template views.
	TemplatesDir string
	// RequestTimeout bounds outgoing API calls.
	RequestTimeout time.Duration
	// Production selects the production logger profile.
	Production bool
}

// Load reads configuration from the environment. APIBaseURL is the
// only required setting.
func Load() (*Config, error) {
	// Missing .env is fine; deployments set real env vars.
	_ = godotenv.Load()

	cfg := &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":3000"),
		APIBaseURL:      os.Getenv("API_BASE_URL"),
		WikiDataBaseURL: os.Getenv("WIKIDATA_BASE_URL"),
		TemplatesDir:    getEnv("TEMPLATES_DIR", "templates"),
		RequestTimeout:  15 * time.Second,
		Production:      os.Getenv("ENV") == "production",
	}

	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("config: API_BASE_URL not set")
	}

	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("config: invalid REQUEST_TIMEOUT %q: %w", raw, err)
		}
		cfg.RequestTimeout = d
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
