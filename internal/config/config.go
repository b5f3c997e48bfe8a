// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix is prepended (upper-cased, with an underscore) to every
// environment variable name below.
const envPrefix = "look4git"

// Config holds the application configuration. It is read once at process
// start and immutable afterwards; the GitHub token in particular is never
// re-read or mutated into shared client state.
type Config struct {
	// GithubToken - optional personal access token. Without it requests are
	// unauthenticated, subject to tighter rate limits, and the GraphQL
	// contribution calendar is unavailable (the events fallback still works).
	GithubToken string `envconfig:"GITHUB_TOKEN"`

	// GithubAPIURL - base URL of the GitHub REST API. Overridable for
	// GitHub Enterprise deployments.
	GithubAPIURL string `envconfig:"GITHUB_API_URL" default:"https://api.github.com/"`

	// GithubGraphQLURL - endpoint of the GitHub GraphQL API.
	GithubGraphQLURL string `envconfig:"GITHUB_GRAPHQL_URL" default:"https://api.github.com/graphql"`

	// GithubAPIRateLimit - max outbound GitHub calls per second. Zero or
	// negative disables the client-side cap.
	GithubAPIRateLimit float64 `envconfig:"GITHUB_API_RATE_LIMIT" default:"10"`

	// RequestTimeout - timeout applied to every outbound GitHub request.
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`

	// ListenAddr - listen address for the JSON API server.
	ListenAddr string `envconfig:"LISTEN_ADDR" default:"127.0.0.1:8080"`
}

// Load reads configuration from LOOK4GIT_-prefixed environment variables
// and returns a validated Config.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("processing environment config: %w", err)
	}

	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("LOOK4GIT_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.GithubAPIURL == "" {
		return nil, fmt.Errorf("LOOK4GIT_GITHUB_API_URL must not be empty")
	}
	if cfg.GithubGraphQLURL == "" {
		return nil, fmt.Errorf("LOOK4GIT_GITHUB_GRAPHQL_URL must not be empty")
	}

	return &cfg, nil
}
