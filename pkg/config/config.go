// Package config holds the environment-driven runtime settings and the
// portal constants (URLs, component selectors, code tables) every scraper
// shares.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the runtime knobs. Each can be overridden via environment.
const (
	DefaultSede           = "medellin"
	DefaultRateLimitDelay = 2 * time.Second
	DefaultCacheTTL       = 5 * time.Minute
)

// Config aggregates the runtime settings consumed by the scraping engine.
type Config struct {
	// Sede is the default campus used when a request does not name one.
	Sede string
	// Headless controls whether the browser runs without a visible window.
	// Disable it (SIA_HEADLESS=false) only for selector debugging.
	Headless bool
	// RateLimitDelay is the minimum spacing between portal requests.
	RateLimitDelay time.Duration
	// CacheTTL is the default lifetime of cached read results.
	CacheTTL time.Duration
	// Selectors is the active ADF selector set.
	Selectors Selectors
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present but is never required.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Sede:           envOr("SIA_SEDE", DefaultSede),
		Headless:       envBool("SIA_HEADLESS", true),
		RateLimitDelay: envDuration("SIA_RATE_LIMIT_DELAY", DefaultRateLimitDelay),
		CacheTTL:       envDuration("SIA_CACHE_TTL", DefaultCacheTTL),
		Selectors:      DefaultSelectors(),
	}

	// The portal's ADF component IDs drift across framework upgrades; an
	// override file lets deployments track them without a rebuild.
	if path := os.Getenv("SIA_SELECTORS_FILE"); path != "" {
		if err := cfg.Selectors.LoadOverrides(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// envDuration accepts Go duration strings ("2s", "5m") and, for compatibility
// with the original deployment, bare millisecond integers ("2000").
func envDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return fallback
}
