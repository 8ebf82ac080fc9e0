package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if ECOSORT_CONFIG is set
//  3. env (prefix ECOSORT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("ECOSORT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: ECOSORT_ADDR, ECOSORT_ANTHROPIC_API_KEY, ...
	// Keys keep their underscores to match the koanf struct tags.
	envProvider := env.Provider("ECOSORT_", ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), "ecosort_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the service cannot run with.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxLeaderboardLimit < 1:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case c.PointsPerCorrect < 1 || c.PenaltyPerWrong < 1:
		return fmt.Errorf("%w: scoring weights must be positive", ErrInvalidConfig)
	case c.JPEGQuality < 1 || c.JPEGQuality > 100:
		return fmt.Errorf("%w: jpeg_quality must be in [1,100]", ErrInvalidConfig)
	}
	switch c.OracleProvider {
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("%w: anthropic_api_key is required for the anthropic provider", ErrInvalidConfig)
		}
	case "mock":
		// No credentials needed.
	default:
		return fmt.Errorf("%w: unknown oracle_provider %q", ErrInvalidConfig, c.OracleProvider)
	}
	return nil
}
