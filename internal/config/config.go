// Package config defines service configuration structures and loading.
//
// Conventions:
// - Defaults come from New; Load layers file and env on top.
// - External errors are wrapped via this package's sentinels.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// DedupeSize bounds the round idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// PointsPerCorrect and PenaltyPerWrong are the scoring weights.
	PointsPerCorrect int `koanf:"points_per_correct"`
	PenaltyPerWrong  int `koanf:"penalty_per_wrong"`

	// OracleProvider selects the classifier backend: anthropic, mock.
	OracleProvider string `koanf:"oracle_provider"`

	// AnthropicAPIKey authenticates against the Anthropic API.
	AnthropicAPIKey string `koanf:"anthropic_api_key"`

	// OracleModel overrides the vision model ID.
	OracleModel string `koanf:"oracle_model"`

	// OracleMaxTokens bounds the oracle's answer length.
	OracleMaxTokens int `koanf:"oracle_max_tokens"`

	// OracleTimeoutMS bounds each oracle call.
	OracleTimeoutMS int `koanf:"oracle_timeout_ms"`

	// OracleMaxAttempts is the total attempts per round (first try
	// included).
	OracleMaxAttempts int `koanf:"oracle_max_attempts"`

	// JPEGQuality is the re-encoding quality for uploaded images.
	JPEGQuality int `koanf:"jpeg_quality"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9090",
		MaxLeaderboardLimit: 100,
		DedupeSize:          50_000,
		PointsPerCorrect:    5,
		PenaltyPerWrong:     3,
		OracleProvider:      "anthropic",
		OracleModel:         "claude-3-5-haiku-20241022",
		OracleMaxTokens:     500,
		OracleTimeoutMS:     30_000,
		OracleMaxAttempts:   2,
		JPEGQuality:         95,
	}
}
