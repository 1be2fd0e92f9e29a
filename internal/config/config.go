// Package config defines process configuration and its loading layers.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation errors wrap ErrInvalidConfig; loading errors wrap ErrLoadConfig.
package config

import "fmt"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogJSON switches logs to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// TeamSize is the default number of members per team.
	TeamSize int `koanf:"team_size"`

	// MatchWeight and ComplementarityWeight blend the composite ranking score.
	MatchWeight           float64 `koanf:"match_weight"`
	ComplementarityWeight float64 `koanf:"complementarity_weight"`

	// MentorSuggestions caps ranked mentor suggestions per student; 0 disables them.
	MentorSuggestions int `koanf:"mentor_suggestions"`

	// RosterPath is the default roster file read by the CLI.
	RosterPath string `koanf:"roster_path"`

	// MetricsTextfile, when set, receives a Prometheus text export after each command.
	MetricsTextfile string `koanf:"metrics_textfile"`

	// MetricsNamespace prefixes every exported metric name.
	MetricsNamespace string `koanf:"metrics_namespace"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		LogLevel:              "info",
		TeamSize:              3,
		MatchWeight:           0.7,
		ComplementarityWeight: 0.3,
		MentorSuggestions:     3,
		MetricsNamespace:      "squad",
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.TeamSize <= 0 {
		return fmt.Errorf("%w: team_size must be positive, got %d", ErrInvalidConfig, c.TeamSize)
	}
	if c.MatchWeight < 0 || c.ComplementarityWeight < 0 {
		return fmt.Errorf("%w: blend weights must not be negative", ErrInvalidConfig)
	}
	if c.MatchWeight+c.ComplementarityWeight == 0 {
		return fmt.Errorf("%w: blend weights must not both be zero", ErrInvalidConfig)
	}
	if c.MentorSuggestions < 0 {
		return fmt.Errorf("%w: mentor_suggestions must not be negative, got %d", ErrInvalidConfig, c.MentorSuggestions)
	}
	if !validMetricName(c.MetricsNamespace) {
		return fmt.Errorf("%w: metrics_namespace %q must match [a-zA-Z_][a-zA-Z0-9_]*", ErrInvalidConfig, c.MetricsNamespace)
	}
	return nil
}

func validMetricName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
