package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/squad/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"SQUAD_CONFIG",
	"SQUAD_LOG_LEVEL",
	"SQUAD_LOG_JSON",
	"SQUAD_TEAM_SIZE",
	"SQUAD_MATCH_WEIGHT",
	"SQUAD_COMPLEMENTARITY_WEIGHT",
	"SQUAD_MENTOR_SUGGESTIONS",
	"SQUAD_ROSTER_PATH",
	"SQUAD_METRICS_TEXTFILE",
	"SQUAD_METRICS_NAMESPACE",
}

func clearConfigEnvVars() {
	for _, name := range configEnvVars {
		_ = os.Unsetenv(name)
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "squad.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SQUAD_TEAM_SIZE", "4")
			_ = os.Setenv("SQUAD_MATCH_WEIGHT", "0.5")
			_ = os.Setenv("SQUAD_COMPLEMENTARITY_WEIGHT", "0.5")
			_ = os.Setenv("SQUAD_LOG_JSON", "true")
			_ = os.Setenv("SQUAD_ROSTER_PATH", "/tmp/roster.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamSize, convey.ShouldEqual, 4)
				convey.So(cfg.MatchWeight, convey.ShouldEqual, 0.5)
				convey.So(cfg.ComplementarityWeight, convey.ShouldEqual, 0.5)
				convey.So(cfg.LogJSON, convey.ShouldBeTrue)
				convey.So(cfg.RosterPath, convey.ShouldEqual, "/tmp/roster.yaml")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			path := createTempConfigFile(t, `
# engine settings
log_level: debug
team_size: 2
mentor_suggestions: 5
metrics_textfile: /var/lib/node_exporter/squad.prom
`)
			_ = os.Setenv("SQUAD_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file and keep other defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.TeamSize, convey.ShouldEqual, 2)
				convey.So(cfg.MentorSuggestions, convey.ShouldEqual, 5)
				convey.So(cfg.MetricsTextfile, convey.ShouldEqual, "/var/lib/node_exporter/squad.prom")
				convey.So(cfg.MatchWeight, convey.ShouldEqual, 0.7)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			path := createTempConfigFile(t, "team_size: 2\nlog_level: warn\n")
			_ = os.Setenv("SQUAD_CONFIG", path)
			_ = os.Setenv("SQUAD_TEAM_SIZE", "6")

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.TeamSize, convey.ShouldEqual, 6)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			path := createTempConfigFile(t, `invalid: yaml: content: [`)
			_ = os.Setenv("SQUAD_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SQUAD_CONFIG", "/non/existent/file.yaml")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("SQUAD_TEAM_SIZE", "not_a_number")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with a non-positive team size", func() {
			_ = os.Setenv("SQUAD_TEAM_SIZE", "0")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "team_size must be positive")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with zeroed blend weights", func() {
			_ = os.Setenv("SQUAD_MATCH_WEIGHT", "0")
			_ = os.Setenv("SQUAD_COMPLEMENTARITY_WEIGHT", "0")

			_, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
