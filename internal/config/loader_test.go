package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ecoperks/ecosort/internal/config"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLoad(t *testing.T) {
	t.Setenv("ECOSORT_ORACLE_PROVIDER", "mock")

	Convey("Given a clean environment with the mock provider", t, func() {
		Convey("When loading without overrides the defaults apply", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":9090")
			So(cfg.LogLevel, ShouldEqual, "info")
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 100)
			So(cfg.PointsPerCorrect, ShouldEqual, 5)
			So(cfg.PenaltyPerWrong, ShouldEqual, 3)
			So(cfg.OracleModel, ShouldEqual, "claude-3-5-haiku-20241022")
			So(cfg.JPEGQuality, ShouldEqual, 95)
		})
	})
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("ECOSORT_ORACLE_PROVIDER", "mock")
	t.Setenv("ECOSORT_ADDR", ":8080")
	t.Setenv("ECOSORT_LOG_LEVEL", "debug")
	t.Setenv("ECOSORT_MAX_LEADERBOARD_LIMIT", "25")

	Convey("Given environment overrides", t, func() {
		Convey("When loading they take precedence over defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":8080")
			So(cfg.LogLevel, ShouldEqual, "debug")
			So(cfg.MaxLeaderboardLimit, ShouldEqual, 25)
		})
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "addr: \":7000\"\noracle_provider: mock\npoints_per_correct: 7\n"
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ECOSORT_CONFIG", path)

	Convey("Given a YAML config file", t, func() {
		Convey("When loading, file values layer over defaults", func() {
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7000")
			So(cfg.PointsPerCorrect, ShouldEqual, 7)
			So(cfg.PenaltyPerWrong, ShouldEqual, 3)
		})

		Convey("And environment still wins over the file", func() {
			t.Setenv("ECOSORT_ADDR", ":7001")
			cfg, err := config.Load(context.Background())
			So(err, ShouldBeNil)
			So(cfg.Addr, ShouldEqual, ":7001")
		})
	})
}

func TestLoadValidation(t *testing.T) {
	Convey("Given invalid configurations", t, func() {
		Convey("When the anthropic provider has no API key", func() {
			t.Setenv("ECOSORT_ORACLE_PROVIDER", "anthropic")
			t.Setenv("ECOSORT_ANTHROPIC_API_KEY", "")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the provider is unknown", func() {
			t.Setenv("ECOSORT_ORACLE_PROVIDER", "crystal-ball")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the JPEG quality is out of range", func() {
			t.Setenv("ECOSORT_ORACLE_PROVIDER", "mock")
			t.Setenv("ECOSORT_JPEG_QUALITY", "150")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the leaderboard limit is not positive", func() {
			t.Setenv("ECOSORT_ORACLE_PROVIDER", "mock")
			t.Setenv("ECOSORT_MAX_LEADERBOARD_LIMIT", "0")
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrInvalidConfig), ShouldBeTrue)
		})

		Convey("When the config file does not exist", func() {
			t.Setenv("ECOSORT_ORACLE_PROVIDER", "mock")
			t.Setenv("ECOSORT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
			_, err := config.Load(context.Background())
			So(errors.Is(err, config.ErrLoadConfig), ShouldBeTrue)
		})
	})
}

func TestNewDefaults(t *testing.T) {
	Convey("Given the default config", t, func() {
		cfg := config.New()
		So(cfg.OracleProvider, ShouldEqual, "anthropic")
		So(cfg.DedupeSize, ShouldEqual, 50_000)
		So(cfg.OracleTimeoutMS, ShouldEqual, 30_000)
		So(cfg.OracleMaxAttempts, ShouldEqual, 2)
		So(cfg.OracleMaxTokens, ShouldEqual, 500)
	})
}
