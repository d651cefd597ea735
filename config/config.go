// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	HTTPAddr string
	LogLevel slog.Level
	LogJSON  bool
	SaveDir  string
	Seed     int64 // 0 means pick one at startup
	Radius   float64
}

// Load reads SPINWHEEL_* variables, falling back to defaults.
func Load() (Config, error) {
	home, _ := os.UserHomeDir()
	c := Config{
		HTTPAddr: envOr("SPINWHEEL_ADDR", ":8080"),
		SaveDir:  envOr("SPINWHEEL_SAVE_DIR", filepath.Join(home, ".spinwheel", "saves")),
		LogJSON:  strings.EqualFold(os.Getenv("SPINWHEEL_LOG_FORMAT"), "json"),
		Radius:   160,
	}

	level, err := parseLogLevel(envOr("SPINWHEEL_LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, err
	}
	c.LogLevel = level

	if v := os.Getenv("SPINWHEEL_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SPINWHEEL_SEED %q: %w", v, err)
		}
		c.Seed = seed
	}

	if v := os.Getenv("SPINWHEEL_RADIUS"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("invalid SPINWHEEL_RADIUS %q: %w", v, err)
		}
		if r <= 0 {
			return Config{}, fmt.Errorf("SPINWHEEL_RADIUS must be positive, got %v", r)
		}
		c.Radius = r
	}

	return c, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid SPINWHEEL_LOG_LEVEL %q", s)
	}
}
