package config

import (
	"log/slog"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SPINWHEEL_ADDR", "SPINWHEEL_LOG_LEVEL", "SPINWHEEL_LOG_FORMAT",
		"SPINWHEEL_SEED", "SPINWHEEL_RADIUS"} {
		t.Setenv(k, "")
	}
	t.Setenv("SPINWHEEL_SAVE_DIR", "/tmp/wheel-saves")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q", c.HTTPAddr)
	}
	if c.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v", c.LogLevel)
	}
	if c.LogJSON {
		t.Error("LogJSON should default to false")
	}
	if c.SaveDir != "/tmp/wheel-saves" {
		t.Errorf("SaveDir = %q", c.SaveDir)
	}
	if c.Seed != 0 || c.Radius != 160 {
		t.Errorf("Seed/Radius = %d/%v", c.Seed, c.Radius)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SPINWHEEL_ADDR", "127.0.0.1:9000")
	t.Setenv("SPINWHEEL_LOG_LEVEL", "DEBUG")
	t.Setenv("SPINWHEEL_LOG_FORMAT", "json")
	t.Setenv("SPINWHEEL_SEED", "1234")
	t.Setenv("SPINWHEEL_RADIUS", "200")

	c, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.HTTPAddr != "127.0.0.1:9000" || c.LogLevel != slog.LevelDebug || !c.LogJSON {
		t.Errorf("config = %+v", c)
	}
	if c.Seed != 1234 || c.Radius != 200 {
		t.Errorf("Seed/Radius = %d/%v", c.Seed, c.Radius)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, val string
	}{
		{"SPINWHEEL_LOG_LEVEL", "loud"},
		{"SPINWHEEL_SEED", "abc"},
		{"SPINWHEEL_RADIUS", "wide"},
		{"SPINWHEEL_RADIUS", "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.val, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}
