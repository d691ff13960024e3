package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr() != "localhost:9090" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr())
	}
	if cfg.TickInterval() != time.Second/30 {
		t.Errorf("TickInterval = %v", cfg.TickInterval())
	}
	if cfg.GoldClampAtZero {
		t.Error("gold clamp must be off by default")
	}
	if cfg.HeartbeatInterval != 5*time.Second || cfg.IdleTimeout != 30*time.Second {
		t.Errorf("heartbeat = %v, idle = %v", cfg.HeartbeatInterval, cfg.IdleTimeout)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("TICK_RATE", "60")
	t.Setenv("GOLD_CLAMP_AT_ZERO", "true")
	t.Setenv("IDLE_TIMEOUT", "1m")
	t.Setenv("NAV_GRID", "maps/arena.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 7000 || !cfg.GoldClampAtZero || cfg.IdleTimeout != time.Minute || cfg.NavGrid != "maps/arena.json" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TickInterval() != time.Second/60 {
		t.Errorf("TickInterval = %v", cfg.TickInterval())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"PORT", "not-an-int"},
		{"TICK_RATE", "0"},
		{"IDLE_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), "parse env:") {
				t.Errorf("expected parse env prefix, got %v", err)
			}
		})
	}
}

func TestConfig_Logger(t *testing.T) {
	cfg := &Config{LogLevel: "debug", LogFormat: "json"}
	if _, ok := cfg.Logger().Handler().(*slog.JSONHandler); !ok {
		t.Error("expected JSON handler")
	}
	if !cfg.Logger().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("debug level not enabled")
	}

	cfg = &Config{LogLevel: "bogus"}
	if cfg.Logger().Enabled(t.Context(), slog.LevelDebug) {
		t.Error("unknown level should fall back to info")
	}
}
