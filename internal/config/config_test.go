package config

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewAppConfig(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("NOWCORD_SETTINGS", "~/custom/settings.json")
	t.Setenv("NOWCORD_LOG_LEVEL", "debug")
	t.Setenv("NOWCORD_DISCORD_PIPE", "2")

	cfg, err := NewAppConfig(Flags{Dev: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := filepath.Join(dir, "custom", "settings.json"); cfg.SettingsPath != want {
		t.Errorf("SettingsPath: expected %s, got %s", want, cfg.SettingsPath)
	}
	if cfg.DiscordPipe != 2 {
		t.Errorf("DiscordPipe: expected 2, got %d", cfg.DiscordPipe)
	}
	if !cfg.Dev {
		t.Error("Dev flag should be carried over")
	}
	if cfg.ZapLevel().Level() != zapcore.DebugLevel {
		t.Errorf("expected debug level, got %v", cfg.ZapLevel().Level())
	}
}

func TestNewAppConfig_InvalidPipe(t *testing.T) {
	t.Setenv("NOWCORD_DISCORD_PIPE", "12")

	if _, err := NewAppConfig(Flags{}); err == nil {
		t.Fatal("expected error for out-of-range pipe")
	}
}

func TestZapLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"info", zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel}, // Fallback
	}

	for _, tt := range tests {
		cfg := &AppConfig{LogLevel: tt.input}
		if got := cfg.ZapLevel().Level(); got != tt.expected {
			t.Errorf("ZapLevel(%s): expected %v, got %v", tt.input, tt.expected, got)
		}
	}
}

func TestNewSettings_UsesConfiguredPath(t *testing.T) {
	cfg := &AppConfig{SettingsPath: filepath.Join(t.TempDir(), "settings.json")}

	settings, err := NewSettings(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settings.CheckInterval != 5 {
		t.Errorf("expected default interval 5, got %d", settings.CheckInterval)
	}
}
