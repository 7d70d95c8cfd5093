package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"go.uber.org/zap"
)

const (
	settingsDirName  = "nowcord"
	settingsFileName = "settings.json"
)

// AppConfig holds process-level configuration read from the environment.
type AppConfig struct {
	SettingsPath string `env:"NOWCORD_SETTINGS"`
	LogLevel     string `env:"NOWCORD_LOG_LEVEL" default:"info"`
	DiscordPipe  int    `env:"NOWCORD_DISCORD_PIPE" default:"0"`

	// Dev ignores the persisted settings file and enables development logging
	Dev bool
}

// Flags carries the command-line switches into the dependency graph.
type Flags struct {
	Dev bool
}

// NewAppConfig reads the environment (and an optional .env file) into an AppConfig
func NewAppConfig(flags Flags) (*AppConfig, error) {
	// A missing .env is the normal case
	_ = godotenv.Load()

	var cfg AppConfig
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg.Dev = flags.Dev

	if cfg.SettingsPath == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = "."
		}
		cfg.SettingsPath = filepath.Join(dir, settingsDirName, settingsFileName)
	}
	cfg.SettingsPath = expandPath(cfg.SettingsPath)

	if cfg.DiscordPipe < 0 || cfg.DiscordPipe > 9 {
		return nil, fmt.Errorf("NOWCORD_DISCORD_PIPE must be between 0 and 9, got %d", cfg.DiscordPipe)
	}

	return &cfg, nil
}

// expandPath expands environment variables and a leading ~
func expandPath(path string) string {
	path = os.ExpandEnv(path)
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[1:])
		}
	}
	return path
}

// ZapLevel maps LogLevel onto a zap level, defaulting to info.
func (c *AppConfig) ZapLevel() zap.AtomicLevel {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}

// NewSettings loads the user settings file described by cfg.
func NewSettings(cfg *AppConfig, logger *zap.Logger) (*Settings, error) {
	settings, err := LoadOrCreate(cfg.SettingsPath, cfg.Dev)
	if err != nil {
		return nil, err
	}

	logger.Info("Configuration loaded",
		zap.String("settings", cfg.SettingsPath),
		zap.Bool("dev", cfg.Dev),
		zap.Strings("validApps", settings.ValidApps),
		zap.Duration("interval", settings.Interval()),
		zap.Bool("bezosMode", settings.BezosMode))

	return settings, nil
}
