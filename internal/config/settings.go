package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/multierr"
)

// Wildcard in ValidApps accepts a session from any application.
const Wildcard = "*"

// App describes a known media application: the presence asset shown for it and
// the source identifiers its sessions report.
type App struct {
	ImageKey    string   `json:"image_key"`
	Tooltip     string   `json:"tooltip"`
	Identifiers []string `json:"identifiers"`
}

// UnmarshalJSON accepts both the object form and the compact
// [image_key, tooltip, [identifiers...]] tuple form.
func (a *App) UnmarshalJSON(data []byte) error {
	var tuple []json.RawMessage
	if err := json.Unmarshal(data, &tuple); err == nil {
		if len(tuple) != 3 {
			return fmt.Errorf("app tuple must have 3 elements, got %d", len(tuple))
		}
		var app App
		if err := json.Unmarshal(tuple[0], &app.ImageKey); err != nil {
			return fmt.Errorf("app image key: %w", err)
		}
		if err := json.Unmarshal(tuple[1], &app.Tooltip); err != nil {
			return fmt.Errorf("app tooltip: %w", err)
		}
		if err := json.Unmarshal(tuple[2], &app.Identifiers); err != nil {
			return fmt.Errorf("app identifiers: %w", err)
		}
		*a = app
		return nil
	}

	type plain App
	var app plain
	if err := json.Unmarshal(data, &app); err != nil {
		return err
	}
	*a = App(app)
	return nil
}

// Settings holds the user-editable options read from the settings file.
type Settings struct {
	BezosMode      bool           `json:"bezos_mode"`
	RemoveExplicit bool           `json:"remove_explicit"`
	RemoveClean    bool           `json:"remove_clean"`
	RemoveFeat     bool           `json:"remove_feat"`
	CheckInterval  int            `json:"check_interval"`
	NoParentheses  bool           `json:"no_parentheses"`
	ValidApps      []string       `json:"validApps"`
	ListeningTo    string         `json:"listening_to"`
	ArtistFirst    bool           `json:"artist_first"`
	PhotoOverride  string         `json:"photo_override"`
	Apps           map[string]App `json:"apps"`
}

// DefaultSettings returns the settings written on first run.
func DefaultSettings() *Settings {
	return &Settings{
		RemoveExplicit: true,
		RemoveClean:    true,
		RemoveFeat:     true,
		CheckInterval:  5,
		NoParentheses:  true,
		ValidApps:      []string{"amazon"},
		Apps: map[string]App{
			"amazon":  {ImageKey: "amazon", Tooltip: "Amazon Music", Identifiers: []string{"Amazon Music.exe"}},
			"spotify": {ImageKey: "spotify", Tooltip: "Spotify", Identifiers: []string{"Spotify.exe", "spotify"}},
			"itunes":  {ImageKey: "itunes", Tooltip: "iTunes", Identifiers: []string{"iTunes.exe"}},
			"edge":    {ImageKey: "edge", Tooltip: "Microsoft Edge", Identifiers: []string{"msedge.exe", "msedge"}},
			"chrome":  {ImageKey: "chrome", Tooltip: "Google Chrome", Identifiers: []string{"chrome.exe", "chromium"}},
			"firefox": {ImageKey: "firefox", Tooltip: "Firefox", Identifiers: []string{"firefox.exe", "firefox"}},
			"hub":     {ImageKey: "hub", Tooltip: "The Hub", Identifiers: []string{}},
			"youtube": {ImageKey: "youtube", Tooltip: "YouTube", Identifiers: []string{}},
			"twitch":  {ImageKey: "twitch", Tooltip: "Twitch", Identifiers: []string{"Twitch.exe"}},
			"tiktok":  {ImageKey: "tiktok", Tooltip: "TikTok", Identifiers: []string{"TikTok.exe"}},
			"netflix": {ImageKey: "netflix", Tooltip: "Netflix", Identifiers: []string{"Netflix.exe"}},
		},
	}
}

// Interval returns the pause between two polls.
func (s *Settings) Interval() time.Duration {
	return time.Duration(s.CheckInterval) * time.Second
}

// AcceptsAny reports whether the wildcard is part of the allow-set.
func (s *Settings) AcceptsAny() bool {
	return slices.Contains(s.ValidApps, Wildcard)
}

// Validate checks that every referenced app exists and the interval is usable.
func (s *Settings) Validate() error {
	var err error
	if s.CheckInterval <= 0 {
		err = multierr.Append(err, fmt.Errorf("check_interval must be positive, got %d", s.CheckInterval))
	}
	for _, key := range s.ValidApps {
		if key == Wildcard {
			continue
		}
		if _, ok := s.Apps[key]; !ok {
			err = multierr.Append(err, fmt.Errorf("validApps references unknown app %q", key))
		}
	}
	if s.PhotoOverride != "" {
		if _, ok := s.Apps[s.PhotoOverride]; !ok {
			err = multierr.Append(err, fmt.Errorf("photo_override references unknown app %q", s.PhotoOverride))
		}
	}
	return err
}

// LoadOrCreate reads the settings file at path, overlaying it on the defaults.
// When the file is absent, or fresh is set, the defaults are written to path
// and returned instead.
func LoadOrCreate(path string, fresh bool) (*Settings, error) {
	settings := DefaultSettings()

	data, err := os.ReadFile(path)
	switch {
	case err == nil && !fresh:
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("failed to parse settings %s: %w", path, err)
		}
	case err == nil, errors.Is(err, fs.ErrNotExist):
		if err := Save(path, settings); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}

	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings %s: %w", path, err)
	}
	return settings, nil
}

// Save writes settings to path as indented JSON, creating parent directories.
func Save(path string, settings *Settings) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create settings directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write settings %s: %w", path, err)
	}
	return nil
}
