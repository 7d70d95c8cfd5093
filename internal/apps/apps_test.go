package apps

import (
	"testing"

	"github.com/genricoloni/nowcord/internal/config"
	"github.com/genricoloni/nowcord/internal/domain"
	"github.com/stretchr/testify/assert"
)

func meta(title, artist, album string) *domain.TrackMetadata {
	return &domain.TrackMetadata{Title: title, Artist: artist, Album: album}
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name      string
		validApps []string
		sessions  []domain.Session
		wantOK    bool
		wantKey   string
		wantTitle string
	}{
		{
			name:      "No Sessions",
			validApps: []string{"spotify"},
			wantOK:    false,
		},
		{
			name:      "Allow Listed App",
			validApps: []string{"spotify"},
			sessions: []domain.Session{
				{SourceID: "Spotify.exe", Metadata: meta("Song", "Band", "")},
			},
			wantOK:    true,
			wantKey:   "spotify",
			wantTitle: "Song",
		},
		{
			name:      "Skips Unlisted Sessions",
			validApps: []string{"spotify"},
			sessions: []domain.Session{
				{SourceID: "vlc", Metadata: meta("Video", "", "")},
				{SourceID: "spotify", Metadata: meta("Song", "Band", "")},
			},
			wantOK:    true,
			wantKey:   "spotify",
			wantTitle: "Song",
		},
		{
			name:      "Nothing Allowed",
			validApps: []string{"amazon"},
			sessions: []domain.Session{
				{SourceID: "spotify", Metadata: meta("Song", "Band", "")},
			},
			wantOK: false,
		},
		{
			name:      "Wildcard Takes First Session Without Key",
			validApps: []string{"*"},
			sessions: []domain.Session{
				{SourceID: "vlc", Metadata: meta("Video", "", "")},
				{SourceID: "spotify", Metadata: meta("Song", "Band", "")},
			},
			wantOK:    true,
			wantKey:   "",
			wantTitle: "Video",
		},
		{
			name:      "Wildcard Still Resolves Listed App",
			validApps: []string{"*", "spotify"},
			sessions: []domain.Session{
				{SourceID: "spotify", Metadata: meta("Song", "Band", "")},
			},
			wantOK:    true,
			wantKey:   "spotify",
			wantTitle: "Song",
		},
		{
			name:      "Missing Metadata Means No Track",
			validApps: []string{"spotify", "firefox"},
			sessions: []domain.Session{
				{SourceID: "spotify", Metadata: nil},
				{SourceID: "firefox", Metadata: meta("Clip", "", "")},
			},
			wantOK: false,
		},
		{
			name:      "App Without Identifiers Never Matches",
			validApps: []string{"youtube", "chrome"},
			sessions: []domain.Session{
				{SourceID: "chromium", Metadata: meta("Clip", "", "")},
			},
			wantOK:    true,
			wantKey:   "chrome",
			wantTitle: "Clip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.DefaultSettings()
			settings.ValidApps = tt.validApps

			sel, ok := Select(tt.sessions, settings)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, Selection{}, sel)
				return
			}
			assert.Equal(t, tt.wantKey, sel.AppKey)
			assert.Equal(t, tt.wantTitle, sel.Track.Title)
		})
	}
}

func TestSelectImage(t *testing.T) {
	tests := []struct {
		name     string
		override string
		bezos    bool
		appKey   string
		expected domain.ImageRef
	}{
		{
			name:     "Fallback",
			expected: domain.ImageRef{Key: "fakephoto", Tooltip: "joe"},
		},
		{
			name:     "Detected App",
			appKey:   "spotify",
			expected: domain.ImageRef{Key: "spotify", Tooltip: "Spotify"},
		},
		{
			name:     "Bezos Mode Beats Detected App",
			bezos:    true,
			appKey:   "spotify",
			expected: domain.ImageRef{Key: "jeffrey", Tooltip: "Jeffrey Music"},
		},
		{
			name:     "Override Beats Everything",
			override: "netflix",
			bezos:    true,
			appKey:   "spotify",
			expected: domain.ImageRef{Key: "netflix", Tooltip: "Netflix"},
		},
		{
			name:     "Override Without Detected App",
			override: "itunes",
			expected: domain.ImageRef{Key: "itunes", Tooltip: "iTunes"},
		},
		{
			name:     "Unknown App Key Falls Back",
			appKey:   "winamp",
			expected: domain.ImageRef{Key: "fakephoto", Tooltip: "joe"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := config.DefaultSettings()
			settings.PhotoOverride = tt.override
			settings.BezosMode = tt.bezos

			assert.Equal(t, tt.expected, SelectImage(settings, tt.appKey))
		})
	}
}

func TestSelectImage_OverrideAlwaysWins(t *testing.T) {
	for _, bezos := range []bool{false, true} {
		for _, appKey := range []string{"", "spotify", "amazon", "winamp"} {
			settings := config.DefaultSettings()
			settings.PhotoOverride = "twitch"
			settings.BezosMode = bezos

			assert.Equal(t, domain.ImageRef{Key: "twitch", Tooltip: "Twitch"}, SelectImage(settings, appKey),
				"bezos=%v appKey=%q", bezos, appKey)
		}
	}
}
