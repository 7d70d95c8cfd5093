package apps

import (
	"github.com/genricoloni/nowcord/internal/config"
	"github.com/genricoloni/nowcord/internal/domain"
)

var (
	bezosImage    = domain.ImageRef{Key: "jeffrey", Tooltip: "Jeffrey Music"}
	fallbackImage = domain.ImageRef{Key: "fakephoto", Tooltip: "joe"}
)

// SelectImage picks the presence icon: the configured override, then bezos
// mode, then the detected app, then the fallback.
func SelectImage(settings *config.Settings, appKey string) domain.ImageRef {
	if settings.PhotoOverride != "" {
		if img, ok := imageOf(settings, settings.PhotoOverride); ok {
			return img
		}
	}
	if settings.BezosMode {
		return bezosImage
	}
	if appKey != "" {
		if img, ok := imageOf(settings, appKey); ok {
			return img
		}
	}
	return fallbackImage
}

func imageOf(settings *config.Settings, key string) (domain.ImageRef, bool) {
	app, ok := settings.Apps[key]
	if !ok {
		return domain.ImageRef{}, false
	}
	return domain.ImageRef{Key: app.ImageKey, Tooltip: app.Tooltip}, true
}
