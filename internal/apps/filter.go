// Package apps resolves media sessions against the configured application catalog.
package apps

import (
	"slices"

	"github.com/genricoloni/nowcord/internal/config"
	"github.com/genricoloni/nowcord/internal/domain"
)

// Selection is the session picked for display and the app key it matched.
// AppKey is empty when the session was accepted through the wildcard only.
type Selection struct {
	AppKey string
	Track  domain.TrackMetadata
}

// Select returns the first session allowed by settings. It reports false when
// no session qualifies, or when the chosen session has no readable metadata.
func Select(sessions []domain.Session, settings *config.Settings) (Selection, bool) {
	acceptAny := settings.AcceptsAny()

	for _, session := range sessions {
		key := lookup(session.SourceID, settings)
		if key == "" && !acceptAny {
			continue
		}
		if session.Metadata == nil {
			// Players sometimes expose a session before any metadata is set
			return Selection{}, false
		}
		return Selection{AppKey: key, Track: *session.Metadata}, true
	}

	return Selection{}, false
}

// lookup returns the first allow-listed app whose identifiers contain sourceID
func lookup(sourceID string, settings *config.Settings) string {
	for _, key := range settings.ValidApps {
		if key == config.Wildcard {
			continue
		}
		app, ok := settings.Apps[key]
		if ok && slices.Contains(app.Identifiers, sourceID) {
			return key
		}
	}
	return ""
}
