package domain

// PlayerStatus represents the current state of a media player
type PlayerStatus string

const (
	// StatusPlaying indicates the media is currently playing
	StatusPlaying PlayerStatus = "Playing"
	// StatusPaused indicates the media is paused
	StatusPaused PlayerStatus = "Paused"
	// StatusStopped indicates the media is stopped
	StatusStopped PlayerStatus = "Stopped"
)

// TrackMetadata contains the track fields reported by a media session
type TrackMetadata struct {
	// Title of the currently playing track
	Title string
	// Artist name
	Artist string
	// Album name
	Album string
}

// Snapshot returns the identity tuple used by the diff gate.
func (m TrackMetadata) Snapshot() TrackSnapshot {
	return TrackSnapshot{Title: m.Title, Artist: m.Artist, Album: m.Album}
}

// Session is one media-playback context reported by the host.
type Session struct {
	// SourceID identifies the application that owns the session
	SourceID string
	// Metadata is nil when the provider could not read it for this session
	Metadata *TrackMetadata
	Status   PlayerStatus
}

// TrackSnapshot is the subset of track metadata compared between polls.
// It is comparable with ==.
type TrackSnapshot struct {
	Title  string
	Artist string
	Album  string
}

// IsEmpty reports whether all fields are empty, i.e. nothing is playing.
func (s TrackSnapshot) IsEmpty() bool {
	return s.Title == "" && s.Artist == "" && s.Album == ""
}

// DisplayLines holds the two presence lines derived from a track.
type DisplayLines struct {
	Header  string
	Details string
}

// ImageRef identifies the presence icon and its hover text.
type ImageRef struct {
	Key     string
	Tooltip string
}

// Activity is the payload sent to the presence publisher.
// Details is the top line, State the bottom one.
type Activity struct {
	Details    string
	State      string
	LargeImage string
	LargeText  string
}
