package track

import "github.com/genricoloni/nowcord/internal/domain"

const albumSeparator = " - "

// Layout assembles the header and details lines for a normalized track.
//
// The field order is chosen first; the dedup rules then act on whatever
// landed in the primary and secondary slots, not on title or artist as such.
func Layout(s domain.TrackSnapshot, artistFirst bool, prefix string) domain.DisplayLines {
	primary, secondary := s.Title, s.Artist
	if artistFirst {
		primary, secondary = s.Artist, s.Title
	}

	if primary == secondary {
		secondary = ""
	} else if primary == "" {
		primary, secondary = secondary, ""
	}

	details := secondary
	if s.Album != "" {
		if secondary != "" {
			details = secondary + albumSeparator + s.Album
		} else {
			details = s.Album
		}
	}

	return domain.DisplayLines{
		Header:  prefix + primary,
		Details: details,
	}
}
