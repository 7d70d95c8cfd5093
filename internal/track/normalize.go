// Package track turns raw session metadata into the two presence lines.
package track

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/genricoloni/nowcord/internal/domain"
)

const (
	explicitTag = "[Explicit]"
	cleanTag    = "[Clean]"
)

var (
	bracketSegment     = regexp.MustCompile(`\[[^\[\]]*\]`)
	parenthesisSegment = regexp.MustCompile(`\([^()]*\)`)

	// Checked in order; only the first marker found is cut at
	featMarkers = []string{"feat.", "ft.", "FT."}
)

// Normalizer strips tags and featured-artist noise from track fields.
// The zero value leaves strings untouched.
type Normalizer struct {
	StripExplicit    bool
	StripClean       bool
	StripFeat        bool
	StripParentheses bool
}

// Apply normalizes each field of the snapshot independently.
func (n Normalizer) Apply(s domain.TrackSnapshot) domain.TrackSnapshot {
	return domain.TrackSnapshot{
		Title:  n.Normalize(s.Title),
		Artist: n.Normalize(s.Artist),
		Album:  n.Normalize(s.Album),
	}
}

// Normalize runs the cleanup steps until the string no longer changes.
// Every step only removes characters, so the loop terminates and the result
// is a fixed point.
func (n Normalizer) Normalize(s string) string {
	for {
		next := n.pass(s)
		if next == s {
			return next
		}
		s = next
	}
}

func (n Normalizer) pass(s string) string {
	if n.StripExplicit {
		s = strings.TrimSpace(strings.ReplaceAll(s, explicitTag, ""))
	}
	if n.StripClean {
		s = strings.TrimSpace(strings.ReplaceAll(s, cleanTag, ""))
	}
	if n.StripFeat {
		s = strings.TrimSpace(bracketSegment.ReplaceAllString(s, ""))
		s = cutFeat(s)
	}
	if n.StripParentheses {
		s = strings.TrimSpace(parenthesisSegment.ReplaceAllString(s, ""))
	}
	return s
}

// cutFeat truncates s at the first featured-artist marker. An opening bracket
// left dangling by the cut ("Song (feat. X)" -> "Song (") is dropped too.
func cutFeat(s string) string {
	for _, marker := range featMarkers {
		if i := strings.Index(s, marker); i != -1 {
			return strings.TrimRightFunc(s[:i], func(r rune) bool {
				return unicode.IsSpace(r) || r == '(' || r == '['
			})
		}
	}
	return s
}
