package discord

import (
	"unicode/utf8"

	"github.com/genricoloni/nowcord/internal/domain"
)

// Discord rejects activity strings outside these bounds
const (
	minFieldRunes = 2
	maxFieldRunes = 128
)

func newActivityPayload(a domain.Activity) *activityPayload {
	p := &activityPayload{
		Details: fitField(a.Details),
		State:   fitField(a.State),
	}
	if a.LargeImage != "" || a.LargeText != "" {
		p.Assets = &assets{
			LargeImage: a.LargeImage,
			LargeText:  fitField(a.LargeText),
		}
	}
	return p
}

// fitField clips s to the maximum length and pads one-character values.
// Empty values stay empty so they are omitted from the payload.
func fitField(s string) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n == 0:
		return s
	case n < minFieldRunes:
		return s + "\u200b"
	case n > maxFieldRunes:
		runes := []rune(s)
		return string(runes[:maxFieldRunes-1]) + "…"
	default:
		return s
	}
}
