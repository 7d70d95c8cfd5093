package track

import (
	"testing"

	"github.com/genricoloni/nowcord/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLayout(t *testing.T) {
	tests := []struct {
		name        string
		track       domain.TrackSnapshot
		artistFirst bool
		prefix      string
		expected    domain.DisplayLines
	}{
		{
			name:     "Title First With Album",
			track:    domain.TrackSnapshot{Title: "Song", Artist: "Band", Album: "Record"},
			expected: domain.DisplayLines{Header: "Song", Details: "Band - Record"},
		},
		{
			name:        "Artist First With Album",
			track:       domain.TrackSnapshot{Title: "Song", Artist: "Band", Album: "Record"},
			artistFirst: true,
			expected:    domain.DisplayLines{Header: "Band", Details: "Song - Record"},
		},
		{
			name:     "Title First Without Album",
			track:    domain.TrackSnapshot{Title: "Song", Artist: "Band"},
			expected: domain.DisplayLines{Header: "Song", Details: "Band"},
		},
		{
			name:     "Prefix",
			track:    domain.TrackSnapshot{Title: "Song", Artist: "Band"},
			prefix:   "Listening to ",
			expected: domain.DisplayLines{Header: "Listening to Song", Details: "Band"},
		},
		{
			name:     "Equal Fields Clear Secondary",
			track:    domain.TrackSnapshot{Title: "Song", Artist: "Song"},
			expected: domain.DisplayLines{Header: "Song", Details: ""},
		},
		{
			name:     "Equal Fields With Album",
			track:    domain.TrackSnapshot{Title: "Song", Artist: "Song", Album: "Record"},
			expected: domain.DisplayLines{Header: "Song", Details: "Record"},
		},
		{
			name:     "Title First Empty Title Promotes Artist",
			track:    domain.TrackSnapshot{Title: "", Artist: "Artist"},
			expected: domain.DisplayLines{Header: "Artist", Details: ""},
		},
		{
			name:        "Artist First Empty Artist Promotes Title",
			track:       domain.TrackSnapshot{Title: "Song", Artist: ""},
			artistFirst: true,
			expected:    domain.DisplayLines{Header: "Song", Details: ""},
		},
		{
			// Only the primary slot is checked for emptiness
			name:     "Title First Empty Artist Stays Empty",
			track:    domain.TrackSnapshot{Title: "Song", Artist: ""},
			expected: domain.DisplayLines{Header: "Song", Details: ""},
		},
		{
			name:        "Artist First Empty Title With Album",
			track:       domain.TrackSnapshot{Title: "", Artist: "Band", Album: "Record"},
			artistFirst: true,
			expected:    domain.DisplayLines{Header: "Band", Details: "Record"},
		},
		{
			name:     "Album Only",
			track:    domain.TrackSnapshot{Album: "Record"},
			prefix:   "> ",
			expected: domain.DisplayLines{Header: "> ", Details: "Record"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Layout(tt.track, tt.artistFirst, tt.prefix))
		})
	}
}
