package engine

import "github.com/genricoloni/nowcord/internal/domain"

// Gate remembers the last published track and lets through only changes.
// It is not safe for concurrent use; the scheduler goroutine owns it.
type Gate struct {
	last domain.TrackSnapshot
}

// Observe records candidate and reports whether it differs from the previous one.
func (g *Gate) Observe(candidate domain.TrackSnapshot) bool {
	if candidate == g.last {
		return false
	}
	g.last = candidate
	return true
}

// Last returns the stored snapshot.
func (g *Gate) Last() domain.TrackSnapshot {
	return g.last
}
