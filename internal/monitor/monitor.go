//go:build linux

package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/genricoloni/nowcord/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	mprisPrefix     = "org.mpris.MediaPlayer2."
	mprisObjectPath = "/org/mpris/MediaPlayer2"
	propMetadata    = "org.mpris.MediaPlayer2.Player.Metadata"
	propStatus      = "org.mpris.MediaPlayer2.Player.PlaybackStatus"
)

// MprisSource lists media sessions from MPRIS players on the session bus
type MprisSource struct {
	logger *zap.Logger
	mu     sync.Mutex
	conn   DBusClient // Interface for testability
	dial   func() (DBusClient, error)
}

// NewMprisSource creates a new MPRIS media source. The bus connection is
// opened on the first query.
func NewMprisSource(logger *zap.Logger) *MprisSource {
	return &MprisSource{
		logger: logger,
		dial: func() (DBusClient, error) {
			conn, err := NewStdDBusClient()
			if err != nil {
				return nil, err
			}
			return conn, nil
		},
	}
}

// Sessions returns one session per MPRIS player, playing players first.
// A player whose metadata cannot be read is reported with nil Metadata.
func (m *MprisSource) Sessions(ctx context.Context) ([]domain.Session, error) {
	conn, err := m.connection()
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}

	names, err := conn.ListNames(ctx)
	if err != nil {
		// The bus may have gone away; redial on the next query
		m.drop(conn)
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	var playing, idle []domain.Session
	for _, name := range names {
		if !strings.HasPrefix(name, mprisPrefix) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		session := m.readSession(ctx, conn, name)
		if session.Status == domain.StatusPlaying {
			playing = append(playing, session)
		} else {
			idle = append(idle, session)
		}
	}

	return append(playing, idle...), nil
}

// Close releases the bus connection
func (m *MprisSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	return err
}

func (m *MprisSource) connection() (DBusClient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		return m.conn, nil
	}

	conn, err := m.dial()
	if err != nil {
		return nil, err
	}
	m.conn = conn
	m.logger.Info("Connected to session bus")
	return conn, nil
}

func (m *MprisSource) drop(conn DBusClient) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != conn {
		return
	}
	if err := conn.Close(); err != nil {
		m.logger.Debug("Failed to close D-Bus connection", zap.Error(err))
	}
	m.conn = nil
}

// readSession queries status and metadata of a single player
func (m *MprisSource) readSession(ctx context.Context, conn DBusClient, name string) domain.Session {
	session := domain.Session{
		SourceID: sourceID(name),
		Status:   domain.StatusStopped,
	}

	if variant, err := conn.GetProperty(ctx, name, mprisObjectPath, propStatus); err == nil {
		if status, ok := variant.Value().(string); ok {
			session.Status = parseStatus(status)
		}
	}

	variant, err := conn.GetProperty(ctx, name, mprisObjectPath, propMetadata)
	if err != nil {
		m.logger.Debug("Failed to get metadata",
			zap.String("player", name),
			zap.Error(err))
		return session
	}

	// SAFE CAST: Some players may return nil or unexpected types if not playing anything
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		m.logger.Debug("Metadata variant is not a map, skipping", zap.String("player", name))
		return session
	}

	meta := m.parseMetadata(metadata)
	session.Metadata = &meta
	return session
}

// sourceID reduces a bus name to the player identifier,
// e.g. org.mpris.MediaPlayer2.firefox.instance_1_84 -> firefox
func sourceID(busName string) string {
	id := strings.TrimPrefix(busName, mprisPrefix)
	id, _, _ = strings.Cut(id, ".instance")
	return id
}

func parseStatus(status string) domain.PlayerStatus {
	switch status {
	case "Playing":
		return domain.StatusPlaying
	case "Paused":
		return domain.StatusPaused
	default:
		return domain.StatusStopped
	}
}

// parseMetadata converts MPRIS metadata to domain model
func (m *MprisSource) parseMetadata(metadata map[string]dbus.Variant) domain.TrackMetadata {
	var meta domain.TrackMetadata

	// Extract title
	if titleVar, ok := metadata["xesam:title"]; ok {
		if title, ok := titleVar.Value().(string); ok {
			meta.Title = title
		}
	}

	// Extract artist (can be an array)
	if artistVar, ok := metadata["xesam:artist"]; ok {
		switch artists := artistVar.Value().(type) {
		case []string:
			if len(artists) > 0 {
				meta.Artist = artists[0]
			}
		case string:
			meta.Artist = artists
		default:
			// Some non-compliant players may use unexpected types
			m.logger.Debug("Unexpected artist type in metadata",
				zap.String("type", fmt.Sprintf("%T", artistVar.Value())))
		}
	}

	// Extract album
	if albumVar, ok := metadata["xesam:album"]; ok {
		if album, ok := albumVar.Value().(string); ok {
			meta.Album = album
		}
	}

	return meta
}
