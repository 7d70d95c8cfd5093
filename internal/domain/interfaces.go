package domain

import "context"

// MediaSource lists the media sessions currently known to the host.
//
//go:generate mockgen -destination=mocks/media_source_mock.go -package=mocks github.com/genricoloni/nowcord/internal/domain MediaSource,Presence
type MediaSource interface {
	// Sessions returns the active sessions in provider order.
	// A session whose metadata could not be read has a nil Metadata.
	Sessions(ctx context.Context) ([]Session, error)

	// Close releases the underlying connection, if any
	Close() error
}

// Presence publishes the local user's status to the chat client.
// Implementations hold a single long-lived connection.
type Presence interface {
	// Connect opens the connection and performs the handshake
	Connect(ctx context.Context) error

	// SetActivity replaces the current presence
	SetActivity(ctx context.Context, activity Activity) error

	// ClearActivity removes the current presence
	ClearActivity(ctx context.Context) error

	// Close closes the connection
	Close() error
}
