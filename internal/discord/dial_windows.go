//go:build windows

package discord

import (
	"context"
	"fmt"
	"net"

	"github.com/Microsoft/go-winio"
)

// dialIPC connects to the Discord named pipe
func dialIPC(ctx context.Context, pipe int) (net.Conn, error) {
	path := fmt.Sprintf(`\\.\pipe\discord-ipc-%d`, pipe)
	conn, err := winio.DialPipeContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("discord ipc pipe %s unavailable: %w", path, err)
	}
	return conn, nil
}
