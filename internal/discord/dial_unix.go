//go:build !windows

package discord

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
)

var (
	socketDirEnv = []string{"XDG_RUNTIME_DIR", "TMPDIR", "TMP", "TEMP"}
	// Flatpak and snap installs place the socket in a sandbox subdirectory
	socketSubdirs = []string{"", "app/com.discordapp.Discord", "snap.discord"}
)

// dialIPC connects to the first Discord IPC socket that accepts a connection
func dialIPC(ctx context.Context, pipe int) (net.Conn, error) {
	var d net.Dialer
	var errs error

	for _, path := range socketPaths(pipe) {
		conn, err := d.DialContext(ctx, "unix", path)
		if err == nil {
			return conn, nil
		}
		errs = multierr.Append(errs, err)
	}
	return nil, fmt.Errorf("discord ipc socket unavailable: %w", errs)
}

func socketPaths(pipe int) []string {
	name := fmt.Sprintf("discord-ipc-%d", pipe)

	var dirs []string
	for _, key := range socketDirEnv {
		if dir := os.Getenv(key); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	dirs = append(dirs, "/tmp")

	seen := make(map[string]bool)
	var paths []string
	for _, dir := range dirs {
		for _, sub := range socketSubdirs {
			path := filepath.Join(dir, sub, name)
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}
	return paths
}
