//go:build !linux
// +build !linux

package monitor

import (
	"context"
	"errors"

	"github.com/genricoloni/nowcord/internal/domain"
	"go.uber.org/zap"
)

// ErrUnsupported is returned by the stub source on platforms without MPRIS
var ErrUnsupported = errors.New("MPRIS monitoring is only supported on Linux systems")

// MprisSource stub for non-Linux platforms
type MprisSource struct {
	logger *zap.Logger
}

// NewMprisSource creates a stub source that never reports a session
func NewMprisSource(logger *zap.Logger) *MprisSource {
	logger.Warn("Media session monitoring is not implemented for this platform")
	return &MprisSource{logger: logger}
}

// Sessions returns an error indicating MPRIS monitoring is not supported on this platform
func (m *MprisSource) Sessions(ctx context.Context) ([]domain.Session, error) {
	return nil, ErrUnsupported
}

// Close is a no-op on non-Linux platforms
func (m *MprisSource) Close() error {
	return nil
}
