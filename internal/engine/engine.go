package engine

import (
	"context"
	"sync"
	"time"

	"github.com/genricoloni/nowcord/internal/apps"
	"github.com/genricoloni/nowcord/internal/config"
	"github.com/genricoloni/nowcord/internal/domain"
	"github.com/genricoloni/nowcord/internal/track"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// pollTimeout bounds a single iteration, provider and publisher calls included
const pollTimeout = 15 * time.Second

// Engine orchestrates the presence pipeline.
// Each poll reads the media sessions, picks the allowed one and publishes
// the resulting activity when the track changed.
type Engine struct {
	logger     *zap.Logger
	settings   *config.Settings
	source     domain.MediaSource
	presence   domain.Presence
	clock      clockwork.Clock
	normalizer track.Normalizer
	gate       Gate

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewEngine creates a new orchestration engine
func NewEngine(
	logger *zap.Logger,
	settings *config.Settings,
	source domain.MediaSource,
	presence domain.Presence,
	clock clockwork.Clock,
) *Engine {
	return &Engine{
		logger:   logger,
		settings: settings,
		source:   source,
		presence: presence,
		clock:    clock,
		normalizer: track.Normalizer{
			StripExplicit:    settings.RemoveExplicit,
			StripClean:       settings.RemoveClean,
			StripFeat:        settings.RemoveFeat,
			StripParentheses: settings.NoParentheses,
		},
	}
}

// Start launches the polling loop in a goroutine and returns immediately.
// The loop outlives ctx; it ends when Stop is called.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel

	e.logger.Info("Engine starting...", zap.Duration("interval", e.settings.Interval()))
	go e.Run(runCtx)
	return nil
}

// Stop cancels the polling loop. A poll already in progress is not awaited.
func (e *Engine) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.logger.Info("Engine stopping...")
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	return nil
}

// Run polls immediately and then once per interval until ctx is done.
// The interval is measured from the end of one poll to the start of the next.
func (e *Engine) Run(ctx context.Context) {
	interval := e.settings.Interval()

	for {
		e.Poll(ctx)

		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return
		case <-e.clock.After(interval):
		}
	}
}

// Poll runs one iteration of the pipeline.
func (e *Engine) Poll(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, pollTimeout)
	defer cancel()

	sessions, err := e.source.Sessions(ctx)
	if err != nil {
		e.logger.Debug("Media sessions unavailable", zap.Error(err))
		sessions = nil
	}

	selection, ok := apps.Select(sessions, e.settings)
	var candidate domain.TrackSnapshot
	if ok {
		candidate = selection.Track.Snapshot()
	}

	if !e.gate.Observe(candidate) {
		return
	}

	if candidate.IsEmpty() {
		e.logger.Info("Nothing playing, clearing presence")
		if err := e.presence.ClearActivity(ctx); err != nil {
			e.logger.Warn("Failed to clear presence", zap.Error(err))
		}
		return
	}

	activity := e.buildActivity(candidate, selection.AppKey)

	e.logger.Info("Updating presence",
		zap.String("track", candidate.Title),
		zap.String("artist", candidate.Artist),
		zap.String("album", candidate.Album),
		zap.String("app", selection.AppKey))

	if err := e.presence.SetActivity(ctx, activity); err != nil {
		e.logger.Warn("Failed to update presence", zap.Error(err))
	}
}

func (e *Engine) buildActivity(snapshot domain.TrackSnapshot, appKey string) domain.Activity {
	lines := track.Layout(e.normalizer.Apply(snapshot), e.settings.ArtistFirst, e.settings.ListeningTo)
	image := apps.SelectImage(e.settings, appKey)

	activity := domain.Activity{
		LargeImage: image.Key,
		LargeText:  image.Tooltip,
	}
	if lines.Details == "" {
		activity.State = lines.Header
	} else {
		activity.Details = lines.Header
		activity.State = lines.Details
	}
	return activity
}
