package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genricoloni/nowcord/internal/config"
	"github.com/genricoloni/nowcord/internal/discord"
	"github.com/genricoloni/nowcord/internal/domain"
	"github.com/genricoloni/nowcord/internal/engine"
	"github.com/genricoloni/nowcord/internal/monitor"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Connecting to Discord may back off for ~15s before giving up
const startTimeout = 45 * time.Second

func main() {
	dev := flag.Bool("dev", false, "Rewrite the settings file with defaults and use development logging")
	flag.Parse()

	app := fx.New(
		// Logger configuration
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.StartTimeout(startTimeout),
		appOptions(config.Flags{Dev: *dev}),
	)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "nowcord: %v\n", err)
		os.Exit(1)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	if err := app.Stop(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "nowcord: %v\n", err)
		os.Exit(1)
	}
}

// appOptions is the complete dependency graph of the daemon
func appOptions(flags config.Flags) fx.Option {
	return fx.Options(
		coreOptions(flags),
		platformOptions(),
	)
}

// coreOptions wires everything except the OS-facing media source and presence publisher
func coreOptions(flags config.Flags) fx.Option {
	return fx.Options(
		fx.Supply(flags),
		fx.Provide(
			config.NewAppConfig,
			newLogger,
			config.NewSettings,
			clockwork.NewRealClock,
			engine.NewEngine,
		),
		fx.Invoke(registerHooks),
	)
}

func platformOptions() fx.Option {
	return fx.Provide(
		fx.Annotate(monitor.NewMprisSource, fx.As(new(domain.MediaSource))),
		fx.Annotate(discord.NewClient, fx.As(new(domain.Presence))),
	)
}

// newLogger builds the production logger, or the development one in dev mode
func newLogger(cfg *config.AppConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = cfg.ZapLevel()

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// registerHooks sets up application lifecycle hooks
func registerHooks(
	lc fx.Lifecycle,
	logger *zap.Logger,
	source domain.MediaSource,
	presence domain.Presence,
	eng *engine.Engine,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Nowcord Daemon Started")
			if err := presence.Connect(ctx); err != nil {
				return err
			}
			return eng.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")
			// Presence is left as is; Discord drops it when the connection closes
			return multierr.Combine(
				eng.Stop(ctx),
				presence.Close(),
				source.Close(),
			)
		},
	})
}
