// Package discord publishes Rich Presence through the local Discord client's IPC socket.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"github.com/genricoloni/nowcord/internal/config"
	"github.com/genricoloni/nowcord/internal/domain"
	"github.com/genricoloni/nowcord/internal/retry"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Application identities registered with Discord
const (
	ClientID      = "917341970790244362"
	BezosClientID = "919485848028872715"
)

const (
	callTimeout = 5 * time.Second

	cmdSetActivity = "SET_ACTIVITY"
	evtReady       = "READY"
	evtError       = "ERROR"
)

// Discord accepts five activity updates per twenty seconds
const (
	updateBurst    = 5
	updateInterval = 4 * time.Second
)

var defaultConnectPolicy = retry.Policy{
	MaxAttempts:    5,
	InitialBackoff: time.Second,
}

// Client is a Discord IPC connection. It implements domain.Presence.
// Calls are serialized; a connection that breaks is redialled on the next call.
type Client struct {
	logger   *zap.Logger
	clientID string
	pipe     int
	pid      int
	clock    clockwork.Clock
	policy   retry.Policy
	dial     func(ctx context.Context, pipe int) (net.Conn, error)
	limiter  *rate.Limiter

	mu   sync.Mutex
	conn net.Conn
}

// NewClient creates a client for the identity selected by settings.
// No connection is made until Connect.
func NewClient(logger *zap.Logger, cfg *config.AppConfig, settings *config.Settings, clock clockwork.Clock) *Client {
	clientID := ClientID
	if settings.BezosMode {
		clientID = BezosClientID
	}

	return &Client{
		logger:   logger,
		clientID: clientID,
		pipe:     cfg.DiscordPipe,
		pid:      os.Getpid(),
		clock:    clock,
		policy:   defaultConnectPolicy,
		dial:     dialIPC,
		limiter:  rate.NewLimiter(rate.Every(updateInterval), updateBurst),
	}
}

// Connect dials the IPC socket and performs the handshake, retrying with backoff
func (c *Client) Connect(ctx context.Context) error {
	policy := c.policy
	policy.OnRetry = func(attempt int, err error, backoff time.Duration) {
		c.logger.Warn("Discord connect attempt failed",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err))
	}

	err := retry.Do(ctx, c.clock, policy, func(ctx context.Context) error {
		c.mu.Lock()
		defer c.mu.Unlock()
		return c.open(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to connect to discord: %w", err)
	}

	c.logger.Info("Connected to Discord", zap.String("clientID", c.clientID))
	return nil
}

// SetActivity replaces the presence shown for the local user
func (c *Client) SetActivity(ctx context.Context, activity domain.Activity) error {
	return c.send(ctx, activityArgs{PID: c.pid, Activity: newActivityPayload(activity)})
}

// ClearActivity removes the presence shown for the local user
func (c *Client) ClearActivity(ctx context.Context) error {
	return c.send(ctx, activityArgs{PID: c.pid})
}

// Close closes the IPC connection
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// open must be called with mu held
func (c *Client) open(ctx context.Context) error {
	if c.conn != nil {
		return nil
	}

	conn, err := c.dial(ctx, c.pipe)
	if err != nil {
		return err
	}
	if err := c.handshake(ctx, conn); err != nil {
		_ = conn.Close()
		return fmt.Errorf("discord handshake failed: %w", err)
	}

	c.conn = conn
	return nil
}

func (c *Client) handshake(ctx context.Context, conn net.Conn) error {
	setDeadline(ctx, conn)

	if err := writeFrame(conn, opHandshake, handshake{Version: 1, ClientID: c.clientID}); err != nil {
		return err
	}

	f, err := readFrame(conn)
	if err != nil {
		return err
	}

	switch f.op {
	case opClose:
		return decodeError(f.payload)
	case opFrame:
		var resp response
		if err := json.Unmarshal(f.payload, &resp); err != nil {
			return fmt.Errorf("malformed handshake reply: %w", err)
		}
		switch resp.Evt {
		case evtReady:
			return nil
		case evtError:
			return decodeError(resp.Data)
		}
		return fmt.Errorf("unexpected handshake reply %s/%s", resp.Cmd, resp.Evt)
	default:
		return fmt.Errorf("unexpected handshake opcode %d", f.op)
	}
}

func (c *Client) send(ctx context.Context, args activityArgs) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("activity update throttled: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		c.logger.Info("Reconnecting to Discord")
		if err := c.open(ctx); err != nil {
			return fmt.Errorf("discord reconnect failed: %w", err)
		}
	}

	cmd := command{Cmd: cmdSetActivity, Args: args, Nonce: uuid.NewString()}
	if err := c.roundTrip(ctx, cmd); err != nil {
		var rpcErr *RPCError
		if !errors.As(err, &rpcErr) {
			c.reset()
		}
		return err
	}
	return nil
}

// roundTrip writes cmd and waits for the reply carrying its nonce.
// Must be called with mu held.
func (c *Client) roundTrip(ctx context.Context, cmd command) error {
	setDeadline(ctx, c.conn)

	if err := writeFrame(c.conn, opFrame, cmd); err != nil {
		return err
	}

	for {
		f, err := readFrame(c.conn)
		if err != nil {
			return err
		}

		switch f.op {
		case opPing:
			if err := writeRaw(c.conn, opPong, f.payload); err != nil {
				return err
			}
		case opClose:
			c.reset()
			return decodeError(f.payload)
		case opFrame:
			var resp response
			if err := json.Unmarshal(f.payload, &resp); err != nil {
				return fmt.Errorf("malformed discord reply: %w", err)
			}
			if resp.Nonce != cmd.Nonce {
				c.logger.Debug("Ignoring unrelated discord frame",
					zap.String("cmd", resp.Cmd),
					zap.String("evt", resp.Evt))
				continue
			}
			if resp.Evt == evtError {
				return decodeError(resp.Data)
			}
			return nil
		}
	}
}

// reset drops a connection that can no longer be used. Must be called with mu held.
func (c *Client) reset() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Close(); err != nil {
		c.logger.Debug("Failed to close discord connection", zap.Error(err))
	}
	c.conn = nil
}

// setDeadline bounds the next I/O on conn by ctx, or by callTimeout when ctx has no deadline
func setDeadline(ctx context.Context, conn net.Conn) {
	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(callTimeout)
	}
	_ = conn.SetDeadline(deadline)
}
