package roundclock

import (
	"context"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/lukemay/quizroom-go/internal/model"
	"github.com/lukemay/quizroom-go/internal/services/room"
)

// Broadcaster delivers an updated room to every member. Implemented by the
// websocket layer; the clock only knows rooms changed and must be announced.
type Broadcaster interface {
	BroadcastRoom(ctx context.Context, room *model.Room)
}

// Config holds round clock settings
type Config struct {
	// TickInterval is the period between countdown decrements. The
	// default is 500ms with a decrement of one unit per tick, so the
	// visible countdown runs at twice wall-clock speed; set 1s for
	// real seconds.
	TickInterval time.Duration
}

// DefaultConfig returns the default round clock configuration
func DefaultConfig() Config {
	return Config{
		TickInterval: 500 * time.Millisecond,
	}
}

// Clock is the single global process driving the countdown of every room
// with an active question
type Clock struct {
	controller  *room.Controller
	broadcaster Broadcaster
	clock       clockwork.Clock
	cfg         Config
	logger      *slog.Logger
}

// New creates a new round clock
func New(
	controller *room.Controller,
	broadcaster Broadcaster,
	clk clockwork.Clock,
	cfg Config,
	logger *slog.Logger,
) *Clock {
	return &Clock{
		controller:  controller,
		broadcaster: broadcaster,
		clock:       clk,
		cfg:         cfg,
		logger:      logger.With(slog.String("component", "roundclock")),
	}
}

// Run drives the clock until the context is cancelled. It is intended to be
// started once, as a goroutine, at process startup.
func (c *Clock) Run(ctx context.Context) {
	ticker := c.clock.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()

	c.logger.Info("round clock started",
		slog.Duration("tick_interval", c.cfg.TickInterval))

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("round clock stopped")
			return
		case <-ticker.Chan():
			c.tick(ctx)
		}
	}
}

// tick runs one clock firing. A fault while processing must never kill the
// clock for subsequent ticks, so anything unexpected is caught here.
func (c *Clock) tick(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic during clock tick", slog.Any("panic", r))
		}
	}()

	// Rooms untouched this tick are not re-broadcast
	for _, changed := range c.controller.Tick(ctx) {
		c.broadcaster.BroadcastRoom(ctx, changed)
	}
}
