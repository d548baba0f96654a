package ws

import (
	"context"
	"log/slog"

	"github.com/lukemay/quizroom-go/internal/model"
	"github.com/lukemay/quizroom-go/internal/services/projector"
)

// Broadcaster projects a room into its client-visible view and fans it out
// to every member's connection. Used by the gateway after each successful
// mutation and by the round clock for timer-driven changes.
type Broadcaster struct {
	hubs      *HubManager
	projector *projector.Service
	logger    *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubs *HubManager, projector *projector.Service, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubs:      hubs,
		projector: projector,
		logger:    logger.With(slog.String("component", "broadcaster")),
	}
}

// BroadcastRoom sends the room's updated view to every connection in the
// room's hub. A room with no hub (no connected members) is skipped.
func (b *Broadcaster) BroadcastRoom(ctx context.Context, room *model.Room) {
	hub := b.hubs.GetHub(room.Code)
	if hub == nil {
		return
	}

	msg, err := encodeRoomUpdate(b.projector.Project(room))
	if err != nil {
		b.logger.Error("failed to encode room update",
			slog.String("room", string(room.Code)),
			slog.String("error", err.Error()))
		return
	}

	hub.Broadcast(msg)
}
