package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lukemay/quizroom-go/internal/model"
	"github.com/lukemay/quizroom-go/internal/services/registry"
	"github.com/lukemay/quizroom-go/internal/services/room"
)

// Gateway accepts websocket connections, assigns each a connection
// identity, and dispatches inbound events to the room controller
type Gateway struct {
	controller  *room.Controller
	registry    *registry.Service
	hubs        *HubManager
	broadcaster *Broadcaster
	upgrader    websocket.Upgrader
	logger      *slog.Logger
}

// NewGateway creates a new websocket gateway
func NewGateway(
	controller *room.Controller,
	registry *registry.Service,
	hubs *HubManager,
	broadcaster *Broadcaster,
	logger *slog.Logger,
) *Gateway {
	return &Gateway{
		controller:  controller,
		registry:    registry,
		hubs:        hubs,
		broadcaster: broadcaster,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Cross-origin policy is handled by the CORS middleware
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "gateway")),
	}
}

// ServeWS upgrades an HTTP request and runs the connection until the peer
// disconnects
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	client := NewClient(model.PlayerID(uuid.NewString()), conn, g.logger)
	g.logger.Info("connection opened", slog.String("conn_id", string(client.ID)))

	go client.writePump()
	g.readPump(r.Context(), client)
}

// readPump reads events off the connection and dispatches them until the
// peer disconnects
func (g *Gateway) readPump(ctx context.Context, client *Client) {
	defer func() {
		client.leaveHubs()
		close(client.send)
		_ = g.registry.Remove(context.WithoutCancel(ctx), client.ID)
		g.logger.Info("connection closed", slog.String("conn_id", string(client.ID)))
	}()

	client.conn.SetReadLimit(maxMessageSize)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				g.logger.Warn("unexpected close", slog.String("error", err.Error()))
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			g.logger.Debug("dropping malformed message",
				slog.String("conn_id", string(client.ID)),
				slog.String("error", err.Error()))
			continue
		}

		g.dispatch(ctx, client, env)
	}
}

// dispatch routes a single inbound event. Each event is one discrete step:
// anything unexpected is caught here so one bad event never takes down the
// connection, let alone the process.
func (g *Gateway) dispatch(ctx context.Context, client *Client, env Envelope) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("panic handling event",
				slog.String("event", string(env.Event)),
				slog.Any("panic", r))
		}
	}()

	switch env.Event {
	case model.EventJoinRoom:
		g.handleJoinRoom(ctx, client, env.Data)
	case model.EventCreateRoom:
		g.handleCreateRoom(ctx, client, env.Data)
	case model.EventStartGame:
		g.handleStartGame(ctx, client, env.Data)
	case model.EventNextQuestion:
		g.handleNextQuestion(ctx, client, env.Data)
	case model.EventLockAnswer:
		g.handleLockAnswer(ctx, client, env.Data)
	case model.EventGetData:
		g.handleGetData(ctx)
	default:
		g.logger.Debug("unknown event",
			slog.String("event", string(env.Event)),
			slog.String("conn_id", string(client.ID)))
	}
}

func (g *Gateway) handleJoinRoom(ctx context.Context, client *Client, data json.RawMessage) {
	var p JoinRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Code == "" || p.Name == "" {
		g.drop(client, model.EventJoinRoom, model.ErrInvalidPayload)
		return
	}

	updated, err := g.controller.JoinRoom(ctx, model.RoomCode(p.Code), client.ID, p.Name, p.ImageURL)
	if err != nil {
		g.drop(client, model.EventJoinRoom, err)
		return
	}

	client.joinHub(g.hubs.GetOrCreateHub(updated.Code))
	g.broadcaster.BroadcastRoom(ctx, updated)
}

func (g *Gateway) handleCreateRoom(ctx context.Context, client *Client, data json.RawMessage) {
	var p CreateRoomPayload
	if err := json.Unmarshal(data, &p); err != nil || p.Name == "" {
		g.drop(client, model.EventCreateRoom, model.ErrInvalidPayload)
		return
	}

	created, err := g.controller.CreateRoom(ctx, client.ID, p.Name, p.ImageURL, model.RoomCode(p.Code), p.Questions)
	if err != nil {
		g.drop(client, model.EventCreateRoom, err)
		return
	}

	client.joinHub(g.hubs.GetOrCreateHub(created.Code))
	g.broadcaster.BroadcastRoom(ctx, created)
}

func (g *Gateway) handleStartGame(ctx context.Context, client *Client, data json.RawMessage) {
	var p StartGamePayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		g.drop(client, model.EventStartGame, model.ErrInvalidPayload)
		return
	}

	updated, err := g.controller.StartGame(ctx, model.RoomCode(p.RoomID), client.ID)
	if err != nil {
		g.drop(client, model.EventStartGame, err)
		return
	}

	g.broadcaster.BroadcastRoom(ctx, updated)
}

func (g *Gateway) handleNextQuestion(ctx context.Context, client *Client, data json.RawMessage) {
	var p StartGamePayload
	if err := json.Unmarshal(data, &p); err != nil || p.RoomID == "" {
		g.drop(client, model.EventNextQuestion, model.ErrInvalidPayload)
		return
	}

	updated, err := g.controller.NextQuestion(ctx, model.RoomCode(p.RoomID), client.ID)
	if err != nil {
		g.drop(client, model.EventNextQuestion, err)
		return
	}

	g.broadcaster.BroadcastRoom(ctx, updated)
}

func (g *Gateway) handleLockAnswer(ctx context.Context, client *Client, data json.RawMessage) {
	var p LockAnswerPayload
	// A missing answer or room is silently ignored: there is nothing
	// useful to tell the answering client
	if err := json.Unmarshal(data, &p); err != nil || p.Answer == "" || p.RoomID == "" {
		return
	}

	updated, err := g.controller.LockAnswer(ctx, model.RoomCode(p.RoomID), client.ID, p.Answer)
	if err != nil {
		g.drop(client, model.EventLockAnswer, err)
		return
	}

	g.broadcaster.BroadcastRoom(ctx, updated)
}

// handleGetData dumps the full engine state to the operator log
func (g *Gateway) handleGetData(ctx context.Context) {
	rooms, err := g.controller.ListRooms(ctx)
	if err != nil {
		g.logger.Error("state dump failed", slog.String("error", err.Error()))
		return
	}
	players, err := g.registry.List(ctx)
	if err != nil {
		g.logger.Error("state dump failed", slog.String("error", err.Error()))
		return
	}

	g.logger.Info("state dump",
		slog.Int("room_count", len(rooms)),
		slog.Int("player_count", len(players)),
		slog.Any("rooms", rooms),
		slog.Any("players", players))
}

// drop records a rejected or no-op event. Expected outcomes (absent room,
// absent player, bad payload, non-host caller, wrong phase) stay at debug;
// anything else is a real fault.
func (g *Gateway) drop(client *Client, event model.EventType, err error) {
	level := slog.LevelError
	if isExpected(err) {
		level = slog.LevelDebug
	}
	g.logger.Log(context.Background(), level, "event dropped",
		slog.String("event", string(event)),
		slog.String("conn_id", string(client.ID)),
		slog.String("reason", err.Error()))
}

func isExpected(err error) bool {
	for _, known := range []error{
		model.ErrRoomNotFound,
		model.ErrPlayerNotFound,
		model.ErrInvalidPayload,
		model.ErrNotHost,
		model.ErrRoundNotActive,
		model.ErrRoundInProgress,
		model.ErrGameNotStarted,
		model.ErrGameFinished,
		model.ErrNoQuestions,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}
