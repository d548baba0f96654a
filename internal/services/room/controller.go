package room

import (
	"context"
	"log/slog"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/lukemay/quizroom-go/internal/dependencies/random"
	"github.com/lukemay/quizroom-go/internal/model"
	"github.com/lukemay/quizroom-go/internal/services/registry"
	"github.com/lukemay/quizroom-go/internal/storage"
)

const (
	// RoomCodeLength is the length of server-generated room codes
	RoomCodeLength = 4
	// RoomCodeAlphabet is the characters used in room codes (avoid confusing chars)
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// Config holds round settings for all rooms
type Config struct {
	// QuestionDuration is the countdown value a question starts from,
	// in clock ticks
	QuestionDuration int
}

// DefaultConfig returns the default round configuration
func DefaultConfig() Config {
	return Config{
		QuestionDuration: 30,
	}
}

// Controller implements room creation, membership, and round transitions.
//
// Every mutating operation, including the clock tick, runs under a single
// mutex: inbound client events and the round clock must behave as discrete
// serialized steps against the shared room and player state.
type Controller struct {
	mu sync.Mutex

	storage  storage.Storage
	registry *registry.Service
	clock    clockwork.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger
}

// NewController creates a new room controller
func NewController(
	storage storage.Storage,
	registry *registry.Service,
	clock clockwork.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:  storage,
		registry: registry,
		clock:    clock,
		random:   random,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "room")),
	}
}

// CreateRoom registers the host for the given connection and creates a room
// in the lobby phase. When code is empty a fresh code is generated; when a
// client-supplied code collides with an existing room, the new room replaces
// the old one.
func (c *Controller) CreateRoom(
	ctx context.Context,
	hostConn model.PlayerID,
	name string,
	imageURL string,
	code model.RoomCode,
	questions []model.Question,
) (*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	host, err := c.registry.Upsert(ctx, hostConn, name, imageURL)
	if err != nil {
		return nil, err
	}

	if code == "" {
		code, err = c.generateCode(ctx)
		if err != nil {
			return nil, err
		}
	}

	now := c.clock.Now()
	room := &model.Room{
		Code:            code,
		HostID:          host.ID,
		Players:         []model.Player{*host},
		Questions:       questions,
		CurrentQuestion: -1,
		TimeRemaining:   0,
		Phase:           model.PhaseLobby,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("room created",
		slog.String("room", string(code)),
		slog.String("host", string(host.ID)),
		slog.Int("questions", len(questions)))

	return room, nil
}

// generateCode picks a room code that is not currently in use
func (c *Controller) generateCode(ctx context.Context) (model.RoomCode, error) {
	for {
		code := model.RoomCode(c.random.Code(RoomCodeLength, RoomCodeAlphabet))
		exists, err := c.storage.RoomExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
}

// JoinRoom registers the player for the given connection and appends them to
// the room. Joining a room twice with the same connection is a no-op.
func (c *Controller) JoinRoom(
	ctx context.Context,
	code model.RoomCode,
	conn model.PlayerID,
	name string,
	imageURL string,
) (*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	player, err := c.registry.Upsert(ctx, conn, name, imageURL)
	if err != nil {
		return nil, err
	}

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if !room.HasPlayer(player.ID) {
		room.Players = append(room.Players, *player)
		room.UpdatedAt = c.clock.Now()
		if err := c.storage.SaveRoom(ctx, room); err != nil {
			return nil, err
		}
		c.logger.Info("player joined room",
			slog.String("room", string(code)),
			slog.String("player", string(player.ID)))
	}

	return room, nil
}

// GetRoom retrieves a room by code
func (c *Controller) GetRoom(ctx context.Context, code model.RoomCode) (*model.Room, error) {
	return c.storage.GetRoom(ctx, code)
}

// ListRooms returns every active room
func (c *Controller) ListRooms(ctx context.Context) ([]*model.Room, error) {
	return c.storage.ListRooms(ctx)
}

// StartGame moves a lobby into its first question. Only the host may start.
func (c *Controller) StartGame(ctx context.Context, code model.RoomCode, requester model.PlayerID) (*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.HostID != requester {
		return nil, model.ErrNotHost
	}

	switch room.Phase {
	case model.PhaseLobby:
	case model.PhaseGameEnded:
		return nil, model.ErrGameFinished
	default:
		return nil, model.ErrRoundInProgress
	}

	if len(room.Questions) == 0 {
		return nil, model.ErrNoQuestions
	}

	room.Phase = model.PhaseQuestionActive
	room.CurrentQuestion = 0
	room.TimeRemaining = c.cfg.QuestionDuration
	room.ClearAnswers()
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	c.logger.Info("game started",
		slog.String("room", string(code)),
		slog.Int("players", len(room.Players)))

	return room, nil
}

// LockAnswer records the player's answer for the active question.
// Repeated calls before the timer expires overwrite the previous answer.
func (c *Controller) LockAnswer(ctx context.Context, code model.RoomCode, conn model.PlayerID, answer string) (*model.Room, error) {
	if answer == "" || code == "" {
		return nil, model.ErrInvalidPayload
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.Phase != model.PhaseQuestionActive {
		return nil, model.ErrRoundNotActive
	}

	player := room.GetPlayer(conn)
	if player == nil {
		return nil, model.ErrPlayerNotFound
	}

	player.CurrentAnswer = &answer
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// NextQuestion advances a room whose question has ended to the next
// question, or to the end of the game when none remain. Only the host
// may advance.
func (c *Controller) NextQuestion(ctx context.Context, code model.RoomCode, requester model.PlayerID) (*model.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	room, err := c.storage.GetRoom(ctx, code)
	if err != nil {
		return nil, err
	}

	if room.HostID != requester {
		return nil, model.ErrNotHost
	}

	switch room.Phase {
	case model.PhaseQuestionEnded:
	case model.PhaseLobby:
		return nil, model.ErrGameNotStarted
	case model.PhaseQuestionActive:
		return nil, model.ErrRoundInProgress
	default:
		return nil, model.ErrGameFinished
	}

	if room.OnLastQuestion() {
		room.Phase = model.PhaseGameEnded
		room.TimeRemaining = 0
	} else {
		room.CurrentQuestion++
		room.Phase = model.PhaseQuestionActive
		room.TimeRemaining = c.cfg.QuestionDuration
		room.ClearAnswers()
	}
	room.UpdatedAt = c.clock.Now()

	if err := c.storage.SaveRoom(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// Tick decrements the countdown of every room with an active question and
// transitions rooms whose time has run out. It returns the rooms that
// changed this tick. A failure while processing one room is logged and does
// not affect the others.
func (c *Controller) Tick(ctx context.Context) []*model.Room {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.storage.ListRooms(ctx)
	if err != nil {
		c.logger.Error("tick: listing rooms failed", slog.String("error", err.Error()))
		return nil
	}

	var changed []*model.Room
	for _, room := range rooms {
		if room.Phase != model.PhaseQuestionActive || room.TimeRemaining <= 0 {
			continue
		}

		room.TimeRemaining--
		if room.TimeRemaining == 0 {
			if room.OnLastQuestion() {
				room.Phase = model.PhaseGameEnded
			} else {
				room.Phase = model.PhaseQuestionEnded
			}
			c.logger.Info("question ended",
				slog.String("room", string(room.Code)),
				slog.Int("question", room.CurrentQuestion),
				slog.String("phase", string(room.Phase)))
		}
		room.UpdatedAt = c.clock.Now()

		if err := c.storage.SaveRoom(ctx, room); err != nil {
			c.logger.Error("tick: saving room failed",
				slog.String("room", string(room.Code)),
				slog.String("error", err.Error()))
			continue
		}
		changed = append(changed, room)
	}

	return changed
}
