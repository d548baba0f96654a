package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/lukemay/quizroom-go/internal/dependencies/random"
	"github.com/lukemay/quizroom-go/internal/services/projector"
	"github.com/lukemay/quizroom-go/internal/services/registry"
	"github.com/lukemay/quizroom-go/internal/services/room"
	"github.com/lukemay/quizroom-go/internal/services/roundclock"
	"github.com/lukemay/quizroom-go/internal/storage"
	"github.com/lukemay/quizroom-go/internal/storage/memory"
	redisstorage "github.com/lukemay/quizroom-go/internal/storage/redis"
	"github.com/lukemay/quizroom-go/internal/ws"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage
	Clock   clockwork.Clock
	Random  random.Random

	Registry       *registry.Service
	RoomController *room.Controller
	Projector      *projector.Service
	RoundClock     *roundclock.Clock

	HubManager  *ws.HubManager
	Broadcaster *ws.Broadcaster
	Gateway     *ws.Gateway
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RoomConfig holds round settings (zero value uses defaults)
	RoomConfig room.Config
	// ClockConfig holds round clock settings (zero value uses defaults)
	ClockConfig roundclock.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	roomCfg := cfg.RoomConfig
	if roomCfg.QuestionDuration == 0 {
		roomCfg = room.DefaultConfig()
	}
	clockCfg := cfg.ClockConfig
	if clockCfg.TickInterval == 0 {
		clockCfg = roundclock.DefaultConfig()
	}

	return newWithDependencies(store, clockwork.NewRealClock(), random.New(), roomCfg, clockCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.Storage,
	clk clockwork.Clock,
	rnd random.Random,
	roomCfg room.Config,
	clockCfg roundclock.Config,
	logger *slog.Logger,
) *App {
	registryService := registry.New(store, logger)
	roomController := room.NewController(store, registryService, clk, rnd, roomCfg, logger)
	projectorService := projector.New()

	hubManager := ws.NewHubManager(logger)
	broadcaster := ws.NewBroadcaster(hubManager, projectorService, logger)
	gateway := ws.NewGateway(roomController, registryService, hubManager, broadcaster, logger)

	roundClock := roundclock.New(roomController, broadcaster, clk, clockCfg, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Registry:       registryService,
		RoomController: roomController,
		Projector:      projectorService,
		RoundClock:     roundClock,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
		Gateway:        gateway,
	}
}
