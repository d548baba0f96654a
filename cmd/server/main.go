package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/lukemay/quizroom-go/internal/api"
	"github.com/lukemay/quizroom-go/internal/factory"
	"github.com/lukemay/quizroom-go/internal/services/room"
	"github.com/lukemay/quizroom-go/internal/services/roundclock"
	redisstorage "github.com/lukemay/quizroom-go/internal/storage/redis"
)

func main() {
	// A local .env is optional
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		RoomConfig:  room.DefaultConfig(),
		ClockConfig: roundclock.DefaultConfig(),
	}

	if d := envInt("QUESTION_DURATION"); d > 0 {
		cfg.RoomConfig.QuestionDuration = d
	}
	if ms := envInt("TICK_INTERVAL_MS"); ms > 0 {
		cfg.ClockConfig.TickInterval = time.Duration(ms) * time.Millisecond
	}

	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		RoomController: app.RoomController,
		Registry:       app.Registry,
		Projector:      app.Projector,
		Gateway:        app.Gateway,
	})

	// Browser clients connect from their own origins
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler(router)

	serverConfig := api.DefaultServerConfig()
	if p := envInt("PORT"); p > 0 {
		serverConfig.Port = p
	}
	server := api.NewServer(handler, serverConfig, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The round clock runs for the life of the process
	go app.RoundClock.Run(ctx)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// envInt reads an integer environment variable, returning 0 when unset or
// unparseable
func envInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}
