package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lukemay/quizroom-go/internal/api/handler"
	"github.com/lukemay/quizroom-go/internal/api/middleware"
	"github.com/lukemay/quizroom-go/internal/services/projector"
	"github.com/lukemay/quizroom-go/internal/services/registry"
	"github.com/lukemay/quizroom-go/internal/services/room"
	"github.com/lukemay/quizroom-go/internal/ws"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	Logger         *slog.Logger
	RoomController *room.Controller
	Registry       *registry.Service
	Projector      *projector.Service
	Gateway        *ws.Gateway
}

// NewRouter creates the HTTP router: the websocket endpoint plus the small
// read-only API surface
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	roomHandler := handler.NewRoomHandler(cfg.RoomController, cfg.Projector)
	debugHandler := handler.NewDebugHandler(cfg.RoomController, cfg.Registry)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{code}", roomHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/debug/state", debugHandler.State).Methods(http.MethodGet)

	// The websocket endpoint skips the logging middleware: its requests
	// are long-lived and logged by the gateway itself
	r.HandleFunc("/ws", cfg.Gateway.ServeWS)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
