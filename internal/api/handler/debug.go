package handler

import (
	"net/http"

	"github.com/lukemay/quizroom-go/internal/api/apierr"
	"github.com/lukemay/quizroom-go/internal/api/response"
	"github.com/lukemay/quizroom-go/internal/services/registry"
	"github.com/lukemay/quizroom-go/internal/services/room"
)

// DebugHandler serves the diagnostic state dump
type DebugHandler struct {
	controller *room.Controller
	registry   *registry.Service
}

// NewDebugHandler creates a new debug handler
func NewDebugHandler(controller *room.Controller, registry *registry.Service) *DebugHandler {
	return &DebugHandler{
		controller: controller,
		registry:   registry,
	}
}

// State handles GET /api/v1/debug/state: every room and registered player,
// answers included. Operator-only surface.
func (h *DebugHandler) State(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.controller.ListRooms(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}
	players, err := h.registry.List(r.Context())
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	dump := response.StateDump{
		Rooms:   make([]response.RoomDump, 0, len(rooms)),
		Players: make([]response.PlayerDump, 0, len(players)),
	}
	for _, rm := range rooms {
		dump.Rooms = append(dump.Rooms, response.RoomDumpFromModel(rm))
	}
	for _, p := range players {
		dump.Players = append(dump.Players, response.PlayerDumpFromModel(p))
	}

	response.JSON(w, http.StatusOK, dump)
}
