package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lukemay/quizroom-go/internal/api/apierr"
	"github.com/lukemay/quizroom-go/internal/api/response"
	"github.com/lukemay/quizroom-go/internal/model"
	"github.com/lukemay/quizroom-go/internal/services/projector"
	"github.com/lukemay/quizroom-go/internal/services/room"
)

// RoomHandler serves read-only room views over HTTP
type RoomHandler struct {
	controller *room.Controller
	projector  *projector.Service
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(controller *room.Controller, projector *projector.Service) *RoomHandler {
	return &RoomHandler{
		controller: controller,
		projector:  projector,
	}
}

// Get handles GET /api/v1/rooms/{code}. It returns the same sanitized view
// members receive over the broadcast stream.
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	code := model.RoomCode(mux.Vars(r)["code"])

	rm, err := h.controller.GetRoom(r.Context(), code)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, h.projector.Project(rm))
}
