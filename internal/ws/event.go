package ws

import (
	"encoding/json"

	"github.com/lukemay/quizroom-go/internal/model"
)

// Envelope is the wire format for every gateway message, inbound and
// outbound. Payload shapes mirror the client protocol, so field names are
// camelCase.
type Envelope struct {
	Event model.EventType `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// JoinRoomPayload carries a joinRoom event
type JoinRoomPayload struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// CreateRoomPayload carries a createRoom event. Code is optional; the
// server generates one when it is absent.
type CreateRoomPayload struct {
	Code      string           `json:"code,omitempty"`
	Name      string           `json:"name"`
	ImageURL  string           `json:"imageUrl,omitempty"`
	Questions []model.Question `json:"questions"`
}

// StartGamePayload carries a startGame or nextQuestion event
type StartGamePayload struct {
	RoomID string `json:"roomId"`
}

// LockAnswerPayload carries a lockAnswer event
type LockAnswerPayload struct {
	Answer string `json:"answer"`
	RoomID string `json:"roomId"`
}

// encodeRoomUpdate builds the outbound roomUpdate message for a room view
func encodeRoomUpdate(view *model.RoomView) ([]byte, error) {
	data, err := json.Marshal(view)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{
		Event: model.EventRoomUpdate,
		Data:  data,
	})
}
