package projector

import (
	"github.com/lukemay/quizroom-go/internal/model"
)

// Service derives the client-visible view of a room. It only reads room
// state; answer content is deliberately withheld from the projection so it
// cannot reach other players before the reveal.
type Service struct{}

// New creates a new projector service
func New() *Service {
	return &Service{}
}

// Project builds the broadcastable snapshot of a room
func (s *Service) Project(room *model.Room) *model.RoomView {
	players := make([]model.PlayerView, len(room.Players))
	for i := range room.Players {
		p := &room.Players[i]
		players[i] = model.PlayerView{
			ID:          string(p.ID),
			Name:        p.Name,
			ImageURL:    p.ImageURL,
			HasAnswered: p.HasAnswered(),
		}
	}

	return &model.RoomView{
		Code:            string(room.Code),
		Phase:           room.Phase,
		TimeRemaining:   room.TimeRemaining,
		CurrentQuestion: room.CurrentQuestion,
		QuestionCount:   len(room.Questions),
		Players:         players,
	}
}
