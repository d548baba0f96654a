package response

import (
	"time"

	"github.com/lukemay/quizroom-go/internal/model"
)

// StateDump is the diagnostic snapshot of the whole engine
type StateDump struct {
	Rooms   []RoomDump   `json:"rooms"`
	Players []PlayerDump `json:"players"`
}

// RoomDump is the operator-facing room record. Unlike the broadcast view it
// includes host identity and locked answers; it is never sent to players.
type RoomDump struct {
	Code            string          `json:"code"`
	HostID          string          `json:"host_id"`
	Phase           model.RoomPhase `json:"phase"`
	TimeRemaining   int             `json:"time_remaining"`
	CurrentQuestion int             `json:"current_question"`
	QuestionCount   int             `json:"question_count"`
	Players         []PlayerDump    `json:"players"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// PlayerDump is the operator-facing player record
type PlayerDump struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ImageURL      string  `json:"image_url,omitempty"`
	CurrentAnswer *string `json:"current_answer,omitempty"`
}

// RoomDumpFromModel converts a model.Room to a RoomDump
func RoomDumpFromModel(r *model.Room) RoomDump {
	players := make([]PlayerDump, len(r.Players))
	for i := range r.Players {
		players[i] = PlayerDumpFromModel(&r.Players[i])
	}
	return RoomDump{
		Code:            string(r.Code),
		HostID:          string(r.HostID),
		Phase:           r.Phase,
		TimeRemaining:   r.TimeRemaining,
		CurrentQuestion: r.CurrentQuestion,
		QuestionCount:   len(r.Questions),
		Players:         players,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// PlayerDumpFromModel converts a model.Player to a PlayerDump
func PlayerDumpFromModel(p *model.Player) PlayerDump {
	return PlayerDump{
		ID:            string(p.ID),
		Name:          p.Name,
		ImageURL:      p.ImageURL,
		CurrentAnswer: p.CurrentAnswer,
	}
}
