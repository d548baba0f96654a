package model

import "time"

// RoomCode is the human-readable identifier clients use to join a room
type RoomCode string

// RoomPhase represents a room's position in its lifecycle state machine
type RoomPhase string

const (
	PhaseLobby          RoomPhase = "lobby"           // Waiting for the host to start
	PhaseQuestionActive RoomPhase = "question_active" // Countdown running, answers accepted
	PhaseQuestionEnded  RoomPhase = "question_ended"  // Countdown expired, awaiting next question
	PhaseGameEnded      RoomPhase = "game_ended"      // All questions played
)

// Question is a single quiz question. The engine never interprets its
// content; it is carried verbatim from the creating client and indexed.
type Question struct {
	Prompt  string   `json:"prompt"`
	Options []string `json:"options,omitempty"`
	Answer  string   `json:"answer,omitempty"`
}

// Room represents a single game session
type Room struct {
	Code   RoomCode
	HostID PlayerID

	// Players in join order; the host is always at index 0.
	// Entries are copies: the room is the single writer of the
	// embedded answer state.
	Players []Player

	Questions []Question

	// CurrentQuestion is -1 while the room is in the lobby
	CurrentQuestion int

	// TimeRemaining is the countdown for the active question; 0 when
	// no question is running
	TimeRemaining int

	Phase     RoomPhase
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GetPlayer returns the embedded player with the given ID, or nil
func (r *Room) GetPlayer(id PlayerID) *Player {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i]
		}
	}
	return nil
}

// HasPlayer returns true if a player with the given ID is in the room
func (r *Room) HasPlayer(id PlayerID) bool {
	return r.GetPlayer(id) != nil
}

// OnLastQuestion returns true if the current question is the final one
func (r *Room) OnLastQuestion() bool {
	return r.CurrentQuestion >= len(r.Questions)-1
}

// ClearAnswers resets every player's locked answer
func (r *Room) ClearAnswers() {
	for i := range r.Players {
		r.Players[i].CurrentAnswer = nil
	}
}

// Clone returns a deep copy of the room, players and questions included
func (r *Room) Clone() *Room {
	clone := *r

	clone.Players = make([]Player, len(r.Players))
	for i := range r.Players {
		clone.Players[i] = *r.Players[i].Clone()
	}

	clone.Questions = make([]Question, len(r.Questions))
	for i, q := range r.Questions {
		clone.Questions[i] = q
		clone.Questions[i].Options = append([]string(nil), q.Options...)
	}

	return &clone
}
