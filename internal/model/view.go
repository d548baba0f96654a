package model

// PlayerView is the client-visible projection of a player. It exposes
// whether an answer has been locked but never the answer itself, so
// answers cannot leak to other players before the reveal.
type PlayerView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ImageURL    string `json:"image_url,omitempty"`
	HasAnswered bool   `json:"has_answered"`
}

// RoomView is the broadcastable snapshot of a room sent to every member
type RoomView struct {
	Code            string       `json:"code"`
	Phase           RoomPhase    `json:"phase"`
	TimeRemaining   int          `json:"time_remaining"`
	CurrentQuestion int          `json:"current_question"`
	QuestionCount   int          `json:"question_count"`
	Players         []PlayerView `json:"players"`
}
