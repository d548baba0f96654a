package model

// PlayerID is the opaque connection identity assigned by the transport.
// It is stable for the lifetime of a connection.
type PlayerID string

// Player represents a connected participant
type Player struct {
	ID       PlayerID
	Name     string
	ImageURL string

	// CurrentAnswer is the last answer locked in for the active question,
	// or nil if the player has not answered this round
	CurrentAnswer *string
}

// HasAnswered returns true if the player has locked an answer this round
func (p *Player) HasAnswered() bool {
	return p.CurrentAnswer != nil
}

// Clone returns a deep copy of the player
func (p *Player) Clone() *Player {
	clone := *p
	if p.CurrentAnswer != nil {
		answer := *p.CurrentAnswer
		clone.CurrentAnswer = &answer
	}
	return &clone
}
