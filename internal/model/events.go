package model

// EventType identifies an inbound or outbound gateway event
type EventType string

const (
	// Inbound events
	EventJoinRoom     EventType = "joinRoom"
	EventCreateRoom   EventType = "createRoom"
	EventStartGame    EventType = "startGame"
	EventNextQuestion EventType = "nextQuestion"
	EventLockAnswer   EventType = "lockAnswer"
	EventGetData      EventType = "getData"

	// Outbound events
	EventRoomUpdate EventType = "roomUpdate"
)
