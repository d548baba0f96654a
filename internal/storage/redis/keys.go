package redis

import (
	"fmt"

	"github.com/lukemay/quizroom-go/internal/model"
)

// Key prefix for all quizroom data
const keyPrefix = "quizroom"

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// roomKey returns the Redis key for a Room
func roomKey(code model.RoomCode) string {
	return fmt.Sprintf("%s:room:%s", keyPrefix, code)
}

// playerIndexKey returns the Redis key for the SET of known player IDs
func playerIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}

// roomIndexKey returns the Redis key for the SET of active room codes
func roomIndexKey() string {
	return fmt.Sprintf("%s:idx:rooms", keyPrefix)
}
