package util

import (
	"github.com/google/uuid"
)

// RandomPlayerID generates a random player ID suitable for testing
func RandomPlayerID() string {
	return "player-" + uuid.New().String()
}
