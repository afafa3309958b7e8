package util

import (
	"fmt"
	"math/rand"
)

var adjectives = []string{
	"Lucky", "Golden", "Midnight", "Velvet", "Smoky", "Neon", "Rusty", "Silver",
	"Crimson", "Copper", "Dusty", "Electric", "Emerald", "Frozen", "Gilded",
	"Hidden", "Roaring", "Quiet", "Royal", "Sly", "Wild", "Crooked", "Broken",
	"Double", "Final",
}

var nouns = []string{
	"River", "Turn", "Flop", "Ace", "Deuce", "Kicker", "Button", "Blind",
	"Boat", "Wheel", "Nugget", "Gutshot", "Bluff", "Ladder", "Spade", "Club",
	"Diamond", "Heart", "Jack", "Queen", "King", "Joker", "Stack", "Felt",
}

// GetRandomName returns a table name by combining an adjective with a noun
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[rand.Intn(len(adjectives))], nouns[rand.Intn(len(nouns))])
}
