package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHand(t *testing.T) {
	a := assert.New(t)

	hand := Hand(CardsFromString("2c,3d"))
	hand.AddCard(CardFromString("14s"))

	a.Equal(3, hand.Len())
	a.True(hand.HasCard(CardFromString("3d")))
	a.False(hand.HasCard(CardFromString("3c")))
	a.Equal(CardFromString("2c"), hand.FirstCard())
	a.Equal(CardFromString("14s"), hand.LastCard())
	a.Equal("2c,3d,14s", hand.String())

	clone := hand.Clone()
	clone[0] = CardFromString("9h")
	a.Equal(CardFromString("2c"), hand.FirstCard())
}
