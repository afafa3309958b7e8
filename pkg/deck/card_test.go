package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card := CardFromString("14s")
	a.Equal(Ace, card.Rank)
	a.Equal(Spades, card.Suit)

	card = CardFromString("2c")
	a.Equal(2, card.Rank)
	a.Equal(Clubs, card.Suit)

	a.PanicsWithValue("could not parse card: 15s", func() {
		CardFromString("15s")
	})

	a.PanicsWithValue("could not parse card: 5x", func() {
		CardFromString("5x")
	})
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("A♠", CardFromString("14s").String())
	a.Equal("J♡", CardFromString("11h").String())
	a.Equal("10♢", CardFromString("10d").String())
	a.Equal("2♣", CardFromString("2c").String())
}

func TestCard_AceLowRank(t *testing.T) {
	a := assert.New(t)
	a.Equal(1, CardFromString("14s").AceLowRank())
	a.Equal(13, CardFromString("13s").AceLowRank())
	a.Equal(2, CardFromString("2s").AceLowRank())
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("2c,10d,14s")
	a.Equal("2c,10d,14s", CardsToString(cards))
	a.Len(CardsFromString(""), 0)
}
