package poker

import (
	"fmt"
	"sort"

	"pokertable-server/pkg/deck"
)

// Evaluate returns the best five-card HandRank the cards can make.
// The input must contain 5 to 7 cards with no duplicates; anything else is a
// programming error and panics. For six- and seven-card inputs, every
// five-card subset is ranked and the maximum is returned.
func Evaluate(cards []deck.Card) HandRank {
	n := len(cards)
	if n < 5 || n > 7 {
		panic(fmt.Sprintf("cannot evaluate %d cards", n))
	}

	seen := make(map[deck.Card]bool, n)
	for _, card := range cards {
		if seen[card] {
			panic(fmt.Sprintf("duplicate card: %s", card))
		}
		seen[card] = true
	}

	if n == 5 {
		return newHandAnalyzer(cards).rank()
	}

	var best HandRank
	bestStrength := -1

	subset := make([]deck.Card, 5)
	for i := 0; i < n-4; i++ {
		for j := i + 1; j < n-3; j++ {
			for k := j + 1; k < n-2; k++ {
				for l := k + 1; l < n-1; l++ {
					for m := l + 1; m < n; m++ {
						subset[0], subset[1], subset[2], subset[3], subset[4] = cards[i], cards[j], cards[k], cards[l], cards[m]

						rank := newHandAnalyzer(subset).rank()
						if s := rank.Strength(); s > bestStrength {
							bestStrength = s
							best = rank
						}
					}
				}
			}
		}
	}

	return best
}

// handAnalyzer analyzes exactly five cards
type handAnalyzer struct {
	// cards are sorted by descending rank
	cards deck.Hand

	quads        []int
	trips        []int
	pairs        []int
	isFlush      bool
	straightHigh int
}

func newHandAnalyzer(cards []deck.Card) *handAnalyzer {
	sortedCards := make(deck.Hand, len(cards))
	copy(sortedCards, cards)
	sort.Sort(sort.Reverse(sortByRank(sortedCards)))

	h := &handAnalyzer{
		cards: sortedCards,
	}

	h.analyze()
	return h
}

func (h *handAnalyzer) analyze() {
	h.isFlush = true
	for _, card := range h.cards[1:] {
		if card.Suit != h.cards[0].Suit {
			h.isFlush = false
			break
		}
	}

	prevRank := -1
	numOfRank := 0
	for i, card := range h.cards {
		if card.Rank == prevRank {
			numOfRank++
		}

		// if the card is no longer the same rank, or we're at the end,
		// record the longest group of cards we formed
		if card.Rank != prevRank || i+1 == len(h.cards) {
			switch numOfRank {
			case 4:
				h.quads = append(h.quads, prevRank)
			case 3:
				h.trips = append(h.trips, prevRank)
			case 2:
				h.pairs = append(h.pairs, prevRank)
			}

			numOfRank = 1
		}

		prevRank = card.Rank
	}

	h.checkStraight()
}

func (h *handAnalyzer) checkStraight() {
	h.straightHigh = h.cards[0].Rank
	for i, card := range h.cards[1:] {
		if card.Rank != h.cards[i].Rank-1 {
			h.straightHigh = 0
			break
		}
	}

	// the wheel: A-5-4-3-2 plays as a five-high straight
	if h.straightHigh == 0 &&
		h.cards[0].Rank == deck.Ace &&
		h.cards[1].Rank == 5 && h.cards[2].Rank == 4 && h.cards[3].Rank == 3 && h.cards[4].Rank == 2 {
		h.straightHigh = 5
	}
}

// ranksExcluding returns up to max card ranks, highest first, skipping the excluded ranks
func (h *handAnalyzer) ranksExcluding(max int, excluded ...int) []int {
	ranks := make([]int, 0, max)

Cards:
	for _, card := range h.cards {
		for _, ex := range excluded {
			if card.Rank == ex {
				continue Cards
			}
		}

		ranks = append(ranks, card.Rank)
		if len(ranks) == max {
			break
		}
	}

	return ranks
}

func (h *handAnalyzer) rank() HandRank {
	if h.straightHigh > 0 && h.isFlush {
		if h.straightHigh == deck.Ace {
			return HandRank{Category: RoyalFlush}
		}

		return HandRank{Category: StraightFlush, Kickers: []int{h.straightHigh}}
	}

	if len(h.quads) > 0 {
		quad := h.quads[0]
		return HandRank{Category: FourOfAKind, Kickers: append([]int{quad}, h.ranksExcluding(1, quad)...)}
	}

	if len(h.trips) > 0 && len(h.pairs) > 0 {
		return HandRank{Category: FullHouse, Kickers: []int{h.trips[0], h.pairs[0]}}
	}

	if h.isFlush {
		return HandRank{Category: Flush, Kickers: h.ranksExcluding(5)}
	}

	if h.straightHigh > 0 {
		return HandRank{Category: Straight, Kickers: []int{h.straightHigh}}
	}

	if len(h.trips) > 0 {
		trips := h.trips[0]
		return HandRank{Category: ThreeOfAKind, Kickers: append([]int{trips}, h.ranksExcluding(2, trips)...)}
	}

	if len(h.pairs) >= 2 {
		hi, lo := h.pairs[0], h.pairs[1]
		return HandRank{Category: TwoPair, Kickers: append([]int{hi, lo}, h.ranksExcluding(1, hi, lo)...)}
	}

	if len(h.pairs) == 1 {
		pair := h.pairs[0]
		return HandRank{Category: OnePair, Kickers: append([]int{pair}, h.ranksExcluding(3, pair)...)}
	}

	return HandRank{Category: HighCard, Kickers: h.ranksExcluding(5)}
}

type sortByRank deck.Hand

func (s sortByRank) Len() int {
	return len(s)
}

func (s sortByRank) Less(i, j int) bool {
	return s[i].Rank < s[j].Rank
}

func (s sortByRank) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}
