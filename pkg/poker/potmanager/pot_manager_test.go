package potmanager

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokertable-server/pkg/deck"
	"pokertable-server/pkg/poker"
)

func TestCollectBets_noAllIn(t *testing.T) {
	a := assert.New(t)

	pots := CollectBets([]Contribution{
		{Seat: 0, Amount: 10},
		{Seat: 1, Amount: 10},
		{Seat: 2, Amount: 2, Folded: true},
	})

	// the folded seat's level boundary must not split the pot
	a.Len(pots, 1)
	a.Equal(22, pots[0].Amount)
	a.Equal([]int{0, 1}, pots[0].Eligible)
	a.Equal(22, pots.Total())
}

func TestCollectBets_sidePot(t *testing.T) {
	a := assert.New(t)

	// A all-in for 50, B and C continue to 150
	pots := CollectBets([]Contribution{
		{Seat: 0, Amount: 50},
		{Seat: 1, Amount: 150},
		{Seat: 2, Amount: 150},
	})

	a.Len(pots, 2)
	a.Equal(150, pots[0].Amount)
	a.Equal([]int{0, 1, 2}, pots[0].Eligible)
	a.Equal(200, pots[1].Amount)
	a.Equal([]int{1, 2}, pots[1].Eligible)
}

func TestCollectBets_conservationAndNesting(t *testing.T) {
	a := assert.New(t)

	runTest := func(t *testing.T, contribs []Contribution) {
		t.Helper()

		total := 0
		for _, c := range contribs {
			total += c.Amount
		}

		pots := CollectBets(contribs)
		assert.Equal(t, total, pots.Total())

		for i := 1; i < len(pots); i++ {
			assert.Less(t, len(pots[i].Eligible), len(pots[i-1].Eligible))
			for _, seat := range pots[i].Eligible {
				assert.True(t, pots[i-1].IsEligible(seat))
			}
		}
	}

	runTest(t, []Contribution{
		{Seat: 0, Amount: 25},
		{Seat: 1, Amount: 100},
		{Seat: 2, Amount: 60, Folded: true},
		{Seat: 3, Amount: 100},
	})

	runTest(t, []Contribution{
		{Seat: 0, Amount: 5},
		{Seat: 1, Amount: 10},
		{Seat: 2, Amount: 20},
		{Seat: 3, Amount: 40},
		{Seat: 4, Amount: 40},
	})

	a.Len(CollectBets(nil), 0)
}

func TestCollectBets_foldedChipsStayIn(t *testing.T) {
	a := assert.New(t)

	pots := CollectBets([]Contribution{
		{Seat: 0, Amount: 100, Folded: true},
		{Seat: 1, Amount: 100},
		{Seat: 2, Amount: 100},
	})

	a.Len(pots, 1)
	a.Equal(300, pots[0].Amount)
	a.Equal([]int{1, 2}, pots[0].Eligible)
}

func TestCollectBets_overcontributionByFoldedSeat(t *testing.T) {
	a := assert.New(t)

	// seat 2 put in the most chips and then folded (timeout); nobody can win
	// the top slice so it merges into the pot below
	pots := CollectBets([]Contribution{
		{Seat: 0, Amount: 50},
		{Seat: 1, Amount: 50},
		{Seat: 2, Amount: 80, Folded: true},
	})

	a.Len(pots, 1)
	a.Equal(180, pots[0].Amount)
	a.Equal([]int{0, 1}, pots[0].Eligible)
}

func TestCallAmount(t *testing.T) {
	a := assert.New(t)
	a.Equal(8, CallAmount(10, 2))
	a.Equal(0, CallAmount(10, 10))
	a.Equal(0, CallAmount(0, 0))
	a.Equal(0, CallAmount(5, 10))
}

func rankOf(t *testing.T, cards string) poker.HandRank {
	t.Helper()
	return poker.Evaluate(deck.CardsFromString(cards))
}

func TestDistribute_singleWinner(t *testing.T) {
	a := assert.New(t)

	pots := Pots{{Amount: 300, Eligible: []int{0, 1}}}
	ranks := map[int]poker.HandRank{
		0: rankOf(t, "14c,14d,9h,5s,2c"), // pair of aces
		1: rankOf(t, "13c,13d,13h,5s,2c"),
	}

	payouts := Distribute(pots, ranks, []int{0, 1})
	a.Equal(map[int]int{1: 300}, payouts)
}

func TestDistribute_splitWithOddChip(t *testing.T) {
	a := assert.New(t)

	pots := Pots{{Amount: 101, Eligible: []int{0, 1, 3}}}
	sameRank := rankOf(t, "14c,13d,12h,11s,9c")
	ranks := map[int]poker.HandRank{
		0: sameRank,
		1: rankOf(t, "14h,13s,12c,11d,9h"),
		3: rankOf(t, "2c,3d,5h,9s,13c"),
	}

	// seat 1 acts first among the tied winners
	payouts := Distribute(pots, ranks, []int{3, 1, 0})
	a.Equal(map[int]int{0: 50, 1: 51}, payouts)

	// deterministic on repeat
	a.Equal(payouts, Distribute(pots, ranks, []int{3, 1, 0}))

	// flipping the acting order flips the odd chip
	payouts = Distribute(pots, ranks, []int{0, 1, 3})
	a.Equal(map[int]int{0: 51, 1: 50}, payouts)
}

func TestDistribute_singleSurvivorSkipsEvaluation(t *testing.T) {
	a := assert.New(t)

	// no ranks provided at all: the lone eligible seat still gets paid
	pots := Pots{
		{Amount: 120, Eligible: []int{2}},
	}

	payouts := Distribute(pots, map[int]poker.HandRank{}, []int{2})
	a.Equal(map[int]int{2: 120}, payouts)
}

func TestDistribute_sidePots(t *testing.T) {
	a := assert.New(t)

	// seat 0 is all-in short and holds the best hand; seat 1 beats seat 2
	pots := Pots{
		{Amount: 150, Eligible: []int{0, 1, 2}},
		{Amount: 200, Eligible: []int{1, 2}},
	}
	ranks := map[int]poker.HandRank{
		0: rankOf(t, "14c,14d,14h,5s,2c"),
		1: rankOf(t, "13c,13d,9h,5s,2d"),
		2: rankOf(t, "12c,12d,9s,5c,3c"),
	}

	payouts := Distribute(pots, ranks, []int{0, 1, 2})
	a.Equal(map[int]int{0: 150, 1: 200}, payouts)
}

func TestCollectBets_allContributorsFolded(t *testing.T) {
	a := assert.New(t)

	// both blinds folded before matching anyone; the survivor put in nothing
	contribs := []Contribution{
		{Seat: 0, Amount: 0},
		{Seat: 1, Amount: 1, Folded: true},
		{Seat: 2, Amount: 2, Folded: true},
	}

	pots := CollectBets(contribs)
	a.Len(pots, 1)
	a.Equal(3, pots[0].Amount)
	a.Equal([]int{0}, pots[0].Eligible)

	payouts := Distribute(pots, map[int]poker.HandRank{}, []int{1, 2, 0})
	a.Equal(map[int]int{0: 3}, payouts)
}
