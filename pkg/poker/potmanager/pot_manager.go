// Package potmanager partitions a hand's contributions into a main pot and
// side pots, and distributes each pot to its winners.
package potmanager

import (
	"sort"

	"pokertable-server/pkg/poker"
)

// Contribution is one seat's total chips put into the hand
type Contribution struct {
	Seat   int
	Amount int
	Folded bool
}

// CollectBets partitions the contributions into pots.
//
// Distinct nonzero contribution amounts are visited in ascending order; each
// boundary closes a pot whose amount is the slice of every contribution
// between the previous level and this one. Seats that contributed at least
// the level and have not folded are eligible. This yields the correct
// main-pot/side-pot split for any combination of all-ins.
func CollectBets(contribs []Contribution) Pots {
	levelSet := make(map[int]bool)
	for _, c := range contribs {
		if c.Amount > 0 {
			levelSet[c.Amount] = true
		}
	}

	levels := make([]int, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Ints(levels)

	pots := make(Pots, 0, len(levels))

	prevLevel := 0
	carry := 0
	for _, level := range levels {
		amount := 0
		eligible := make([]int, 0, len(contribs))

		for _, c := range contribs {
			span := c.Amount
			if span > level {
				span = level
			}
			span -= prevLevel

			if span > 0 {
				amount += span
			}

			if c.Amount >= level && !c.Folded {
				eligible = append(eligible, c.Seat)
			}
		}

		// a level everyone below has already covered adds no chips; fold the
		// eligibility change into the next slice instead of an empty pot
		if amount == 0 {
			prevLevel = level
			continue
		}

		// chips nobody at this level can win belong with the previous pot,
		// or are carried forward until a pot with a winner exists
		if len(eligible) == 0 {
			if len(pots) > 0 {
				pots[len(pots)-1].Amount += amount
			} else {
				carry += amount
			}

			prevLevel = level
			continue
		}

		sort.Ints(eligible)
		amount += carry
		carry = 0

		// a folded seat's level boundary does not shrink eligibility; a side
		// pot only exists when its eligible set is strictly smaller
		if n := len(pots); n > 0 && equalSeats(pots[n-1].Eligible, eligible) {
			pots[n-1].Amount += amount
			prevLevel = level
			continue
		}

		pots = append(pots, &Pot{
			Amount:   amount,
			Eligible: eligible,
		})

		prevLevel = level
	}

	// every contributor folded; the chips go to whoever is still in the hand
	if carry > 0 {
		eligible := make([]int, 0, len(contribs))
		for _, c := range contribs {
			if !c.Folded {
				eligible = append(eligible, c.Seat)
			}
		}
		sort.Ints(eligible)

		pots = append(pots, &Pot{
			Amount:   carry,
			Eligible: eligible,
		})
	}

	return pots
}

// CallAmount returns how many chips the seat still owes to match the street bet
func CallAmount(betToMatch, seatBet int) int {
	if seatBet >= betToMatch {
		return 0
	}

	return betToMatch - seatBet
}

// Distribute awards every pot to its winners and returns the payout per seat.
//
// For each pot, the seats holding the best rank among the pot's eligible
// seats split the amount evenly. An indivisible remainder goes to the first
// tied winner in actingOrder (button-relative acting order), so repeated runs
// over identical inputs always pick the same seat. A pot with a single
// eligible seat is awarded whole without consulting the ranks.
func Distribute(pots Pots, ranks map[int]poker.HandRank, actingOrder []int) map[int]int {
	payouts := make(map[int]int)

	for _, pot := range pots {
		winners := potWinners(pot, ranks)
		if len(winners) == 0 {
			continue
		}

		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)

		for _, seat := range winners {
			payouts[seat] += share
		}

		if remainder > 0 {
			payouts[firstInActingOrder(winners, actingOrder)] += remainder
		}
	}

	return payouts
}

func potWinners(pot *Pot, ranks map[int]poker.HandRank) []int {
	if len(pot.Eligible) == 1 {
		return pot.Eligible
	}

	winners := make([]int, 0, len(pot.Eligible))
	var best poker.HandRank

	for _, seat := range pot.Eligible {
		rank, ok := ranks[seat]
		if !ok {
			continue
		}

		switch {
		case len(winners) == 0:
			winners = append(winners, seat)
			best = rank
		default:
			switch poker.Compare(rank, best) {
			case 1:
				winners = winners[:0]
				winners = append(winners, seat)
				best = rank
			case 0:
				winners = append(winners, seat)
			}
		}
	}

	if len(winners) == 0 {
		// no eligible seat revealed a hand; fall back to splitting among all
		// eligible seats so no chips are lost
		return pot.Eligible
	}

	return winners
}

func equalSeats(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

func firstInActingOrder(winners []int, actingOrder []int) int {
	for _, seat := range actingOrder {
		for _, winner := range winners {
			if winner == seat {
				return seat
			}
		}
	}

	// actingOrder did not cover the winners; fall back to lowest seat
	first := winners[0]
	for _, winner := range winners[1:] {
		if winner < first {
			first = winner
		}
	}

	return first
}
