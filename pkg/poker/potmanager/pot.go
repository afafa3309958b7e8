package potmanager

import "encoding/json"

// Pot is a single pot. The first pot in a hand is the main pot; any
// later pots are side pots created by short all-ins.
type Pot struct {
	Amount int
	// Eligible are the seats that can win this pot, in ascending seat order.
	// A folded seat's chips stay in the pot but the seat is never eligible.
	Eligible []int
}

// IsEligible returns true if the seat can win this pot
func (p *Pot) IsEligible(seat int) bool {
	for _, s := range p.Eligible {
		if s == seat {
			return true
		}
	}

	return false
}

// MarshalJSON encodes JSON
func (p Pot) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Amount   int   `json:"amount"`
		Eligible []int `json:"eligible"`
	}{
		Amount:   p.Amount,
		Eligible: p.Eligible,
	})
}

// Pots is an ordered collection of pots
type Pots []*Pot

// Total returns the combined total of all pots
func (p Pots) Total() int {
	total := 0
	for _, pot := range p {
		total += pot.Amount
	}

	return total
}
