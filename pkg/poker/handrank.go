package poker

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// HandRank is a totally ordered rank of a five-card hand.
// Kickers hold the tie-breaking ranks for the category, most significant first.
type HandRank struct {
	Category Category
	Kickers  []int
}

// Strength collapses the category and kickers into a single comparable value.
// Higher is better. Two hands tie if and only if their strengths are equal.
func (h HandRank) Strength() int {
	strength := int(math.Pow(15, 5)) * int(h.Category)

	fiveKickers := make([]int, 5)
	copy(fiveKickers, h.Kickers)

	for i := 0; i < 5; i++ {
		strength += int(math.Pow(15, float64(4-i))) * fiveKickers[i]
	}

	return strength
}

// Compare returns 1 if h beats o, -1 if o beats h, and 0 on a tie
func Compare(h, o HandRank) int {
	hs, os := h.Strength(), o.Strength()
	switch {
	case hs > os:
		return 1
	case hs < os:
		return -1
	}

	return 0
}

func (h HandRank) String() string {
	kickers := make([]string, len(h.Kickers))
	for i, k := range h.Kickers {
		kickers[i] = fmt.Sprintf("%d", k)
	}

	return fmt.Sprintf("%s [%s]", h.Category, strings.Join(kickers, " "))
}

// MarshalJSON encodes JSON
func (h HandRank) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Category string `json:"category"`
		Kickers  []int  `json:"kickers"`
		Strength int    `json:"strength"`
	}{
		Category: h.Category.String(),
		Kickers:  h.Kickers,
		Strength: h.Strength(),
	})
}
