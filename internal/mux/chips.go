package mux

import (
	"net/http"

	"pokertable-server/pkg/model"
)

type balanceResponse struct {
	Account string `json:"account"`
	Balance int    `json:"balance"`
}

// getChips returns the caller's chip balance
func (m *Mux) getChips() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account := claimsFromRequest(r).Subject
		balance, err := m.casino.Ledger().Balance(account)
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, balanceResponse{
			Account: account,
			Balance: balance,
		})
	}
}

// postChipsBuy converts base currency into chips for the caller
func (m *Mux) postChipsBuy() http.HandlerFunc {
	type payload struct {
		Amount int `json:"amount"`
	}

	type response struct {
		Chips   int `json:"chips"`
		Balance int `json:"balance"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req payload
		if !decodeRequest(w, r, &req) {
			return
		}

		if req.Amount <= 0 {
			writeTableError(w, model.UserError("amount must be positive"))
			return
		}

		account := claimsFromRequest(r).Subject
		bought, err := m.casino.Ledger().Buy(account, req.Amount)
		if err != nil {
			writeTableError(w, err)
			return
		}

		balance, err := m.casino.Ledger().Balance(account)
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, response{
			Chips:   bought,
			Balance: balance,
		})
	}
}
