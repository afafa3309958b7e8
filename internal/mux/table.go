package mux

import (
	"net/http"
	"regexp"

	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/model"
)

var validTableName = regexp.MustCompile(`^[\w '!?.-]{3,40}$`)

type tableSummary struct {
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// getTable lists the live tables
func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealers := m.casino.Dealers()
		summaries := make([]tableSummary, len(dealers))
		for i, dealer := range dealers {
			summaries[i] = tableSummary{
				UUID:  dealer.UUID(),
				Name:  dealer.Name(),
				State: dealer.Info().State,
			}
		}

		writeJSON(w, http.StatusOK, summaries)
	}
}

// postTable creates a new table. Admin only.
func (m *Mux) postTable() http.HandlerFunc {
	type payload struct {
		Name    string          `json:"name"`
		Options *holdem.Options `json:"options"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req payload
		if !decodeRequest(w, r, &req) {
			return
		}

		if req.Name != "" && !validTableName.MatchString(req.Name) {
			writeTableError(w, model.UserError("table name must be 3 to 40 characters"))
			return
		}

		options := holdem.DefaultOptions()
		if req.Options != nil {
			options = *req.Options
		}

		dealer, err := m.casino.CreateTable(req.Name, options)
		if err != nil {
			// option validation failures are on the caller
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusCreated, dealer.Info())
	}
}

func (m *Mux) getTableUUID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, dealerFromRequest(r).Info())
	}
}

// getTableUUIDHand returns the settled hand history for the table
func (m *Mux) getTableUUIDHand() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows := parsePaginationOptions(r)

		hands, err := model.GetHandsByTableUUID(r.Context(), dealerFromRequest(r).UUID(), start, rows)
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, hands)
	}
}

// postTableUUIDSeat buys the caller into a seat
func (m *Mux) postTableUUIDSeat() http.HandlerFunc {
	type payload struct {
		Seat  int `json:"seat"`
		BuyIn int `json:"buyIn"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req payload
		if !decodeRequest(w, r, &req) {
			return
		}

		playerID := claimsFromRequest(r).Subject
		err := dealerFromRequest(r).Do(func(t *holdem.Table) error {
			return t.JoinTable(req.Seat, playerID, req.BuyIn)
		})
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, statusOK)
	}
}

// postTableUUIDHand starts the next hand. Any seated player may deal.
func (m *Mux) postTableUUIDHand() http.HandlerFunc {
	type payload struct {
		Straddle bool `json:"straddle"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req payload
		if !decodeRequest(w, r, &req) {
			return
		}

		playerID := claimsFromRequest(r).Subject
		err := dealerFromRequest(r).Do(func(t *holdem.Table) error {
			if !tableHasPlayer(t, playerID) {
				return holdem.NewError(holdem.NotAuthorized, "you are not seated at this table")
			}

			return t.StartHand(req.Straddle)
		})
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, statusOK)
	}
}

// postTableUUIDAction submits a table action for the caller
func (m *Mux) postTableUUIDAction() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var action holdem.Action
		if !decodeRequest(w, r, &action) {
			return
		}

		if err := dealerFromRequest(r).Submit(claimsFromRequest(r).Subject, action); err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func (m *Mux) postTableUUIDSitOut() http.HandlerFunc {
	return m.seatStatusHandler(func(t *holdem.Table, seat int) error {
		return t.SitOut(seat)
	})
}

func (m *Mux) postTableUUIDSitIn() http.HandlerFunc {
	return m.seatStatusHandler(func(t *holdem.Table, seat int) error {
		return t.SitIn(seat)
	})
}

func (m *Mux) postTableUUIDLeave() http.HandlerFunc {
	return m.seatStatusHandler(func(t *holdem.Table, seat int) error {
		return t.LeaveAfterHand(seat)
	})
}

// seatStatusHandler wraps a seat-scoped operation with an ownership check
func (m *Mux) seatStatusHandler(fn func(t *holdem.Table, seat int) error) http.HandlerFunc {
	type payload struct {
		Seat int `json:"seat"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req payload
		if !decodeRequest(w, r, &req) {
			return
		}

		playerID := claimsFromRequest(r).Subject
		err := dealerFromRequest(r).Do(func(t *holdem.Table) error {
			seat, err := t.Seat(req.Seat)
			if err != nil {
				return err
			}

			if seat == nil || seat.PlayerID != playerID {
				return holdem.NewError(holdem.NotAuthorized, "seat %d does not belong to you", req.Seat)
			}

			return fn(t, req.Seat)
		})
		if err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func (m *Mux) postTableUUIDPause() http.HandlerFunc {
	return m.adminTableHandler(func(t *holdem.Table) error { return t.Pause() })
}

func (m *Mux) postTableUUIDResume() http.HandlerFunc {
	return m.adminTableHandler(func(t *holdem.Table) error { return t.Resume() })
}

func (m *Mux) postTableUUIDAbort() http.HandlerFunc {
	return m.adminTableHandler(func(t *holdem.Table) error { return t.Abort() })
}

func (m *Mux) adminTableHandler(fn func(t *holdem.Table) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := dealerFromRequest(r).Do(fn); err != nil {
			writeTableError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, statusOK)
	}
}

func tableHasPlayer(t *holdem.Table, playerID string) bool {
	for i := 0; i < holdem.NumSeats; i++ {
		seat, err := t.Seat(i)
		if err == nil && seat != nil && seat.PlayerID == playerID {
			return true
		}
	}

	return false
}
