package mux

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/model"
)

const maxRows = 100

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

type okResponse struct {
	Status string `json:"status"`
}

var statusOK = okResponse{Status: "OK"}

func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logrus.WithError(err).Error("could not encode JSON response")
	}
}

// writeJSONError writes an error payload. A nil error falls back to the
// standard text for the status code.
func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	msg := http.StatusText(statusCode)
	if err != nil {
		msg = err.Error()
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}

// writeTableError maps the table error taxonomy onto HTTP status codes.
// Anything unkinded is treated as an internal error.
func writeTableError(w http.ResponseWriter, err error) {
	var userErr model.UserError
	if errors.As(err, &userErr) {
		writeJSONError(w, http.StatusBadRequest, err)
		return
	}

	switch {
	case errors.Is(err, chips.ErrInvalidAmount):
		writeJSONError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, chips.ErrInsufficientFunds):
		writeJSONError(w, http.StatusPaymentRequired, err)
		return
	case errors.Is(err, chips.ErrUnknownAccount):
		writeJSONError(w, http.StatusNotFound, err)
		return
	}

	var tableErr *holdem.Error
	if !errors.As(err, &tableErr) {
		logrus.WithError(err).Error("unexpected table error")
		writeJSONError(w, http.StatusInternalServerError, nil)
		return
	}

	var statusCode int
	switch tableErr.Kind {
	case holdem.InvalidAmount:
		statusCode = http.StatusBadRequest
	case holdem.InsufficientFunds:
		statusCode = http.StatusPaymentRequired
	case holdem.NotAuthorized:
		statusCode = http.StatusForbidden
	case holdem.NotFound:
		statusCode = http.StatusNotFound
	case holdem.DeadlineNotReached:
		statusCode = http.StatusTooEarly
	case holdem.DeadlinePassed:
		statusCode = http.StatusGone
	default:
		statusCode = http.StatusConflict
	}

	writeJSONError(w, statusCode, err)
}

// decodeRequest decodes a JSON request body into target
func decodeRequest(w http.ResponseWriter, r *http.Request, target interface{}) bool {
	if contentType := r.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		writeJSONError(w, http.StatusBadRequest, errors.New("could not decode request body"))
		return false
	}

	return true
}

// parsePaginationOptions returns the start and rows query parameters, clamped
// to sane values
func parsePaginationOptions(r *http.Request) (start int64, rows int) {
	start, _ = strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	if start < 0 {
		start = 0
	}

	rows, _ = strconv.Atoi(r.URL.Query().Get("rows"))
	if rows <= 0 {
		rows = maxRows
	} else if rows > maxRows {
		rows = maxRows
	}

	return
}
