package mux

import (
	"context"
	"net/http"
	"strings"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"pokertable-server/internal/jwt"
	"pokertable-server/pkg/room"
)

type ctxKey int

const (
	ctxClaimsKey ctxKey = iota
	ctxDealerKey
)

const uuidPathVar = `{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}`

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	casino  *room.Casino
	version string

	authRouter  *gmux.Router
	adminRouter *gmux.Router
}

// NewMux returns a new HTTP router for the casino
func NewMux(casino *room.Casino, version string) *Mux {
	m := &Mux{
		Router:  gmux.NewRouter(),
		casino:  casino,
		version: version,
	}

	m.authRouter = m.NewRoute().Subrouter()
	m.authRouter.Use(m.authMiddleware)

	m.adminRouter = m.authRouter.NewRoute().Subrouter()
	m.adminRouter.Use(m.adminMiddleware)

	tableRouter := m.authRouter.PathPrefix("/table/" + uuidPathVar).Subrouter()
	tableRouter.Use(m.dealerMiddleware)

	adminTableRouter := m.adminRouter.PathPrefix("/table/" + uuidPathVar).Subrouter()
	adminTableRouter.Use(m.dealerMiddleware)

	m.Methods(http.MethodGet).Path("/health").HandlerFunc(m.getHealth())

	m.authRouter.Methods(http.MethodGet).Path("/table").HandlerFunc(m.getTable())
	m.adminRouter.Methods(http.MethodPost).Path("/table").HandlerFunc(m.postTable())

	tableRouter.Methods(http.MethodGet).Path("").HandlerFunc(m.getTableUUID())
	tableRouter.Methods(http.MethodGet).Path("/ws").HandlerFunc(m.getTableUUIDWS())
	tableRouter.Methods(http.MethodGet).Path("/hand").HandlerFunc(m.getTableUUIDHand())
	tableRouter.Methods(http.MethodPost).Path("/seat").HandlerFunc(m.postTableUUIDSeat())
	tableRouter.Methods(http.MethodPost).Path("/hand").HandlerFunc(m.postTableUUIDHand())
	tableRouter.Methods(http.MethodPost).Path("/action").HandlerFunc(m.postTableUUIDAction())
	tableRouter.Methods(http.MethodPost).Path("/sit-out").HandlerFunc(m.postTableUUIDSitOut())
	tableRouter.Methods(http.MethodPost).Path("/sit-in").HandlerFunc(m.postTableUUIDSitIn())
	tableRouter.Methods(http.MethodPost).Path("/leave").HandlerFunc(m.postTableUUIDLeave())

	adminTableRouter.Methods(http.MethodPost).Path("/pause").HandlerFunc(m.postTableUUIDPause())
	adminTableRouter.Methods(http.MethodPost).Path("/resume").HandlerFunc(m.postTableUUIDResume())
	adminTableRouter.Methods(http.MethodPost).Path("/abort").HandlerFunc(m.postTableUUIDAbort())

	m.authRouter.Methods(http.MethodGet).Path("/chips").HandlerFunc(m.getChips())
	m.authRouter.Methods(http.MethodPost).Path("/chips/buy").HandlerFunc(m.postChipsBuy())

	return m
}

// authMiddleware ensures the request carries a valid access token. The token
// may arrive as a bearer token or an access_token query parameter, which the
// websocket endpoint needs since browsers cannot set headers on upgrades.
func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		signedToken := r.URL.Query().Get("access_token")
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			signedToken = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if signedToken == "" {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		claims, err := jwt.Validate(signedToken)
		if err != nil {
			logrus.WithError(err).Debug("token validation failed")
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		ctx := context.WithValue(r.Context(), ctxClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Mux) adminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !claimsFromRequest(r).Admin {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// dealerMiddleware resolves the {uuid} path variable to a live dealer
func (m *Mux) dealerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]
		dealer, ok := m.casino.Dealer(strings.ToLower(uuid))
		if !ok {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		ctx := context.WithValue(r.Context(), ctxDealerKey, dealer)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFromRequest(r *http.Request) *jwt.Claims {
	return r.Context().Value(ctxClaimsKey).(*jwt.Claims)
}

func dealerFromRequest(r *http.Request) *room.Dealer {
	return r.Context().Value(ctxDealerKey).(*room.Dealer)
}
