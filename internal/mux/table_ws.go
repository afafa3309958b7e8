package mux

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"pokertable-server/pkg/room"
)

const (
	// writeWait is how long to wait before we time out writing a message
	writeWait = time.Second * 10

	// pongWait is how long we wait to receive a pong before we consider the connection dead
	pongWait = time.Second * 60

	// pingPeriod is how often we ping the client
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// getTableUUIDWS upgrades the connection and subscribes the caller to the
// table's broadcast stream
func (m *Mux) getTableUUIDWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dealer := dealerFromRequest(r)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logrus.WithError(err).Error("could not upgrade connection")
			return
		}

		client := room.NewClient(conn, claimsFromRequest(r).Subject, dealer.UUID())
		dealer.AddClient(client)

		go webSocketWriteLoop(client)
		go webSocketReadLoop(client, dealer)
	}
}

func webSocketWriteLoop(client *room.Client) {
	logger := logrus.WithField("client", client.String())

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = client.Conn.Close()
	}()

	for {
		select {
		case msg := <-client.SendChan():
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteJSON(msg); err != nil {
				logger.WithError(err).Debug("could not write message")
				return
			}
		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.WithError(err).Debug("could not write ping")
				return
			}
		case reason := <-client.Close:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason)
			if err := client.Conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
				logger.WithError(err).Debug("could not write close message")
			}

			return
		}
	}
}

func webSocketReadLoop(client *room.Client, dealer *room.Dealer) {
	logger := logrus.WithField("client", client.String())

	defer func() {
		if lastClient := dealer.RemoveClient(client); lastClient {
			logger.Debug("last client left the table")
		}

		_ = client.Conn.Close()
	}()

	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg room.PayloadIn
		if err := client.Conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.WithError(err).Debug("unexpected close")
			}

			return
		}

		client.ReceivedMessage(&msg)
	}
}
