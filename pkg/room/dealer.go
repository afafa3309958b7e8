package room

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"pokertable-server/pkg/holdem"
)

// Dealer owns one table's state machine. Every read and write runs on the
// dealer's run loop, so actions apply strictly one at a time no matter how
// many connections submit them.
type Dealer struct {
	casino *Casino
	table  *holdem.Table
	name   string

	clients map[*Client]bool
	lock    sync.RWMutex

	exec  chan func()
	close chan bool

	lastLogged *holdem.HandResult
	lastStatus string
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(casino *Casino, table *holdem.Table, name string) *Dealer {
	return &Dealer{
		casino:  casino,
		table:   table,
		name:    name,
		clients: make(map[*Client]bool),
		exec:    make(chan func(), 256),
		close:   make(chan bool),
	}
}

// UUID returns the table's UUID
func (d *Dealer) UUID() string {
	return d.table.UUID
}

// Name returns the table's display name
func (d *Dealer) Name() string {
	return d.name
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

func (d *Dealer) runLoop() {
	log := d.logger()

	log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.exec:
			fn()
		case <-d.close:
			log.Debug("terminating dealer run loop")
			return
		}
	}
}

func (d *Dealer) logger() logrus.FieldLogger {
	return logrus.WithFields(logrus.Fields{
		"uuid": d.table.UUID,
		"name": d.name,
	})
}

// Do applies a mutation to the table on the run loop. On success the new
// table state is broadcast to every connected client and, once a hand
// settles, its result is persisted.
func (d *Dealer) Do(fn func(t *holdem.Table) error) error {
	errCh := make(chan error, 1)
	d.exec <- func() {
		err := fn(d.table)
		if err == nil {
			d.afterAction()
		}

		errCh <- err
	}

	return <-errCh
}

// View runs a read against the table on the run loop
func (d *Dealer) View(fn func(t *holdem.Table)) {
	done := make(chan bool, 1)
	d.exec <- func() {
		fn(d.table)
		done <- true
	}

	<-done
}

// Info returns a snapshot of the table
func (d *Dealer) Info() holdem.TableInfo {
	var info holdem.TableInfo
	d.View(func(t *holdem.Table) {
		info = t.Info()
	})

	return info
}

// afterAction runs on the run loop after every successful mutation
func (d *Dealer) afterAction() {
	info := d.table.Info()

	if result := d.table.LastResult(); result != nil && result != d.lastLogged {
		d.lastLogged = result
		if store := d.casino.store; store != nil {
			if _, err := store.SaveHand(context.Background(), d.table.UUID, result); err != nil {
				d.logger().WithError(err).Error("could not log hand")
			}
		}
	}

	if info.State != d.lastStatus {
		d.lastStatus = info.State
		if store := d.casino.store; store != nil {
			if err := store.SaveStatus(context.Background(), d.table.UUID, info.State); err != nil {
				d.logger().WithError(err).Error("could not save table status")
			}
		}
	}

	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:   "table",
			Value: info,
		})
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.exec <- func() {
		client.Send(&Response{
			Key:   "table",
			Value: d.table.Info(),
		})
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	return nClients == 0
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "info":
		c.Send(&Response{
			Key:     "table",
			Value:   d.Info(),
			Context: msg.Context,
		})
	case "tableAction":
		var action holdem.Action
		if err := json.Unmarshal(msg.Data, &action); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		if err := d.Submit(c.PlayerID(), action); err != nil {
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		c.Send(&Response{
			Key:     "actionAccepted",
			Context: msg.Context,
		})
	default:
		d.logger().WithField("action", msg.Action).Warn("unknown client action")
	}
}

// Submit applies an action on behalf of a player. Besides timeout claims,
// which anyone may submit, the acting seat must belong to the player.
func (d *Dealer) Submit(playerID string, action holdem.Action) error {
	return d.Do(func(t *holdem.Table) error {
		if action.Type != holdem.ActionClaimTimeout {
			seat, err := t.Seat(action.Seat)
			if err != nil {
				return err
			}

			if seat.PlayerID != playerID {
				return holdem.NewError(holdem.NotAuthorized, "seat %d does not belong to you", action.Seat)
			}
		}

		return t.Apply(action)
	})
}
