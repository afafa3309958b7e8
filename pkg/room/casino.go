package room

import (
	"context"
	"sync"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"

	"pokertable-server/internal/util"
	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/holdem"
	"pokertable-server/pkg/model"
)

// Store persists tables and their settled hands. A nil Store runs the casino
// purely in memory.
type Store interface {
	SaveTable(ctx context.Context, uuid, name string, options holdem.Options) error
	SaveStatus(ctx context.Context, uuid, status string) error
	SaveHand(ctx context.Context, uuid string, result *holdem.HandResult) (int64, error)
}

// Casino owns every live table and hands each one to its dealer
type Casino struct {
	logger logrus.FieldLogger
	ledger chips.Ledger
	clock  quartz.Clock
	store  Store

	dealers map[string]*Dealer
	lock    sync.RWMutex
}

// NewCasino returns a casino floor with no tables
func NewCasino(logger logrus.FieldLogger, ledger chips.Ledger, clock quartz.Clock, store Store) *Casino {
	return &Casino{
		logger:  logger,
		ledger:  ledger,
		clock:   clock,
		store:   store,
		dealers: make(map[string]*Dealer),
	}
}

// CreateTable opens a new table and starts its dealer's shift
func (c *Casino) CreateTable(name string, options holdem.Options) (*Dealer, error) {
	table, err := holdem.NewTable(c.logger, c.ledger, c.clock, options)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = util.GetRandomName()
	}

	if c.store != nil {
		if err := c.store.SaveTable(context.Background(), table.UUID, name, options); err != nil {
			return nil, err
		}
	}

	dealer := NewDealer(c, table, name)
	dealer.StartShift()

	c.lock.Lock()
	c.dealers[table.UUID] = dealer
	c.lock.Unlock()

	c.logger.WithFields(logrus.Fields{
		"uuid": table.UUID,
		"name": name,
	}).Info("table created")

	return dealer, nil
}

// Dealer returns the dealer running the table
func (c *Casino) Dealer(uuid string) (*Dealer, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	dealer, ok := c.dealers[uuid]
	return dealer, ok
}

// Ledger returns the chips ledger the casino was built with
func (c *Casino) Ledger() chips.Ledger {
	return c.ledger
}

// Dealers returns every live dealer
func (c *Casino) Dealers() []*Dealer {
	c.lock.RLock()
	defer c.lock.RUnlock()

	dealers := make([]*Dealer, 0, len(c.dealers))
	for _, dealer := range c.dealers {
		dealers = append(dealers, dealer)
	}

	return dealers
}

// CloseTable ends the dealer's shift and forgets the table
func (c *Casino) CloseTable(uuid string) {
	c.lock.Lock()
	dealer, ok := c.dealers[uuid]
	if ok {
		delete(c.dealers, uuid)
	}
	c.lock.Unlock()

	if ok {
		dealer.EndShift()
	}
}

// ModelStore persists through the model package
type ModelStore struct{}

var _ Store = ModelStore{}

// SaveTable persists a new table record
func (ModelStore) SaveTable(ctx context.Context, uuid, name string, options holdem.Options) error {
	_, err := model.CreateTable(ctx, uuid, name, options)
	return err
}

// SaveStatus records the table's lifecycle state
func (ModelStore) SaveStatus(ctx context.Context, uuid, status string) error {
	t := &model.Table{UUID: uuid}
	return t.SetStatus(ctx, status)
}

// SaveHand records a settled hand
func (ModelStore) SaveHand(ctx context.Context, uuid string, result *holdem.HandResult) (int64, error) {
	hand, err := model.LogHand(ctx, uuid, result)
	if err != nil {
		return 0, err
	}

	return hand.ID, nil
}
