package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pokertable-server/internal/util"
)

func TestInstance(t *testing.T) {
	clear1 := util.SetEnv("POKERTABLE_CONFIG_FILE", "testdata/config.yaml")
	defer clear1()
	clear2 := util.SetEnv("POKERTABLE_JWT_PRIVATE_KEY", "private2.key")
	defer clear2()

	config = Config{}

	a := assert.New(t)
	cfg := Instance()
	a.Equal("postgres://poker@db.internal:5432/poker?sslmode=disable", cfg.PGDSN)
	a.Equal("public.pem", cfg.JWT.PublicKey)
	a.Equal("private2.key", cfg.JWT.PrivateKey)
	a.Equal(50, cfg.Ledger.ExchangeRate)
	a.Equal(time.Second*45, cfg.Table.CommitWindow)

	// the reveal window fell through to the default
	a.Equal(time.Second*30, cfg.Table.RevealWindow)

	// ensure that it's only loaded once
	_ = os.Setenv("POKERTABLE_JWT_PRIVATE_KEY", "private3.key")
	// ensure we aren't using a pointer
	cfg.JWT.PrivateKey = "bad"
	cfg = Instance()
	a.Equal("private2.key", cfg.JWT.PrivateKey)
}

func TestLoad_missingFile(t *testing.T) {
	clear1 := util.SetEnv("POKERTABLE_CONFIG_FILE", "testdata/does-not-exist.yaml")
	defer clear1()

	config = Config{}

	a := assert.New(t)
	a.NoError(Load())
	a.Equal(DefaultConfig().PGDSN, Instance().PGDSN)
	a.Equal(100, Instance().Ledger.ExchangeRate)
}
