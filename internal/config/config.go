// Package config provides configuration for the poker table server
package config

import (
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"pokertable-server/internal/util"
)

// Config provides configuration for the poker table server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	Ledger struct {
		// ExchangeRate is how many chips one unit of base currency buys
		ExchangeRate int `yaml:"exchangeRate" envconfig:"exchange_rate"`
	}
	Table struct {
		CommitWindow time.Duration `yaml:"commitWindow" envconfig:"commit_window"`
		RevealWindow time.Duration `yaml:"revealWindow" envconfig:"reveal_window"`
		ActionWindow time.Duration `yaml:"actionWindow" envconfig:"action_window"`
	}
}

var config Config

// DefaultConfig returns the configuration defaults
func DefaultConfig() Config {
	var c Config
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.JWT.PublicKey = "public.pem"
	c.JWT.PrivateKey = "private.key"
	c.Ledger.ExchangeRate = 100
	c.Table.CommitWindow = time.Second * 30
	c.Table.RevealWindow = time.Second * 30
	c.Table.ActionWindow = time.Second * 30
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration.
// A missing config file is not an error; the defaults and the environment
// still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("POKERTABLE_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("pokertable", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
