package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	var cfg Config
	defaultConfig(&cfg)

	assert.Equal(t, TransferModeSync, cfg.Transfer.Mode)
	assert.Equal(t, time.Minute, cfg.LedgerConfig().MaxPriceAge)
	assert.Equal(t, 10*time.Second, cfg.OracleConfig().CacheTTL)
	assert.Equal(t, 64, cfg.OracleConfig().CacheSize)
	assert.Equal(t, "@every 1m", cfg.MonitorSchedule())
	assert.Equal(t, time.Duration(0), cfg.CashierDelay())
}

func TestDurations(t *testing.T) {
	cfg := Config{
		Oracle:  Oracle{MaxPriceAge: "90s", CacheTTL: "2s"},
		Cashier: Cashier{Delay: "500ms"},
	}
	defaultConfig(&cfg)

	assert.Equal(t, 90*time.Second, cfg.LedgerConfig().MaxPriceAge)
	assert.Equal(t, 2*time.Second, cfg.OracleConfig().CacheTTL)
	assert.Equal(t, 500*time.Millisecond, cfg.CashierDelay())
}

func TestValidate(t *testing.T) {
	var cfg Config
	defaultConfig(&cfg)
	assert.NoError(t, cfg.validate())

	cfg.Monitor.Schedule = "*/5 * * * *"
	assert.NoError(t, cfg.validate())

	cfg.Monitor.Schedule = "every minute"
	assert.Error(t, cfg.validate())

	cfg.Monitor.Schedule = "@every 1m"
	cfg.Transfer.Mode = "async"
	assert.Error(t, cfg.validate())
}
