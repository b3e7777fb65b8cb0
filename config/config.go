package config

import (
	"time"

	"lending/core"
	"lending/service/ledger"
	"lending/service/oracle"
	"lending/service/transfer"
	"lending/worker/cashier"
	"lending/worker/monitor"

	"github.com/fox-one/pkg/store/db"
	"github.com/spf13/cast"
)

const (
	// TransferModeSync transfers are delivered inside the operation
	TransferModeSync = "sync"
	// TransferModeOutbox pool payouts are stored with the operation and delivered by the cashier,
	// signer debits are still delivered inside the operation
	TransferModeOutbox = "outbox"
)

// Config lending node config
type Config struct {
	DB       db.Config         `json:"db"`
	Oracle   Oracle            `json:"oracle"`
	Transfer Transfer          `json:"transfer"`
	Banks    []core.BankParams `json:"banks"`
	Cashier  Cashier           `json:"cashier"`
	Monitor  Monitor           `json:"monitor"`
}

// Oracle price feed config, durations like "1m" or "30s"
type Oracle struct {
	Endpoint    string `json:"endpoint"`
	MaxPriceAge string `json:"max_price_age"`
	CacheSize   int    `json:"cache_size"`
	CacheTTL    string `json:"cache_ttl"`
}

// Transfer token transfer service config
type Transfer struct {
	Endpoint string `json:"endpoint"`
	Mode     string `json:"mode"`
}

// Cashier outbox delivery config
type Cashier struct {
	Batch    int    `json:"batch"`
	Capacity int64  `json:"capacity"`
	Delay    string `json:"delay"`
}

// Monitor health monitor config
type Monitor struct {
	Batch int `json:"batch"`
	// Schedule cron spec of the scan, like "@every 1m" or "*/5 * * * *"
	Schedule string `json:"schedule"`
}

func defaultConfig(cfg *Config) {
	if cfg.Oracle.MaxPriceAge == "" {
		cfg.Oracle.MaxPriceAge = "1m"
	}

	if cfg.Oracle.CacheSize == 0 {
		cfg.Oracle.CacheSize = 64
	}

	if cfg.Oracle.CacheTTL == "" {
		cfg.Oracle.CacheTTL = "10s"
	}

	if cfg.Transfer.Mode == "" {
		cfg.Transfer.Mode = TransferModeSync
	}

	if cfg.Monitor.Schedule == "" {
		cfg.Monitor.Schedule = "@every 1m"
	}
}

// LedgerConfig ledger service settings
func (c *Config) LedgerConfig() ledger.Config {
	return ledger.Config{
		MaxPriceAge: cast.ToDuration(c.Oracle.MaxPriceAge),
	}
}

// OracleConfig price feed client settings
func (c *Config) OracleConfig() oracle.Config {
	return oracle.Config{
		Endpoint:  c.Oracle.Endpoint,
		CacheSize: c.Oracle.CacheSize,
		CacheTTL:  cast.ToDuration(c.Oracle.CacheTTL),
	}
}

// TransferConfig transfer client settings
func (c *Config) TransferConfig() transfer.Config {
	return transfer.Config{Endpoint: c.Transfer.Endpoint}
}

// CashierConfig cashier worker settings
func (c *Config) CashierConfig() cashier.Config {
	return cashier.Config{
		Batch:    c.Cashier.Batch,
		Capacity: c.Cashier.Capacity,
	}
}

// CashierDelay pause between two cashier ticks
func (c *Config) CashierDelay() time.Duration {
	return cast.ToDuration(c.Cashier.Delay)
}

// MonitorConfig monitor worker settings
func (c *Config) MonitorConfig() monitor.Config {
	return monitor.Config{Batch: c.Monitor.Batch}
}

// MonitorSchedule cron spec the monitor scans on
func (c *Config) MonitorSchedule() string {
	return c.Monitor.Schedule
}
