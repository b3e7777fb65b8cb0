package config

import (
	"fmt"

	"github.com/fox-one/pkg/config"
	"github.com/robfig/cron/v3"
)

// Load load config file
func Load(cfgFile string, cfg *Config) error {
	config.AutomaticLoadEnv("LENDING")
	if err := config.LoadYaml(cfgFile, cfg); err != nil {
		return err
	}

	defaultConfig(cfg)
	return cfg.validate()
}

func (c *Config) validate() error {
	switch c.Transfer.Mode {
	case TransferModeSync, TransferModeOutbox:
	default:
		return fmt.Errorf("unknown transfer mode %q", c.Transfer.Mode)
	}

	if _, err := cron.ParseStandard(c.Monitor.Schedule); err != nil {
		return fmt.Errorf("monitor schedule %q: %w", c.Monitor.Schedule, err)
	}

	return nil
}
