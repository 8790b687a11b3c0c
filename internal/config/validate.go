package config

import (
	"errors"
	"fmt"

	"github.com/hammamikhairi/cookbook/internal/logger"
)

// minTickIntervalMS keeps the session clock from spinning the terminal.
const minTickIntervalMS = 10

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if _, ok := logger.ParseLevel(c.Logging.Level); !ok {
		return fmt.Errorf("logging.level %q must be one of off, normal, verbose", c.Logging.Level)
	}
	if c.Notifications.RequestTimeout < 0 {
		return errors.New("notifications.request_timeout must be non-negative")
	}
	if c.Session.TickIntervalMS < minTickIntervalMS {
		return fmt.Errorf("session.tick_interval_ms must be at least %d", minTickIntervalMS)
	}
	return nil
}
