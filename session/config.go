package session

import "time"

// Config holds session expiry settings.
type Config struct {
	// Timeout is the idle time after which a session bean is evicted.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	// SweepInterval is how often the background sweeper evicts expired entries.
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval" validate:"gte=0"`
}

// ApplyDefaults fills unset fields.
func (c *Config) ApplyDefaults() {
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.SweepInterval == 0 {
		c.SweepInterval = DefaultSweepInterval
	}
}
