package config

import (
	"github.com/kbukum/beankit/admin"
	"github.com/kbukum/beankit/observability"
	"github.com/kbukum/beankit/session"
)

// Config is the configuration of a beankit application.
//
//	name: orders
//	environment: production
//	locale: de
//	logging: {level: info, format: json}
//	session: {timeout: 30m, sweep_interval: 1m}
//	telemetry: {enabled: true, endpoint: "otel-collector:4318"}
//	admin: {enabled: true, port: 8089}
type Config struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`

	// Locale selects the language of user-facing error messages.
	Locale    string               `yaml:"locale" mapstructure:"locale" validate:"bcp47_language_tag"`
	Session   session.Config       `yaml:"session" mapstructure:"session"`
	Telemetry observability.Config `yaml:"telemetry" mapstructure:"telemetry"`
	Admin     admin.Config         `yaml:"admin" mapstructure:"admin"`
}

// ApplyDefaults fills every unset field with its default.
func (c *Config) ApplyDefaults() {
	if c.Name == "" {
		c.Name = "beankit"
	}
	c.ServiceConfig.ApplyDefaults()
	if c.Locale == "" {
		c.Locale = "en"
	}
	c.Session.ApplyDefaults()
	c.Telemetry.ApplyDefaults()
	c.Admin.ApplyDefaults()
}

// Validate checks struct tags across all sections, then the rules each
// section enforces itself.
func (c *Config) Validate() error {
	if err := ValidateStruct(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	return c.Telemetry.Validate()
}

// Load reads the configuration for serviceName, applies defaults and
// validates the result.
func Load(serviceName string, opts ...LoaderOption) (*Config, error) {
	cfg := &Config{}
	if err := LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
