package admin

// Config holds the admin HTTP server configuration.
type Config struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host" mapstructure:"host" validate:"omitempty,hostname|ip"`
	Port    int    `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
	// ReadTimeout and WriteTimeout are in seconds.
	ReadTimeout  int `yaml:"read_timeout" mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout int `yaml:"write_timeout" mapstructure:"write_timeout" validate:"gte=0"`
}

// ApplyDefaults sets default values for unset fields.
func (c *Config) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 8089
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 10
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10
	}
}
