package config

import "time"

// Config holds runtime settings for the healthcomp CLI.
type Config struct {
	BackendURL     string        `env:"BACKEND_URL"`
	FrontendURL    string        `env:"FRONTEND_URL"`
	DatabasePath   string        `env:"DATABASE_PATH"`
	LogLevel       string        `env:"LOG_LEVEL"`
	OTelEndpoint   string        `env:"OTEL_ENDPOINT"`
	SingleFlight   bool          `env:"SINGLE_FLIGHT"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:8000"
	c.FrontendURL = "http://localhost:3000"
	c.DatabasePath = "healthcomp.db"
	c.LogLevel = "info"
	c.OTelEndpoint = ""
	c.SingleFlight = false
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config from args (os.Args[1:] in production):
// defaults, then JSON, then environment, then flags. Later sources take
// precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
