package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Server selects the rendering endpoint.
type Server struct {
	URL    string `toml:"url"`
	Format string `toml:"format"`
}

// Transport controls the retry and timeout behavior of render requests.
type Transport struct {
	TimeoutSeconds     int  `toml:"timeout_seconds"`
	MaxRetries         int  `toml:"max_retries"`
	RetryInvalidSyntax bool `toml:"retry_invalid_syntax"`
}

// Logging controls diagnostic output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for pumlrender.
type Config struct {
	Server    Server    `toml:"server"`
	Transport Transport `toml:"transport"`
	Logging   Logging   `toml:"logging"`
}

// Load parses and validates the configuration file at path. An empty path
// returns the repository defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	path = strings.TrimSpace(path)
	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Server.URL = strings.TrimRight(strings.TrimSpace(c.Server.URL), "/")
	c.Server.Format = strings.ToLower(strings.TrimSpace(c.Server.Format))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}
