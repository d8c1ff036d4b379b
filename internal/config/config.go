// Package config loads the bot configuration from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"slices"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNoToken is returned by RequireToken when DISCORD_TOKEN is unset.
var ErrNoToken = errors.New("DISCORD_TOKEN is not set")

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"datastore.json"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`

	AdminIDs []string `env:"BOT_ADMIN_IDS" envSeparator:","`

	DigestAddedReaction string `env:"DIGEST_ADDED_REACTION"`
	DigestSendEnabled   bool   `env:"DIGEST_SEND_ENABLED" envDefault:"true"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`

	RateLimit float64 `env:"COMMAND_RATE_LIMIT" envDefault:"1"`
	RateBurst int     `env:"COMMAND_RATE_BURST" envDefault:"3"`
}

// Load reads files (default ".env") into the process environment, then parses
// the environment into a Config. Missing files are ignored.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// RequireToken returns ErrNoToken when the Discord token is missing.
func (c *Config) RequireToken() error {
	if c.DiscordToken == "" {
		return ErrNoToken
	}
	return nil
}

// IsAdmin reports whether userID is a bot administrator.
func (c *Config) IsAdmin(userID string) bool {
	return slices.Contains(c.AdminIDs, userID)
}
