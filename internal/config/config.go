// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds everything the process needs at startup. The JWT secret has
// no default: the token issuer refuses to run without one.
type Config struct {
	Addr      string        `env:"AGILEBOARD_ADDR" envDefault:":8080"`
	DBPath    string        `env:"AGILEBOARD_DB_PATH" envDefault:"data/agileboard.db"`
	StaticDir string        `env:"AGILEBOARD_STATIC_DIR" envDefault:"web/dist"`
	JWTSecret string        `env:"AGILEBOARD_JWT_SECRET"`
	TokenTTL  time.Duration `env:"AGILEBOARD_TOKEN_TTL" envDefault:"24h"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
