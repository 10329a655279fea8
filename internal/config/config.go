package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/abhisek/mathcoach/internal/llm"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "MATHCOACH_"

// App holds runtime configuration shared by the TUI, CLI and HTTP server.
type App struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"LOG_FILE"` // Default: $XDG_STATE_HOME/mathcoach/mathcoach.log
	DB       string `env:"DB"`       // Default: $XDG_DATA_HOME/mathcoach/mathcoach.db
	HTTPAddr string `env:"HTTP_ADDR" envDefault:"127.0.0.1:8080"`

	// SessionTTL is how long an idle HTTP session is kept in memory.
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"30m"`
	AllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://127.0.0.1:5173"`

	LLM llm.Config `envPrefix:"LLM_"`
}

// Load reads an optional .env file followed by MATHCOACH_* environment
// variables. Missing .env files are not an error.
func Load(dotenv ...string) (*App, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, path := range dotenv {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	cfg := &App{LLM: llm.DefaultConfig()}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
