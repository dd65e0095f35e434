// Package config reads duelcore settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds every setting the commands read.
type Config struct {
	// Me is the controlled agent; hints and parries are recorded for it.
	Me string `env:"DUELCORE_ME" envDefault:"me"`

	// StrategyDir holds the Lua strategy files. Empty means built-in defaults.
	StrategyDir string `env:"DUELCORE_STRATEGY_DIR"`
	Strategy    string `env:"DUELCORE_STRATEGY" envDefault:"aggro"`
	Separator   string `env:"DUELCORE_SEPARATOR"`

	MaxBranches int   `env:"DUELCORE_MAX_BRANCHES" envDefault:"16"`
	SearchNodes int   `env:"DUELCORE_SEARCH_NODES" envDefault:"4096"`
	Seed        int64 `env:"DUELCORE_SEED" envDefault:"1"`

	HistoryDB string `env:"DUELCORE_HISTORY_DB" envDefault:"duelcore.db"`

	LogLevel string `env:"DUELCORE_LOG_LEVEL" envDefault:"info"`
	LogJSON  bool   `env:"DUELCORE_LOG_JSON"`
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads the optional dotenv files, then the environment. Variables
// already set win over the files.
func Load(dotenv ...string) (Config, error) {
	if len(dotenv) == 0 {
		dotenv = []string{".env"}
	}
	for _, f := range dotenv {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.Me == "" {
		return errors.New("config: DUELCORE_ME must not be empty")
	}
	if c.MaxBranches < 1 {
		return fmt.Errorf("config: DUELCORE_MAX_BRANCHES must be at least 1, got %d", c.MaxBranches)
	}
	if c.SearchNodes < 1 {
		return fmt.Errorf("config: DUELCORE_SEARCH_NODES must be at least 1, got %d", c.SearchNodes)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.StrategyDir != "" {
		info, err := os.Stat(c.StrategyDir)
		if err != nil {
			return fmt.Errorf("config: strategy dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("config: strategy dir %s is not a directory", c.StrategyDir)
		}
	}
	return nil
}

// Logger builds the logger every component shares.
func (c Config) Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	if c.LogJSON {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log
}
