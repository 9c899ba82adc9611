// Package config loads game settings: code defaults, an optional TOML file,
// then environment overrides. A .env file backs the process environment.
// Command-line flags are applied by each command on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/Garsondee/maze-man/internal/game"
)

// DotEnvFile supplies environment values the process leaves unset.
const DotEnvFile = ".env"

// Environment variables read by ApplyEnv.
const (
	EnvDBType       = "MAZEMAN_DB_TYPE"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvDBFile       = "MAZEMAN_DB_FILE"
	EnvSpectateAddr = "MAZEMAN_SPECTATE_ADDR"
	EnvLogLevel     = "MAZEMAN_LOG_LEVEL"
)

// Display holds window settings for the graphical front-end.
type Display struct {
	Scale  float64 `toml:"scale"`
	Title  string  `toml:"title"`
	Sound  bool    `toml:"sound"`
	Volume float64 `toml:"volume"`
}

// Persistence selects the high score store.
type Persistence struct {
	Type        string `toml:"type"` // "json" or "postgres"
	File        string `toml:"file"`
	DatabaseURL string `toml:"database_url"`
}

// Spectate configures the live stats feed. An empty address disables it.
type Spectate struct {
	Addr string `toml:"addr"`
}

// Config is the full settings tree.
type Config struct {
	LogLevel    string      `toml:"log_level"`
	Seed        int64       `toml:"seed"` // 0 picks a time-based seed
	Tuning      game.Tuning `toml:"tuning"`
	Display     Display     `toml:"display"`
	Persistence Persistence `toml:"persistence"`
	Spectate    Spectate    `toml:"spectate"`
}

// Default returns the stock settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Tuning:   game.DefaultTuning(),
		Display: Display{
			Scale:  1,
			Title:  "Maze-Man",
			Sound:  true,
			Volume: -1,
		},
		Persistence: Persistence{
			Type: "json",
			File: "mazeman.json",
		},
	}
}

// Load reads path over the defaults and then applies the environment. A
// missing file is not an error; an empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return cfg, fmt.Errorf("config: decode %s: %w", path, err)
			}
		}
	}
	dot, err := readDotEnv(DotEnvFile)
	if err != nil {
		return cfg, err
	}
	cfg.applyEnv(func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dot[key]
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// readDotEnv parses path; a missing file yields no values.
func readDotEnv(path string) (map[string]string, error) {
	vals, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return vals, nil
}

// ApplyEnv overrides settings from the process environment.
func (c *Config) ApplyEnv() { c.applyEnv(os.Getenv) }

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv(EnvDBType); v != "" {
		c.Persistence.Type = strings.ToLower(v)
	}
	if v := getenv(EnvDatabaseURL); v != "" {
		c.Persistence.DatabaseURL = v
	}
	if v := getenv(EnvDBFile); v != "" {
		c.Persistence.File = v
	}
	if v := getenv(EnvSpectateAddr); v != "" {
		c.Spectate.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate rejects settings the game cannot run with.
func (c Config) Validate() error {
	t := c.Tuning
	switch {
	case t.TicksPerSecond <= 0:
		return fmt.Errorf("config: ticks_per_second must be positive, got %d", t.TicksPerSecond)
	case t.MaxEnergy <= 0:
		return fmt.Errorf("config: max_energy must be positive, got %d", t.MaxEnergy)
	case t.GlideStep <= 0:
		return fmt.Errorf("config: glide_step must be positive, got %g", t.GlideStep)
	case t.NumWater < 0 || t.NumCobblestone < 0:
		return fmt.Errorf("config: negative water or cobblestone count")
	}
	switch c.Persistence.Type {
	case "json", "postgres", "none":
	default:
		return fmt.Errorf("config: unknown persistence type %q", c.Persistence.Type)
	}
	return nil
}
