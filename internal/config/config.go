// Package config loads goldfish settings from an optional YAML file,
// GOLDFISH_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/magefree/mage-goldfish/internal/game/solitaire"
)

// EnvPrefix is prepended to every environment override, e.g.
// GOLDFISH_SERVER_ADDRESS.
const EnvPrefix = "GOLDFISH"

// Config is the complete runtime configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
	Decks   DecksConfig   `mapstructure:"decks"`
	Replay  ReplayConfig  `mapstructure:"replay"`
}

// ServerConfig configures the websocket listener.
type ServerConfig struct {
	Address         string   `mapstructure:"address"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	ShutdownTimeout int      `mapstructure:"shutdown_timeout_seconds"`
}

// LoggingConfig selects the zap level and encoder.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameConfig holds the table rules handed to every engine.
type GameConfig struct {
	StartingLife int   `mapstructure:"starting_life"`
	OpeningHand  int   `mapstructure:"opening_hand"`
	HistoryDepth int   `mapstructure:"history_depth"`
	LandsPerTurn int   `mapstructure:"lands_per_turn"`
	Seed         int64 `mapstructure:"seed"`
}

// DecksConfig points at the deck store.
type DecksConfig struct {
	Driver   string `mapstructure:"driver"`
	DSN      string `mapstructure:"dsn"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// ReplayConfig controls session journaling. An empty Dir disables it.
type ReplayConfig struct {
	Dir string `mapstructure:"dir"`
}

// Supported deck store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Settings converts the game section into engine settings.
func (g GameConfig) Settings() solitaire.Settings {
	return solitaire.Settings{
		StartingLife: g.StartingLife,
		OpeningHand:  g.OpeningHand,
		LandsPerTurn: g.LandsPerTurn,
		HistoryDepth: g.HistoryDepth,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.starting_life", 40)
	v.SetDefault("game.opening_hand", 7)
	v.SetDefault("game.history_depth", 20)
	v.SetDefault("game.lands_per_turn", 1)
	v.SetDefault("game.seed", 0)

	v.SetDefault("decks.driver", DriverSQLite)
	v.SetDefault("decks.dsn", "file:goldfish.db")
	v.SetDefault("decks.max_conns", 4)

	v.SetDefault("replay.dir", "")
}

// Load reads configuration from path (optional; "" skips the file), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects settings the engine or the deck store cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Game.StartingLife <= 0 {
		errs = append(errs, fmt.Errorf("game.starting_life must be positive, got %d", c.Game.StartingLife))
	}
	if c.Game.OpeningHand <= 0 {
		errs = append(errs, fmt.Errorf("game.opening_hand must be positive, got %d", c.Game.OpeningHand))
	}
	if c.Game.HistoryDepth <= 0 {
		errs = append(errs, fmt.Errorf("game.history_depth must be positive, got %d", c.Game.HistoryDepth))
	}
	if c.Game.LandsPerTurn < 0 {
		errs = append(errs, fmt.Errorf("game.lands_per_turn must not be negative, got %d", c.Game.LandsPerTurn))
	}
	switch c.Decks.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("decks.driver must be %q or %q, got %q", DriverSQLite, DriverPostgres, c.Decks.Driver))
	}
	if c.Decks.DSN == "" {
		errs = append(errs, errors.New("decks.dsn is required"))
	}
	return errors.Join(errs...)
}
