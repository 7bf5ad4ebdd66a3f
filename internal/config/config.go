// Package config loads server configuration from a YAML file with
// EMBER_-prefixed environment overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Content  ContentConfig  `mapstructure:"content"`
	Game     GameConfig     `mapstructure:"game"`
}

type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig configures the optional match store. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ContentConfig struct {
	Path string `mapstructure:"path"`
}

// GameConfig describes the duel the server and simulator run.
type GameConfig struct {
	Seed     int64          `mapstructure:"seed"`
	MaxTurns int            `mapstructure:"max_turns"`
	Players  []PlayerConfig `mapstructure:"players"`
}

type PlayerConfig struct {
	Name string   `mapstructure:"name"`
	Hero string   `mapstructure:"hero"`
	Deck []string `mapstructure:"deck"`
}

// Load reads the configuration file at path. Defaults apply for anything
// the file omits; environment variables like EMBER_SERVER_ADDRESS override
// both.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("content.path", "config/cards.yaml")
	v.SetDefault("game.seed", 1)
	v.SetDefault("game.max_turns", 60)

	v.SetEnvPrefix("EMBER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}
	if cfg.Game.MaxTurns <= 0 {
		return fmt.Errorf("game max_turns must be positive")
	}
	seen := make(map[string]struct{})
	for i, p := range cfg.Game.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("player %d name is required", i)
		}
		if strings.TrimSpace(p.Hero) == "" {
			return fmt.Errorf("player %q hero is required", p.Name)
		}
		key := strings.ToLower(p.Name)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate player name: %s", p.Name)
		}
		seen[key] = struct{}{}
	}
	return nil
}
