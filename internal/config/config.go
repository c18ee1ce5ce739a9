package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dmmcquay/goban-engine/internal/rules"
)

type Config struct {
	// Game rules configuration
	Game GameConfig `json:"game"`

	// Server configuration
	Server ServerConfig `json:"server"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Score cache configuration
	Cache CacheConfig `json:"cache"`
}

type GameConfig struct {
	RuleSet   string  `json:"ruleSet"`
	Komi      float64 `json:"komi"`
	BoardSize int     `json:"boardSize"`
	Handicap  int     `json:"handicap"`
}

type ServerConfig struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Description string `json:"description"`
	HealthAddr  string `json:"healthAddr"`
}

type LoggingConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
	Prefix string `json:"prefix"`
}

type CacheConfig struct {
	Enabled  bool `json:"enabled"`
	MaxItems int  `json:"maxItems"`
}

func Load(configPath string) (*Config, error) {
	cfg := &Config{
		// Default values
		Game: GameConfig{
			RuleSet:   string(rules.Chinese),
			Komi:      0, // 0 selects the rule set default
			BoardSize: 19,
			Handicap:  0,
		},
		Server: ServerConfig{
			Name:        "goban-engine",
			Version:     "0.1.0",
			Description: "Go board, rules and scoring engine",
			HealthAddr:  ":8080",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Prefix: "[goban-engine] ",
		},
		Cache: CacheConfig{
			Enabled:  true,
			MaxItems: 256,
		},
	}

	// Load from JSON file if provided
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("GOBAN_RULE_SET"); v != "" {
		c.Game.RuleSet = v
	}
	if v := os.Getenv("GOBAN_KOMI"); v != "" {
		if komi, err := strconv.ParseFloat(v, 64); err == nil {
			c.Game.Komi = komi
		}
	}
	if v := os.Getenv("GOBAN_BOARD_SIZE"); v != "" {
		if size, err := strconv.Atoi(v); err == nil {
			c.Game.BoardSize = size
		}
	}
	if v := os.Getenv("GOBAN_HANDICAP"); v != "" {
		if h, err := strconv.Atoi(v); err == nil {
			c.Game.Handicap = h
		}
	}
	if v := os.Getenv("GOBAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GOBAN_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("GOBAN_HEALTH_ADDR"); v != "" {
		c.Server.HealthAddr = v
	}
}

func (c *Config) validate() error {
	if _, err := rules.ParseRuleSet(c.Game.RuleSet); err != nil {
		return err
	}

	switch c.Game.BoardSize {
	case 9, 13, 19:
	default:
		return fmt.Errorf("invalid board size %d: must be 9, 13, or 19", c.Game.BoardSize)
	}

	if c.Game.Handicap < 0 || c.Game.Handicap > 9 {
		return fmt.Errorf("invalid handicap %d: must be 0..9", c.Game.Handicap)
	}
	if c.Game.BoardSize == 9 && c.Game.Handicap > 5 {
		return fmt.Errorf("invalid handicap %d: a 9x9 board allows at most 5", c.Game.Handicap)
	}

	if c.Game.Komi < 0 {
		return fmt.Errorf("invalid komi %v: must not be negative", c.Game.Komi)
	}

	if c.Cache.MaxItems < 0 {
		c.Cache.MaxItems = 0
	}

	return nil
}

// RuleSet returns the validated rule set.
func (c *Config) RuleSet() rules.RuleSet {
	rs, err := rules.ParseRuleSet(c.Game.RuleSet)
	if err != nil {
		return rules.Chinese
	}
	return rs
}

func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("GOBAN_ENGINE_CONFIG"); path != "" {
		return path
	}

	// Check current directory
	if _, err := os.Stat("config.json"); err == nil {
		return "config.json"
	}

	// Check home directory
	if home, err := os.UserHomeDir(); err == nil {
		configPath := filepath.Join(home, ".goban-engine", "config.json")
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
	}

	return ""
}
