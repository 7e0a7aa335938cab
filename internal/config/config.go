// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Market  MarketConfig  `mapstructure:"market"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// MarketConfig holds the instrument universe and chain defaults.
type MarketConfig struct {
	DefaultSymbol string             `mapstructure:"default_symbol"`
	Instruments   []InstrumentConfig `mapstructure:"instruments"`
}

// InstrumentConfig is the reference data for one tradeable underlying.
type InstrumentConfig struct {
	Symbol     string  `mapstructure:"symbol"`
	Name       string  `mapstructure:"name"`
	LotSize    int     `mapstructure:"lot_size"`
	Spot       float64 `mapstructure:"spot"`
	StrikeStep float64 `mapstructure:"strike_step"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds log output configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-lab"
	}
	return filepath.Join(home, ".config", "options-lab")
}

// Default returns the built-in configuration, used when no config file
// exists yet.
func Default() *Config {
	return &Config{
		Market: MarketConfig{
			DefaultSymbol: "NIFTY",
			Instruments: []InstrumentConfig{
				{Symbol: "NIFTY", Name: "Nifty 50", LotSize: 50, Spot: 19525.50, StrikeStep: 50},
				{Symbol: "BANKNIFTY", Name: "Nifty Bank", LotSize: 15, Spot: 44310.25, StrikeStep: 100},
				{Symbol: "FINNIFTY", Name: "Nifty Financial Services", LotSize: 40, Spot: 19866.40, StrikeStep: 50},
			},
		},
		UI: UIConfig{
			ColorEnabled: true,
			DateFormat:   "02-Jan-2006",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    false,
			File:       true,
			MaxSizeMB:  20,
			MaxBackups: 3,
			MaxAgeDays: 30,
		},
	}
}

// Load loads configuration from the specified directory. If configDir is
// empty, uses the default config directory. A missing config file is not an
// error: a template is written for next time and the built-in defaults are
// used.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateConfig(configDir); werr != nil {
				return nil, werr
			}
			cfg := Default()
			applyEnvOverrides(cfg)
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OPTIONS_LAB_SYMBOL"); v != "" {
		cfg.Market.DefaultSymbol = strings.ToUpper(v)
	}
	if v := os.Getenv("OPTIONS_LAB_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.UI.ColorEnabled = false
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Market.Instruments) == 0 {
		return fmt.Errorf("at least one instrument must be configured")
	}

	seen := make(map[string]bool)
	for _, inst := range c.Market.Instruments {
		sym := strings.ToUpper(inst.Symbol)
		if sym == "" {
			return fmt.Errorf("instrument with empty symbol")
		}
		if seen[sym] {
			return fmt.Errorf("duplicate instrument symbol: %s", sym)
		}
		seen[sym] = true
		if inst.LotSize < 1 {
			return fmt.Errorf("instrument %s: lot_size must be at least 1", sym)
		}
		if inst.Spot <= 0 {
			return fmt.Errorf("instrument %s: spot must be positive", sym)
		}
		if inst.StrikeStep <= 0 {
			return fmt.Errorf("instrument %s: strike_step must be positive", sym)
		}
	}

	if c.Market.DefaultSymbol != "" && !seen[strings.ToUpper(c.Market.DefaultSymbol)] {
		return fmt.Errorf("default_symbol %s is not a configured instrument", c.Market.DefaultSymbol)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// Instrument looks up a configured instrument by symbol, case-insensitively.
func (c *Config) Instrument(symbol string) (InstrumentConfig, bool) {
	sym := strings.ToUpper(symbol)
	for _, inst := range c.Market.Instruments {
		if strings.ToUpper(inst.Symbol) == sym {
			return inst, true
		}
	}
	return InstrumentConfig{}, false
}
