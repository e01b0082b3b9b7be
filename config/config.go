package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/apollo/session"
)

// Config is the file-level configuration consumed by the CLI. The core
// packages never read files; the CLI maps this onto a session.Config.
type Config struct {
	Session SessionConfig `json:"session" yaml:"session"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// SessionConfig mirrors session.Config with serializable fields.
type SessionConfig struct {
	StopLoss       float64 `json:"stop_loss" yaml:"stop_loss"`
	Mode           string  `json:"mode" yaml:"mode"`
	BaseStake      float64 `json:"base_stake" yaml:"base_stake"`
	PayoutNormal   float64 `json:"payout_normal" yaml:"payout_normal"`
	PayoutRecovery float64 `json:"payout_recovery" yaml:"payout_recovery"`
	MaxSteps       int     `json:"max_steps" yaml:"max_steps"`
}

// JournalConfig selects where (and whether) the run ledger is recorded.
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	BetsFile     string `json:"bets_file,omitempty" yaml:"bets_file,omitempty"`
	SessionsFile string `json:"sessions_file,omitempty" yaml:"sessions_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (format chosen by extension).
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// ToSession maps the serialized session block onto a session.Config.
func (c *Config) ToSession() (session.Config, error) {
	mode, err := session.ParseMode(c.Session.Mode)
	if err != nil {
		return session.Config{}, err
	}

	return session.Config{
		StopLoss:       c.Session.StopLoss,
		Mode:           mode,
		BaseStake:      c.Session.BaseStake,
		PayoutNormal:   c.Session.PayoutNormal,
		PayoutRecovery: c.Session.PayoutRecovery,
		MaxSteps:       c.Session.MaxSteps,
	}, nil
}

// Validate checks both the session block (via session.Config.Validate) and
// the journal block.
func (c *Config) Validate() error {
	sc, err := c.ToSession()
	if err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.BetsFile == "" || c.Journal.SessionsFile == "" {
			return fmt.Errorf("journal bets_file and sessions_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	return nil
}

// Default returns a configuration matching the reference session.
func Default() *Config {
	sc := session.DefaultConfig()
	return &Config{
		Session: SessionConfig{
			StopLoss:       sc.StopLoss,
			Mode:           string(sc.Mode),
			BaseStake:      sc.BaseStake,
			PayoutNormal:   sc.PayoutNormal,
			PayoutRecovery: sc.PayoutRecovery,
			MaxSteps:       sc.MaxSteps,
		},
		Journal: JournalConfig{
			Type:         "csv",
			BetsFile:     "./bets.csv",
			SessionsFile: "./sessions.csv",
		},
	}
}
