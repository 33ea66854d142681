// Package config resolves the full configuration before anything runs:
// built-in defaults, then the optional TOML file, then environment
// variables. Flags are applied on top by the CLI layer.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

const (
	DefaultModel        = "gpt-4.1-mini"
	DefaultTemperature  = 0.2
	DefaultBlockSize    = 2000
	DefaultSummaryBlock = 200
	DefaultMaxAttempts  = 3
	DefaultWatchSpec    = "@every 1m"

	configDirName  = "textdigest"
	configFileName = "config.toml"
	dbFileName     = "sessions.sqlite"
)

type Config struct {
	OpenAIAPIKey string  `env:"OPENAI_API_KEY"            toml:"-"`
	Model        string  `env:"TEXTDIGEST_MODEL"          toml:"model"`
	Temperature  float64 `env:"TEXTDIGEST_TEMPERATURE"    toml:"temperature"`
	BlockSize    int     `env:"TEXTDIGEST_NCH"            toml:"nch"`
	SummaryBlock int     `env:"TEXTDIGEST_SUMMARY_BLOCK"  toml:"summary_block"`
	MaxAttempts  int     `env:"TEXTDIGEST_MAX_ATTEMPTS"   toml:"max_attempts"`
	DBPath       string  `env:"TEXTDIGEST_DB_PATH"        toml:"db_path"`
	WatchSpec    string  `env:"TEXTDIGEST_WATCH_SPEC"     toml:"watch_spec"`
}

// Load resolves the configuration. path overrides the default config file
// location (~/.config/textdigest/config.toml); a missing file is fine.
func Load(path string) (Config, error) {
	cfg := Config{
		Model:        DefaultModel,
		Temperature:  DefaultTemperature,
		BlockSize:    DefaultBlockSize,
		SummaryBlock: DefaultSummaryBlock,
		MaxAttempts:  DefaultMaxAttempts,
		WatchSpec:    DefaultWatchSpec,
	}

	if path == "" {
		path = defaultConfigPath()
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, &cfg); err != nil {
				return Config{}, fmt.Errorf("decode config file %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath()
	}

	return cfg, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	return filepath.Join(home, ".config", configDirName, configFileName)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return dbFileName
	}

	return filepath.Join(home, ".config", configDirName, dbFileName)
}
