package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	pathEnv     = "CONFIG_PATH"
	dotEnvEnv   = "ENV_FILE"
	defaultPath = "./config.yaml"
)

// Load is LoadFile with no explicit path.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile builds the configuration with precedence ENV > YAML > defaults.
//
// Variables from a dotenv file (ENV_FILE, or ./.env) are exported first
// without overriding the real environment. An empty path falls back to
// CONFIG_PATH, then to ./config.yaml if present, then to ENV + defaults
// only. A path given by the caller or CONFIG_PATH must exist.
func LoadFile(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if path == "" {
		path = os.Getenv(pathEnv)
	}

	explicit := path != ""
	if !explicit {
		path = defaultPath
	}

	var cfg Config
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case explicit:
		return nil, fmt.Errorf("config: file %s: %w", path, statErr)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// loadDotEnv tolerates a missing ./.env but not a missing ENV_FILE.
func loadDotEnv() error {
	if p := os.Getenv(dotEnvEnv); p != "" {
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("env file %s: %w", p, err)
		}
		return nil
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("env file .env: %w", err)
	}
	return nil
}
