// Package config loads taskprog settings.
//
// Sources are layered, later ones winning: built-in defaults, the YAML
// file, a .env file in the working directory, TASKPROG_* environment
// variables. Command-line flags are applied by main on top of the result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// AppName names the per-user config directory.
const AppName = "taskprog"

// EnvPrefix is the prefix for environment overrides.
const EnvPrefix = "TASKPROG"

// Draft backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

type Config struct {
	ServerURL string        `yaml:"server_url" split_words:"true"`
	Timeout   time.Duration `yaml:"timeout" split_words:"true"`
	Drafts    Drafts        `yaml:"drafts" split_words:"true"`
	Log       Log           `yaml:"log" split_words:"true"`
}

type Drafts struct {
	Backend  string        `yaml:"backend" split_words:"true"`
	Path     string        `yaml:"path" split_words:"true"`
	RedisURL string        `yaml:"redis_url" split_words:"true"`
	TTL      time.Duration `yaml:"ttl" split_words:"true"`
}

type Log struct {
	Level string `yaml:"level" split_words:"true"`
	File  string `yaml:"file" split_words:"true"`
}

// Dir returns the per-user config directory, e.g. ~/.config/taskprog.
func Dir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, AppName), nil
}

// DefaultPath is where the config file lives when no path is given.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Default returns the built-in settings. Paths are filled in relative to
// dir; an empty dir leaves them empty.
func Default(dir string) Config {
	cfg := Config{
		ServerURL: "http://localhost:5000",
		Timeout:   10 * time.Second,
		Drafts: Drafts{
			Backend: BackendFile,
		},
		Log: Log{
			Level: "info",
		},
	}
	if dir != "" {
		cfg.Drafts.Path = filepath.Join(dir, "drafts.json")
		cfg.Log.File = filepath.Join(dir, "taskprog.log")
	}
	return cfg
}

// Load reads the config file at path, creating it with defaults when it
// does not exist, then applies .env and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default(filepath.Dir(path))

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return Config{}, err
		}
	case err != nil:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// A missing .env is normal.
	_ = godotenv.Load()

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("environment overrides: %w", err)
	}

	return cfg, cfg.Validate()
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.ServerURL == "" {
		return errors.New("server_url is required")
	}
	switch c.Drafts.Backend {
	case BackendMemory:
	case BackendFile, BackendSQLite:
		if c.Drafts.Path == "" {
			return fmt.Errorf("drafts.path is required for the %s backend", c.Drafts.Backend)
		}
	case BackendRedis:
		if c.Drafts.RedisURL == "" {
			return errors.New("drafts.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown drafts.backend %q", c.Drafts.Backend)
	}
	return nil
}
