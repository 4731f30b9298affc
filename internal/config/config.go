package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Data struct {
		Dir string `yaml:"dir"`
	} `yaml:"data"`
	Exam struct {
		Tick string `yaml:"tick"`
	} `yaml:"exam"`
	Seed struct {
		Users *bool `yaml:"users"`
	} `yaml:"seed"`
}

// Default returns the configuration used when no file is present: CSV files
// under ./data, a one-second countdown tick, default accounts seeded on the
// first run.
func Default() Config {
	cfg := Config{}
	cfg.Data.Dir = "data"
	cfg.Exam.Tick = "1s"
	return cfg
}

// Load reads YAML config from path, falling back to defaults when the file
// does not exist. A .env file, if present, is loaded first so EXAM_DATA_DIR
// can override the data directory either way.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if dir := os.Getenv("EXAM_DATA_DIR"); dir != "" {
		cfg.Data.Dir = dir
	}
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	return cfg, nil
}

// SeedUsers reports whether a fresh users.csv should receive the default
// accounts. Unset means yes.
func (c Config) SeedUsers() bool {
	return c.Seed.Users == nil || *c.Seed.Users
}

// TickDuration parses a duration string or returns the fallback if empty or
// malformed.
func TickDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
