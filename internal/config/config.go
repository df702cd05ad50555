package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the CLI configuration, loadable from a YAML file.
type Config struct {
	Selection SelectionConfig `yaml:"selection"`
	Dataset   DatasetConfig   `yaml:"dataset"`
	Redis     RedisConfig     `yaml:"redis"`
	Log       LogConfig       `yaml:"log"`
}

type SelectionConfig struct {
	Threshold      float64 `yaml:"threshold"`
	MaxEvaluations int     `yaml:"max_evaluations"`
	Sigma          float64 `yaml:"sigma"`
	Seed           int64   `yaml:"seed"`
}

type DatasetConfig struct {
	CacheSize int `yaml:"cache_size"`
}

type RedisConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Selection: SelectionConfig{
			Threshold:      0.2,
			MaxEvaluations: 15000,
			Sigma:          0.3,
			Seed:           1,
		},
		Dataset: DatasetConfig{
			CacheSize: 8,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a YAML config file over the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values a search run would otherwise reject late.
func (c Config) Validate() error {
	if c.Selection.Sigma <= 0 {
		return fmt.Errorf("selection.sigma must be positive, got %v", c.Selection.Sigma)
	}
	if c.Selection.MaxEvaluations <= 0 {
		return fmt.Errorf("selection.max_evaluations must be positive, got %d", c.Selection.MaxEvaluations)
	}
	if c.Selection.Threshold < 0 || c.Selection.Threshold >= 1 {
		return fmt.Errorf("selection.threshold must be in [0,1), got %v", c.Selection.Threshold)
	}
	if c.Dataset.CacheSize <= 0 {
		return fmt.Errorf("dataset.cache_size must be positive, got %d", c.Dataset.CacheSize)
	}
	return nil
}
