package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Events        EventsConfig        `yaml:"events"`
	OpenFoodFacts OpenFoodFactsConfig `yaml:"openfoodfacts"`
	Logging       LoggingConfig       `yaml:"logging"`
}

type ServerConfig struct {
	Port        int    `yaml:"port"`
	MetricsPort int    `yaml:"metrics_port"`
	AdminToken  string `yaml:"admin_token"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type EventsConfig struct {
	URL string `yaml:"url"`
}

type OpenFoodFactsConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMs int    `yaml:"timeout_ms"`
	UserAgent string `yaml:"user_agent"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.OpenFoodFacts.TimeoutMs) * time.Millisecond
}

func Load(path string) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        8700,
			MetricsPort: 8701,
		},
		OpenFoodFacts: OpenFoodFactsConfig{
			BaseURL:   "https://world.openfoodfacts.org",
			TimeoutMs: 10000,
			UserAgent: "nutriscan/1.0 (https://github.com/nutriscan/nutriscan)",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("NUTRISCAN_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("NUTRISCAN_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("NUTRISCAN_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("NUTRISCAN_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("NUTRISCAN_EVENTS_URL"); v != "" {
		cfg.Events.URL = v
	}
	if v := os.Getenv("NUTRISCAN_OFF_BASE_URL"); v != "" {
		cfg.OpenFoodFacts.BaseURL = v
	}
	if v := os.Getenv("NUTRISCAN_OFF_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.OpenFoodFacts.TimeoutMs = n
		}
	}
	if v := os.Getenv("NUTRISCAN_OFF_USER_AGENT"); v != "" {
		cfg.OpenFoodFacts.UserAgent = v
	}
	if v := os.Getenv("NUTRISCAN_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
