package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	OpenAIKey   string `yaml:"openai_key"`
	OpenAIModel string `yaml:"openai_model"`

	Database struct {
		Dialect string `yaml:"dialect"` // sqlite3 | postgres
		DSN     string `yaml:"dsn"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret    string `yaml:"jwt_secret"`
		SessionHours int    `yaml:"session_hours"`
	} `yaml:"auth"`

	// Restaurants to seed on first start.
	Restaurants []string `yaml:"restaurants"`

	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Load reads the yaml config file, filling defaults for anything omitted.
// Environment variables override the secrets so the file can be committed
// without them.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	cfg.OpenAIModel = "gpt-4o-mini"
	cfg.Database.Dialect = "sqlite3"
	cfg.Database.DSN = "comanda.db"
	cfg.Auth.SessionHours = 12
	cfg.Metrics.Enabled = true
	cfg.Metrics.Port = 9090
	cfg.Metrics.Path = "/metrics"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		cfg.OpenAIKey = key
	}
	if secret := os.Getenv("COMANDA_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	if len(cfg.Restaurants) == 0 {
		cfg.Restaurants = []string{"default"}
	}
	return cfg, nil
}
