// Package config loads server configuration from an optional YAML file with
// environment overrides.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr        string `yaml:"addr"`
	DBPath      string `yaml:"db_path"`
	TokenSecret string `yaml:"token_secret"`
	LogLevel    string `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		Addr:     ":8080",
		DBPath:   "ranklist.db",
		LogLevel: "info",
	}
}

// Load reads path (skipped when empty or missing) and applies RANKLIST_*
// environment overrides on top.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if v := os.Getenv("RANKLIST_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("RANKLIST_DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("RANKLIST_TOKEN_SECRET"); v != "" {
		cfg.TokenSecret = v
	}
	if v := os.Getenv("RANKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("token_secret is required (set RANKLIST_TOKEN_SECRET)")
	}
	return cfg, nil
}
