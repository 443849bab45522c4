package main

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	URL     string `yaml:"url"`
	Token   string `yaml:"token"`
	DevMode bool   `yaml:"dev"`
}

// loadConfig merges the optional yaml file with the environment. Flags
// are applied on top by the caller.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, err
		}
	}
	if v := os.Getenv("STRAPI_URL"); v != "" {
		cfg.URL = v
	}
	if v := os.Getenv("STRAPI_API_TOKEN"); v != "" {
		cfg.Token = v
	}
	if v := os.Getenv("STRAPI_DEV_MODE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.DevMode = b
		}
	}
	return cfg, nil
}
