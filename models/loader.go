package models

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is not given.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes every environment override.
const EnvPrefix = "HEADLINE_CLOUD_"

// LoadConfig reads a YAML file on top of DefaultConfig.
// A missing file returns ErrConfigNotFound together with the defaults, so
// callers that did not ask for a specific file can carry on.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path) //nolint:gosec // user supplied config path
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv loads a .env file into the process environment if one exists.
// Variables already set are left alone.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

// ApplyEnv overrides fields from HEADLINE_CLOUD_* variables, using the
// env tags on Config. environ is normally nil, meaning the process
// environment. Unset and empty variables leave the field alone.
func (c *Config) ApplyEnv(environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEnv, err)
	}
	c.URLs = CleanList(c.URLs)
	c.Feeds = CleanList(c.Feeds)
	c.ExtraStopWords = CleanList(c.ExtraStopWords)
	return nil
}

// SplitList splits a comma separated value and drops empty entries.
func SplitList(v string) []string {
	return CleanList(strings.Split(v, ","))
}

// CleanList trims every item and drops the empty ones.
func CleanList(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
