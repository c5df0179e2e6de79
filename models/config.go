// Package models defines data structures for configuration and catalog records.
package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for an analysis run. Values come from an
// optional YAML file; CLI flags override anything set here.
type Config struct {
	InputPath    string `yaml:"input_path"`
	OutputDir    string `yaml:"output_dir"`
	DBPath       string `yaml:"db_path"`
	StopwordFile string `yaml:"stopword_file"`
	TopK         int    `yaml:"top_k"`
}

// DefaultConfig returns a config with the defaults used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: "results",
		TopK:      10,
	}
}

// LoadConfig reads a YAML config file and fills unset fields with defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.TopK <= 0 {
		cfg.TopK = 10
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "results"
	}

	return cfg, nil
}
