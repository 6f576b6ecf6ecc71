package main

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-adsignal/fields"
)

const targetBoth = "both"

type cliConfig struct {
	Hash     *bool  `yaml:"hash"`
	Target   string `yaml:"target"`
	LogLevel string `yaml:"log_level"`
}

func defaultConfig() cliConfig {
	hash := true
	return cliConfig{Hash: &hash, Target: targetBoth, LogLevel: "warn"}
}

func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return cliConfig{}, fmt.Errorf("read config: %w", err)
	}
	var file cliConfig
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return cliConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if file.Hash != nil {
		cfg.Hash = file.Hash
	}
	if file.Target != "" {
		cfg.Target = file.Target
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if _, err := parseTarget(cfg.Target); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}

func (c cliConfig) hash() bool {
	return c.Hash == nil || *c.Hash
}

// parseTarget returns the backings a target selects, strongest first.
func parseTarget(target string) ([]fields.Backing, error) {
	switch strings.ToLower(strings.TrimSpace(target)) {
	case "", targetBoth:
		return []fields.Backing{fields.BackingServer, fields.BackingBusinessData}, nil
	case string(fields.BackingServer):
		return []fields.Backing{fields.BackingServer}, nil
	case string(fields.BackingBusinessData):
		return []fields.Backing{fields.BackingBusinessData}, nil
	default:
		return nil, fmt.Errorf("invalid target %q: want server, business_data or both", target)
	}
}
