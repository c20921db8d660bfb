package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/jhump/derive"
)

type fileConfig struct {
	Namespace string   `toml:"namespace"`
	Contracts []string `toml:"contracts"`
	LogLevel  string   `toml:"log_level"`
	OutputDir string   `toml:"output_dir"`
}

type config struct {
	Namespace string
	// Contracts is empty to implement all registered contracts.
	Contracts []string
	LogLevel  string
	OutputDir string
}

func defaultConfig() config {
	return config{
		Namespace: derive.DefaultNamespace,
		LogLevel:  "info",
	}
}

func loadConfig(path string) (config, error) {
	cfg := defaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load derivegen config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return config{}, fmt.Errorf("load derivegen config: unknown key %s", undecoded[0])
	}

	if meta.IsDefined("namespace") {
		cfg.Namespace = strings.TrimSpace(raw.Namespace)
	}

	if meta.IsDefined("contracts") {
		cfg.Contracts = normalizeContracts(raw.Contracts)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}

	return cfg, nil
}

func normalizeContracts(raw []string) []string {
	var out []string
	seen := map[string]struct{}{}
	for _, c := range raw {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}
