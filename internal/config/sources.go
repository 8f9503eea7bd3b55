package config

import (
	"fmt"
	"os"

	"github.com/kerem-kaynak/formstore/internal/ingest"
	yaml "gopkg.in/yaml.v2"
)

// SourceConfig holds the per-provider settings read from the sources file.
// Credentials never live here; they come from the environment.
type SourceConfig struct {
	BaseURL  string `yaml:"base_url"`
	Recovery string `yaml:"recovery"`
	PageSize int    `yaml:"page_size"`
}

type SourcesConfig struct {
	Pokemon SourceConfig `yaml:"pokemon"`
	Marvel  SourceConfig `yaml:"marvel"`
}

// LoadSources reads and validates the yaml sources file. A missing file is
// not an error: every setting has a default, so the zero config is usable.
func LoadSources(path string) (*SourcesConfig, error) {
	var cfg SourcesConfig

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse sources config %q: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read sources config %q: %w", path, err)
	}

	if cfg.Pokemon.BaseURL == "" {
		cfg.Pokemon.BaseURL = "https://api.pokemontcg.io"
	}
	if cfg.Pokemon.Recovery == "" {
		cfg.Pokemon.Recovery = string(ingest.PolicyAutomatic)
	}
	if cfg.Marvel.BaseURL == "" {
		cfg.Marvel.BaseURL = "https://gateway.marvel.com"
	}
	if cfg.Marvel.Recovery == "" {
		cfg.Marvel.Recovery = string(ingest.PolicyManual)
	}
	if cfg.Marvel.PageSize == 0 {
		cfg.Marvel.PageSize = 20
	}

	for name, sc := range map[string]SourceConfig{"pokemon": cfg.Pokemon, "marvel": cfg.Marvel} {
		if !ingest.Policy(sc.Recovery).Valid() {
			return nil, fmt.Errorf("source %q: unsupported recovery policy %q", name, sc.Recovery)
		}
	}

	return &cfg, nil
}
