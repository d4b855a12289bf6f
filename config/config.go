// Package config loads the chargestat configuration from a yaml or json
// file with CHARGESTAT_* environment overrides. Nothing outside this
// package reads the environment for settings.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"chargestat/infra/mqtt"
)

type Config struct {
	API     APIConfig     `json:"api"`
	Cache   CacheConfig   `json:"cache"`
	Metrics MetricsConfig `json:"metrics"`
	MQTT    mqtt.Config   `json:"mqtt"`
}

// Load reads the config file, applies environment overrides of the form
// CHARGESTAT_API__TOKEN=... (double underscore separates nesting levels),
// fills defaults and validates each section.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	if err := k.Load(env.Provider("CHARGESTAT_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "chargestat_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.API.SetDefaults()
	cfg.Cache.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.MQTT.SetDefaults()
	if err := cfg.API.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Cache.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.MQTT.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
