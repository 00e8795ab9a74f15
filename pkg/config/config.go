package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds all configuration for the explorer
type Config struct {
	Input   string  `koanf:"input"`
	Output  string  `koanf:"output"`
	Width   int     `koanf:"width"`
	Height  int     `koanf:"height"`
	Padding float64 `koanf:"padding"`

	// Simulation constants; zero values defer to layout.DefaultConfig
	Steps     int     `koanf:"steps"`
	Spring    float64 `koanf:"spring"`
	Repulsion float64 `koanf:"repulsion"`
	Damping   float64 `koanf:"damping"`
	Gravity   float64 `koanf:"gravity"`
	Seed      int64   `koanf:"seed"`

	Watch    bool `koanf:"watch"`
	NoLabels bool `koanf:"no-labels"`
	Verbose  int  `koanf:"verbose"`
	JSONLogs bool `koanf:"json-logs"`
}

// Load loads configuration from defaults, config file, environment variables, and flags.
// Priority: Flags > Env > Config File > Defaults
func Load(f *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	defaults := map[string]interface{}{
		"input":     "graph.json",
		"output":    "graph.png",
		"width":     1200,
		"height":    900,
		"padding":   40.0,
		"steps":     0,
		"spring":    0.0,
		"repulsion": 0.0,
		"damping":   0.0,
		"gravity":   0.0,
		"seed":      0,
		"watch":     false,
		"no-labels": false,
		"verbose":   0,
		"json-logs": false,
	}
	if err := k.Load(makeMapProvider(defaults), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config File (optional) - graph-explorer.toml
	// We ignore errors here as the file might not exist
	_ = k.Load(file.Provider("graph-explorer.toml"), toml.Parser())

	// 3. Environment Variables
	// Prefix: GRAPH_EXPLORER_ (e.g., GRAPH_EXPLORER_WIDTH=1600)
	if err := k.Load(env.Provider("GRAPH_EXPLORER_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(
			strings.TrimPrefix(s, "GRAPH_EXPLORER_")), "_", "-")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags
	if f != nil {
		if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	// Unmarshal into struct
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Helper to use map as a provider
type mapProvider struct {
	m map[string]interface{}
}

func makeMapProvider(m map[string]interface{}) *mapProvider {
	return &mapProvider{m: m}
}

func (p *mapProvider) Read() (map[string]interface{}, error) {
	return p.m, nil
}

func (p *mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
