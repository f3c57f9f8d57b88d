// Package config loads the dashboard configuration: defaults, overlaid by an
// optional YAML file, overlaid by environment variables (a .env file is read
// first if present).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/icdkit/icdgraph/internal/lib"
)

// Canvas is the default drawing surface size used when a client doesn't send
// its own dimensions.
type Canvas struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Config struct {
	Bind          string       `yaml:"bind"`
	StaticDir     string       `yaml:"staticDir"`
	DatabasePath  string       `yaml:"databasePath"`
	HierarchyPath string       `yaml:"hierarchyPath"`
	UMLSPath      string       `yaml:"umlsPath"`
	PredictionURL string       `yaml:"predictionUrl"`
	DefaultModel  string       `yaml:"defaultModel"`
	TopK          int          `yaml:"topK"`
	Threshold     float64      `yaml:"threshold"`
	Canvas        Canvas       `yaml:"canvas"`
	HTTPTimeout   lib.Duration `yaml:"httpTimeout"`
	LogLevel      string       `yaml:"logLevel"`
}

func Default() Config {
	return Config{
		Bind:          "127.0.0.1:8080",
		StaticDir:     "public",
		DatabasePath:  "icdgraph.db",
		HierarchyPath: "data/icd_hierarchy.json",
		UMLSPath:      "data/umls_mappings.json",
		DefaultModel:  "CAML",
		TopK:          10,
		Threshold:     0.5,
		Canvas:        Canvas{Width: 1200, Height: 800},
		HTTPTimeout:   lib.DurationFrom(30 * time.Second),
		LogLevel:      "info",
	}
}

// Load builds the effective configuration. A missing config file is fine; a
// present but malformed one is an error.
func Load(path string) (Config, error) {
	// Best-effort: a .env file is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return cfg, err
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parsing %s: %w", path, err)
			}
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ICDGRAPH_BIND"); v != "" {
		cfg.Bind = v
	}
	if v := os.Getenv("ICDGRAPH_DB"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("ICDGRAPH_PREDICTION_URL"); v != "" {
		cfg.PredictionURL = v
	}
	if v := os.Getenv("ICDGRAPH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
