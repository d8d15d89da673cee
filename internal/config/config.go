package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/elonfeng/tracefirst/internal/logger"
	"github.com/elonfeng/tracefirst/pkg/similarity"
	"github.com/elonfeng/tracefirst/pkg/source"
	"github.com/elonfeng/tracefirst/pkg/story"
)

// Config is the root configuration.
type Config struct {
	Log      logger.Config  `yaml:"log"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Sources  SourcesConfig  `yaml:"sources"`
	Filter   FilterConfig   `yaml:"filter"`
	Trust    TrustConfig    `yaml:"trust"`
}

// AnalysisConfig configures clustering and scoring.
type AnalysisConfig struct {
	Threshold float64       `yaml:"threshold"`
	Strategy  string        `yaml:"strategy"` // "ratio" or "jaccard"
	Weights   story.Weights `yaml:"weights"`
}

// SourcesConfig lists the article batches to load.
type SourcesConfig struct {
	JSON  []JSONInput `yaml:"json"`
	Feeds []FeedInput `yaml:"feeds"`
}

// JSONInput is a JSON article batch file.
type JSONInput struct {
	Path       string `yaml:"path"`
	SourceType string `yaml:"source_type"` // applied to articles without one
}

// FeedInput is a saved RSS/Atom document.
type FeedInput struct {
	Name       string `yaml:"name"`
	Path       string `yaml:"path"`
	SourceType string `yaml:"source_type"`
}

// FilterConfig configures query relevance filtering.
type FilterConfig struct {
	Query          string   `yaml:"query"`
	MinMatches     int      `yaml:"min_matches"`
	ExtraStopwords []string `yaml:"extra_stopwords"`
}

// TrustConfig extends the outlet trust lists.
type TrustConfig struct {
	HighDomains []string `yaml:"high_domains"`
	MidDomains  []string `yaml:"mid_domains"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Log: logger.Config{Level: "info"},
		Analysis: AnalysisConfig{
			Threshold: story.DefaultThreshold,
			Strategy:  similarity.RatioName,
			Weights:   story.DefaultWeights(),
		},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
// An empty path loads the defaults. The result is validated.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("TRACEFIRST_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TRACEFIRST_STRATEGY"); v != "" {
		cfg.Analysis.Strategy = v
	}
	if v := os.Getenv("TRACEFIRST_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parse TRACEFIRST_THRESHOLD %q: %w", v, err)
		}
		cfg.Analysis.Threshold = f
	}
	return nil
}

// Validate reports every problem found, joined.
func (c *Config) Validate() error {
	var errs []error

	if !logger.ValidLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}
	if _, err := similarity.ByName(c.Analysis.Strategy); err != nil {
		errs = append(errs, err)
	}
	if err := story.ValidateThreshold("threshold", c.Analysis.Threshold); err != nil {
		errs = append(errs, err)
	}
	if err := c.Analysis.Weights.Validate(); err != nil {
		errs = append(errs, err)
	}
	for i, in := range c.Sources.JSON {
		if in.Path == "" {
			errs = append(errs, fmt.Errorf("sources.json[%d]: missing path", i))
		}
	}
	for i, in := range c.Sources.Feeds {
		if in.Path == "" {
			errs = append(errs, fmt.Errorf("sources.feeds[%d]: missing path", i))
		}
	}
	if c.Filter.MinMatches < 0 {
		errs = append(errs, fmt.Errorf("filter.min_matches must not be negative, got %d", c.Filter.MinMatches))
	}

	return errors.Join(errs...)
}

// EngineOptions converts the analysis section into story engine options.
func (c *Config) EngineOptions() (story.Options, error) {
	strategy, err := similarity.ByName(c.Analysis.Strategy)
	if err != nil {
		return story.Options{}, err
	}
	return story.Options{
		Threshold: c.Analysis.Threshold,
		Strategy:  strategy,
		Weights:   c.Analysis.Weights,
	}, nil
}

// SourceType converts a configured source type, defaulting to press.
func SourceType(v string) source.SourceType {
	if v == "" {
		return source.SourcePress
	}
	return source.SourceType(v)
}
