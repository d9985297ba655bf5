package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Paths    PathsConfig       `yaml:"paths"`
	Logging  LoggingConfig     `yaml:"logging"`
	Analysis AnalysisConfig    `yaml:"analysis"`
	Gemini   GeminiConfig      `yaml:"gemini"`
	Rubric   []CriterionConfig `yaml:"rubric"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AnalysisConfig struct {
	BlockDurationMinutes int    `yaml:"block_duration_minutes"`
	MaxTokensPerBlock    int    `yaml:"max_tokens_per_block"`
	MaxConcurrent        int    `yaml:"max_concurrent"`
	RetryMaxAttempts     int    `yaml:"retry_max_attempts"`
	PartialResults       bool   `yaml:"partial_results"`
	TokenizerModel       string `yaml:"tokenizer_model"`
}

type GeminiConfig struct {
	Model   string   `yaml:"model"`
	APIKeys []string `yaml:"api_keys"`
}

// CriterionConfig declares one rubric criterion. Order in the YAML list is
// the order criteria appear in evaluations and in the final report.
type CriterionConfig struct {
	Key    string         `yaml:"key"`
	Name   string         `yaml:"name"`
	Levels map[int]string `yaml:"levels"`
}

// Load reads a YAML config file, validates it and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}
	if len(c.Gemini.APIKeys) == 0 {
		return fmt.Errorf("gemini.api_keys is required")
	}
	for i, crit := range c.Rubric {
		if crit.Key == "" {
			return fmt.Errorf("rubric[%d].key is required", i)
		}
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Analysis.BlockDurationMinutes == 0 {
		c.Analysis.BlockDurationMinutes = 30
	}
	if c.Analysis.MaxTokensPerBlock == 0 {
		c.Analysis.MaxTokensPerBlock = 15000
	}
	if c.Analysis.MaxConcurrent == 0 {
		c.Analysis.MaxConcurrent = 2
	}
	if c.Analysis.RetryMaxAttempts == 0 {
		c.Analysis.RetryMaxAttempts = 3
	}
	if c.Analysis.TokenizerModel == "" {
		c.Analysis.TokenizerModel = "gpt-4o"
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}

	return nil
}
