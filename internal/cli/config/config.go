package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultBaseURL       = "http://127.0.0.1:8080"
	DefaultTimeout       = 10 * time.Second
	DefaultPollInterval  = 2 * time.Second
	DefaultTrackTimeout  = 30 * time.Second
	DefaultBoardInterval = 20 * time.Second
)

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds CLI configuration.
type Config struct {
	BaseURL       string        `yaml:"baseURL"`
	Timeout       time.Duration `yaml:"timeout"`
	PollInterval  time.Duration `yaml:"pollInterval"`
	TrackTimeout  time.Duration `yaml:"trackTimeout"`
	BoardInterval time.Duration `yaml:"boardInterval"`
	Log           LogConfig     `yaml:"log"`
}

// Load reads the config file at path. A missing file is not an error:
// the defaults cover a local setup.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyDefaults(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file failed: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file failed: %w", err)
	}
	applyDefaults(&cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.TrackTimeout == 0 {
		cfg.TrackTimeout = DefaultTrackTimeout
	}
	if cfg.BoardInterval == 0 {
		cfg.BoardInterval = DefaultBoardInterval
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
