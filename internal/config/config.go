package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/siaga/internal/features"
)

// Config is the application configuration.
type Config struct {
	Model    ModelConfig              `yaml:"model"`
	Locale   string                   `yaml:"locale"`
	Features map[string]FeatureConfig `yaml:"features"`
	Log      LogConfig                `yaml:"log"`
	Server   ServerConfig             `yaml:"server"`
	Advisor  AdvisorConfig            `yaml:"advisor"`
}

// ModelConfig locates the artifact and sets the decision threshold.
type ModelConfig struct {
	Path string `yaml:"path"`

	// Threshold is the probability at or above which a student is flagged.
	// Zero means use the artifact's decision_threshold.
	Threshold float64 `yaml:"threshold"`
}

// FeatureConfig overrides catalog metadata for one feature.
type FeatureConfig struct {
	Direction string `yaml:"direction"`
	Help      string `yaml:"help"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CacheSize      int           `yaml:"cache_size"`
}

// AdvisorConfig configures LLM-generated counselling suggestions.
type AdvisorConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxTokens   int           `yaml:"max_tokens"`
	Temperature float64       `yaml:"temperature"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Locale: "id",
		Log: LogConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			RequestTimeout: 10 * time.Second,
			CacheSize:      1024,
		},
		Advisor: AdvisorConfig{
			MaxTokens:   512,
			Temperature: 0.3,
			Timeout:     20 * time.Second,
		},
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. A missing file is not an error. An empty path
// resolves through DefaultConfigPath.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := decode(bytes.NewReader(raw), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	applyEnv(&cfg)

	if cfg.Model.Path == "" {
		p, err := DefaultModelPath()
		if err != nil {
			return Config{}, err
		}
		cfg.Model.Path = p
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(r io.Reader, cfg *Config) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("SIAGA_MODEL"); v != "" {
		cfg.Model.Path = v
	}
	if v := os.Getenv("SIAGA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SIAGA_LANG"); v != "" {
		cfg.Locale = v
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []string

	if c.Model.Threshold < 0 || c.Model.Threshold > 1 {
		errs = append(errs, fmt.Sprintf("model.threshold %v must be in (0,1], or 0 for the artifact default", c.Model.Threshold))
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}
	if c.Log.MaxSizeMB <= 0 {
		errs = append(errs, "log.max_size_mb must be positive")
	}
	if c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, "log.max_backups and log.max_age_days must not be negative")
	}
	if c.Server.Addr == "" {
		errs = append(errs, "server.addr is required")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Server.CacheSize <= 0 {
		errs = append(errs, "server.cache_size must be positive")
	}
	if c.Advisor.MaxTokens <= 0 {
		errs = append(errs, "advisor.max_tokens must be positive")
	}
	if c.Advisor.Temperature < 0 || c.Advisor.Temperature > 2 {
		errs = append(errs, "advisor.temperature must be in [0,2]")
	}

	names := make([]string, 0, len(c.Features))
	for name := range c.Features {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if d := c.Features[name].Direction; d != "" {
			if _, err := features.ParseDirection(d); err != nil {
				errs = append(errs, fmt.Sprintf("features.%s.direction: %v", name, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// FeatureOverrides converts the features section for the catalog.
func (c Config) FeatureOverrides() (map[string]features.Override, error) {
	out := make(map[string]features.Override, len(c.Features))
	for name, fc := range c.Features {
		o := features.Override{Help: fc.Help}
		if fc.Direction != "" {
			d, err := features.ParseDirection(fc.Direction)
			if err != nil {
				return nil, fmt.Errorf("features.%s.direction: %w", name, err)
			}
			o.Direction = &d
		}
		out[name] = o
	}
	return out, nil
}
