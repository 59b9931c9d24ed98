// Package config loads studyforge settings from an optional YAML file and
// STUDYFORGE_* environment variables. Precedence is env over file over
// defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studyforge/internal/llm"
	"github.com/abhisek/studyforge/internal/mastery"
	"github.com/abhisek/studyforge/internal/planner"
	"github.com/abhisek/studyforge/internal/recommend"
	"github.com/abhisek/studyforge/internal/session"
)

type Config struct {
	Engine  EngineConfig      `yaml:"engine"`
	Mastery mastery.CutPoints `yaml:"mastery"`
	Store   StoreConfig       `yaml:"store"`
	Session SessionConfig     `yaml:"session"`
	Log     LogConfig         `yaml:"log"`
	LLM     LLMConfig         `yaml:"llm"`
}

// EngineConfig tunes recommendation and clustering.
type EngineConfig struct {
	WeakThreshold     float64 `yaml:"weak_threshold"`
	ClusterSeed       uint64  `yaml:"cluster_seed"`
	KMeansIterations  int     `yaml:"kmeans_iterations"`
	RecentWindow      int     `yaml:"recent_window"`
	DefaultDifficulty int     `yaml:"default_difficulty"`

	// Weights overrides rule weights by rule name, e.g. "weak-topic": -12.
	Weights map[string]float64 `yaml:"weights"`
}

type StoreConfig struct {
	// Path of the SQLite file. Empty means the XDG data directory.
	Path string `yaml:"path"`
}

// SessionConfig selects where in-progress quiz sessions are kept between
// CLI invocations. An empty RedisURL keeps them in a local file.
type SessionConfig struct {
	RedisURL string        `yaml:"redis_url"`
	TTL      time.Duration `yaml:"ttl"`
	Dir      string        `yaml:"dir"`
}

type LogConfig struct {
	Mode string `yaml:"mode"`
}

type LLMConfig struct {
	Provider   string         `yaml:"provider"`
	Gemini     ProviderConfig `yaml:"gemini"`
	OpenAI     ProviderConfig `yaml:"openai"`
	Anthropic  ProviderConfig `yaml:"anthropic"`
	OpenRouter ProviderConfig `yaml:"openrouter"`
	Retry      RetryConfig    `yaml:"retry"`
	Timeout    time.Duration  `yaml:"timeout"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	InitialWait time.Duration `yaml:"initial_wait"`
	MaxWait     time.Duration `yaml:"max_wait"`
	Multiplier  float64       `yaml:"multiplier"`
}

// Default returns the built-in settings.
func Default() *Config {
	l := llm.DefaultConfig()
	return &Config{
		Engine: EngineConfig{
			WeakThreshold:     mastery.DefaultThreshold,
			ClusterSeed:       planner.DefaultSeed,
			KMeansIterations:  planner.DefaultMaxIterations,
			RecentWindow:      recommend.RecentWindow,
			DefaultDifficulty: recommend.DefaultDifficulty,
		},
		Mastery: mastery.DefaultCutPoints,
		Session: SessionConfig{TTL: 24 * time.Hour},
		Log:     LogConfig{Mode: "quiet"},
		LLM: LLMConfig{
			Provider:   l.Provider,
			Gemini:     ProviderConfig{Model: l.Gemini.Model},
			OpenAI:     ProviderConfig{Model: l.OpenAI.Model},
			Anthropic:  ProviderConfig{Model: l.Anthropic.Model},
			OpenRouter: ProviderConfig{Model: l.OpenRouter.Model},
			Retry: RetryConfig{
				MaxAttempts: l.Retry.MaxAttempts,
				InitialWait: l.Retry.InitialWait,
				MaxWait:     l.Retry.MaxWait,
				Multiplier:  l.Retry.Multiplier,
			},
			Timeout: l.Timeout,
		},
	}
}

// Load reads path (or STUDYFORGE_CONFIG, or the default location when it
// exists), applies env overrides and validates the result. A missing
// default file is not an error; a missing explicit one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if p := os.Getenv("STUDYFORGE_CONFIG"); p != "" {
			path, explicit = p, true
		} else {
			path = DefaultPath()
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := cfg.decode(data); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath is $XDG_CONFIG_HOME/studyforge/config.yaml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "studyforge", "config.yaml")
}

func (c *Config) decode(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (c *Config) applyEnv() error {
	str := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	str(&c.Store.Path, "STUDYFORGE_DB")
	str(&c.Session.RedisURL, "STUDYFORGE_REDIS_URL")
	str(&c.Session.Dir, "STUDYFORGE_SESSION_DIR")
	str(&c.Log.Mode, "STUDYFORGE_LOG_MODE")

	if v := os.Getenv("STUDYFORGE_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("STUDYFORGE_SESSION_TTL: %w", err)
		}
		c.Session.TTL = d
	}
	if v := os.Getenv("STUDYFORGE_WEAK_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("STUDYFORGE_WEAK_THRESHOLD: %w", err)
		}
		c.Engine.WeakThreshold = f
	}
	if v := os.Getenv("STUDYFORGE_CLUSTER_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("STUDYFORGE_CLUSTER_SEED: %w", err)
		}
		c.Engine.ClusterSeed = n
	}
	return nil
}

var logModes = []string{"dev", "prod", "quiet"}

// Validate reports the first out-of-range setting.
func (c *Config) Validate() error {
	e := c.Engine
	if e.WeakThreshold <= 0 || e.WeakThreshold > 1 {
		return fmt.Errorf("engine.weak_threshold must be in (0,1], got %v", e.WeakThreshold)
	}
	if e.RecentWindow < 1 {
		return fmt.Errorf("engine.recent_window must be at least 1, got %d", e.RecentWindow)
	}
	if e.KMeansIterations < 1 {
		return fmt.Errorf("engine.kmeans_iterations must be at least 1, got %d", e.KMeansIterations)
	}
	if e.DefaultDifficulty < 1 || e.DefaultDifficulty > 5 {
		return fmt.Errorf("engine.default_difficulty must be 1-5, got %d", e.DefaultDifficulty)
	}
	known := recommend.RuleNames(recommend.DefaultRules())
	for name := range e.Weights {
		if !slices.Contains(known, name) {
			return fmt.Errorf("engine.weights: unknown rule %q (known: %s)", name, strings.Join(known, ", "))
		}
	}
	if err := c.Mastery.Validate(); err != nil {
		return err
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("session.ttl must not be negative, got %s", c.Session.TTL)
	}
	if !slices.Contains(logModes, c.Log.Mode) {
		return fmt.Errorf("log.mode must be one of %s, got %q", strings.Join(logModes, ", "), c.Log.Mode)
	}
	return nil
}

// Planner returns the clustering settings.
func (c *Config) Planner() planner.Planner {
	return planner.Planner{Seed: c.Engine.ClusterSeed, MaxIterations: c.Engine.KMeansIterations}
}

// RecommendOptions returns the recommender settings.
func (c *Config) RecommendOptions() []recommend.Option {
	opts := []recommend.Option{
		recommend.WithWeakThreshold(c.Engine.WeakThreshold),
		recommend.WithRecentWindow(c.Engine.RecentWindow),
		recommend.WithDefaultDifficulty(c.Engine.DefaultDifficulty),
	}
	if len(c.Engine.Weights) > 0 {
		opts = append(opts, recommend.WithWeights(c.Engine.Weights))
	}
	return opts
}

// SessionOptions returns the engine settings for a quiz session.
func (c *Config) SessionOptions() session.Options {
	return session.Options{
		Recommend:     c.RecommendOptions(),
		WeakThreshold: c.Engine.WeakThreshold,
		Cuts:          c.Mastery,
	}
}

// LLMConfig converts the llm section, then lets STUDYFORGE_* provider
// variables and the vendors' own key variables fill what is unset.
func (c *Config) LLMConfig() llm.Config {
	l := c.LLM
	out := llm.Config{
		Provider:   l.Provider,
		Gemini:     llm.GeminiConfig{APIKey: l.Gemini.APIKey, Model: l.Gemini.Model},
		OpenAI:     llm.OpenAIConfig{APIKey: l.OpenAI.APIKey, Model: l.OpenAI.Model, BaseURL: l.OpenAI.BaseURL},
		Anthropic:  llm.AnthropicConfig{APIKey: l.Anthropic.APIKey, Model: l.Anthropic.Model},
		OpenRouter: llm.OpenRouterConfig{APIKey: l.OpenRouter.APIKey, Model: l.OpenRouter.Model, BaseURL: l.OpenRouter.BaseURL},
		Retry: llm.RetryConfig{
			MaxAttempts: l.Retry.MaxAttempts,
			InitialWait: l.Retry.InitialWait,
			MaxWait:     l.Retry.MaxWait,
			Multiplier:  l.Retry.Multiplier,
		},
		Timeout: l.Timeout,
	}
	out.ApplyEnv()
	out.Discover()
	return out
}
