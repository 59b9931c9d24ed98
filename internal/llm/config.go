package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures one provider.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig targets Gemini Flash, which is what summaries and quizzes
// were tuned against.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 60 * time.Second,
	}
}

// ApplyEnv overlays STUDYFORGE_* variables onto c.
func (c *Config) ApplyEnv() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.Provider, "STUDYFORGE_LLM_PROVIDER")
	set(&c.Gemini.APIKey, "STUDYFORGE_GEMINI_API_KEY")
	set(&c.Gemini.Model, "STUDYFORGE_GEMINI_MODEL")
	set(&c.OpenAI.APIKey, "STUDYFORGE_OPENAI_API_KEY")
	set(&c.OpenAI.Model, "STUDYFORGE_OPENAI_MODEL")
	set(&c.OpenAI.BaseURL, "STUDYFORGE_OPENAI_BASE_URL")
	set(&c.Anthropic.APIKey, "STUDYFORGE_ANTHROPIC_API_KEY")
	set(&c.Anthropic.Model, "STUDYFORGE_ANTHROPIC_MODEL")
	set(&c.OpenRouter.APIKey, "STUDYFORGE_OPENROUTER_API_KEY")
	set(&c.OpenRouter.Model, "STUDYFORGE_OPENROUTER_MODEL")
}

// Discover fills in a key from the vendors' own env vars when c has none
// for its provider. If c.Provider has no key anywhere, the first vendor
// with a key set wins (Gemini, OpenAI, Anthropic, OpenRouter). It reports
// whether a usable key was found.
func (c *Config) Discover() bool {
	vendors := []struct {
		name string
		env  string
		key  *string
	}{
		{ProviderGemini, "GEMINI_API_KEY", &c.Gemini.APIKey},
		{ProviderOpenAI, "OPENAI_API_KEY", &c.OpenAI.APIKey},
		{ProviderAnthropic, "ANTHROPIC_API_KEY", &c.Anthropic.APIKey},
		{ProviderOpenRouter, "OPENROUTER_API_KEY", &c.OpenRouter.APIKey},
	}
	if c.Provider == ProviderMock {
		return true
	}
	for _, v := range vendors {
		if v.name != c.Provider {
			continue
		}
		if *v.key == "" {
			*v.key = os.Getenv(v.env)
		}
		if *v.key != "" {
			return true
		}
	}
	for _, v := range vendors {
		if k := os.Getenv(v.env); k != "" {
			c.Provider = v.name
			*v.key = k
			return true
		}
	}
	return false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "STUDYFORGE_GEMINI_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "STUDYFORGE_OPENAI_API_KEY"
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "STUDYFORGE_ANTHROPIC_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "STUDYFORGE_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
	}
	return nil
}
