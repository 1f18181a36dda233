package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/dagnazty/chatgpt-gui/retry"
	"github.com/dagnazty/chatgpt-gui/window"
)

// Duration wraps time.Duration so config files can use strings like
// "60s" or "4s" in both TOML and YAML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler (used by TOML).
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(s))
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// RateLimit configures the local call-rate limiter.
type RateLimit struct {
	// MaxCalls is the number of calls admitted per Period.
	MaxCalls int `json:"max_calls" yaml:"max_calls" toml:"max_calls"`

	// Period is the sliding refill window, e.g. "60s".
	Period Duration `json:"period" yaml:"period" toml:"period"`
}

// Retry configures the backoff policy for transient remote failures.
type Retry struct {
	MaxAttempts int      `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
	BaseDelay   Duration `json:"base_delay" yaml:"base_delay" toml:"base_delay"`
	Multiplier  float64  `json:"multiplier" yaml:"multiplier" toml:"multiplier"`
	MaxDelay    Duration `json:"max_delay" yaml:"max_delay" toml:"max_delay"`
	Jitter      bool     `json:"jitter" yaml:"jitter" toml:"jitter"`
}

// ToPolicy converts the file representation into a retry.Policy.
func (r Retry) ToPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts: r.MaxAttempts,
		BaseDelay:   r.BaseDelay.Std(),
		Multiplier:  r.Multiplier,
		MaxDelay:    r.MaxDelay.Std(),
		Jitter:      r.Jitter,
	}
}

// Tokenizer configures the estimating tokenizer.
type Tokenizer struct {
	// CharsPerToken is the character-to-token ratio. 0 uses the default.
	CharsPerToken float64 `json:"chars_per_token" yaml:"chars_per_token" toml:"chars_per_token"`
}

// Config holds all tunables for a conversation client.
type Config struct {
	// Model selects the remote model and the token-overhead profile.
	Model string `json:"model" yaml:"model" toml:"model"`

	// Caller is the registered remote-caller backend name.
	Caller string `json:"caller" yaml:"caller" toml:"caller"`

	// SystemPrompt, when non-empty, leads every new session.
	SystemPrompt string `json:"system_prompt" yaml:"system_prompt" toml:"system_prompt"`

	// SessionDir is where sessions are persisted. Empty disables
	// persistence.
	SessionDir string `json:"session_dir" yaml:"session_dir" toml:"session_dir"`

	Budget    window.Budget `json:"budget" yaml:"budget" toml:"budget"`
	RateLimit RateLimit     `json:"rate_limit" yaml:"rate_limit" toml:"rate_limit"`
	Retry     Retry         `json:"retry" yaml:"retry" toml:"retry"`
	Tokenizer Tokenizer     `json:"tokenizer" yaml:"tokenizer" toml:"tokenizer"`
}

// Default returns the configuration used when no file is present:
// o1-preview limits, 60 calls per minute, and the default retry policy.
func Default() Config {
	return Config{
		Model:      "o1-preview",
		SessionDir: "sessions",
		Budget: window.Budget{
			MaxContextTokens:  128000,
			MaxResponseTokens: 32768,
		},
		RateLimit: RateLimit{
			MaxCalls: 60,
			Period:   Duration(time.Minute),
		},
		Retry: Retry{
			MaxAttempts: 5,
			BaseDelay:   Duration(4 * time.Second),
			Multiplier:  2,
			MaxDelay:    Duration(60 * time.Second),
		},
	}
}

// Load reads a config file, layered over Default. The format is chosen
// by extension: .toml, or .yaml/.yml.
func Load(path string) (Config, error) {
	cfg := Default()

	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		return cfg, fmt.Errorf("config: unsupported extension %q (want .toml, .yaml, or .yml)", filepath.Ext(path))
	}

	return cfg, cfg.Validate()
}

// LoadFromEnv overrides fields from CHATGPTGUI_* environment variables.
// Set variables take precedence over file values.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv("CHATGPTGUI_MODEL"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("CHATGPTGUI_CALLER"); v != "" {
		c.Caller = v
	}
	if v := os.Getenv("CHATGPTGUI_SYSTEM_PROMPT"); v != "" {
		c.SystemPrompt = v
	}
	if v := os.Getenv("CHATGPTGUI_SESSION_DIR"); v != "" {
		c.SessionDir = v
	}
	if v := os.Getenv("CHATGPTGUI_MAX_CONTEXT_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Budget.MaxContextTokens = n
		}
	}
	if v := os.Getenv("CHATGPTGUI_MAX_RESPONSE_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Budget.MaxResponseTokens = n
		}
	}
	if v := os.Getenv("CHATGPTGUI_RATE_LIMIT_MAX_CALLS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateLimit.MaxCalls = n
		}
	}
	if v := os.Getenv("CHATGPTGUI_RATE_LIMIT_PERIOD"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.RateLimit.Period = Duration(d)
		}
	}
	if v := os.Getenv("CHATGPTGUI_RETRY_MAX_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Retry.MaxAttempts = n
		}
	}
}

// Validate checks all cross-field invariants.
func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("config: model is required")
	}
	if err := c.Budget.Validate(); err != nil {
		return err
	}
	if c.RateLimit.MaxCalls <= 0 {
		return fmt.Errorf("config: rate_limit.max_calls must be positive, got %d", c.RateLimit.MaxCalls)
	}
	if c.RateLimit.Period <= 0 {
		return fmt.Errorf("config: rate_limit.period must be positive, got %v", c.RateLimit.Period.Std())
	}
	if err := c.Retry.ToPolicy().Validate(); err != nil {
		return err
	}
	if c.Tokenizer.CharsPerToken < 0 {
		return fmt.Errorf("config: tokenizer.chars_per_token must be >= 0, got %v", c.Tokenizer.CharsPerToken)
	}
	return nil
}
