package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "o1-preview", cfg.Model)
	assert.Equal(t, 128000, cfg.Budget.MaxContextTokens)
	assert.Equal(t, 32768, cfg.Budget.MaxResponseTokens)
	assert.Equal(t, 60, cfg.RateLimit.MaxCalls)
	assert.Equal(t, time.Minute, cfg.RateLimit.Period.Std())
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
model = "gpt-4"
caller = "openai"
session_dir = "/tmp/sessions"

[budget]
max_context_tokens = 8192
max_response_tokens = 1024

[rate_limit]
max_calls = 10
period = "30s"

[retry]
max_attempts = 3
base_delay = "2s"
multiplier = 1.5
max_delay = "20s"
jitter = true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-4", cfg.Model)
	assert.Equal(t, "openai", cfg.Caller)
	assert.Equal(t, 8192, cfg.Budget.MaxContextTokens)
	assert.Equal(t, 10, cfg.RateLimit.MaxCalls)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Period.Std())

	policy := cfg.Retry.ToPolicy()
	assert.Equal(t, 3, policy.MaxAttempts)
	assert.Equal(t, 2*time.Second, policy.BaseDelay)
	assert.Equal(t, 1.5, policy.Multiplier)
	assert.True(t, policy.Jitter)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
model: gpt-3.5-turbo
budget:
  max_context_tokens: 16385
  max_response_tokens: 4096
rate_limit:
  max_calls: 20
  period: 1m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gpt-3.5-turbo", cfg.Model)
	assert.Equal(t, 16385, cfg.Budget.MaxContextTokens)
	assert.Equal(t, 20, cfg.RateLimit.MaxCalls)
	assert.Equal(t, time.Minute, cfg.RateLimit.Period.Std())

	// Unset sections keep their defaults.
	assert.Equal(t, 5, cfg.Retry.MaxAttempts)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "config.ini", "model=x")
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
		assert.Error(t, err)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := writeFile(t, "config.toml", `
model = "gpt-4"

[budget]
max_context_tokens = 100
max_response_tokens = 100
`)
		_, err := Load(path)
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeFile(t, "config.toml", "model = [broken")
		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CHATGPTGUI_MODEL", "env-model")
	t.Setenv("CHATGPTGUI_MAX_CONTEXT_TOKENS", "4096")
	t.Setenv("CHATGPTGUI_RATE_LIMIT_MAX_CALLS", "7")
	t.Setenv("CHATGPTGUI_RATE_LIMIT_PERIOD", "90s")

	cfg := Default()
	cfg.LoadFromEnv()

	assert.Equal(t, "env-model", cfg.Model)
	assert.Equal(t, 4096, cfg.Budget.MaxContextTokens)
	assert.Equal(t, 7, cfg.RateLimit.MaxCalls)
	assert.Equal(t, 90*time.Second, cfg.RateLimit.Period.Std())
}

func TestLoadFromEnv_IgnoresInvalid(t *testing.T) {
	t.Setenv("CHATGPTGUI_MAX_CONTEXT_TOKENS", "not-a-number")

	cfg := Default()
	cfg.LoadFromEnv()
	assert.Equal(t, 128000, cfg.Budget.MaxContextTokens)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default valid", func(*Config) {}, false},
		{"missing model", func(c *Config) { c.Model = "" }, true},
		{"zero rate limit calls", func(c *Config) { c.RateLimit.MaxCalls = 0 }, true},
		{"zero rate limit period", func(c *Config) { c.RateLimit.Period = 0 }, true},
		{"zero retry attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, true},
		{"negative chars per token", func(c *Config) { c.Tokenizer.CharsPerToken = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
