package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.AI.Provider = ProviderGrok
	cfg.Supabase.ServiceRoleKey = "service-role"
	cfg.Supabase.URL = "https://project.supabase.co"
	cfg.Grok.APIKey = "grok-key"
	cfg.Mail.APIKey = "re_key"
	cfg.Cron.Secret = "cron-secret"
	cfg.App.URL = "https://stocksummaries.app"
	return cfg
}

func TestValidate(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	t.Run("lists every missing variable", func(t *testing.T) {
		cfg := validConfig()
		cfg.Mail.APIKey = ""
		cfg.Cron.Secret = "  "
		cfg.App.URL = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "RESEND_API_KEY")
		assert.Contains(t, err.Error(), "CRON_SECRET")
		assert.Contains(t, err.Error(), "APP_URL")
		assert.NotContains(t, err.Error(), "GROK_API_KEY")
	})

	t.Run("gemini provider needs gemini key", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.Provider = ProviderGemini
		cfg.Grok.APIKey = ""

		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GEMINI_API_KEY")

		cfg.Gemini.APIKey = "gemini-key"
		assert.NoError(t, cfg.Validate())
	})

	t.Run("unknown provider", func(t *testing.T) {
		cfg := validConfig()
		cfg.AI.Provider = "llama"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoad_DefaultsAndEnv(t *testing.T) {
	t.Setenv("CRON_SECRET", "from-env")
	t.Setenv("GROK_API_KEY", "grok-env")
	t.Setenv("APP_URL", "https://example.test")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Cron.Secret)
	assert.Equal(t, "grok-env", cfg.Grok.APIKey)
	assert.Equal(t, "https://example.test", cfg.App.URL)
	assert.Equal(t, ProviderGrok, cfg.AI.Provider)
	assert.Equal(t, "https://api.x.ai/v1", cfg.Grok.BaseURL)
	assert.Equal(t, "grok-4-fast-reasoning", cfg.Grok.Model)
	assert.InDelta(t, 0.3, cfg.Grok.Temperature, 1e-9)
	assert.Equal(t, 300*time.Second, cfg.Digest.CronTimeout)
	assert.Equal(t, 120*time.Second, cfg.Digest.SendTimeout)
	assert.False(t, cfg.Digest.DeduplicateSlot)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("app:\n  env: production\nai:\n  provider: Gemini\ndigest:\n  deduplicate_slot: true\n")
	require.NoError(t, os.WriteFile(path, content, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.True(t, cfg.Digest.DeduplicateSlot)
	assert.Equal(t, "Stock Summaries <digest@stocksummaries.app>", cfg.SenderAddress())
}

func TestSenderAddress_NonProduction(t *testing.T) {
	cfg := validConfig()
	cfg.App.Env = "development"
	cfg.Mail.From = "prod@example.test"
	cfg.Mail.DevFrom = "dev@example.test"

	assert.Equal(t, "dev@example.test", cfg.SenderAddress())
}
