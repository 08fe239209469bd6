package config

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-digest/pkg/config"
)

// AI providers.
const (
	ProviderGrok   = "grok"
	ProviderGemini = "gemini"
)

// AI selects the research provider.
type AI struct {
	Provider string `mapstructure:"provider"`
}

// Grok holds the OpenAI-compatible x.ai settings.
type Grok struct {
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// Gemini holds the Google GenAI settings.
type Gemini struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// Mail holds the transactional email settings.
type Mail struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	From    string `mapstructure:"from"`
	DevFrom string `mapstructure:"dev_from"`
}

// Supabase holds the auth/storage backend settings.
type Supabase struct {
	URL            string `mapstructure:"url"`
	ServiceRoleKey string `mapstructure:"service_role_key"`
}

// Cron holds the shared secret for the cron endpoint.
type Cron struct {
	Secret string `mapstructure:"secret"`
}

// Auth holds session verification settings.
type Auth struct {
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Digest holds orchestration settings.
type Digest struct {
	CronTimeout     time.Duration `mapstructure:"cron_timeout"`
	SendTimeout     time.Duration `mapstructure:"send_timeout"`
	DeduplicateSlot bool          `mapstructure:"deduplicate_slot"`
}

// Headlines configures the optional RSS headline context for prompts.
type Headlines struct {
	Enabled     bool   `mapstructure:"enabled"`
	URLTemplate string `mapstructure:"url_template"`
	MaxItems    int    `mapstructure:"max_items"`
}

// Research holds research prompt settings.
type Research struct {
	Headlines Headlines `mapstructure:"headlines"`
}

// Telegram holds operator notification settings. An empty token disables it.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// RateLimit bounds requests per client IP on the API group.
type RateLimit struct {
	Rate  float64 `mapstructure:"rate"`
	Burst int     `mapstructure:"burst"`
}

// Trigger configures the external cron trigger process.
type Trigger struct {
	URL     string        `mapstructure:"url"`
	Spec    string        `mapstructure:"spec"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Config holds the full configuration for the digest service.
type Config struct {
	App       config.App      `mapstructure:"app"`
	Logger    config.Logger   `mapstructure:"logger"`
	Database  config.Database `mapstructure:"database"`
	Redis     config.Redis    `mapstructure:"redis"`
	API       config.API      `mapstructure:"api"`
	AI        AI              `mapstructure:"ai"`
	Grok      Grok            `mapstructure:"grok"`
	Gemini    Gemini          `mapstructure:"gemini"`
	Mail      Mail            `mapstructure:"mail"`
	Supabase  Supabase        `mapstructure:"supabase"`
	Cron      Cron            `mapstructure:"cron"`
	Auth      Auth            `mapstructure:"auth"`
	Digest    Digest          `mapstructure:"digest"`
	Research  Research        `mapstructure:"research"`
	Telegram  Telegram        `mapstructure:"telegram"`
	RateLimit RateLimit       `mapstructure:"rate_limit"`
	Trigger   Trigger         `mapstructure:"trigger"`
}

var envBindings = map[string]string{
	"supabase.url":              "SUPABASE_URL",
	"supabase.service_role_key": "SUPABASE_SERVICE_ROLE_KEY",
	"grok.api_key":              "GROK_API_KEY",
	"gemini.api_key":            "GEMINI_API_KEY",
	"mail.api_key":              "RESEND_API_KEY",
	"cron.secret":               "CRON_SECRET",
	"app.url":                   "APP_URL",
	"app.env":                   "APP_ENV",
	"telegram.bot_token":        "TELEGRAM_BOT_TOKEN",
	"telegram.chat_id":          "TELEGRAM_CHAT_ID",
	"database.host":             "DB_HOST",
	"database.port":             "DB_PORT",
	"database.user":             "DB_USER",
	"database.password":         "DB_PASSWORD",
	"database.name":             "DB_NAME",
	"database.ssl_mode":         "DB_SSL_MODE",
	"redis.host":                "REDIS_HOST",
	"redis.port":                "REDIS_PORT",
	"redis.password":            "REDIS_PASSWORD",
	"trigger.url":               "TRIGGER_URL",
}

var defaults = map[string]interface{}{
	"app.name":                        "stock-digest",
	"app.env":                         "development",
	"app.version":                     "1.0.0",
	"logger.level":                    "info",
	"logger.encoding":                 "json",
	"database.port":                   5432,
	"database.ssl_mode":               "disable",
	"database.time_zone":              "UTC",
	"database.max_idle_conns":         5,
	"database.max_open_conns":         20,
	"database.conn_max_lifetime":      "30m",
	"database.log_level":              "silent",
	"redis.port":                      6379,
	"redis.db":                        0,
	"redis.pool_size":                 10,
	"api.host":                        "0.0.0.0",
	"api.port":                        8080,
	"ai.provider":                     ProviderGrok,
	"grok.base_url":                   "https://api.x.ai/v1",
	"grok.model":                      "grok-4-fast-reasoning",
	"grok.temperature":                0.3,
	"gemini.model":                    "gemini-2.5-flash",
	"gemini.temperature":              0.3,
	"mail.from":                       "Stock Summaries <digest@stocksummaries.app>",
	"mail.dev_from":                   "Stock Summaries <onboarding@resend.dev>",
	"auth.cache_ttl":                  "5m",
	"digest.cron_timeout":             "300s",
	"digest.send_timeout":             "120s",
	"digest.deduplicate_slot":         false,
	"research.headlines.enabled":      false,
	"research.headlines.url_template": "https://feeds.finance.yahoo.com/rss/2.0/headline?s=%s&region=US&lang=en-US",
	"research.headlines.max_items":    5,
	"rate_limit.rate":                 10,
	"rate_limit.burst":                20,
	"trigger.url":                     "http://localhost:8080/api/cron",
	"trigger.spec":                    "*/15 * * * *",
	"trigger.timeout":                 "310s",
}

// Load loads the digest service configuration from the given path and the
// environment.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg, envBindings, defaults); err != nil {
		return nil, err
	}
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	return &cfg, nil
}

// Validate reports every required credential that is missing, by its
// environment variable name.
func (c *Config) Validate() error {
	var missing []string
	check := func(value, env string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, env)
		}
	}

	check(c.Supabase.ServiceRoleKey, "SUPABASE_SERVICE_ROLE_KEY")
	switch c.AI.Provider {
	case ProviderGemini:
		check(c.Gemini.APIKey, "GEMINI_API_KEY")
	case ProviderGrok, "":
		check(c.Grok.APIKey, "GROK_API_KEY")
	default:
		return fmt.Errorf("unknown ai provider %q", c.AI.Provider)
	}
	check(c.Mail.APIKey, "RESEND_API_KEY")
	check(c.Cron.Secret, "CRON_SECRET")
	check(c.Supabase.URL, "SUPABASE_URL")
	check(c.App.URL, "APP_URL")

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// SenderAddress returns the from address for the current environment.
func (c *Config) SenderAddress() string {
	if c.App.IsProduction() {
		return c.Mail.From
	}
	return c.Mail.DevFrom
}
