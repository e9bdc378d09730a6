package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	v *viper.Viper
}

// New creates a new configuration instance
func New() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/inbox-cleanup-agent/")
	v.AddConfigPath("$HOME/.inbox-cleanup-agent")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Set defaults
	setDefaults(v)

	// Environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("INBOX_CLEANUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found, using defaults
	}

	return &Config{v: v}, nil
}

// NewFromViper creates a new configuration instance from an existing Viper instance
func NewFromViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// NewEmptyViper creates a new Viper instance with defaults
func NewEmptyViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

// setDefaults sets the default configuration values
func setDefaults(v *viper.Viper) {
	// LLM provider defaults
	v.SetDefault("llm.provider", "openai")

	// OpenAI defaults
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.model_name", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("openai.temperature", 0.1)
	v.SetDefault("openai.top_p", 0.9)

	// Bedrock defaults
	v.SetDefault("bedrock.region", "us-east-1")
	v.SetDefault("bedrock.model_id", "anthropic.claude-3-haiku-20240307-v1:0")
	v.SetDefault("bedrock.max_tokens", 500)
	v.SetDefault("bedrock.temperature", 0.1)
	v.SetDefault("bedrock.top_p", 0.9)

	// Gemini defaults
	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model_name", "gemini-pro")
	v.SetDefault("gemini.max_tokens", 500)
	v.SetDefault("gemini.temperature", 0.1)
	v.SetDefault("gemini.top_p", 0.9)

	// Microsoft Graph defaults
	v.SetDefault("graph.base_url", "https://graph.microsoft.com/v1.0")
	v.SetDefault("graph.access_token", "")
	v.SetDefault("graph.request_timeout_secs", 30)

	// Telegram defaults
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", 0)

	// Bot defaults
	v.SetDefault("bot.transport", "telegram")
	v.SetDefault("bot.analyze_limit", 100)
	v.SetDefault("bot.inbox_tag", "other")

	// Agent defaults
	v.SetDefault("agents.vip_addresses", []string{})
	v.SetDefault("agents.preview_max_size", 300)

	// Backup defaults
	v.SetDefault("backup.type", "file")
	v.SetDefault("backup.dir", "email_backups")
	v.SetDefault("backup.sqlite_path", "/data/email_backups.db")
	v.SetDefault("backup.mysql_dsn", "user:password@tcp(localhost:3306)/inbox_cleanup")

	// Cache defaults
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.cleanup_frequency", "1h")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// GetString gets a string value from the configuration
func (c *Config) GetString(key string) string {
	return c.v.GetString(key)
}

// GetInt gets an integer value from the configuration
func (c *Config) GetInt(key string) int {
	return c.v.GetInt(key)
}

// GetInt64 gets an int64 value from the configuration
func (c *Config) GetInt64(key string) int64 {
	return c.v.GetInt64(key)
}

// GetFloat64 gets a float64 value from the configuration
func (c *Config) GetFloat64(key string) float64 {
	return c.v.GetFloat64(key)
}

// GetBool gets a boolean value from the configuration
func (c *Config) GetBool(key string) bool {
	return c.v.GetBool(key)
}

// GetStringSlice gets a string slice value from the configuration
func (c *Config) GetStringSlice(key string) []string {
	return c.v.GetStringSlice(key)
}

// GetDuration gets a duration value from the configuration
func (c *Config) GetDuration(key string) (time.Duration, error) {
	return time.ParseDuration(c.GetString(key))
}

// GetViper returns the underlying Viper instance
func (c *Config) GetViper() *viper.Viper {
	return c.v
}

// Validate checks the configuration for fatal startup errors: missing
// credentials for the selected LLM provider, missing Graph token, and a
// missing Telegram token when the telegram transport is selected.
func (c *Config) Validate() error {
	switch provider := c.GetString("llm.provider"); provider {
	case "openai":
		if c.GetString("openai.api_key") == "" {
			return fmt.Errorf("openai.api_key is required when llm.provider is openai")
		}
	case "gemini":
		if c.GetString("gemini.api_key") == "" {
			return fmt.Errorf("gemini.api_key is required when llm.provider is gemini")
		}
	case "bedrock":
		// Credentials come from the AWS default chain
	default:
		return fmt.Errorf("unsupported LLM provider: %s", provider)
	}

	if c.GetString("graph.access_token") == "" {
		return fmt.Errorf("graph.access_token is required")
	}

	switch transport := c.GetString("bot.transport"); transport {
	case "telegram":
		if c.GetString("telegram.bot_token") == "" {
			return fmt.Errorf("telegram.bot_token is required when bot.transport is telegram")
		}
		if c.GetInt64("telegram.chat_id") == 0 {
			return fmt.Errorf("telegram.chat_id is required when bot.transport is telegram")
		}
	case "console":
	default:
		return fmt.Errorf("unsupported bot transport: %s", transport)
	}

	return nil
}
