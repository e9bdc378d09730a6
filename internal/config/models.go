package config

// LLMConfig represents the configuration for the LLM provider
type LLMConfig struct {
	Provider string
}

// OpenAIConfig represents the configuration for OpenAI
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// BedrockConfig represents the configuration for Amazon Bedrock
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GeminiConfig represents the configuration for Google Gemini
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float32
	TopP        float32
}

// GraphConfig represents the configuration for the Microsoft Graph mailbox
type GraphConfig struct {
	BaseURL            string
	AccessToken        string
	RequestTimeoutSecs int
}

// TelegramConfig represents the configuration for the Telegram transport
type TelegramConfig struct {
	BotToken string
	ChatID   int64
}

// BotConfig represents the approval-bot configuration
type BotConfig struct {
	Transport    string
	AnalyzeLimit int
	InboxTag     string
}

// AgentsConfig represents the scoring-agent configuration
type AgentsConfig struct {
	VIPAddresses   []string
	PreviewMaxSize int
}

// BackupConfig represents the backup-store configuration
type BackupConfig struct {
	Type       string
	Dir        string
	SQLitePath string
	MySQLDSN   string
}

// GetLLM returns the LLM configuration
func (c *Config) GetLLM() LLMConfig {
	return LLMConfig{
		Provider: c.GetString("llm.provider"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: float32(c.GetFloat64("openai.temperature")),
		TopP:        float32(c.GetFloat64("openai.top_p")),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: float32(c.GetFloat64("bedrock.temperature")),
		TopP:        float32(c.GetFloat64("bedrock.top_p")),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: float32(c.GetFloat64("gemini.temperature")),
		TopP:        float32(c.GetFloat64("gemini.top_p")),
	}
}

// GetGraph returns the Microsoft Graph configuration
func (c *Config) GetGraph() GraphConfig {
	return GraphConfig{
		BaseURL:            c.GetString("graph.base_url"),
		AccessToken:        c.GetString("graph.access_token"),
		RequestTimeoutSecs: c.GetInt("graph.request_timeout_secs"),
	}
}

// GetTelegram returns the Telegram configuration
func (c *Config) GetTelegram() TelegramConfig {
	return TelegramConfig{
		BotToken: c.GetString("telegram.bot_token"),
		ChatID:   c.GetInt64("telegram.chat_id"),
	}
}

// GetBot returns the approval-bot configuration
func (c *Config) GetBot() BotConfig {
	return BotConfig{
		Transport:    c.GetString("bot.transport"),
		AnalyzeLimit: c.GetInt("bot.analyze_limit"),
		InboxTag:     c.GetString("bot.inbox_tag"),
	}
}

// GetAgents returns the scoring-agent configuration
func (c *Config) GetAgents() AgentsConfig {
	return AgentsConfig{
		VIPAddresses:   c.GetStringSlice("agents.vip_addresses"),
		PreviewMaxSize: c.GetInt("agents.preview_max_size"),
	}
}

// GetBackup returns the backup-store configuration
func (c *Config) GetBackup() BackupConfig {
	return BackupConfig{
		Type:       c.GetString("backup.type"),
		Dir:        c.GetString("backup.dir"),
		SQLitePath: c.GetString("backup.sqlite_path"),
		MySQLDSN:   c.GetString("backup.mysql_dsn"),
	}
}
