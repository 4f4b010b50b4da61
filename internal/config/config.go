package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Store     StoreConfig     `yaml:"store" mapstructure:"store"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	Scrape    ScrapeConfig    `yaml:"scrape" mapstructure:"scrape"`
	Chat      ChatConfig      `yaml:"chat" mapstructure:"chat"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	Driver      string `yaml:"driver" mapstructure:"driver"`
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
	SQLitePath  string `yaml:"sqlite_path" mapstructure:"sqlite_path"`
}

// OpenAIConfig holds OpenAI-compatible chat-completions settings.
type OpenAIConfig struct {
	Key         string  `yaml:"key" mapstructure:"key"`
	BaseURL     string  `yaml:"base_url" mapstructure:"base_url"`
	Model       string  `yaml:"model" mapstructure:"model"`
	MaxTokens   int     `yaml:"max_tokens" mapstructure:"max_tokens"`
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key       string `yaml:"key" mapstructure:"key"`
	Model     string `yaml:"model" mapstructure:"model"`
	MaxTokens int64  `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// LLMConfig selects the hosted model provider.
type LLMConfig struct {
	Provider string `yaml:"provider" mapstructure:"provider"` // "openai" or "anthropic"
}

// ScrapeConfig configures the site snapshot crawler.
type ScrapeConfig struct {
	BaseURL            string  `yaml:"base_url" mapstructure:"base_url"`
	InsecureSkipVerify bool    `yaml:"insecure_skip_verify" mapstructure:"insecure_skip_verify"`
	TimeoutSecs        int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxPagesPerLang    int     `yaml:"max_pages_per_lang" mapstructure:"max_pages_per_lang"`
	RequestsPerSecond  float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	MaxConcurrent      int     `yaml:"max_concurrent" mapstructure:"max_concurrent"`
	CacheTTLHours      int     `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
	UserAgent          string  `yaml:"user_agent" mapstructure:"user_agent"`
}

// ChatConfig configures conversation behavior.
type ChatConfig struct {
	HistoryWindow int `yaml:"history_window" mapstructure:"history_window"`
}

// ServerConfig configures the chat API server.
type ServerConfig struct {
	Port           int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("JEPCO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "supportbot.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o")
	v.SetDefault("openai.max_tokens", 500)
	v.SetDefault("openai.temperature", 0.7)
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("anthropic.max_tokens", 500)
	v.SetDefault("scrape.base_url", "https://www.jepco.com.jo")
	// The utility site serves a broken certificate chain; scraping it requires
	// skipping verification unless a deployment fronts it with a proxy.
	v.SetDefault("scrape.insecure_skip_verify", true)
	v.SetDefault("scrape.timeout_secs", 15)
	v.SetDefault("scrape.max_pages_per_lang", 10)
	v.SetDefault("scrape.requests_per_second", 2)
	v.SetDefault("scrape.max_concurrent", 4)
	v.SetDefault("scrape.cache_ttl_hours", 24)
	v.SetDefault("scrape.user_agent", "Mozilla/5.0 (compatible; JepcoSupportBot/1.0)")
	v.SetDefault("chat.history_window", 6)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the settings required for chat commands are present.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "openai":
		if c.OpenAI.Key == "" {
			return eris.New("config: openai.key is required (set JEPCO_OPENAI_KEY or openai.key in config.yaml)")
		}
	case "anthropic":
		if c.Anthropic.Key == "" {
			return eris.New("config: anthropic.key is required (set JEPCO_ANTHROPIC_KEY or anthropic.key in config.yaml)")
		}
	default:
		return eris.Errorf("config: unknown llm.provider %q (want openai or anthropic)", c.LLM.Provider)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
