package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v6"
)

type LLMProvider string

const (
	ProviderOpenAI LLMProvider = "openai"
	ProviderYandex LLMProvider = "yandex"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port   int    `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"production"`

	// LLM settings
	LLMProvider      LLMProvider `env:"LLM_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey     string      `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string      `env:"OPENAI_BASE_URL"`
	OpenAIModel      string      `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	YandexOAuthToken string      `env:"YANDEX_OAUTH_TOKEN"`
	YandexFolderID   string      `env:"YANDEX_FOLDER_ID"`

	// OpenRouter (optional)
	OpenRouterReferrer string `env:"OPENROUTER_REFERRER"`
	OpenRouterTitle    string `env:"OPENROUTER_TITLE"`

	// Sampling
	MaxTokens        int     `env:"LLM_MAX_TOKENS" envDefault:"100"`
	Temperature      float64 `env:"LLM_TEMPERATURE" envDefault:"0.5"`
	PresencePenalty  float64 `env:"LLM_PRESENCE_PENALTY" envDefault:"0.6"`
	FrequencyPenalty float64 `env:"LLM_FREQUENCY_PENALTY" envDefault:"0.5"`

	// Sessions
	MaxMessages        int           `env:"SESSION_MAX_MESSAGES" envDefault:"10"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	SweepInterval      time.Duration `env:"SESSION_SWEEP_INTERVAL" envDefault:"5m"`

	// Storage
	TurnLogPath string `env:"TURN_LOG_PATH" envDefault:"logs/turns.jsonl"`

	// Static front-end
	StaticDir string `env:"STATIC_DIR" envDefault:"web"`
}

func New() *Config {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	return cfg
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == EnvDevelopment }
