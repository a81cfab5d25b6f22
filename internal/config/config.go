package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	DefaultPort          = 5050
	DefaultLLMBaseURL    = "https://api.deepseek.com/v1"
	DefaultLLMModel      = "deepseek-chat"
	DefaultTemperature   = 0.3
	DefaultBodyLimit     = 1024 * 1024
	DefaultEvaluationTTL = 24 * time.Hour
)

type Config struct {
	Server    ServerConfig
	LLM       LLMConfig
	Logger    LoggerConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Extractor ExtractorConfig
}

type ServerConfig struct {
	Port      int
	BodyLimit int
}

// LLMConfig configures the OpenAI-compatible chat endpoint (DeepSeek by default)
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	// Temperature is nil when unset; an explicit 0 is kept.
	Temperature *float64
}

type LoggerConfig struct {
	Level string
	Env   string
}

// RedisConfig is optional; an empty Address disables the evaluation cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type CacheConfig struct {
	EvaluationTTL time.Duration
}

type ExtractorConfig struct {
	UserAgent string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.body_limit", DefaultBodyLimit)
	v.SetDefault("llm.base_url", DefaultLLMBaseURL)
	v.SetDefault("llm.model", DefaultLLMModel)
	v.SetDefault("llm.temperature", DefaultTemperature)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("redis.db", 0)
	v.SetDefault("cache.evaluation_ttl", DefaultEvaluationTTL)
	v.SetDefault("extractor.user_agent", "tudman/1.0")
}

func bindEnv(v *viper.Viper) error {
	bindings := map[string]string{
		"server.port":          "PORT",
		"server.body_limit":    "SERVER_BODY_LIMIT",
		"llm.api_key":          "DEEPSEEK_API_KEY",
		"llm.base_url":         "DEEPSEEK_BASE_URL",
		"llm.model":            "DEEPSEEK_MODEL",
		"llm.temperature":      "DEEPSEEK_TEMPERATURE",
		"logger.level":         "LOG_LEVEL",
		"logger.env":           "ENV",
		"redis.address":        "REDIS_ADDRESS",
		"redis.password":       "REDIS_PASSWORD",
		"redis.db":             "REDIS_DB",
		"cache.evaluation_ttl": "EVALUATION_CACHE_TTL",
		"extractor.user_agent": "EXTRACTOR_USER_AGENT",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, env); err != nil {
			return fmt.Errorf("failed to bind %s to %s: %w", key, env, err)
		}
	}
	return nil
}

// LoadConfig reads .env (when present), an optional config.yaml and the
// environment, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:      v.GetInt("server.port"),
			BodyLimit: v.GetInt("server.body_limit"),
		},
		LLM: LLMConfig{
			APIKey:      v.GetString("llm.api_key"),
			BaseURL:     strings.TrimRight(v.GetString("llm.base_url"), "/"),
			Model:       v.GetString("llm.model"),
			Temperature: lo.ToPtr(v.GetFloat64("llm.temperature")),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Cache: CacheConfig{
			EvaluationTTL: v.GetDuration("cache.evaluation_ttl"),
		},
		Extractor: ExtractorConfig{
			UserAgent: v.GetString("extractor.user_agent"),
		},
	}
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return errors.New("missing DEEPSEEK_API_KEY")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("invalid body limit: %d", c.Server.BodyLimit)
	}
	if c.Cache.EvaluationTTL < 0 {
		return fmt.Errorf("invalid evaluation cache TTL: %s", c.Cache.EvaluationTTL)
	}
	return nil
}

// CacheEnabled reports whether a Redis address was configured
func (c *Config) CacheEnabled() bool {
	return c.Redis.Address != ""
}
