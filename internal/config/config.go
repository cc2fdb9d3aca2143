package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DefaultPort         = 3001
	DefaultModel        = "gpt-3.5-turbo"
	DefaultBaseURL      = "https://api.openai.com/v1"
	DefaultMaxBodyBytes = 1 << 20 // 1 MiB
	DefaultLogLevel     = "INFO"
)

// Config keys. They double as environment variable names (upper-cased).
const (
	KeyPort         = "port"
	KeyOpenAIKey    = "openai_api_key"
	KeyOpenAIModel  = "openai_model"
	KeyOpenAIBase   = "openai_base_url"
	KeyMaxBodyBytes = "max_body_bytes"
	KeyLogLevel     = "log_level"
)

type Config struct {
	Port         int    `mapstructure:"port"`
	OpenAIKey    string `mapstructure:"openai_api_key"`
	OpenAIModel  string `mapstructure:"openai_model"`
	OpenAIBase   string `mapstructure:"openai_base_url"`
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
	LogLevel     string `mapstructure:"log_level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Port:         DefaultPort,
		OpenAIModel:  DefaultModel,
		OpenAIBase:   DefaultBaseURL,
		MaxBodyBytes: DefaultMaxBodyBytes,
		LogLevel:     DefaultLogLevel,
	}
}

// SetDefaults registers default values with viper and turns on env lookup.
func SetDefaults() {
	d := Default()

	viper.SetDefault(KeyPort, d.Port)
	viper.SetDefault(KeyOpenAIKey, d.OpenAIKey)
	viper.SetDefault(KeyOpenAIModel, d.OpenAIModel)
	viper.SetDefault(KeyOpenAIBase, d.OpenAIBase)
	viper.SetDefault(KeyMaxBodyBytes, d.MaxBodyBytes)
	viper.SetDefault(KeyLogLevel, d.LogLevel)

	viper.AutomaticEnv()
}

// LoadDotEnv reads .env files into the process environment.
// Variables already set in the environment win; a missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load merges .env, environment and any flags bound to viper into a Config.
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}
	SetDefaults()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// empty env values should not wipe out defaults
	if strings.TrimSpace(cfg.OpenAIModel) == "" {
		cfg.OpenAIModel = DefaultModel
	}
	if strings.TrimSpace(cfg.OpenAIBase) == "" {
		cfg.OpenAIBase = DefaultBaseURL
	}
	cfg.OpenAIBase = strings.TrimRight(cfg.OpenAIBase, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
