package config

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"imageprompt/pkg/inference"
)

// Config holds runtime settings. API keys are secrets and are never logged.
type Config struct {
	Provider       string        `mapstructure:"provider"`
	APIKey         string        `mapstructure:"openai_api_key"`
	GrokAPIKey     string        `mapstructure:"grok_api_key"`
	MoonshotAPIKey string        `mapstructure:"moonshot_api_key"`
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	Model          string        `mapstructure:"model"`
	BaseURL        string        `mapstructure:"base_url"`
	Port           string        `mapstructure:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxUploadSize  string        `mapstructure:"max_upload_size"`
	MaxTokens      int64         `mapstructure:"max_tokens"`
	StrictDescribe bool          `mapstructure:"strict_describe"`
	LogLevel       string        `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("provider", inference.ProviderOpenAI)
	v.SetDefault("openai_api_key", "")
	v.SetDefault("grok_api_key", "")
	v.SetDefault("moonshot_api_key", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("model", "")
	v.SetDefault("base_url", "")
	v.SetDefault("port", "8080")
	v.SetDefault("allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("request_timeout", 60*time.Second)
	v.SetDefault("max_upload_size", "10M")
	v.SetDefault("max_tokens", inference.DefaultMaxTokens)
	v.SetDefault("strict_describe", false)
	v.SetDefault("log_level", "info")
}

// Load resolves configuration from defaults, an optional YAML file, the
// environment and flags, in increasing precedence. An explicit cfgFile must
// exist; the default ./imageprompt.yaml is optional.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("imageprompt")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	return &cfg, nil
}

// ProviderAPIKey returns the provider's own key, such as GROK_API_KEY for
// grok, falling back to OPENAI_API_KEY.
func (c *Config) ProviderAPIKey() string {
	var key string
	switch c.Provider {
	case inference.ProviderGrok:
		key = c.GrokAPIKey
	case inference.ProviderMoonshot:
		key = c.MoonshotAPIKey
	case inference.ProviderGemini:
		key = c.GeminiAPIKey
	}
	return cmp.Or(key, c.APIKey)
}

func keyEnv(provider string) string {
	switch provider {
	case inference.ProviderGrok, inference.ProviderMoonshot, inference.ProviderGemini:
		return strings.ToUpper(provider) + "_API_KEY or OPENAI_API_KEY"
	}
	return "OPENAI_API_KEY"
}

// Validate checks settings needed before talking to a provider. A missing
// key is accepted only with an explicit base URL, for local model servers.
func (c *Config) Validate() error {
	if c.ProviderAPIKey() == "" && c.BaseURL == "" {
		return fmt.Errorf("%s is required (or set BASE_URL for a local server)", keyEnv(c.Provider))
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be positive, got %d", c.MaxTokens)
	}
	return nil
}

// InferenceOptions maps the config onto describer options.
func (c *Config) InferenceOptions() inference.Options {
	return inference.Options{
		Provider:  c.Provider,
		APIKey:    c.ProviderAPIKey(),
		Model:     c.Model,
		BaseURL:   c.BaseURL,
		MaxTokens: c.MaxTokens,
		Timeout:   c.RequestTimeout,
	}
}

// Level parses LogLevel, falling back to info.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}
