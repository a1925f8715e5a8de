package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PROVIDER", "OPENAI_API_KEY", "GROK_API_KEY", "MOONSHOT_API_KEY", "GEMINI_API_KEY", "MODEL", "BASE_URL", "PORT", "ALLOWED_ORIGINS",
		"REQUEST_TIMEOUT", "MAX_UPLOAD_SIZE", "MAX_TOKENS", "STRICT_DESCRIBE", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Port != "8080" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:3000" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.MaxTokens != 500 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
	if cfg.MaxUploadSize != "10M" {
		t.Errorf("MaxUploadSize = %q", cfg.MaxUploadSize)
	}
	if cfg.StrictDescribe {
		t.Error("StrictDescribe should default to false")
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoadEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PROVIDER", " Grok ")
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("REQUEST_TIMEOUT", "15s")
	t.Setenv("MAX_TOKENS", "250")
	t.Setenv("STRICT_DESCRIBE", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIKey != "sk-test" {
		t.Errorf("APIKey not read from env")
	}
	if cfg.Provider != "grok" {
		t.Errorf("Provider = %q", cfg.Provider)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
	if cfg.MaxTokens != 250 {
		t.Errorf("MaxTokens = %d", cfg.MaxTokens)
	}
	if !cfg.StrictDescribe {
		t.Error("StrictDescribe not read from env")
	}
	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v", cfg.Level())
	}
}

func TestLoadFileAndFlags(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "provider: moonshot\nmodel: custom-vision\nport: \"7000\"\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("port", "8080", "")
	if err := flags.Parse([]string{"--port", "7100"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Provider != "moonshot" || cfg.Model != "custom-vision" {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Port != "7100" {
		t.Errorf("flag should override file, Port = %q", cfg.Port)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestValidate(t *testing.T) {
	base := Config{RequestTimeout: time.Second, MaxTokens: 500}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"missing key", func(c *Config) {}, true},
		{"key set", func(c *Config) { c.APIKey = "k" }, false},
		{"local base url", func(c *Config) { c.BaseURL = "http://localhost:1234/v1" }, false},
		{"bad timeout", func(c *Config) { c.APIKey = "k"; c.RequestTimeout = 0 }, true},
		{"bad tokens", func(c *Config) { c.APIKey = "k"; c.MaxTokens = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInferenceOptions(t *testing.T) {
	cfg := Config{Provider: "gemini", APIKey: "k", Model: "m", BaseURL: "u", MaxTokens: 9, RequestTimeout: time.Second}
	opts := cfg.InferenceOptions()
	if opts.Provider != "gemini" || opts.APIKey != "k" || opts.Model != "m" || opts.BaseURL != "u" || opts.MaxTokens != 9 || opts.Timeout != time.Second {
		t.Fatalf("InferenceOptions() = %+v", opts)
	}
}

func TestProviderAPIKey(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want string
	}{
		{"openai", Config{Provider: "openai", APIKey: "sk-openai", GeminiAPIKey: "g"}, "sk-openai"},
		{"grok own key", Config{Provider: "grok", APIKey: "sk-openai", GrokAPIKey: "xai"}, "xai"},
		{"grok fallback", Config{Provider: "grok", APIKey: "sk-openai"}, "sk-openai"},
		{"moonshot own key", Config{Provider: "moonshot", MoonshotAPIKey: "ms"}, "ms"},
		{"gemini own key", Config{Provider: "gemini", APIKey: "sk-openai", GeminiAPIKey: "g"}, "g"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.ProviderAPIKey(); got != tt.want {
				t.Fatalf("ProviderAPIKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadProviderKeysFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "gemini-key")

	cfg, err := Load("", nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if got := cfg.InferenceOptions().APIKey; got != "gemini-key" {
		t.Fatalf("InferenceOptions().APIKey = %q", got)
	}
}

func TestValidateNamesProviderKey(t *testing.T) {
	cfg := Config{Provider: "grok", RequestTimeout: time.Second, MaxTokens: 500}
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "GROK_API_KEY") {
		t.Fatalf("Validate() error = %v, want mention of GROK_API_KEY", err)
	}
}
