package inference

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	ProviderOpenAI   = "openai"
	ProviderGrok     = "grok"
	ProviderMoonshot = "moonshot"
	ProviderGemini   = "gemini"
)

type preset struct {
	baseURL string
	model   string
}

// OpenAI-compatible providers. Gemini goes through its own SDK.
var presets = map[string]preset{
	ProviderOpenAI:   {model: "gpt-4o-mini"},
	ProviderGrok:     {baseURL: "https://api.x.ai/v1", model: "grok-2-vision-1212"},
	ProviderMoonshot: {baseURL: "https://api.moonshot.ai/v1", model: "moonshot-v1-8k-vision-preview"},
}

// Providers lists the accepted provider names.
func Providers() []string {
	names := []string{ProviderGemini}
	for name := range presets {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type Options struct {
	Provider  string
	APIKey    string
	Model     string
	BaseURL   string
	MaxTokens int64
	Timeout   time.Duration
}

// New builds the describer for opts.Provider, filling model and base URL from
// the provider's preset when they are empty.
func New(ctx context.Context, opts Options) (Describer, error) {
	name := strings.ToLower(strings.TrimSpace(cmp.Or(opts.Provider, ProviderOpenAI)))

	if name == ProviderGemini {
		d, err := NewGeminiDescriber(ctx, GeminiConfig{
			APIKey:    opts.APIKey,
			Model:     opts.Model,
			BaseURL:   opts.BaseURL,
			MaxTokens: int32(opts.MaxTokens),
			Timeout:   opts.Timeout,
		})
		if err != nil {
			return nil, err
		}
		log.Info("using gemini describer", "model", d.Model())
		return d, nil
	}

	p, ok := presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown provider %q (want one of %s)", opts.Provider, strings.Join(Providers(), ", "))
	}
	d := NewOpenAIDescriber(OpenAIConfig{
		APIKey:    opts.APIKey,
		Model:     cmp.Or(opts.Model, p.model),
		BaseURL:   cmp.Or(opts.BaseURL, p.baseURL),
		MaxTokens: opts.MaxTokens,
		Timeout:   opts.Timeout,
		Name:      name,
	})
	log.Info("using openai-compatible describer", "provider", name, "model", d.Model(), "base_url", cmp.Or(opts.BaseURL, p.baseURL, "default"))
	return d, nil
}
