package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"
)

// GeminiConfig configures a Gemini describer.
type GeminiConfig struct {
	APIKey    string
	Model     string
	BaseURL   string // Optional (tests)
	MaxTokens int32
	Timeout   time.Duration

	HTTPClient *http.Client // Optional (tests)
}

type GeminiDescriber struct {
	client    *genai.Client
	model     string
	maxTokens int32
	timeout   time.Duration
}

// NewGeminiDescriber creates a describer backed by the Gemini API.
func NewGeminiDescriber(ctx context.Context, cfg GeminiConfig) (*GeminiDescriber, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiDescriber{
		client:    client,
		model:     cmp.Or(cfg.Model, "gemini-2.5-flash"),
		maxTokens: cmp.Or(cfg.MaxTokens, DefaultMaxTokens),
		timeout:   cmp.Or(cfg.Timeout, 60*time.Second),
	}, nil
}

func (g *GeminiDescriber) Model() string {
	return g.model
}

// Describe sends the prompt and the inline image bytes. Gemini needs a real
// media type for inline data, so it is sniffed from the bytes.
func (g *GeminiDescriber) Describe(ctx context.Context, image []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(AnalysisPrompt),
			genai.NewPartFromBytes(image, http.DetectContentType(image)),
		}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: g.maxTokens,
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini inference error: %w", err)
	}
	if len(result.Candidates) == 0 {
		return "", errors.New("no candidates returned")
	}
	return result.Text(), nil
}
