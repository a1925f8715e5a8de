package inference

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIConfig configures an OpenAI-compatible describer.
type OpenAIConfig struct {
	APIKey    string
	Model     string
	BaseURL   string        // empty uses the SDK default
	MaxTokens int64         // 0 uses DefaultMaxTokens
	Timeout   time.Duration // 0 uses 60s
	Name      string        // provider name used in error messages

	HTTPClient *http.Client // Optional (tests)
}

// OpenAIDescriber implements Describer using OpenAI's official Go SDK. Any
// chat-completions API that accepts image_url parts works.
type OpenAIDescriber struct {
	client    *openai.Client
	model     string
	maxTokens int64
	name      string
}

// NewOpenAIDescriber creates a describer. SDK retries are disabled; a failed
// call is reported once.
func NewOpenAIDescriber(cfg OpenAIConfig) *OpenAIDescriber {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cmp.Or(cfg.Timeout, 60*time.Second)}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := openai.NewClient(opts...)
	return &OpenAIDescriber{
		client:    &client,
		model:     cmp.Or(cfg.Model, "gpt-4o-mini"),
		maxTokens: cmp.Or(cfg.MaxTokens, DefaultMaxTokens),
		name:      cmp.Or(cfg.Name, "openai"),
	}
}

func (o *OpenAIDescriber) Model() string {
	return o.model
}

// Describe sends the image and the analysis prompt in a single user message
// and returns the first choice's content.
func (o *OpenAIDescriber) Describe(ctx context.Context, image []byte) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model: o.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Role: "user",
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
							{
								OfText: &openai.ChatCompletionContentPartTextParam{
									Text: AnalysisPrompt,
								},
							},
							{
								OfImageURL: &openai.ChatCompletionContentPartImageParam{
									ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
										URL: DataURI(image),
									},
								},
							},
						},
					},
				},
			},
		},
		MaxCompletionTokens: openai.Int(o.maxTokens),
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%s inference error: %w", o.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices returned")
	}

	// Empty content is a valid, if useless, description.
	return resp.Choices[0].Message.Content, nil
}
