package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
)

// OpenAIAdapter streams chat completions from OpenAI, or from any endpoint
// speaking the same protocol when built with NewCustomOpenAIAdapter.
type OpenAIAdapter struct {
	name     string
	custom   bool
	endpoint string
}

func NewOpenAIAdapter() *OpenAIAdapter {
	return &OpenAIAdapter{name: "openai"}
}

// WithEndpoint returns a copy of the vendor adapter talking to baseURL
// instead of the vendor default. Custom variants take the URL per request.
func (a *OpenAIAdapter) WithEndpoint(baseURL string) *OpenAIAdapter {
	out := *a
	out.endpoint = strings.TrimSpace(baseURL)
	return &out
}

func NewCustomOpenAIAdapter() *OpenAIAdapter {
	return &OpenAIAdapter{name: "custom openai", custom: true}
}

func (a *OpenAIAdapter) Stream(ctx context.Context, req Request) (*FragmentStream, error) {
	temperature := float32(0)
	cfg := &openai.ChatModelConfig{
		APIKey:      req.APIKey,
		Model:       req.Model,
		Temperature: &temperature,
	}
	if a.custom {
		baseURL := strings.TrimSpace(req.BaseURL)
		if baseURL == "" {
			return nil, fmt.Errorf("%s: base URL is required", a.name)
		}
		cfg.BaseURL = baseURL
	} else if a.endpoint != "" {
		cfg.BaseURL = a.endpoint
	}

	cm, err := openai.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: create chat model: %w", a.name, err)
	}
	stream, err := streamPrompt(ctx, cm, req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	return stream, nil
}
