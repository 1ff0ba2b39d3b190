package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
)

const claudeMaxTokens = 4096

// ClaudeAdapter streams messages from Anthropic, or from a compatible
// endpoint when built with NewCustomClaudeAdapter. Unlike older releases the
// custom variant reports failures as errors like every other adapter.
type ClaudeAdapter struct {
	name     string
	custom   bool
	endpoint string
}

func NewClaudeAdapter() *ClaudeAdapter {
	return &ClaudeAdapter{name: "anthropic"}
}

// WithEndpoint returns a copy of the vendor adapter talking to baseURL
// instead of the vendor default. Custom variants take the URL per request.
func (a *ClaudeAdapter) WithEndpoint(baseURL string) *ClaudeAdapter {
	out := *a
	out.endpoint = strings.TrimSpace(baseURL)
	return &out
}

func NewCustomClaudeAdapter() *ClaudeAdapter {
	return &ClaudeAdapter{name: "custom anthropic", custom: true}
}

func (a *ClaudeAdapter) Stream(ctx context.Context, req Request) (*FragmentStream, error) {
	temperature := float32(0)
	cfg := &claude.Config{
		APIKey:      req.APIKey,
		Model:       req.Model,
		MaxTokens:   claudeMaxTokens,
		Temperature: &temperature,
	}
	if a.custom {
		baseURL := strings.TrimSpace(req.BaseURL)
		if baseURL == "" {
			return nil, fmt.Errorf("%s: base URL is required", a.name)
		}
		cfg.BaseURL = &baseURL
	} else if a.endpoint != "" {
		endpoint := a.endpoint
		cfg.BaseURL = &endpoint
	}

	cm, err := claude.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: create chat model: %w", a.name, err)
	}
	stream, err := streamPrompt(ctx, cm, req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.name, err)
	}
	return stream, nil
}
