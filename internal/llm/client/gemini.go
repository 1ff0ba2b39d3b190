package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"google.golang.org/genai"
)

// GeminiAdapter streams generations from the Gemini API with every safety
// category set to BLOCK_NONE; the modes only rewrite the user's own text.
type GeminiAdapter struct {
	endpoint string
}

func NewGeminiAdapter() *GeminiAdapter {
	return &GeminiAdapter{}
}

// WithEndpoint returns a copy of the adapter talking to baseURL instead of
// the public Gemini API. An empty baseURL keeps the default.
func (a *GeminiAdapter) WithEndpoint(baseURL string) *GeminiAdapter {
	out := *a
	out.endpoint = strings.TrimSpace(baseURL)
	return &out
}

func (a *GeminiAdapter) Stream(ctx context.Context, req Request) (*FragmentStream, error) {
	cc := &genai.ClientConfig{
		APIKey:  req.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if a.endpoint != "" {
		cc.HTTPOptions.BaseURL = a.endpoint
	}
	gc, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	cm, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:         gc,
		Model:          req.Model,
		SafetySettings: blockNoneSafetySettings(),
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create chat model: %w", err)
	}
	stream, err := streamPrompt(ctx, cm, req.Prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return stream, nil
}

func blockNoneSafetySettings() []*genai.SafetySetting {
	categories := []genai.HarmCategory{
		genai.HarmCategoryHarassment,
		genai.HarmCategoryHateSpeech,
		genai.HarmCategorySexuallyExplicit,
		genai.HarmCategoryDangerousContent,
	}
	settings := make([]*genai.SafetySetting, 0, len(categories))
	for _, category := range categories {
		settings = append(settings, &genai.SafetySetting{
			Category:  category,
			Threshold: genai.HarmBlockThresholdBlockNone,
		})
	}
	return settings
}
