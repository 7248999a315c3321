package llm

import (
	"context"
)

const openAIChatURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements Provider for the OpenAI chat completions API.
type OpenAIProvider struct {
	apiKey string
}

// NewOpenAIProvider creates an OpenAI provider.
func NewOpenAIProvider(apiKey string) *OpenAIProvider {
	return &OpenAIProvider{apiKey: apiKey}
}

func (p *OpenAIProvider) Name() string {
	return "GPT"
}

func (p *OpenAIProvider) Models() []ModelInfo {
	return []ModelInfo{
		{Name: "gpt-4o", MaxTokens: 128000},
		{Name: "gpt-4o-mini", MaxTokens: 128000},
		{Name: "gpt-4-turbo", MaxTokens: 128000},
		{Name: "gpt-3.5-turbo", MaxTokens: 16385},
	}
}

func (p *OpenAIProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	// OpenAI takes no top_k; repetition penalty maps onto
	// frequency_penalty in this API.
	body := map[string]any{
		"model":             req.Model,
		"messages":          req.Messages,
		"top_p":             req.Params.TopP,
		"frequency_penalty": req.Params.RepetitionPenalty,
		"temperature":       req.Params.Temperature,
		"stream":            true,
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}
	sreq := sseRequest{
		URL:     openAIChatURL,
		Headers: map[string]string{"Authorization": "Bearer " + p.apiKey},
		Body:    body,
	}
	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		return streamSSE(ctx, p.Name(), sreq, extractOAIDelta, events)
	}), nil
}
