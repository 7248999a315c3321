package llm

import (
	"context"
	"encoding/json"
	"strings"
)

const (
	fireworksChatURL = "https://api.fireworks.ai/inference/v1/chat/completions"

	// FireworksModelPrefix is the account-qualified prefix Fireworks
	// uses for every model id. A model name carrying this prefix is
	// routed to Fireworks verbatim even when it is not in the catalog.
	FireworksModelPrefix = "accounts/fireworks/models/"
)

// FireworksProvider implements Provider for the Fireworks inference API.
type FireworksProvider struct {
	apiKey string
}

// NewFireworksProvider creates a Fireworks provider.
func NewFireworksProvider(apiKey string) *FireworksProvider {
	return &FireworksProvider{apiKey: apiKey}
}

func (p *FireworksProvider) Name() string {
	return "Fireworks"
}

func (p *FireworksProvider) Models() []ModelInfo {
	return []ModelInfo{
		{Name: FireworksModelPrefix + "llama-v3p1-405b-instruct", MaxTokens: 131072},
		{Name: FireworksModelPrefix + "llama-v3p1-70b-instruct", MaxTokens: 131072},
		{Name: FireworksModelPrefix + "llama-v3p1-8b-instruct", MaxTokens: 131072},
	}
}

// oaiStreamChunk is the OpenAI-compatible streaming response shape
// shared by Fireworks and OpenAI.
type oaiStreamChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// extractOAIDelta pulls the text delta out of one OpenAI-shaped event.
func extractOAIDelta(data []byte) (string, error) {
	var chunk oaiStreamChunk
	if err := json.Unmarshal(data, &chunk); err != nil {
		return "", err
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}

func (p *FireworksProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	model := req.Model
	if model != "" && !strings.HasPrefix(model, FireworksModelPrefix) {
		model = FireworksModelPrefix + model
	}
	body := map[string]any{
		"model":              model,
		"messages":           req.Messages,
		"top_p":              req.Params.TopP,
		"top_k":              req.Params.TopK,
		"repetition_penalty": 1 + req.Params.RepetitionPenalty,
		"temperature":        req.Params.Temperature,
		"stream":             true,
	}
	if req.MaxTokens > 0 {
		body["max_tokens"] = req.MaxTokens
	}
	sreq := sseRequest{
		URL:     fireworksChatURL,
		Headers: map[string]string{"Authorization": "Bearer " + p.apiKey},
		Body:    body,
	}
	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		return streamSSE(ctx, p.Name(), sreq, extractOAIDelta, events)
	}), nil
}

// ShortFireworksModel strips the account prefix from a Fireworks model
// id for display and history records.
func ShortFireworksModel(model string) string {
	return strings.TrimPrefix(model, FireworksModelPrefix)
}
