package llm

import (
	"context"
	"encoding/json"
)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"

	// The messages API requires max_tokens; this is the cap used when
	// the request does not set one.
	anthropicDefaultMaxTokens = 4096
)

// AnthropicProvider implements Provider for the Anthropic messages API.
type AnthropicProvider struct {
	apiKey string
}

// NewAnthropicProvider creates an Anthropic provider.
func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	return &AnthropicProvider{apiKey: apiKey}
}

func (p *AnthropicProvider) Name() string {
	return "Claude"
}

func (p *AnthropicProvider) Models() []ModelInfo {
	return []ModelInfo{
		{Name: "claude-3-5-sonnet-20240620", MaxTokens: 200000},
		{Name: "claude-3-opus-20240229", MaxTokens: 200000},
		{Name: "claude-3-haiku-20240307", MaxTokens: 200000},
	}
}

// anthropicStreamEvent covers the two event shapes that carry text or
// errors; everything else (message_start, ping, ...) extracts to "".
type anthropicStreamEvent struct {
	Delta struct {
		Text string `json:"text"`
	} `json:"delta"`
}

func extractAnthropicDelta(data []byte) (string, error) {
	var event anthropicStreamEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return "", err
	}
	return event.Delta.Text, nil
}

func (p *AnthropicProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	// The messages API rejects system-role entries in the messages
	// list; they go in the top-level system field.
	var system string
	messages := make([]Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		if m.Role == RoleSystem {
			system = m.Content
			continue
		}
		messages = append(messages, m)
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = anthropicDefaultMaxTokens
	}
	body := map[string]any{
		"model":       req.Model,
		"messages":    messages,
		"max_tokens":  maxTokens,
		"top_p":       req.Params.TopP,
		"top_k":       req.Params.TopK,
		"temperature": req.Params.Temperature,
		"stream":      true,
	}
	if system != "" {
		body["system"] = system
	}
	sreq := sseRequest{
		URL: anthropicMessagesURL,
		Headers: map[string]string{
			"x-api-key":         p.apiKey,
			"anthropic-version": anthropicVersion,
		},
		Body: body,
	}
	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		return streamSSE(ctx, p.Name(), sreq, extractAnthropicDelta, events)
	}), nil
}
