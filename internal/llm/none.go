package llm

import "context"

// NoneProvider is the placeholder used when no backend is selected.
// It emits one canned fragment and completes without touching the
// network, so the rest of the pipeline behaves normally.
type NoneProvider struct{}

// NewNoneProvider creates the placeholder provider.
func NewNoneProvider() *NoneProvider {
	return &NoneProvider{}
}

func (p *NoneProvider) Name() string {
	return "None"
}

func (p *NoneProvider) Models() []ModelInfo {
	return []ModelInfo{{Name: "none", MaxTokens: 0}}
}

func (p *NoneProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	return newEventStream(ctx, func(ctx context.Context, events chan<- Event) error {
		select {
		case events <- Event{Type: EventTextDelta, Text: "No provider is configured. Add an API key to the config file and switch models."}:
		case <-ctx.Done():
			return nil
		}
		select {
		case events <- Event{Type: EventDone}:
		case <-ctx.Done():
		}
		return nil
	}), nil
}
