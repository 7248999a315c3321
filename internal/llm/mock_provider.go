package llm

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// MockTurn represents a single response turn from the mock provider.
type MockTurn struct {
	Fragments []string      // Fragments to emit, in order
	Text      string        // Convenience: text chunked into fragments when Fragments is nil
	Delay     time.Duration // Optional delay before responding (for cancellation tests)
	Error     error         // Return this error instead of responding
	Hang      bool          // Block until the stream context is cancelled
}

// MockProvider is a configurable provider for testing.
// It returns scripted responses and records all requests for verification.
type MockProvider struct {
	name      string
	models    []ModelInfo
	turns     []MockTurn
	turnIndex int
	Requests  []Request // Recorded requests for verification
	mu        sync.Mutex
}

// NewMockProvider creates a new mock provider with the given name.
func NewMockProvider(name string) *MockProvider {
	return &MockProvider{
		name:   name,
		models: []ModelInfo{{Name: "mock-model", MaxTokens: 4096}},
	}
}

// Name returns the provider name.
func (m *MockProvider) Name() string {
	return m.name
}

// Models returns the mock catalog.
func (m *MockProvider) Models() []ModelInfo {
	return m.models
}

// WithModels sets the catalog and returns the provider for chaining.
func (m *MockProvider) WithModels(models ...ModelInfo) *MockProvider {
	m.models = models
	return m
}

// AddTurn adds a response turn and returns the provider for chaining.
func (m *MockProvider) AddTurn(t MockTurn) *MockProvider {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns = append(m.turns, t)
	return m
}

// AddTextResponse is a convenience method to add a simple text response.
func (m *MockProvider) AddTextResponse(text string) *MockProvider {
	return m.AddTurn(MockTurn{Text: text})
}

// AddFragments adds a turn that emits exactly the given fragments.
func (m *MockProvider) AddFragments(fragments ...string) *MockProvider {
	return m.AddTurn(MockTurn{Fragments: fragments})
}

// AddError adds a turn that returns an error.
func (m *MockProvider) AddError(err error) *MockProvider {
	return m.AddTurn(MockTurn{Error: err})
}

// Reset clears recorded requests and resets the turn index.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turnIndex = 0
	m.Requests = nil
}

// RequestCount returns the number of requests seen so far.
func (m *MockProvider) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// LastRequest returns the most recent recorded request.
func (m *MockProvider) LastRequest() Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Requests) == 0 {
		return Request{}
	}
	return m.Requests[len(m.Requests)-1]
}

// Stream implements the Provider interface.
func (m *MockProvider) Stream(ctx context.Context, req Request) (Stream, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)

	if m.turnIndex >= len(m.turns) {
		m.mu.Unlock()
		return nil, fmt.Errorf("mock provider: no more turns configured (expected turn %d, have %d)", m.turnIndex, len(m.turns))
	}

	turn := m.turns[m.turnIndex]
	m.turnIndex++
	m.mu.Unlock()

	return newEventStream(ctx, func(ctx context.Context, ch chan<- Event) error {
		if turn.Delay > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(turn.Delay):
			}
		}

		if turn.Hang {
			<-ctx.Done()
			return nil
		}

		if turn.Error != nil {
			return turn.Error
		}

		fragments := turn.Fragments
		if fragments == nil {
			fragments = chunkText(turn.Text, 10)
		}
		for _, fragment := range fragments {
			select {
			case <-ctx.Done():
				return nil
			case ch <- Event{Type: EventTextDelta, Text: fragment}:
			}
		}

		select {
		case <-ctx.Done():
		case ch <- Event{Type: EventDone}:
		}
		return nil
	}), nil
}

// chunkText splits text into chunks of approximately the given size.
// It tries to break at word boundaries when possible.
func chunkText(text string, chunkSize int) []string {
	if len(text) == 0 {
		return nil
	}
	if len(text) <= chunkSize {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= chunkSize {
			chunks = append(chunks, text)
			break
		}

		// Find a good break point (space) near the chunk size
		breakPoint := chunkSize
		for i := chunkSize; i > chunkSize/2; i-- {
			if text[i] == ' ' {
				breakPoint = i + 1 // include the space in current chunk
				break
			}
		}

		chunks = append(chunks, text[:breakPoint])
		text = text[breakPoint:]
	}
	return chunks
}
