package llm

import "context"

// Role identifies who authored a wire message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is one role/content pair sent to a backend.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ModelInfo describes one catalog entry for a provider.
type ModelInfo struct {
	Name      string
	MaxTokens int
}

// Params are the sampling parameters sent with a request. A request
// captures a snapshot at submission time; later profile changes do not
// affect requests already in flight.
type Params struct {
	TopP              float64
	TopK              int
	RepetitionPenalty float64
	Temperature       float64
}

// Generation profiles. Values carried over from the desktop client
// this tool replaces.
const (
	ProfileCoder    = "coder"
	ProfileNormal   = "normal"
	ProfileCreative = "creative"
)

// ProfileParams returns the sampling parameters for a named profile.
// Unknown names fall back to the normal profile.
func ProfileParams(profile string) Params {
	switch profile {
	case ProfileCoder:
		return Params{TopP: 0.85, TopK: 40, RepetitionPenalty: 0.04, Temperature: 0.4}
	case ProfileCreative:
		return Params{TopP: 0.95, TopK: 80, RepetitionPenalty: 0.4, Temperature: 1.4}
	default:
		return Params{TopP: 0.9, TopK: 50, RepetitionPenalty: 0.15, Temperature: 0.8}
	}
}

// Request is a single streaming completion request.
type Request struct {
	Model     string
	Messages  []Message
	Params    Params
	MaxTokens int
}

// Provider produces fragment streams for conversations.
type Provider interface {
	// Name returns the provider's display name.
	Name() string
	// Models returns the ordered model catalog.
	Models() []ModelInfo
	// Stream starts a streaming completion. The returned Stream yields
	// text deltas in arrival order, then a Done or Error event.
	Stream(ctx context.Context, req Request) (Stream, error)
}
