package llm

import "fmt"

// ProtocolError reports a non-success HTTP status from a backend. The
// body is the full error payload read before the stream was abandoned.
type ProtocolError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.Status, e.Body)
}

// ConfigError reports a provider/model selection that cannot be
// resolved. It is a recoverable condition, surfaced before any network
// call is made.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return e.Msg
}
