package export

import (
	"encoding/json"
	"io"

	"github.com/ddxfish/chatterm/internal/history"
)

// jsonMessage is the wire shape shared by the JSON and YAML exporters.
type jsonMessage struct {
	Role    string `json:"role" yaml:"role"`
	Model   string `json:"model,omitempty" yaml:"model,omitempty"`
	Content string `json:"content" yaml:"content"`
}

func toWire(messages []history.Message) []jsonMessage {
	out := make([]jsonMessage, 0, len(messages))
	for _, m := range messages {
		role := "assistant"
		if m.IsUser {
			role = "user"
		}
		out = append(out, jsonMessage{Role: role, Model: m.Model, Content: m.Content})
	}
	return out
}

// JSONExporter writes the conversation as an indented JSON array.
type JSONExporter struct{}

func (e *JSONExporter) Export(messages []history.Message, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toWire(messages))
}

func (e *JSONExporter) Extension() string {
	return "json"
}
