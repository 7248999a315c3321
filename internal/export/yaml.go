package export

import (
	"io"

	"github.com/ddxfish/chatterm/internal/history"
	"gopkg.in/yaml.v3"
)

// YAMLExporter writes the conversation as a YAML document.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(messages []history.Message, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(toWire(messages))
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
