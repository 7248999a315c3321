// Package export serializes conversations to portable formats. The
// native record format mirrors the on-disk history log exactly; the
// others are for sharing.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/ddxfish/chatterm/internal/history"
)

// Exporter writes one conversation in a specific format.
type Exporter interface {
	Export(messages []history.Message, w io.Writer) error
	Extension() string
}

// New creates an exporter by format name.
func New(format string) (Exporter, error) {
	switch format {
	case "txt", "record":
		return &RecordExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "yaml", "yml":
		return &YAMLExporter{}, nil
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: txt, json, yaml, md)", format)
	}
}

// ForExtension picks an exporter for a file extension, defaulting to
// the native record format.
func ForExtension(ext string) Exporter {
	if e, err := New(ext); err == nil {
		return e
	}
	return &RecordExporter{}
}

// ToFile writes messages to path using the given exporter.
func ToFile(e Exporter, path string, messages []history.Message) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return e.Export(messages, f)
}

// RecordExporter writes the native history record format, suitable
// for loading back with the history parser.
type RecordExporter struct{}

func (e *RecordExporter) Export(messages []history.Message, w io.Writer) error {
	for _, m := range messages {
		if _, err := io.WriteString(w, history.EncodeRecord(m)); err != nil {
			return err
		}
	}
	return nil
}

func (e *RecordExporter) Extension() string {
	return "txt"
}
