package export

import (
	"fmt"
	"io"

	"github.com/ddxfish/chatterm/internal/history"
)

// MarkdownExporter writes the conversation as a readable document.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(messages []history.Message, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Conversation\n\n"); err != nil {
		return err
	}
	for i, m := range messages {
		label := "User"
		if !m.IsUser {
			label = m.Model
			if label == "" {
				label = "Assistant"
			}
		}
		if _, err := fmt.Fprintf(w, "**%s:**\n\n%s\n\n", label, m.Content); err != nil {
			return err
		}
		if i < len(messages)-1 {
			if _, err := fmt.Fprintf(w, "---\n\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
