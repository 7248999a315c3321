package chat

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/ddxfish/chatterm/internal/llm"
)

// namePrompt asks the backend for a file-name-friendly summary of the
// conversation so far.
const namePrompt = "Give this conversation a short descriptive title of at most five words. " +
	"Reply with the title only: no quotes, no punctuation, no explanation."

const namingTimeout = 30 * time.Second

// generateName runs the auto-naming sub-task. It issues an
// independent streaming request and delivers the result through the
// session event channel; it never touches the primary processing
// flag, so it may overlap a subsequent user turn. Failures are logged
// and swallowed: an unnamed session is not an error the user needs.
func (s *Session) generateName(sessionID string, provider llm.Provider, model string, params llm.Params, conversation []llm.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), namingTimeout)
	defer cancel()

	messages := make([]llm.Message, 0, len(conversation)+1)
	messages = append(messages, conversation...)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: namePrompt})

	stream, err := provider.Stream(ctx, llm.Request{
		Model:    model,
		Messages: messages,
		Params:   params,
	})
	if err != nil {
		log.Printf("chat: failed to start naming request: %v", err)
		return
	}
	raw, err := llm.Collect(stream)
	if err != nil {
		log.Printf("chat: failed to generate session name: %v", err)
		return
	}
	name := sanitizeName(raw)
	if name == "" {
		return
	}
	s.events <- streamEvent{kind: kindName, session: sessionID, text: name}
}

// sanitizeName reduces model output to a single plausible title line.
func sanitizeName(raw string) string {
	name := strings.TrimSpace(raw)
	if i := strings.IndexByte(name, '\n'); i >= 0 {
		name = name[:i]
	}
	name = strings.Trim(name, `"'.`)
	const maxNameLen = 60
	if len(name) > maxNameLen {
		name = name[:maxNameLen]
	}
	return strings.TrimSpace(name)
}
