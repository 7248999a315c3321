package history

import "strings"

// Separator is the reserved record boundary in history files. It is
// not expected in ordinary model output; a message that does contain
// the literal separator will not round-trip. That limitation is
// accepted rather than papered over with escaping.
const Separator = "\n<<<MESSAGE_SEPARATOR>>>\n"

const userPrefix = "User: "

// defaultModelLabel labels assistant records whose model is unknown.
const defaultModelLabel = "Bot"

// Message is one conversation record. Model is set only on assistant
// messages and names the backend model that produced the reply.
type Message struct {
	Content string
	IsUser  bool
	Model   string
}

// EncodeRecord serializes one message in the on-disk record format:
// a role label, the raw content, then the separator.
func EncodeRecord(m Message) string {
	var prefix string
	if m.IsUser {
		prefix = userPrefix
	} else {
		label := m.Model
		if label == "" {
			label = defaultModelLabel
		}
		prefix = label + ": "
	}
	return prefix + m.Content + Separator + "\n"
}

// ParseRecords splits raw file contents on the separator and
// classifies each record by its prefix. Records with no recognizable
// label are skipped.
func ParseRecords(content string) []Message {
	var messages []Message
	for _, record := range strings.Split(content, Separator) {
		record = strings.TrimSpace(record)
		if record == "" {
			continue
		}
		if body, ok := strings.CutPrefix(record, userPrefix); ok {
			messages = append(messages, Message{Content: body, IsUser: true})
			continue
		}
		if model, body, ok := strings.Cut(record, ": "); ok {
			messages = append(messages, Message{Content: body, IsUser: false, Model: model})
		}
	}
	return messages
}
