package chat

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/ddxfish/chatterm/internal/history"
	"github.com/ddxfish/chatterm/internal/llm"
)

// ErrBusy is returned by Submit while a turn is still processing. The
// caller is expected to let the user cancel first and retry.
var ErrBusy = errors.New("a turn is already processing")

// eventBuffer bounds the channel between background tasks and Poll.
const eventBuffer = 256

// Session orchestrates one conversation: it owns the in-memory
// message list, the active provider/model pair, the history log
// binding, and all coordination with background streaming tasks.
//
// Submit, Poll, Cancel and the switch/load methods must be called from
// a single consumer goroutine. Background tasks communicate only
// through the event channel and the per-turn cancel flag.
type Session struct {
	registry *llm.Registry
	store    *history.Store

	provider llm.Provider
	model    string
	params   llm.Params
	profile  string

	id       string
	messages []history.Message

	events    chan streamEvent
	transient strings.Builder

	processing   bool
	seq          int
	turnModel    string
	cancelled    bool
	cancelStream context.CancelFunc
	needsNaming  bool
	namingOff    bool
	dirty        bool
}

// NewSession creates an orchestrator over the given registry and
// store. The initial provider is the registry's first entry and the
// active model its first catalog entry.
func NewSession(registry *llm.Registry, store *history.Store) (*Session, error) {
	providers := registry.Providers()
	if len(providers) == 0 {
		return nil, &llm.ConfigError{Msg: "registry has no providers"}
	}
	provider := providers[0]
	model := ""
	if models := provider.Models(); len(models) > 0 {
		model = models[0].Name
	}
	return &Session{
		registry: registry,
		store:    store,
		provider: provider,
		model:    model,
		params:   llm.ProfileParams(llm.ProfileNormal),
		profile:  llm.ProfileNormal,
		events:   make(chan streamEvent, eventBuffer),
		dirty:    true,
	}, nil
}

// DisableNaming turns off the auto-naming sub-task.
func (s *Session) DisableNaming() {
	s.namingOff = true
}

// Messages returns a copy of the conversation.
func (s *Session) Messages() []history.Message {
	out := make([]history.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Transient returns the partial assistant text of the in-flight turn.
func (s *Session) Transient() string {
	return s.transient.String()
}

// IsProcessing reports whether a primary turn is in flight.
func (s *Session) IsProcessing() bool {
	return s.processing
}

// SessionID returns the id of the current history file.
func (s *Session) SessionID() string {
	return s.id
}

// ActiveModel returns the model the next turn will use.
func (s *Session) ActiveModel() string {
	return s.model
}

// ActiveProvider returns the provider the next turn will use.
func (s *Session) ActiveProvider() llm.Provider {
	return s.provider
}

// Profile returns the active generation profile name.
func (s *Session) Profile() string {
	return s.profile
}

// Dirty reports whether state changed since the last call, and clears
// the flag. Consumers use it to decide when to re-render.
func (s *Session) Dirty() bool {
	d := s.dirty
	s.dirty = false
	return d
}

func (s *Session) markDirty() {
	s.dirty = true
}

// SetProfile switches the sampling profile. Requests already in
// flight keep the snapshot they captured at submission.
func (s *Session) SetProfile(profile string) {
	s.profile = profile
	s.params = llm.ProfileParams(profile)
	s.markDirty()
}

// SwitchModel resolves a model name through the registry and makes it
// active. The in-flight request, if any, is unaffected; only the next
// Submit uses the new pair. Unresolvable names are a ConfigError.
func (s *Session) SwitchModel(model string) error {
	provider, err := s.registry.Resolve(model)
	if err != nil {
		return err
	}
	s.provider = provider
	s.model = model
	s.markDirty()
	return nil
}

// SwitchProvider makes a provider active by display name, selecting
// the first model of its catalog.
func (s *Session) SwitchProvider(name string) error {
	provider, err := s.registry.ByName(name)
	if err != nil {
		return err
	}
	s.provider = provider
	if models := provider.Models(); len(models) > 0 {
		s.model = models[0].Name
	}
	s.markDirty()
	return nil
}

// Submit starts a new turn. The user message is appended to memory
// and log before any network activity; the fetch itself runs in a
// background task. Returns ErrBusy while a previous turn is still
// processing.
func (s *Session) Submit(text string) error {
	if s.processing {
		return ErrBusy
	}
	// The input widget delivers literal "\n" sequences for newlines.
	text = strings.ReplaceAll(text, `\n`, "\n")

	s.appendMessage(history.Message{Content: text, IsUser: true})

	s.processing = true
	s.cancelled = false
	s.seq++
	s.turnModel = llm.ShortFireworksModel(s.model)
	s.transient.Reset()
	s.markDirty()

	req := llm.Request{
		Model:    s.model,
		Messages: toWireMessages(s.messages),
		Params:   s.params,
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancelStream = cancel

	stream, err := s.provider.Stream(ctx, req)
	if err != nil {
		// Surfaced through the normal error path so the failure is
		// visible as conversational content.
		s.events <- streamEvent{seq: s.seq, kind: kindError, err: err}
		return nil
	}
	go s.forward(s.seq, stream)
	return nil
}

// forward drains one provider stream into the session event channel.
// It accumulates fragments so the final commit carries the assembled
// message, and stops forwarding as soon as its turn is cancelled.
func (s *Session) forward(seq int, stream llm.Stream) {
	defer stream.Close()
	var full strings.Builder
	for {
		event, err := stream.Recv()
		if err == io.EOF {
			s.events <- streamEvent{seq: seq, kind: kindFinal, text: full.String()}
			return
		}
		if err != nil {
			// Context cancelled under us; the consumer already moved on.
			return
		}
		switch event.Type {
		case llm.EventTextDelta:
			full.WriteString(event.Text)
			s.events <- streamEvent{seq: seq, kind: kindFragment, text: event.Text}
		case llm.EventDone:
			s.events <- streamEvent{seq: seq, kind: kindFinal, text: full.String()}
			return
		case llm.EventError:
			s.events <- streamEvent{seq: seq, kind: kindError, err: event.Err}
			return
		}
	}
}

// Cancel requests cancellation of the in-flight turn and returns the
// session to idle immediately. The background task's exit is
// asynchronous; its partial buffer is discarded, never committed.
func (s *Session) Cancel() {
	if !s.processing {
		return
	}
	s.cancelled = true
	s.processing = false
	s.transient.Reset()
	if s.cancelStream != nil {
		s.cancelStream()
	}
	s.markDirty()
}

// Poll drains all pending events without blocking. Incremental
// fragments accumulate in the transient buffer; a final event commits
// the assembled assistant message to memory and log; an error event
// commits the error text as a visible message; a naming event renames
// the history file. Events from cancelled or superseded turns are
// dropped.
func (s *Session) Poll() []Event {
	var out []Event
	for {
		select {
		case ev := <-s.events:
			if e, ok := s.handleEvent(ev); ok {
				out = append(out, e)
			}
		default:
			return out
		}
	}
}

func (s *Session) handleEvent(ev streamEvent) (Event, bool) {
	if ev.kind == kindName {
		return s.applyName(ev)
	}
	if ev.seq != s.seq || s.cancelled {
		return Event{}, false
	}
	switch ev.kind {
	case kindFragment:
		s.transient.WriteString(ev.text)
		s.markDirty()
		return Event{Type: EventIncremental, Text: ev.text}, true
	case kindFinal:
		s.commitAssistant(ev.text)
		return Event{Type: EventFinal, Text: ev.text}, true
	case kindError:
		text := "Error: " + ev.err.Error()
		s.transient.Reset()
		s.processing = false
		s.appendMessage(history.Message{Content: text, IsUser: false, Model: s.turnModel})
		return Event{Type: EventError, Text: text}, true
	}
	return Event{}, false
}

// commitAssistant records a completed assistant turn and kicks off
// auto-naming after the first one.
func (s *Session) commitAssistant(text string) {
	s.transient.Reset()
	s.processing = false
	s.appendMessage(history.Message{Content: text, IsUser: false, Model: s.turnModel})
	if s.needsNaming && !s.namingOff {
		s.needsNaming = false
		go s.generateName(s.id, s.provider, s.model, s.params, toWireMessages(s.messages))
	}
}

// applyName renames the session a naming result was computed for.
// Results for a session that is no longer current are dropped: the
// user has already moved on to a new or loaded conversation.
func (s *Session) applyName(ev streamEvent) (Event, bool) {
	if ev.session != s.id {
		return Event{}, false
	}
	newID, err := s.store.Rename(s.id, ev.text)
	if err != nil {
		log.Printf("chat: failed to rename session: %v", err)
		return Event{}, false
	}
	s.id = newID
	s.markDirty()
	return Event{Type: EventNameReady, Text: newID}, true
}

// appendMessage appends to memory and log in one step. A log write
// failure is reported but does not roll back the in-memory copy; the
// running process stays authoritative.
func (s *Session) appendMessage(m history.Message) {
	s.messages = append(s.messages, m)
	if s.id == "" {
		return
	}
	if err := s.store.Append(s.id, m); err != nil {
		log.Printf("chat: failed to append message to history: %v", err)
	}
	s.markDirty()
}

func toWireMessages(messages []history.Message) []llm.Message {
	out := make([]llm.Message, 0, len(messages))
	for _, m := range messages {
		role := llm.RoleAssistant
		if m.IsUser {
			role = llm.RoleUser
		}
		out = append(out, llm.Message{Role: role, Content: m.Content})
	}
	return out
}
