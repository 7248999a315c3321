// Package tui is the interactive consumer of the chat session engine.
// It runs a single-threaded bubbletea loop that drives the session's
// non-blocking Poll on a timer tick; all network activity stays inside
// the session's background tasks.
package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ddxfish/chatterm/internal/chat"
	"github.com/ddxfish/chatterm/internal/llm"
)

// pollInterval paces the Poll drain. Streaming feels live well below
// 100ms; going much lower just burns CPU on redraws.
const pollInterval = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the bubbletea model wrapping one chat session.
type Model struct {
	session  *chat.Session
	viewport viewport.Model
	input    textarea.Model
	spin     spinner.Model
	picker   *sessionPicker

	width  int
	height int
	status string
	ready  bool
}

// New creates the TUI model over an initialized session.
func New(session *chat.Session) *Model {
	input := textarea.New()
	input.Placeholder = "Type a message..."
	input.SetHeight(3)
	input.CharLimit = 0
	input.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		session: session,
		input:   input,
		spin:    spin,
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spin.Tick, tick())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		inputHeight := m.input.Height() + 2
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - inputHeight
		}
		m.input.SetWidth(msg.Width - 2)
		m.refreshConversation()
		return m, nil

	case tickMsg:
		m.drainSession()
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.picker != nil {
			return m.updatePicker(msg)
		}
		return m.updateChat(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.session.Cancel()
		m.status = "cancelled"
		m.refreshConversation()
		return m, nil

	case "ctrl+n":
		if err := m.session.NewChat(); err != nil {
			m.status = err.Error()
		} else {
			m.status = "new chat"
		}
		m.refreshConversation()
		return m, nil

	case "ctrl+o":
		ids, err := m.session.ListSessions()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.picker = newSessionPicker(ids)
		return m, nil

	case "ctrl+p":
		m.cycleProfile()
		return m, nil

	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			return m, nil
		}
		if err := m.session.Submit(text); err != nil {
			if errors.Is(err, chat.ErrBusy) {
				m.status = "still responding; press esc to stop first"
			} else {
				m.status = err.Error()
			}
			return m, nil
		}
		m.input.Reset()
		m.status = ""
		m.refreshConversation()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.picker = nil
		return m, nil
	case "up":
		m.picker.moveUp()
		return m, nil
	case "down":
		m.picker.moveDown()
		return m, nil
	case "backspace":
		m.picker.backspace()
		return m, nil
	case "enter":
		if id, ok := m.picker.selected(); ok {
			if err := m.session.LoadSession(id); err != nil {
				m.status = err.Error()
			} else {
				m.status = "loaded " + id
			}
		}
		m.picker = nil
		m.refreshConversation()
		return m, nil
	case "ctrl+d":
		if id, ok := m.picker.selected(); ok {
			if err := m.session.DeleteSession(id); err != nil {
				m.status = err.Error()
			} else {
				m.picker.remove(id)
				m.status = "deleted " + id
			}
			m.refreshConversation()
		}
		return m, nil
	}
	if len(msg.Runes) > 0 {
		for _, r := range msg.Runes {
			m.picker.typeRune(r)
		}
	}
	return m, nil
}

// drainSession polls the orchestrator and refreshes the transcript
// when anything changed. Poll never blocks, so the UI loop stays live
// while fragments stream in.
func (m *Model) drainSession() {
	for _, event := range m.session.Poll() {
		switch event.Type {
		case chat.EventError:
			m.status = ""
		case chat.EventFinal:
			m.status = ""
		case chat.EventNameReady:
			m.status = "session named " + event.Text
		}
	}
	if m.session.Dirty() {
		m.refreshConversation()
	}
}

func (m *Model) cycleProfile() {
	switch m.session.Profile() {
	case llm.ProfileNormal:
		m.session.SetProfile(llm.ProfileCoder)
	case llm.ProfileCoder:
		m.session.SetProfile(llm.ProfileCreative)
	default:
		m.session.SetProfile(llm.ProfileNormal)
	}
	m.status = "profile: " + m.session.Profile()
}

// refreshConversation rebuilds the viewport from the conversation plus
// any in-flight transient text, pinned to the bottom.
func (m *Model) refreshConversation() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, msg := range m.session.Messages() {
		if msg.IsUser {
			b.WriteString(userLabelStyle.Render("You"))
		} else {
			label := msg.Model
			if label == "" {
				label = "Bot"
			}
			if strings.HasPrefix(msg.Content, "Error: ") {
				b.WriteString(errorStyle.Render(label))
			} else {
				b.WriteString(botLabelStyle.Render(label))
			}
		}
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	if transient := m.session.Transient(); transient != "" {
		b.WriteString(botLabelStyle.Render(llm.ShortFireworksModel(m.session.ActiveModel())))
		b.WriteString("\n")
		b.WriteString(transient)
		b.WriteString("\n")
	}
	m.viewport.SetContent(lipgloss.NewStyle().Width(m.viewport.Width).Render(b.String()))
	m.viewport.GotoBottom()
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.picker != nil {
		return m.picker.view(m.width)
	}

	status := m.statusLine()
	return fmt.Sprintf("%s\n%s\n%s", m.viewport.View(), status, m.input.View())
}

func (m *Model) statusLine() string {
	var parts []string
	if m.session.IsProcessing() {
		parts = append(parts, m.spin.View()+"thinking")
	}
	parts = append(parts, llm.ShortFireworksModel(m.session.ActiveModel()))
	parts = append(parts, "profile:"+m.session.Profile())
	if m.status != "" {
		parts = append(parts, m.status)
	}
	return statusStyle.Render(strings.Join(parts, "  |  "))
}

// Run starts the TUI and blocks until exit.
func Run(session *chat.Session) error {
	p := tea.NewProgram(New(session), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
