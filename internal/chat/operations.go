package chat

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ddxfish/chatterm/internal/export"
	"github.com/ddxfish/chatterm/internal/history"
)

// NewChat starts a fresh session: empty conversation, new history
// file, naming armed for the first assistant reply.
func (s *Session) NewChat() error {
	s.Cancel()
	id, err := s.store.Create()
	if err != nil {
		return err
	}
	s.id = id
	s.messages = nil
	s.transient.Reset()
	s.needsNaming = true
	s.markDirty()
	return nil
}

// LoadSession replaces the conversation with the contents of an
// existing history file. Loaded sessions are never auto-renamed.
func (s *Session) LoadSession(id string) error {
	messages, err := s.store.Load(id)
	if err != nil {
		return err
	}
	s.Cancel()
	s.id = id
	s.messages = messages
	s.transient.Reset()
	s.needsNaming = false
	s.markDirty()
	return nil
}

// LoadMostRecentOrCreate restores the newest session, or creates one
// when the history directory is empty. Called once at startup.
func (s *Session) LoadMostRecentOrCreate() error {
	ids, err := s.store.List()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return s.NewChat()
	}
	return s.LoadSession(ids[0])
}

// ListSessions returns all session ids, most recent first.
func (s *Session) ListSessions() ([]string, error) {
	return s.store.List()
}

// DeleteSession removes a history file. Deleting the current session
// switches to the most recent remaining one; deleting the last
// session leaves a fresh empty session current, never zero sessions.
func (s *Session) DeleteSession(id string) error {
	replacement, err := s.store.Delete(id)
	if err != nil {
		return err
	}
	if replacement != "" {
		s.messages = nil
		s.transient.Reset()
		s.id = replacement
		s.needsNaming = true
		s.markDirty()
		return nil
	}
	if id == s.id {
		return s.LoadMostRecentOrCreate()
	}
	s.markDirty()
	return nil
}

// RenameSession renames a history file by id, keeping the current
// binding intact when the current session is the one renamed.
func (s *Session) RenameSession(id, newName string) (string, error) {
	newID, err := s.store.Rename(id, newName)
	if err != nil {
		return "", err
	}
	if id == s.id {
		s.id = newID
	}
	s.markDirty()
	return newID, nil
}

// Export serializes the in-memory conversation to path. The format is
// picked by file extension; anything unrecognized gets the native
// record format.
func (s *Session) Export(path string) error {
	exporter := export.ForExtension(strings.TrimPrefix(filepath.Ext(path), "."))
	if err := export.ToFile(exporter, path, s.messages); err != nil {
		return fmt.Errorf("export conversation: %w", err)
	}
	return nil
}

// Store exposes the history store for read-only callers such as the
// sessions CLI.
func (s *Session) Store() *history.Store {
	return s.store
}
