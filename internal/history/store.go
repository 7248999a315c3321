package history

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"
)

// Store manages the per-session history files in one directory. A
// session id is the file name of its log, e.g. "1717171717.txt".
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating dir if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the directory holding the history files.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the absolute path of a session's log file.
func (s *Store) Path(id string) string {
	return filepath.Join(s.dir, id)
}

// Create allocates a new empty session log named by the current Unix
// timestamp and returns its id.
func (s *Store) Create() (string, error) {
	base := fmt.Sprintf("%d", time.Now().Unix())
	path, id := s.uniquePath(base)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create session file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close session file: %w", err)
	}
	return id, nil
}

// Append serializes one message and appends it to the session's log.
func (s *Store) Append(id string, m Message) error {
	f, err := os.OpenFile(s.Path(id), os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open session file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(EncodeRecord(m)); err != nil {
		return fmt.Errorf("append message: %w", err)
	}
	return nil
}

// Load parses the whole session log back into ordered messages.
func (s *Store) Load(id string) ([]Message, error) {
	data, err := os.ReadFile(s.Path(id))
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	return ParseRecords(string(data)), nil
}

// List returns all session ids, most recent first. Timestamp-named
// files sort chronologically, so reverse lexicographic order is
// newest-first for unrenamed sessions.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read history directory: %w", err)
	}
	var ids []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		ids = append(ids, entry.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// Delete removes a session's log. If it was the last remaining
// session a fresh empty one is created and its id returned, so callers
// never end up with zero sessions. The returned id is "" when other
// sessions remain.
func (s *Store) Delete(id string) (string, error) {
	if err := os.Remove(s.Path(id)); err != nil {
		return "", fmt.Errorf("delete session file: %w", err)
	}
	remaining, err := s.List()
	if err != nil {
		return "", err
	}
	if len(remaining) > 0 {
		return "", nil
	}
	return s.Create()
}

// Rename gives a session a human-readable name, sanitized into a
// filesystem-safe slug and de-duplicated with a numeric suffix when
// the target already exists. Returns the new session id.
func (s *Store) Rename(id, newName string) (string, error) {
	slug := Slugify(newName)
	if slug == "" {
		return "", fmt.Errorf("rename session: name %q has no usable characters", newName)
	}
	path, newID := s.uniquePath(slug)
	if err := os.Rename(s.Path(id), path); err != nil {
		return "", fmt.Errorf("rename session file: %w", err)
	}
	return newID, nil
}

// Slugify reduces a name to letters, digits and underscores.
func Slugify(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte('_')
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// uniquePath appends _1, _2, ... until base.txt does not collide.
func (s *Store) uniquePath(base string) (path, id string) {
	id = base + ".txt"
	path = filepath.Join(s.dir, id)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, id
		}
		id = fmt.Sprintf("%s_%d.txt", base, counter)
		path = filepath.Join(s.dir, id)
	}
}
