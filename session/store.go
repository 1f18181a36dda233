package session

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store persists sessions as JSON files in a directory, one file per
// session name.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, creating the directory if
// needed.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("session store: directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("session store: create %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the store's root directory.
func (st *Store) Dir() string {
	return st.dir
}

// Save writes the session to disk. Sessions that have not changed since
// the last save are skipped. A session without a name is assigned a
// generated one.
func (st *Store) Save(s *Session) error {
	if !s.Changed() {
		return nil
	}
	if s.Name == "" {
		s.Name = GenerateName()
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("session store: marshal %s: %w", s.Name, err)
	}
	path := st.path(s.Name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("session store: write %s: %w", path, err)
	}
	s.MarkSaved()
	slog.Debug("session saved", slog.String("name", s.Name), slog.String("path", path))
	return nil
}

// Load reads a previously saved session by name. A loaded session starts
// clean (Changed reports false).
func (st *Store) Load(name string) (*Session, error) {
	path := st.path(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("session store: read %s: %w", path, err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("session store: parse %s: %w", path, err)
	}
	s.Name = name
	s.MarkSaved()
	return &s, nil
}

// Exists reports whether a session with the given name has been saved.
func (st *Store) Exists(name string) bool {
	_, err := os.Stat(st.path(name))
	return err == nil
}

func (st *Store) path(name string) string {
	return filepath.Join(st.dir, name+".json")
}

// GenerateName returns a random session name of the form
// "session_<hex>".
func GenerateName() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		// rand.Read only fails when the OS entropy source is broken.
		return "session_00000000"
	}
	return "session_" + hex.EncodeToString(b[:])
}
