package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the client-side login state: the bearer token and the
// user it belongs to. It is populated at login, cleared at logout and
// loaded from disk at startup. Passed explicitly, never a global.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Authenticated reports whether the session holds a token.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// SessionFile persists a Session as JSON on disk.
type SessionFile struct {
	path string
}

// NewSessionFile returns a SessionFile at path.
func NewSessionFile(path string) *SessionFile {
	return &SessionFile{path: path}
}

// Load reads the session from disk. A missing file is not an error;
// it yields an empty (unauthenticated) session.
func (f *SessionFile) Load() (Session, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Save writes the session to disk, creating parent directories.
// The file is mode 0600: it contains a live credential.
func (f *SessionFile) Save(s Session) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, b, 0o600)
}

// Clear removes the session file. Missing file is fine.
func (f *SessionFile) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
