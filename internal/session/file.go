package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// DefaultFileName is the session file used by the CLI.
const DefaultFileName = "session.json"

// FileStore keeps all sessions in one JSON file, keyed like the browser's
// local storage.
type FileStore struct {
	path string
	mu   sync.Mutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFilePath returns ~/.storefront/session.json, or the working
// directory when no home directory is known.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(home, ".storefront", DefaultFileName)
}

// Path returns the backing file.
func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load(_ context.Context, key string) (Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.read()
	if err != nil {
		return Session{}, err
	}
	s, ok := sessions[key]
	if !ok {
		return Session{}, ErrNoSession
	}
	return s, nil
}

func (f *FileStore) Save(_ context.Context, key string, s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.read()
	if err != nil {
		return err
	}
	sessions[key] = s
	return f.write(sessions)
}

func (f *FileStore) Clear(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	sessions, err := f.read()
	if err != nil {
		return err
	}
	if _, ok := sessions[key]; !ok {
		return nil
	}
	delete(sessions, key)
	if len(sessions) == 0 {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}
	return f.write(sessions)
}

func (f *FileStore) read() (map[string]Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]Session{}, nil
		}
		return nil, err
	}
	sessions := map[string]Session{}
	if len(data) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("session file %s: %w", f.path, err)
	}
	return sessions, nil
}

func (f *FileStore) write(sessions map[string]Session) error {
	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(f.path, data, 0o600)
}
