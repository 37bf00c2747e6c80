package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/honeycarbs/jobzone/internal/domain"
	"github.com/honeycarbs/jobzone/internal/domain/auth"
)

// FileStore persists the session as JSON so it survives restarts
type FileStore struct {
	path string
	mu   sync.Mutex
}

var _ auth.SessionStore = (*FileStore)(nil)

// NewFileStore stores the session at path, creating parent directories on write
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("session: file path is required")
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Get(context.Context) (domain.AuthSession, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.AuthSession{}, false, nil
	}
	if err != nil {
		return domain.AuthSession{}, false, fmt.Errorf("session: read %s: %w", f.path, err)
	}

	var s domain.AuthSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return domain.AuthSession{}, false, fmt.Errorf("session: decode %s: %w", f.path, err)
	}
	return s, true, nil
}

// Set writes through a temp file and rename so readers never see a partial session
func (f *FileStore) Set(_ context.Context, s domain.AuthSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("session: create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session: create temp file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("session: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

func (f *FileStore) Clear(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("session: remove %s: %w", f.path, err)
	}
	return nil
}
