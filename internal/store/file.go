package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"budsjetto/internal/core"
)

// FileStore persists the state document as pretty-printed JSON in a single
// file. Writes go to a temp file in the same directory followed by a rename,
// so a crash mid-write leaves the previous document untouched.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted document. An absent file yields the empty default
// state. An unreadable file is an error. A file that exists but does not
// decode yields the default state together with ErrCorruptState; the file on
// disk is left as-is until the next successful Save.
func (s *FileStore) Load(ctx context.Context) (core.AppState, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		slog.InfoContext(ctx, "No state file yet, starting with defaults", "path", s.path)
		return core.DefaultAppState(), nil
	}
	if err != nil {
		return core.DefaultAppState(), fmt.Errorf("read state file %s: %w", s.path, err)
	}

	var state core.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return core.DefaultAppState(), fmt.Errorf("decode state file %s: %w: %w", s.path, ErrCorruptState, err)
	}
	state.Normalize()

	slog.InfoContext(ctx, "State loaded",
		"path", s.path,
		"entries", len(state.Entries),
		"trips", len(state.Trips),
		"currency", state.SelectedCurrency)
	return state, nil
}

// Save serializes the whole state and atomically replaces the backing file.
func (s *FileStore) Save(ctx context.Context, state core.AppState) error {
	state.Normalize()
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file %s: %w", s.path, err)
	}

	slog.DebugContext(ctx, "State saved",
		"path", s.path,
		"bytes", len(raw),
		"entries", len(state.Entries),
		"trips", len(state.Trips))
	return nil
}
