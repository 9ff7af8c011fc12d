package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store using a JSON file on the host.
//
// The controller uses it to remember playback progress across restarts of
// the browser, whose localStorage may live in a throwaway profile.
// Every mutation is flushed immediately.
type FileStore struct {
	path    string
	data    map[string]string
	mu      sync.RWMutex
	version string
}

// NewFileStore creates a new file-based store.
// If path is empty, defaults to ~/.kiosk/state.json
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, ".kiosk", "state.json")
	}

	store := &FileStore{
		path:    path,
		data:    make(map[string]string),
		version: "1.0",
	}

	// A missing file is an empty store; a corrupt one is too, since kiosk
	// state is best-effort.
	if err := store.load(); err != nil && !os.IsNotExist(err) {
		store.data = make(map[string]string)
	}

	return store, nil
}

func (s *FileStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer file.Close()

	var state struct {
		Version string            `json:"version"`
		Entries map[string]string `json:"entries"`
	}

	if err := json.NewDecoder(file).Decode(&state); err != nil {
		return fmt.Errorf("failed to decode state file: %w", err)
	}

	if state.Version != "" {
		s.version = state.Version
	}
	if state.Entries != nil {
		s.data = state.Entries
	}
	return nil
}

// save writes the store to disk. Caller must hold s.mu.
func (s *FileStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Create temp file for atomic write
	tempPath := s.path + ".tmp"
	file, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}

	state := struct {
		Version string            `json:"version"`
		Entries map[string]string `json:"entries"`
	}{
		Version: s.version,
		Entries: s.data,
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(state); err != nil {
		file.Close()
		os.Remove(tempPath)
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempPath, s.path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	return nil
}

// Get returns the value for key.
func (s *FileStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key and flushes the file.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.data[key]; ok && current == value {
		return nil
	}
	s.data[key] = value
	return s.save()
}

// Remove deletes key and flushes the file.
func (s *FileStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; !ok {
		return nil
	}
	delete(s.data, key)
	return s.save()
}

// Path returns the file path of the store.
func (s *FileStore) Path() string {
	return s.path
}
