// Package storage holds the durable half of kiosk state: a small string
// key/value store that outlives a single page load.
//
// In a live run the store is the tab's window.localStorage (see
// pkg/browser). Tests use MemoryStore, and FileStore keeps the same keys in
// a JSON file on the host.
package storage

import (
	"encoding/json"
	"strings"
	"sync"
)

// Persisted keys. Values are JSON except KeyIndex, which holds a stringified
// integer.
const (
	KeyPlaylist = "jwg_kiosk_playlist"
	KeyConfig   = "jwg_kiosk_config"
	KeyTitles   = "jwg_kiosk_titles"
	KeyIndex    = "jwg_kiosk_idx"
)

// Keys lists every key owned by kiosk mode.
var Keys = []string{KeyPlaylist, KeyConfig, KeyTitles, KeyIndex}

// Store provides access to durable key/value entries.
//
// Writes are last-write-wins; another tab may overwrite an entry at any
// time, so callers re-read rather than cache.
type Store interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)

	// Set stores value under key
	Set(key, value string) error

	// Remove deletes key; removing a missing key is not an error
	Remove(key string) error
}

// MemoryStore implements Store in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

// Get returns the value for key.
func (s *MemoryStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

// Remove deletes key.
func (s *MemoryStore) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Snapshot returns a copy of all entries.
func (s *MemoryStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dataCopy := make(map[string]string, len(s.data))
	for k, v := range s.data {
		dataCopy[k] = v
	}
	return dataCopy
}

// ReadJSON decodes the JSON value stored under key into v.
// A missing key, an empty value, a read error or malformed JSON all report
// false and leave v untouched: bad state is treated as absent state.
func ReadJSON(s Store, key string, v any) bool {
	raw, ok, err := s.Get(key)
	if err != nil || !ok || strings.TrimSpace(raw) == "" {
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false
	}
	return true
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(s Store, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(key, string(data))
}

// ReadPlaylist returns the persisted playlist, or nil if absent or malformed.
// Entries that are not strings make the whole value malformed.
func ReadPlaylist(s Store) []string {
	var playlist []string
	if !ReadJSON(s, KeyPlaylist, &playlist) {
		return nil
	}
	return playlist
}

// ReadTitles returns the persisted title map, or an empty map.
func ReadTitles(s Store) map[string]string {
	titles := map[string]string{}
	var raw map[string]any
	if !ReadJSON(s, KeyTitles, &raw) {
		return titles
	}
	for k, v := range raw {
		if str, ok := v.(string); ok {
			titles[k] = str
		}
	}
	return titles
}

// ReadConfig returns the raw persisted settings object, or an empty map.
func ReadConfig(s Store) map[string]any {
	var raw map[string]any
	if !ReadJSON(s, KeyConfig, &raw) || raw == nil {
		return map[string]any{}
	}
	return raw
}

// Clear removes every kiosk key. It attempts all removals and returns the
// first error encountered.
func Clear(s Store) error {
	var first error
	for _, key := range Keys {
		if err := s.Remove(key); err != nil && first == nil {
			first = err
		}
	}
	return first
}
