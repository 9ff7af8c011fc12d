package storage

import (
	"errors"
	"fmt"
)

// MirrorStore reads from a primary store and copies writes of selected keys
// to a secondary one. The controller uses it to keep the playback index in
// a FileStore while the tab's localStorage stays authoritative.
type MirrorStore struct {
	primary   Store
	secondary Store
	keys      map[string]bool
}

// Mirror wraps primary so that writes to keys also reach secondary.
func Mirror(primary, secondary Store, keys ...string) *MirrorStore {
	m := &MirrorStore{
		primary:   primary,
		secondary: secondary,
		keys:      make(map[string]bool, len(keys)),
	}
	for _, k := range keys {
		m.keys[k] = true
	}
	return m
}

// Get reads from the primary store only.
func (m *MirrorStore) Get(key string) (string, bool, error) {
	return m.primary.Get(key)
}

// Set writes to the primary store and, for mirrored keys, the secondary.
// A secondary failure is reported but does not undo the primary write.
func (m *MirrorStore) Set(key, value string) error {
	if err := m.primary.Set(key, value); err != nil {
		return err
	}
	if !m.keys[key] {
		return nil
	}
	if err := m.secondary.Set(key, value); err != nil {
		return fmt.Errorf("mirror %q: %w", key, err)
	}
	return nil
}

// Remove deletes key from the primary store and, for mirrored keys, the
// secondary.
func (m *MirrorStore) Remove(key string) error {
	var errs []error
	if err := m.primary.Remove(key); err != nil {
		errs = append(errs, err)
	}
	if m.keys[key] {
		if err := m.secondary.Remove(key); err != nil {
			errs = append(errs, fmt.Errorf("mirror %q: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

// Restore copies keys present in src and absent from dst. It returns the
// keys it copied.
func Restore(dst, src Store, keys ...string) ([]string, error) {
	var copied []string
	for _, key := range keys {
		if _, ok, err := dst.Get(key); err != nil {
			return copied, err
		} else if ok {
			continue
		}

		v, ok, err := src.Get(key)
		if err != nil {
			return copied, err
		}
		if !ok {
			continue
		}
		if err := dst.Set(key, v); err != nil {
			return copied, fmt.Errorf("failed to restore %q: %w", key, err)
		}
		copied = append(copied, key)
	}
	return copied, nil
}
