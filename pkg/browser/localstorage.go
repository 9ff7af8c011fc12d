package browser

import (
	"context"
	"fmt"
	"time"
)

const (
	getItemScript    = `(k) => window.localStorage.getItem(k)`
	setItemScript    = `([k, v]) => { window.localStorage.setItem(k, v); }`
	removeItemScript = `(k) => { window.localStorage.removeItem(k); }`
)

// DefaultStorageTimeout bounds a single localStorage call.
const DefaultStorageTimeout = 5 * time.Second

// LocalStorage is the tab's window.localStorage as a storage.Store. It
// addresses whatever document is loaded, so it is only meaningful while the
// tab shows a page of the kiosk site.
type LocalStorage struct {
	session *Session
	timeout time.Duration
}

// NewLocalStorage creates a store over the session's page.
func NewLocalStorage(session *Session) *LocalStorage {
	return &LocalStorage{session: session, timeout: DefaultStorageTimeout}
}

// Get returns the value stored under key.
func (s *LocalStorage) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	v, err := s.session.Evaluate(ctx, getItemScript, key)
	if err != nil {
		return "", false, fmt.Errorf("localStorage get %q: %w", key, err)
	}
	if v == nil {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("localStorage get %q: unexpected %T", key, v)
	}
	return str, true, nil
}

// Set stores value under key.
func (s *LocalStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.session.Evaluate(ctx, setItemScript, []interface{}{key, value}); err != nil {
		return fmt.Errorf("localStorage set %q: %w", key, err)
	}
	return nil
}

// Remove deletes key.
func (s *LocalStorage) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.session.Evaluate(ctx, removeItemScript, key); err != nil {
		return fmt.Errorf("localStorage remove %q: %w", key, err)
	}
	return nil
}
