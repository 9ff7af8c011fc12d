package kiosk

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/entrhq/kiosk/pkg/storage"
)

// Cursor is the single source of truth for which playlist entry is current.
// It reads and writes the persisted index; it caches nothing across loads.
type Cursor struct {
	store    storage.Store
	playlist []string
	index    int
}

// NewCursor creates a cursor over a non-empty playlist.
func NewCursor(store storage.Store, playlist []string) *Cursor {
	return &Cursor{store: store, playlist: playlist}
}

// Reconcile resolves the index for the page identified by current and
// persists it. A page found in the playlist wins over anything persisted
// (so manual or back/forward navigation heals the index); otherwise the
// persisted index is used if valid, else 0.
//
// The index is returned even when persisting fails.
func (c *Cursor) Reconcile(current string) (int, error) {
	c.index = c.resolve(current)
	return c.index, c.persist()
}

func (c *Cursor) resolve(current string) int {
	for i, entry := range c.playlist {
		if entry == current {
			return i
		}
	}

	raw, ok, err := c.store.Get(storage.KeyIndex)
	if err != nil || !ok {
		return 0
	}
	saved, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || saved < 0 || saved >= len(c.playlist) {
		return 0
	}
	return saved
}

// Advance moves to the next entry, wrapping after the last, and persists
// it. A one-entry playlist advances onto itself.
func (c *Cursor) Advance() (int, error) {
	c.index = NextIndex(c.index, len(c.playlist))
	return c.index, c.persist()
}

func (c *Cursor) persist() error {
	if err := c.store.Set(storage.KeyIndex, strconv.Itoa(c.index)); err != nil {
		return fmt.Errorf("failed to persist index %d: %w", c.index, err)
	}
	return nil
}

// Index returns the current position.
func (c *Cursor) Index() int {
	return c.index
}

// Entry returns the playlist identifier at the current position.
func (c *Cursor) Entry() string {
	return c.playlist[c.index]
}

// Len returns the playlist length.
func (c *Cursor) Len() int {
	return len(c.playlist)
}

// NextIndex returns the position after i in a playlist of length n.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}
