package kiosk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/kiosk/pkg/storage"
)

type removeFailingStore struct {
	*storage.MemoryStore
}

func (removeFailingStore) Remove(string) error {
	return errors.New("storage disabled")
}

func TestExit(t *testing.T) {
	site, err := NewSite(testBase, "")
	require.NoError(t, err)

	store := storage.NewMemoryStore()
	require.NoError(t, storage.WriteJSON(store, storage.KeyPlaylist, []string{"a.html"}))
	require.NoError(t, store.Set(storage.KeyIndex, "0"))
	page := newFakePage(800, 800)

	require.NoError(t, Exit(context.Background(), store, page, site))

	assert.Empty(t, store.Snapshot())
	assert.Equal(t, []string{testBase + "index.html"}, page.navigations)
}

func TestExit_NavigatesEvenIfClearFails(t *testing.T) {
	site, err := NewSite(testBase, "home.html")
	require.NoError(t, err)
	page := newFakePage(800, 800)

	err = Exit(context.Background(), removeFailingStore{storage.NewMemoryStore()}, page, site)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage disabled")
	assert.Equal(t, []string{testBase + "home.html"}, page.navigations)
}

func TestExit_ReportsNavigationFailure(t *testing.T) {
	site, err := NewSite(testBase, "")
	require.NoError(t, err)
	page := newFakePage(800, 800)
	page.navErr = errors.New("target closed")

	err = Exit(context.Background(), storage.NewMemoryStore(), page, site)
	assert.ErrorIs(t, err, page.navErr)
}
