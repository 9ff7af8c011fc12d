package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/kiosk/pkg/kiosk"
	"github.com/entrhq/kiosk/pkg/storage"
)

func TestStartPage(t *testing.T) {
	entries := []string{"a.html", "b.html", "c.html"}

	tests := []struct {
		name       string
		configured string
		entries    []string
		index      string
		want       string
	}{
		{name: "explicit start wins", configured: "b.html", entries: entries, index: "2", want: "b.html"},
		{name: "no stored index", entries: entries, want: "a.html"},
		{name: "stored index", entries: entries, index: "2", want: "c.html"},
		{name: "index past the end", entries: entries, index: "7", want: "c.html"},
		{name: "negative index", entries: entries, index: "-3", want: "a.html"},
		{name: "garbage index", entries: entries, index: "two", want: "a.html"},
		{name: "empty playlist", index: "1", want: kiosk.HomeIdentifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := storage.NewMemoryStore()
			if tt.index != "" {
				require.NoError(t, store.Set(storage.KeyIndex, tt.index))
			}
			assert.Equal(t, tt.want, startPage(tt.configured, tt.entries, store))
		})
	}
}

func TestStartPage_ResumesRestoredIndex(t *testing.T) {
	site, err := kiosk.NewSite("http://kiosk.local/", "")
	require.NoError(t, err)

	entries := []string{"a.html", "b.html", "c.html"}
	local := storage.NewMemoryStore()
	require.NoError(t, storage.WriteJSON(local, storage.KeyPlaylist, entries))

	file, err := storage.NewFileStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	require.NoError(t, file.Set(storage.KeyIndex, "2"))

	restored, err := storage.Restore(local, file, storage.KeyIndex)
	require.NoError(t, err)
	assert.Equal(t, []string{storage.KeyIndex}, restored)

	start := startPage("", entries, local)
	target, err := site.Target(start, kiosk.TargetOptions{})
	require.NoError(t, err)

	seq, err := kiosk.NewSequencer(kiosk.Deps{
		Store: local,
		Site:  site,
	}, target)
	require.NoError(t, err)
	assert.Equal(t, 2, seq.Index())

	idx, _, err := local.Get(storage.KeyIndex)
	require.NoError(t, err)
	assert.Equal(t, "2", idx)
}
