package main

import (
	"strconv"
	"strings"

	"github.com/entrhq/kiosk/pkg/kiosk"
	"github.com/entrhq/kiosk/pkg/storage"
)

// startPage picks the first page to open. An explicit start page wins;
// otherwise playback resumes at the stored index, clamped to the playlist,
// so the first load reconciles onto the entry it was already at.
func startPage(configured string, entries []string, store storage.Store) string {
	if configured != "" {
		return configured
	}
	if len(entries) == 0 {
		return kiosk.HomeIdentifier
	}

	idx := 0
	if raw, ok, err := store.Get(storage.KeyIndex); err == nil && ok {
		if n, err := strconv.Atoi(strings.TrimSpace(raw)); err == nil {
			idx = min(max(n, 0), len(entries)-1)
		}
	}
	return entries[idx]
}
