package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entrhq/kiosk/pkg/kiosk"
	"github.com/entrhq/kiosk/pkg/storage"
)

func writeSite(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0750))
		require.NoError(t, os.WriteFile(p, []byte(content), 0600))
	}
	return dir
}

func page(title string) string {
	return "<!doctype html><html><head><title>" + title + "</title></head><body></body></html>"
}

func TestPatternMatcher(t *testing.T) {
	pm, err := NewPatternMatcher([]string{"**.html"}, []string{"drafts/**", "*.tmp.html"})
	require.NoError(t, err)

	assert.True(t, pm.Match("index.html"))
	assert.True(t, pm.Match("bios/a.html"))
	assert.True(t, pm.Match("./about.html"))
	assert.False(t, pm.Match("drafts/new.html"))
	assert.False(t, pm.Match("scratch.tmp.html"))
	assert.False(t, pm.Match("style.css"))

	topLevel, err := NewPatternMatcher([]string{"*.html"}, nil)
	require.NoError(t, err)
	assert.True(t, topLevel.Match("a.html"))
	assert.False(t, topLevel.Match("bios/a.html"))

	all, err := NewPatternMatcher(nil, nil)
	require.NoError(t, err)
	assert.True(t, all.Match("anything"))
}

func TestScan(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html":      page("Home"),
		"about.html":      page("About"),
		"bios/zed.html":   page("Zed"),
		"bios/amy.html":   page("Amy"),
		"drafts/wip.html": page("WIP"),
		".git/HEAD.html":  "x",
		"assets/site.css": "body{}",
	})
	pm, err := NewPatternMatcher([]string{"**.html"}, []string{"drafts/**"})
	require.NoError(t, err)

	entries, err := Scan(dir, pm)
	require.NoError(t, err)
	assert.Equal(t, []string{"index.html", "about.html", "bios/amy.html", "bios/zed.html"}, entries)
}

func TestScan_MissingDir(t *testing.T) {
	pm, err := NewPatternMatcher(nil, nil)
	require.NoError(t, err)

	_, err = Scan(filepath.Join(t.TempDir(), "nope"), pm)
	assert.Error(t, err)
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "simple", doc: page("Board of Directors"), want: "Board of Directors"},
		{name: "whitespace", doc: "<title>\n  Our   Team\n</title>", want: "Our Team"},
		{name: "entities", doc: "<title>Caf&eacute; &amp; Bar</title>", want: "Café & Bar"},
		{name: "missing", doc: "<html><body><h1>No title</h1></body></html>", want: ""},
		{name: "first wins", doc: "<title>One</title><svg><title>Two</title></svg>", want: "One"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTitle(strings.NewReader(tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuild_FromSiteDir(t *testing.T) {
	dir := writeSite(t, map[string]string{
		"index.html": page("Welcome"),
		"a.html":     page("Alpha"),
		"b.html":     "<p>untitled</p>",
	})

	plan, err := Build(Options{
		SiteDir:  dir,
		Include:  []string{"**.html"},
		Titles:   map[string]string{"a.html": "Alpha Team"},
		Settings: map[string]any{"speed": 120},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"index.html", "a.html", "b.html"}, plan.Playlist)
	assert.Equal(t, map[string]string{"index.html": "Welcome", "a.html": "Alpha Team"}, plan.Titles)
	assert.Equal(t, map[string]any{"speed": 120}, plan.Settings)
}

func TestBuild_ExplicitEntries(t *testing.T) {
	plan, err := Build(Options{Entries: []string{"x.html", "y.html"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x.html", "y.html"}, plan.Playlist)
	assert.Empty(t, plan.Titles)
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(Options{SiteDir: writeSite(t, map[string]string{"notes.txt": "x"}), Include: []string{"**.html"}})
	assert.ErrorIs(t, err, kiosk.ErrEmptyPlaylist)

	_, err = Build(Options{})
	assert.ErrorIs(t, err, kiosk.ErrEmptyPlaylist)
}

func TestPlan_Seed(t *testing.T) {
	store := storage.NewMemoryStore()
	require.NoError(t, store.Set(storage.KeyIndex, "2"))

	plan := &Plan{
		Playlist: []string{"a.html", "b.html"},
		Titles:   map[string]string{"b.html": "Bravo"},
	}
	require.NoError(t, plan.Seed(store))

	assert.Equal(t, []string{"a.html", "b.html"}, storage.ReadPlaylist(store))
	assert.Equal(t, map[string]string{"b.html": "Bravo"}, storage.ReadTitles(store))
	assert.Empty(t, storage.ReadConfig(store))

	idx, ok, err := store.Get(storage.KeyIndex)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "2", idx, "seeding keeps the index")
}
