// Package playlist builds the kiosk playlist and title map from a local copy
// of the site and seeds them into a store.
package playlist

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/entrhq/kiosk/pkg/kiosk"
	"github.com/entrhq/kiosk/pkg/storage"
)

// Plan is everything seeded into the tab's storage before kiosk mode starts.
type Plan struct {
	Playlist []string
	Titles   map[string]string
	Settings map[string]any
}

// Scan walks dir and returns the page identifiers of every file selected by
// the matcher, sorted, with the site's home page first if selected.
func Scan(dir string, matcher *PatternMatcher) ([]string, error) {
	var entries []string

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if matcher.Match(rel) {
			entries = append(entries, kiosk.NormalizePath(rel, ""))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if (entries[i] == kiosk.HomeIdentifier) != (entries[j] == kiosk.HomeIdentifier) {
			return entries[i] == kiosk.HomeIdentifier
		}
		return entries[i] < entries[j]
	})
	return entries, nil
}

// Titles reads the <title> of every entry found under dir. Entries without
// a file or a title are left out so the caption falls back to its default.
func Titles(dir string, entries []string) map[string]string {
	titles := make(map[string]string, len(entries))
	for _, entry := range entries {
		title, err := fileTitle(filepath.Join(dir, filepath.FromSlash(entry)))
		if err != nil || title == "" {
			continue
		}
		titles[entry] = title
	}
	return titles
}

func fileTitle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return ExtractTitle(f)
}

// ExtractTitle returns the whitespace-collapsed text of the document's
// first <title> element.
func ExtractTitle(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var title string
	var traverse func(*html.Node) bool
	traverse = func(n *html.Node) bool {
		if n.Type == html.ElementNode && n.Data == "title" {
			var b strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					b.WriteString(c.Data)
				}
			}
			title = strings.Join(strings.Fields(b.String()), " ")
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if traverse(c) {
				return true
			}
		}
		return false
	}
	traverse(doc)
	return title, nil
}

// Options describes where the playlist comes from.
type Options struct {
	Entries  []string
	Titles   map[string]string
	SiteDir  string
	Include  []string
	Exclude  []string
	Settings map[string]any
}

// Build resolves a plan: explicit entries win; otherwise the site directory
// is scanned. Titles found on disk are overridden by explicit ones.
func Build(opts Options) (*Plan, error) {
	plan := &Plan{
		Playlist: opts.Entries,
		Titles:   make(map[string]string),
		Settings: opts.Settings,
	}

	if len(plan.Playlist) == 0 && opts.SiteDir != "" {
		matcher, err := NewPatternMatcher(opts.Include, opts.Exclude)
		if err != nil {
			return nil, err
		}
		entries, err := Scan(opts.SiteDir, matcher)
		if err != nil {
			return nil, err
		}
		plan.Playlist = entries
	}
	if len(plan.Playlist) == 0 {
		return nil, kiosk.ErrEmptyPlaylist
	}

	if opts.SiteDir != "" {
		for k, v := range Titles(opts.SiteDir, plan.Playlist) {
			plan.Titles[k] = v
		}
	}
	for k, v := range opts.Titles {
		plan.Titles[k] = v
	}

	return plan, nil
}

// Seed writes the plan into store. The persisted index is left alone so a
// reseeded kiosk resumes where it was.
func (p *Plan) Seed(store storage.Store) error {
	if err := storage.WriteJSON(store, storage.KeyPlaylist, p.Playlist); err != nil {
		return fmt.Errorf("failed to seed playlist: %w", err)
	}
	if err := storage.WriteJSON(store, storage.KeyTitles, p.Titles); err != nil {
		return fmt.Errorf("failed to seed titles: %w", err)
	}

	settings := p.Settings
	if settings == nil {
		settings = map[string]any{}
	}
	if err := storage.WriteJSON(store, storage.KeyConfig, settings); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}
	return nil
}
