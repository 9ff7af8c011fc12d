package kiosk

import (
	"fmt"
	"net/url"
	"strings"
)

// HomeIdentifier is the page identifier of the site root.
const HomeIdentifier = "index.html"

// Site locates playlist pages under a base URL.
type Site struct {
	base *url.URL
	home string
}

// NewSite creates a Site rooted at baseURL. home is the identifier exit
// navigates to; empty means HomeIdentifier.
func NewSite(baseURL, home string) (*Site, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if u.Scheme == "" || (u.Host == "" && u.Scheme != "file") {
		return nil, fmt.Errorf("base URL %q must be absolute", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""

	if home == "" {
		home = HomeIdentifier
	}

	return &Site{base: u, home: home}, nil
}

// Base returns the base URL.
func (s *Site) Base() string {
	return s.base.String()
}

// Identify returns the page identifier of rawURL: its path relative to the
// base, normalized. Unparseable URLs identify as the home page.
func (s *Site) Identify(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return HomeIdentifier
	}
	return NormalizePath(u.Path, s.base.Path)
}

// Resolve returns the absolute URL of a page identifier under the base.
func (s *Site) Resolve(entry string) (*url.URL, error) {
	entry = strings.TrimLeft(strings.ReplaceAll(entry, "\\", "/"), "/")
	ref, err := url.Parse(entry)
	if err != nil {
		return nil, fmt.Errorf("invalid playlist entry %q: %w", entry, err)
	}
	return s.base.ResolveReference(ref), nil
}

// HomeURL returns the URL exit navigates to. It carries no kiosk flag.
func (s *Site) HomeURL() string {
	u, err := s.Resolve(s.home)
	if err != nil {
		return s.base.String()
	}
	return u.String()
}

// NormalizePath converts a URL path into a page identifier: backslashes
// become slashes, the base path prefix and any leading separators are
// stripped, and the empty path maps to HomeIdentifier.
//
//	NormalizePath("/bios/a.html", "/") == "bios/a.html"
//	NormalizePath("/site/", "/site/") == "index.html"
func NormalizePath(path, basePath string) string {
	p := strings.ReplaceAll(path, "\\", "/")

	if bp := strings.TrimRight(basePath, "/"); bp != "" {
		if p == bp || strings.HasPrefix(p, bp+"/") {
			p = p[len(bp):]
		}
	}

	p = strings.TrimLeft(p, "/")
	if p == "" {
		return HomeIdentifier
	}
	return p
}
