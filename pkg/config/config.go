// Package config loads the kiosk controller's YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/entrhq/kiosk/pkg/kiosk"
)

// ErrNoSite is returned by Validate when no base URL is configured.
var ErrNoSite = errors.New("site base_url is required")

// Config represents the configuration of a kiosk controller run
type Config struct {
	// Site the kiosk cycles through
	Site SiteConfig `yaml:"site" json:"site"`

	// Playlist and titles to seed into the tab's storage
	Playlist PlaylistConfig `yaml:"playlist" json:"playlist"`

	// Settings is the raw settings object seeded as jwg_kiosk_config.
	// Values are resolved by the kiosk core on every load.
	Settings map[string]any `yaml:"settings" json:"settings"`

	// Browser session configuration
	Browser BrowserConfig `yaml:"browser" json:"browser"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// StateFile mirrors the playback index on the host so a restarted
	// controller resumes where it stopped. Empty disables it.
	StateFile string `yaml:"state_file" json:"state_file"`

	// Console enables the interactive operator console
	Console bool `yaml:"console" json:"console"`
}

// SiteConfig locates the kiosk site
type SiteConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Start   string `yaml:"start" json:"start"` // first page; empty means the first playlist entry
	Home    string `yaml:"home" json:"home"`   // page exit navigates to
}

// PlaylistConfig lists the pages to cycle through, either explicitly or by
// scanning a local copy of the site
type PlaylistConfig struct {
	Entries []string          `yaml:"entries" json:"entries"`
	Titles  map[string]string `yaml:"titles" json:"titles"`

	// SiteDir, Include and Exclude build the playlist from HTML files on disk
	// when Entries is empty
	SiteDir string   `yaml:"site_dir" json:"site_dir"`
	Include []string `yaml:"include" json:"include"`
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Seed writes playlist, titles and settings into the tab's storage
	// before starting
	Seed bool `yaml:"seed" json:"seed"`
}

// BrowserConfig configures the Chromium session
type BrowserConfig struct {
	Headless    bool           `yaml:"headless" json:"headless"`
	Fullscreen  bool           `yaml:"fullscreen" json:"fullscreen"`
	Viewport    ViewportConfig `yaml:"viewport" json:"viewport"`
	UserDataDir string         `yaml:"user_data_dir" json:"user_data_dir"`
	Timeout     time.Duration  `yaml:"timeout" json:"timeout"`
	VeilColor   string         `yaml:"veil_color" json:"veil_color"`
}

// ViewportConfig is the browser viewport size in CSS pixels
type ViewportConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// LoggingConfig defines logging configuration
type LoggingConfig struct {
	// Verbosity controls logging level: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity" json:"verbosity"`

	// Directory overrides the log directory (default ~/.kiosk/logs)
	Directory string `yaml:"directory" json:"directory"`
}

// DefaultConfig returns a configuration suitable for a local kiosk display
func DefaultConfig() *Config {
	return &Config{
		Playlist: PlaylistConfig{
			Include: []string{"**.html"},
			Seed:    true,
		},
		Browser: BrowserConfig{
			Fullscreen: true,
			Viewport:   ViewportConfig{Width: 1920, Height: 1080},
			Timeout:    30 * time.Second,
			VeilColor:  "#000",
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
	}
}

// Load reads a YAML configuration file on top of DefaultConfig
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Site.BaseURL == "" {
		return ErrNoSite
	}
	if _, err := kiosk.NewSite(c.Site.BaseURL, c.Site.Home); err != nil {
		return fmt.Errorf("invalid site: %w", err)
	}

	if c.Playlist.Seed && len(c.Playlist.Entries) == 0 && c.Playlist.SiteDir == "" {
		return fmt.Errorf("playlist requires entries or site_dir when seeding")
	}

	if c.Browser.Viewport.Width < 0 || c.Browser.Viewport.Height < 0 {
		return fmt.Errorf("viewport cannot be negative")
	}
	if c.Browser.Timeout < 0 {
		return fmt.Errorf("browser timeout cannot be negative")
	}

	// Set default verbosity if not specified
	if c.Logging.Verbosity == "" {
		c.Logging.Verbosity = "normal"
	}

	validLevels := map[string]bool{
		"quiet":   true,
		"normal":  true,
		"verbose": true,
		"debug":   true,
	}
	if !validLevels[c.Logging.Verbosity] {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Logging.Verbosity)
	}

	return nil
}

// Verbose reports whether debug output should be logged
func (c *Config) Verbose() bool {
	return c.Logging.Verbosity == "verbose" || c.Logging.Verbosity == "debug"
}

// NewSite builds the kiosk site from the configuration
func (c *Config) NewSite() (*kiosk.Site, error) {
	return kiosk.NewSite(c.Site.BaseURL, c.Site.Home)
}
