// Package main provides the kiosk controller: it opens a fullscreen Chromium
// tab on a static site and cycles through a playlist of pages, scrolling
// each one and fading between them.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/entrhq/kiosk/pkg/browser"
	"github.com/entrhq/kiosk/pkg/config"
	"github.com/entrhq/kiosk/pkg/executor/player"
	"github.com/entrhq/kiosk/pkg/executor/tui"
	"github.com/entrhq/kiosk/pkg/kiosk"
	"github.com/entrhq/kiosk/pkg/logging"
	"github.com/entrhq/kiosk/pkg/playlist"
	"github.com/entrhq/kiosk/pkg/storage"
	"github.com/entrhq/kiosk/pkg/types"
)

const (
	version     = "0.1.0"
	sessionName = "kiosk"
)

// CLIConfig holds command-line configuration
type CLIConfig struct {
	ConfigFile  string
	BaseURL     string
	Start       string
	SiteDir     string
	StateFile   string
	Headless    bool
	NoSeed      bool
	Console     bool
	Verbose     bool
	ShowVersion bool
}

func main() {
	cliConfig := parseFlags()

	if cliConfig.ShowVersion {
		fmt.Printf("Kiosk v%s\n", version)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := run(ctx, cancel, cliConfig); err != nil {
		cancel()
		log.Printf("Kiosk failed: %v", err)
		os.Exit(1)
	}
	cancel()
}

// parseFlags parses command line flags
func parseFlags() *CLIConfig {
	config := &CLIConfig{}

	flag.StringVar(&config.ConfigFile, "config", "", "Path to configuration file (YAML)")
	flag.StringVar(&config.BaseURL, "base-url", os.Getenv("KIOSK_BASE_URL"), "Base URL of the kiosk site")
	flag.StringVar(&config.Start, "start", "", "Page to start on (default: first playlist entry)")
	flag.StringVar(&config.SiteDir, "site-dir", "", "Local copy of the site to build the playlist from")
	flag.StringVar(&config.StateFile, "state-file", "", "Mirror the playback index to this file")
	flag.BoolVar(&config.Headless, "headless", false, "Run the browser without a window")
	flag.BoolVar(&config.NoSeed, "no-seed", false, "Use the playlist already stored in the browser profile")
	flag.BoolVar(&config.Console, "console", false, "Show the interactive operator console")
	flag.BoolVar(&config.Verbose, "verbose", false, "Log every playback phase")
	flag.BoolVar(&config.ShowVersion, "version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Kiosk - Auto-scrolling page cycler for unattended displays\n\n")
		fmt.Fprintf(os.Stderr, "Usage: kiosk [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Cycle every page of a local site copy\n")
		fmt.Fprintf(os.Stderr, "  kiosk -base-url http://localhost:8000/ -site-dir ./public\n\n")
		fmt.Fprintf(os.Stderr, "  # Run from a config file with the operator console\n")
		fmt.Fprintf(os.Stderr, "  kiosk -config kiosk.yaml -console\n\n")
	}

	flag.Parse()
	return config
}

// loadConfig reads the config file, if any, and applies flag overrides
func loadConfig(cliConfig *CLIConfig) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if cliConfig.ConfigFile != "" {
		loaded, err := config.Load(cliConfig.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cliConfig.BaseURL != "" {
		cfg.Site.BaseURL = cliConfig.BaseURL
	}
	if cliConfig.Start != "" {
		cfg.Site.Start = cliConfig.Start
	}
	if cliConfig.SiteDir != "" {
		cfg.Playlist.SiteDir = cliConfig.SiteDir
	}
	if cliConfig.StateFile != "" {
		cfg.StateFile = cliConfig.StateFile
	}
	if cliConfig.Headless {
		cfg.Browser.Headless = true
	}
	if cliConfig.NoSeed {
		cfg.Playlist.Seed = false
	}
	if cliConfig.Console {
		cfg.Console = true
	}
	if cliConfig.Verbose {
		cfg.Logging.Verbosity = "verbose"
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// run starts the browser and plays the kiosk until ctx is done
//
//nolint:gocyclo
func run(ctx context.Context, stop context.CancelFunc, cliConfig *CLIConfig) error {
	cfg, err := loadConfig(cliConfig)
	if err != nil {
		return err
	}

	if cfg.Logging.Directory != "" {
		logging.SetDirectory(cfg.Logging.Directory)
	}
	logging.SetVerbose(cfg.Verbose())

	logger, logErr := logging.NewLogger("controller")
	if logErr != nil {
		log.Printf("Warning: %v", logErr)
	}
	defer logger.Close()

	site, err := cfg.NewSite()
	if err != nil {
		return err
	}

	manager := browser.NewSessionManager()
	if err := manager.Initialize(); err != nil {
		return err
	}
	defer func() {
		if err := manager.Shutdown(); err != nil {
			logger.Warnf("browser shutdown: %v", err)
		}
	}()

	session, err := manager.StartSession(sessionName, browser.SessionOptions{
		Headless:    cfg.Browser.Headless,
		Viewport:    &browser.Viewport{Width: cfg.Browser.Viewport.Width, Height: cfg.Browser.Viewport.Height},
		Timeout:     float64(cfg.Browser.Timeout.Milliseconds()),
		Fullscreen:  cfg.Browser.Fullscreen,
		UserDataDir: cfg.Browser.UserDataDir,
		InitScript: browser.InitScript(browser.ScriptOptions{
			Fullscreen: cfg.Browser.Fullscreen,
			VeilColor:  cfg.Browser.VeilColor,
		}),
	})
	if err != nil {
		return err
	}
	tab := browser.NewTab(session)

	store, err := openStore(cfg, session, logger)
	if err != nil {
		return err
	}

	// localStorage is per origin, so the tab must sit on the site first
	if err := session.Navigate(site.HomeURL(), browser.NavigateOptions{WaitUntil: "load"}); err != nil {
		return fmt.Errorf("failed to open site: %w", err)
	}

	entries, err := prepare(cfg, store, logger)
	if err != nil {
		return err
	}

	var console *tui.Executor
	events := []types.EventSink{logEvents(logger.With("events"))}

	exec, err := player.NewExecutor(tab, player.Config{
		Site:   site,
		Store:  store,
		Events: fanOut(&events),
		Logger: logger.With("player"),
	})
	if err != nil {
		return err
	}
	if cfg.Console {
		console = tui.NewExecutor(exec, "Kiosk "+site.Base())
		events = append(events, console.Sink())
	}

	if err := tab.Bind(exec.Dispatch, func(err error) {
		logger.Warnf("dropped page input: %v", err)
	}); err != nil {
		return err
	}
	tab.OnLoad(exec.Loaded)

	target, err := site.Target(startPage(cfg.Site.Start, entries, store), kiosk.TargetOptions{})
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	if console != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := console.Run(ctx); err != nil {
				logger.Errorf("console: %v", err)
			}
			// Quitting the console stops the controller
			stop()
		}()
	}

	logger.Infof("starting kiosk at %s", target)
	if err := tab.Navigate(ctx, target); err != nil {
		stop()
		wg.Wait()
		return err
	}

	runErr := exec.Run(ctx)
	if runErr == nil {
		// Exited kiosk mode; leave the home page up until told to stop
		logger.Infof("kiosk mode exited, browser left on %s", site.HomeURL())
		<-ctx.Done()
	}
	wg.Wait()

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	logger.Infof("shutting down")
	return nil
}

// openStore returns the tab's localStorage, mirrored to the state file when
// one is configured
func openStore(cfg *config.Config, session *browser.Session, logger *logging.Logger) (storage.Store, error) {
	local := browser.NewLocalStorage(session)
	if cfg.StateFile == "" {
		return local, nil
	}

	fileStore, err := storage.NewFileStore(cfg.StateFile)
	if err != nil {
		return nil, err
	}
	logger.Infof("mirroring playback index to %s", fileStore.Path())
	return &stateStore{
		MirrorStore: storage.Mirror(local, fileStore, storage.KeyIndex),
		local:       local,
		file:        fileStore,
	}, nil
}

// stateStore is the mirrored store plus the halves prepare restores between
type stateStore struct {
	*storage.MirrorStore
	local storage.Store
	file  *storage.FileStore
}

// prepare seeds the playlist and restores the mirrored index. It returns the
// playlist the kiosk will cycle through.
func prepare(cfg *config.Config, store storage.Store, logger *logging.Logger) ([]string, error) {
	if cfg.Playlist.Seed {
		plan, err := playlist.Build(playlist.Options{
			Entries:  cfg.Playlist.Entries,
			Titles:   cfg.Playlist.Titles,
			SiteDir:  cfg.Playlist.SiteDir,
			Include:  cfg.Playlist.Include,
			Exclude:  cfg.Playlist.Exclude,
			Settings: cfg.Settings,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build playlist: %w", err)
		}
		if err := plan.Seed(store); err != nil {
			return nil, err
		}
		logger.Infof("seeded %d pages (%d titles)", len(plan.Playlist), len(plan.Titles))
	}

	if s, ok := store.(*stateStore); ok {
		restored, err := storage.Restore(s.local, s.file, storage.KeyIndex)
		if err != nil {
			logger.Warnf("index not restored: %v", err)
		} else if len(restored) > 0 {
			logger.Infof("restored %v from %s", restored, s.file.Path())
		}
	}

	entries := storage.ReadPlaylist(store)
	if len(entries) == 0 {
		logger.Warnf("no playlist stored; pages will load without cycling")
	}
	return entries, nil
}

// fanOut delivers every event to each sink in order
func fanOut(sinks *[]types.EventSink) types.EventSink {
	return func(ev *types.KioskEvent) {
		for _, sink := range *sinks {
			sink.Emit(ev)
		}
	}
}

// logEvents records playback events in the run log
func logEvents(logger *logging.Logger) types.EventSink {
	return func(ev *types.KioskEvent) {
		switch ev.Type {
		case types.EventTypeError:
			logger.Errorf("%s: %v", ev.URL, ev.Error)
		case types.EventTypeNavigate, types.EventTypeExit, types.EventTypeInactive:
			logger.Infof("%s %s %s", ev.Type, ev.Page, ev.Message)
		default:
			logger.Debugf("%s %s index=%d/%d duration=%s paused=%t", ev.Type, ev.Page, ev.Index, ev.Total, ev.Duration, ev.Paused)
		}
	}
}
