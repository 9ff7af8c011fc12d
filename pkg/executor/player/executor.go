package player

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/entrhq/kiosk/pkg/kiosk"
	"github.com/entrhq/kiosk/pkg/storage"
	"github.com/entrhq/kiosk/pkg/types"
)

const (
	// DefaultSettle is the delay between a load event and the start of
	// playback, letting late layout settle before the page is measured.
	DefaultSettle = 250 * time.Millisecond

	// pageCallTimeout bounds best-effort page updates made outside a load.
	pageCallTimeout = 2 * time.Second

	queueSize = 16
)

// Tab is the browser tab the executor drives.
type Tab interface {
	kiosk.Page
	kiosk.FrameSource

	SetPaused(ctx context.Context, paused bool) error
	ToggleHelp(ctx context.Context) (bool, error)
}

// Logger is the logging surface the executor writes to.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
	Errorf(format string, v ...interface{})
}

// Config holds the executor's collaborators.
type Config struct {
	Site   *kiosk.Site
	Store  storage.Store
	Clock  kiosk.Clock
	Events types.EventSink
	Logger Logger

	// Settle overrides DefaultSettle when positive
	Settle time.Duration
}

// Executor runs one sequencer per load of the tab.
type Executor struct {
	tab    Tab
	config Config
	pause  *kiosk.Pause

	loads   chan string
	actions chan types.Action

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
	status Status
}

// Status is a snapshot of what the executor is doing.
type Status struct {
	URL    string
	Page   string
	Index  int
	Total  int
	Phase  types.KioskEventType
	Paused bool
	Active bool
}

// NewExecutor creates an executor for tab.
func NewExecutor(tab Tab, config Config) (*Executor, error) {
	if tab == nil {
		return nil, errors.New("tab is required")
	}
	if config.Site == nil {
		return nil, errors.New("site is required")
	}
	if config.Store == nil {
		return nil, errors.New("store is required")
	}
	if config.Clock == nil {
		config.Clock = kiosk.RealClock()
	}
	if config.Logger == nil {
		config.Logger = nopLogger{}
	}
	if config.Settle <= 0 {
		config.Settle = DefaultSettle
	}

	e := &Executor{
		tab:     tab,
		config:  config,
		pause:   kiosk.NewPause(),
		loads:   make(chan string, queueSize),
		actions: make(chan types.Action, queueSize),
	}
	e.pause.OnChange(e.pauseChanged)
	return e, nil
}

// Loaded reports a load event of the tab. It never blocks; if the queue is
// full the load is dropped and a later one supersedes it.
func (e *Executor) Loaded(url string) {
	select {
	case e.loads <- url:
	default:
		e.config.Logger.Warnf("load queue full, dropping %s", url)
	}
}

// Dispatch queues an input action. It never blocks.
func (e *Executor) Dispatch(action types.Action) {
	if action == types.ActionNone {
		return
	}
	select {
	case e.actions <- action:
	default:
		e.config.Logger.Warnf("action queue full, dropping %s", action)
	}
}

// Pause returns the pause flag shared by every load.
func (e *Executor) Pause() *kiosk.Pause {
	return e.pause
}

// Status returns a snapshot of the current load.
func (e *Executor) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.status
	s.Paused = e.pause.IsPaused()
	return s
}

// Run processes loads and actions until ctx is done or an exit action
// completes. It returns nil after an exit and ctx.Err() otherwise.
func (e *Executor) Run(ctx context.Context) error {
	defer e.stopLoad()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case url := <-e.loads:
			e.startLoad(ctx, url)

		case action := <-e.actions:
			if e.handle(ctx, action) {
				return nil
			}
		}
	}
}

func (e *Executor) startLoad(ctx context.Context, url string) {
	e.stopLoad()

	// A fresh document starts unpaused
	e.pause.Set(false)

	loadCtx, cancel := context.WithCancel(ctx)
	e.mu.Lock()
	e.cancel = cancel
	e.status = Status{URL: url, Page: e.config.Site.Identify(url), Phase: types.EventTypeLoad}
	e.mu.Unlock()

	e.emit(&types.KioskEvent{Type: types.EventTypeLoad, URL: url, Page: e.config.Site.Identify(url)})
	e.config.Logger.Debugf("load %s", url)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.play(loadCtx, url)
	}()
}

func (e *Executor) play(ctx context.Context, url string) {
	if err := e.config.Clock.Sleep(ctx, e.config.Settle); err != nil {
		return
	}

	seq, err := kiosk.NewSequencer(kiosk.Deps{
		Page:   e.tab,
		Frames: e.tab,
		Store:  e.config.Store,
		Clock:  e.config.Clock,
		Pause:  e.pause,
		Site:   e.config.Site,
		Events: e.observe,
		Logger: e.config.Logger,
	}, url)
	if errors.Is(err, kiosk.ErrInactive) || errors.Is(err, kiosk.ErrEmptyPlaylist) {
		e.config.Logger.Debugf("kiosk mode inactive for %s: %v", url, err)
		e.emit(&types.KioskEvent{Type: types.EventTypeInactive, URL: url, Message: err.Error()})
		return
	}
	if err != nil {
		e.config.Logger.Errorf("failed to start playback of %s: %v", url, err)
		e.emit(types.NewErrorEvent(err))
		return
	}

	e.mu.Lock()
	e.status.Active = true
	e.status.Index = seq.Index()
	e.status.Total = len(seq.Playlist())
	e.mu.Unlock()

	target, err := seq.Run(ctx)
	switch {
	case err == nil:
		e.config.Logger.Infof("navigated to %s", target)
	case ctx.Err() != nil:
		e.config.Logger.Debugf("load %s superseded in state %s", seq.Page(), seq.State())
	default:
		// The cycle halts here until another load arrives
		e.config.Logger.Errorf("playback of %s stopped: %v", seq.Page(), err)
		e.emit(types.NewErrorEvent(fmt.Errorf("playback of %s stopped: %w", seq.Page(), err)))
	}
}

// stopLoad cancels the running sequencer, if any, and waits for it.
func (e *Executor) stopLoad() {
	e.mu.Lock()
	cancel := e.cancel
	e.cancel = nil
	e.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	e.wg.Wait()
}

// handle performs an action and reports whether the executor should stop.
func (e *Executor) handle(ctx context.Context, action types.Action) bool {
	switch action {
	case types.ActionTogglePause:
		e.pause.Toggle()

	case types.ActionToggleHelp:
		callCtx, cancel := context.WithTimeout(ctx, pageCallTimeout)
		visible, err := e.tab.ToggleHelp(callCtx)
		cancel()
		if err != nil {
			e.config.Logger.Warnf("help toggle failed: %v", err)
			return false
		}
		msg := "hidden"
		if visible {
			msg = "visible"
		}
		e.emit(&types.KioskEvent{Type: types.EventTypeHelpToggled, Message: msg})

	case types.ActionExit:
		e.stopLoad()
		if err := kiosk.Exit(ctx, e.config.Store, e.tab, e.config.Site); err != nil {
			e.config.Logger.Errorf("exit incomplete: %v", err)
		}
		e.mu.Lock()
		e.status = Status{Phase: types.EventTypeExit}
		e.mu.Unlock()
		e.config.Logger.Infof("kiosk mode exited")
		e.emit(&types.KioskEvent{Type: types.EventTypeExit, URL: e.config.Site.HomeURL()})
		return true

	default:
		e.config.Logger.Warnf("unknown action %q", action)
	}
	return false
}

func (e *Executor) pauseChanged(paused bool) {
	ctx, cancel := context.WithTimeout(context.Background(), pageCallTimeout)
	defer cancel()
	if err := e.tab.SetPaused(ctx, paused); err != nil {
		e.config.Logger.Debugf("pause marker not updated: %v", err)
	}
	e.emit(types.NewPauseEvent(paused))
}

// observe records sequencer events in the status before forwarding them.
func (e *Executor) observe(ev *types.KioskEvent) {
	e.mu.Lock()
	e.status.Phase = ev.Type
	e.status.Index = ev.Index
	if ev.Total > 0 {
		e.status.Total = ev.Total
	}
	e.mu.Unlock()
	e.emit(ev)
}

func (e *Executor) emit(ev *types.KioskEvent) {
	e.config.Events.Emit(ev)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
