package kiosk

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/entrhq/kiosk/pkg/storage"
	"github.com/entrhq/kiosk/pkg/types"
)

var (
	// ErrInactive is returned for a load without the kiosk flag.
	ErrInactive = errors.New("kiosk mode not requested")

	// ErrEmptyPlaylist is returned when no usable playlist is persisted.
	ErrEmptyPlaylist = errors.New("kiosk playlist is empty")
)

// DefaultNextMessage is the caption used when the next page has no title.
const DefaultNextMessage = "Up next"

// Metrics are the page dimensions that decide between scrolling and dwelling.
type Metrics struct {
	ScrollHeight   float64
	ViewportHeight float64
}

// MaxScroll is the largest useful scroll offset.
func (m Metrics) MaxScroll() float64 {
	return math.Max(0, m.ScrollHeight-m.ViewportHeight)
}

// Page is the kiosk tab as seen by one load.
type Page interface {
	Scroller
	VeilRenderer
	Navigator

	Metrics(ctx context.Context) (Metrics, error)
}

// Logger is the subset of logging.Logger the core uses.
type Logger interface {
	Debugf(format string, v ...interface{})
	Infof(format string, v ...interface{})
	Warnf(format string, v ...interface{})
}

// Deps are the collaborators a load runs against. Pause is shared by every
// wait and the animator.
type Deps struct {
	Page   Page
	Frames FrameSource
	Store  storage.Store
	Clock  Clock
	Pause  PauseState
	Site   *Site
	Events types.EventSink
	Logger Logger
}

// State is the sequencer's phase within a load.
type State int

const (
	StateArrivingCovered State = iota
	StateArrivingPlain
	StateRunning
	StateAdvancing
	StateDone
)

func (s State) String() string {
	switch s {
	case StateArrivingCovered:
		return "arriving-covered"
	case StateArrivingPlain:
		return "arriving-plain"
	case StateRunning:
		return "running"
	case StateAdvancing:
		return "advancing"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Sequencer runs the lifecycle of a single load. Build a new one per load;
// it is not safe for concurrent use.
type Sequencer struct {
	deps     Deps
	url      string
	page     string
	arrival  Arrival
	settings Settings
	playlist []string
	titles   map[string]string
	cursor   *Cursor
	veil     *Veil
	state    State
}

// NewSequencer reconstructs playback state for a load that arrived at
// incomingURL. It reconciles and persists the current index before
// returning. Loads without the kiosk flag return ErrInactive; loads with no
// playlist return ErrEmptyPlaylist.
func NewSequencer(deps Deps, incomingURL string) (*Sequencer, error) {
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	if deps.Clock == nil {
		deps.Clock = RealClock()
	}

	arrival := ParseArrival(incomingURL)
	if !arrival.Active {
		return nil, ErrInactive
	}

	playlist := storage.ReadPlaylist(deps.Store)
	if len(playlist) == 0 {
		return nil, ErrEmptyPlaylist
	}

	s := &Sequencer{
		deps:     deps,
		url:      incomingURL,
		page:     deps.Site.Identify(incomingURL),
		arrival:  arrival,
		settings: ResolveSettings(storage.ReadConfig(deps.Store)),
		playlist: playlist,
		titles:   storage.ReadTitles(deps.Store),
		cursor:   NewCursor(deps.Store, playlist),
		veil:     NewVeil(deps.Page, deps.Clock, InitialVeil(arrival)),
		state:    StateArrivingPlain,
	}
	if arrival.Descriptor.Covered() {
		s.state = StateArrivingCovered
	}

	index, err := s.cursor.Reconcile(s.page)
	if err != nil {
		deps.Logger.Warnf("index not persisted for %s: %v", s.page, err)
	}
	deps.Logger.Debugf("load %s reconciled to index %d of %d", s.page, index, len(playlist))

	return s, nil
}

// Run plays the load to completion and returns the URL it navigated to.
// It returns early only if ctx is done (the tab navigated elsewhere or the
// controller is shutting down) or the page stops responding.
func (s *Sequencer) Run(ctx context.Context) (string, error) {
	if s.state == StateArrivingCovered {
		s.emit(types.EventTypeArrivalCover, s.arrival.Descriptor.Cover, s.arrival.Descriptor.Message)
		if err := s.veil.Arrive(ctx, s.arrival.Descriptor, s.settings.Fade); err != nil {
			return "", fmt.Errorf("arrival hold failed: %w", err)
		}
	}

	s.state = StateRunning
	if err := s.play(ctx); err != nil {
		return "", err
	}

	s.state = StateAdvancing
	target, err := s.advance(ctx)
	if err != nil {
		return "", err
	}

	s.state = StateDone
	return target, nil
}

func (s *Sequencer) play(ctx context.Context) error {
	s.emit(types.EventTypeTopPause, s.settings.TopPause, "")
	if err := s.wait(ctx, s.settings.TopPause); err != nil {
		return err
	}

	metrics, err := s.deps.Page.Metrics(ctx)
	if err != nil {
		return fmt.Errorf("failed to measure page: %w", err)
	}
	maxScroll := metrics.MaxScroll()

	if !s.settings.Scrollable(maxScroll) {
		s.deps.Logger.Debugf("%s not scrollable (max %.0fpx <= %.0fpx), dwelling", s.page, maxScroll, s.settings.MinScroll)
		s.emit(types.EventTypeDwell, s.settings.Dwell, "")
		return s.wait(ctx, s.settings.Dwell)
	}

	if _, err := s.deps.Page.ScrollTo(ctx, 0); err != nil {
		return fmt.Errorf("failed to reset scroll: %w", err)
	}

	duration := s.settings.ScrollDuration(maxScroll)
	s.emit(types.EventTypeScroll, duration, "")
	if err := Animate(ctx, s.deps.Frames, s.deps.Page, s.deps.Pause, 0, maxScroll, duration); err != nil {
		return err
	}

	s.emit(types.EventTypeBottomPause, s.settings.BottomPause, "")
	return s.wait(ctx, s.settings.BottomPause)
}

func (s *Sequencer) advance(ctx context.Context) (string, error) {
	next, err := s.cursor.Advance()
	if err != nil {
		s.deps.Logger.Warnf("next index not persisted: %v", err)
	}

	entry := s.cursor.Entry()
	message := s.NextMessage(entry)
	s.emit(types.EventTypeAdvance, s.settings.Fade, message)

	if err := s.veil.Announce(ctx, message); err != nil {
		return "", err
	}
	if err := s.veil.FadeTo(ctx, 1, s.settings.Fade); err != nil {
		return "", err
	}
	if err := s.deps.Clock.Sleep(ctx, s.settings.NavigateHold()); err != nil {
		return "", err
	}

	target, err := s.deps.Site.Target(entry, TargetOptions{
		CacheBust: s.settings.CacheBust,
		Now:       s.deps.Clock.Now(),
		Descriptor: Descriptor{
			Cover:   s.settings.Transition,
			Message: message,
		},
	})
	if err != nil {
		return "", err
	}

	s.deps.Logger.Infof("advancing %s -> %s (index %d)", s.page, entry, next)
	if err := s.deps.Page.Navigate(ctx, target); err != nil {
		return "", fmt.Errorf("navigation to %s failed: %w", target, err)
	}

	s.deps.Events.Emit(&types.KioskEvent{
		Type:    types.EventTypeNavigate,
		URL:     target,
		Page:    entry,
		Index:   next,
		Total:   len(s.playlist),
		Message: message,
	})
	return target, nil
}

// NextMessage returns the caption previewing entry: its title, or
// DefaultNextMessage.
func (s *Sequencer) NextMessage(entry string) string {
	if title, ok := s.titles[NormalizePath(entry, "")]; ok && title != "" {
		return title
	}
	if title, ok := s.titles[entry]; ok && title != "" {
		return title
	}
	return DefaultNextMessage
}

func (s *Sequencer) wait(ctx context.Context, d time.Duration) error {
	return PauseWait(ctx, s.deps.Clock, s.deps.Pause, d)
}

func (s *Sequencer) emit(typ types.KioskEventType, d time.Duration, message string) {
	ev := types.NewPhaseEvent(typ, s.page, s.cursor.Index(), len(s.playlist), d)
	ev.URL = s.url
	ev.Message = message
	s.deps.Events.Emit(ev)
}

// State returns the current phase.
func (s *Sequencer) State() State {
	return s.state
}

// Index returns the reconciled playlist position of this load (or the next
// position once advancing).
func (s *Sequencer) Index() int {
	return s.cursor.Index()
}

// Page returns the identifier of the page this load is showing.
func (s *Sequencer) Page() string {
	return s.page
}

// Settings returns the resolved settings of this load.
func (s *Sequencer) Settings() Settings {
	return s.settings
}

// Playlist returns the playlist read for this load.
func (s *Sequencer) Playlist() []string {
	return s.playlist
}

// Veil returns the load's veil.
func (s *Sequencer) Veil() *Veil {
	return s.veil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
