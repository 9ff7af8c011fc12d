package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/kiosk/pkg/kiosk"
	"github.com/entrhq/kiosk/pkg/types"
)

const (
	metricsScript = `() => ({
  scrollHeight: Math.max(document.documentElement.scrollHeight, document.body ? document.body.scrollHeight : 0),
  viewportHeight: window.innerHeight,
})`
	scrollScript = `(y) => { window.scrollTo(0, y); return window.scrollY; }`
	frameScript  = `() => new Promise((resolve) => requestAnimationFrame((t) => resolve(t)))`
	veilScript   = `(s) => { if (window.__kiosk) window.__kiosk.renderVeil(s); }`
	pauseScript  = `(p) => { if (window.__kiosk) window.__kiosk.setPaused(p); }`
	helpScript   = `() => window.__kiosk ? window.__kiosk.toggleHelp() : false`
)

// Tab is the kiosk tab of a session. It implements kiosk.Page and
// kiosk.FrameSource.
type Tab struct {
	session *Session
}

// NewTab wraps the session's page.
func NewTab(session *Session) *Tab {
	return &Tab{session: session}
}

// Session returns the underlying session.
func (t *Tab) Session() *Session {
	return t.session
}

// URL returns the URL of the current document.
func (t *Tab) URL() string {
	return t.session.Page.URL()
}

// Metrics measures the document and viewport heights.
func (t *Tab) Metrics(ctx context.Context) (kiosk.Metrics, error) {
	v, err := t.session.Evaluate(ctx, metricsScript)
	if err != nil {
		return kiosk.Metrics{}, err
	}

	scrollHeight, err := field(v, "scrollHeight")
	if err != nil {
		return kiosk.Metrics{}, err
	}
	viewportHeight, err := field(v, "viewportHeight")
	if err != nil {
		return kiosk.Metrics{}, err
	}
	return kiosk.Metrics{ScrollHeight: scrollHeight, ViewportHeight: viewportHeight}, nil
}

// ScrollTo scrolls the window and returns the offset the page reached.
func (t *Tab) ScrollTo(ctx context.Context, y float64) (float64, error) {
	v, err := t.session.Evaluate(ctx, scrollScript, y)
	if err != nil {
		return 0, err
	}
	actual, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("unexpected scroll offset %v", v)
	}
	return actual, nil
}

// NextFrame waits for the next animation frame and returns its timestamp.
func (t *Tab) NextFrame(ctx context.Context) (time.Duration, error) {
	v, err := t.session.Evaluate(ctx, frameScript)
	if err != nil {
		return 0, err
	}
	ms, ok := toFloat(v)
	if !ok {
		return 0, fmt.Errorf("unexpected frame timestamp %v", v)
	}
	return time.Duration(ms * float64(time.Millisecond)), nil
}

// RenderVeil applies veil state to the page script's veil element.
func (t *Tab) RenderVeil(ctx context.Context, state kiosk.VeilState) error {
	_, err := t.session.Evaluate(ctx, veilScript, veilArg(state))
	return err
}

// Navigate starts a full-page navigation and returns once it commits.
func (t *Tab) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.session.Navigate(url, NavigateOptions{WaitUntil: "commit"})
}

// SetPaused mirrors the pause flag into the kiosk-paused marker class.
func (t *Tab) SetPaused(ctx context.Context, paused bool) error {
	_, err := t.session.Evaluate(ctx, pauseScript, paused)
	return err
}

// ToggleHelp shows or hides the help overlay and reports whether it is now
// visible.
func (t *Tab) ToggleHelp(ctx context.Context) (bool, error) {
	v, err := t.session.Evaluate(ctx, helpScript)
	if err != nil {
		return false, err
	}
	visible, _ := v.(bool)
	return visible, nil
}

// OnLoad calls fn with the document URL after every load event of the tab.
func (t *Tab) OnLoad(fn func(url string)) {
	t.session.Page.OnLoad(func(p playwright.Page) {
		fn(p.URL())
	})
}

// Bind exposes the key and action bindings the page script posts to. fn
// receives the semantic action of every input; inputs that map to nothing
// are dropped. fn must not block.
func (t *Tab) Bind(fn func(types.Action), onError func(error)) error {
	err := t.session.Context.ExposeBinding(KeyBinding, func(_ *playwright.BindingSource, args ...interface{}) interface{} {
		ev, err := DecodeKeyEvent(args)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return nil
		}
		if action := kiosk.MapKey(ev); action != types.ActionNone {
			fn(action)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to expose key binding: %w", err)
	}

	err = t.session.Context.ExposeBinding(ActionBinding, func(_ *playwright.BindingSource, args ...interface{}) interface{} {
		if len(args) == 0 {
			return nil
		}
		name, _ := args[0].(string)
		if action := types.ParseAction(name); action != types.ActionNone {
			fn(action)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to expose action binding: %w", err)
	}
	return nil
}
