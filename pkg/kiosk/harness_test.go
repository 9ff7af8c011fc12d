package kiosk

import (
	"context"
	"math"
	"sync"
	"time"
)

var epoch = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// fakeClock advances only when slept on.
type fakeClock struct {
	mu      sync.Mutex
	now     time.Time
	sleeps  []time.Duration
	onSleep func(now time.Time)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: epoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	if d > 0 {
		c.now = c.now.Add(d)
	}
	c.sleeps = append(c.sleeps, d)
	now := c.now
	hook := c.onSleep
	c.mu.Unlock()

	if hook != nil {
		hook(now)
	}
	return ctx.Err()
}

func (c *fakeClock) Elapsed() time.Duration {
	return c.Now().Sub(epoch)
}

// frameClock produces frames every interval by advancing the fake clock.
type frameClock struct {
	clock    *fakeClock
	interval time.Duration
	frames   int
}

func (f *frameClock) NextFrame(ctx context.Context) (time.Duration, error) {
	if err := f.clock.Sleep(ctx, f.interval); err != nil {
		return 0, err
	}
	f.frames++
	return f.clock.Elapsed(), nil
}

// fakePage is a document of fixed height that clamps scrolling at its real
// maximum.
type fakePage struct {
	mu          sync.Mutex
	metrics     Metrics
	clampAt     float64
	y           float64
	scrolls     int
	veils       []VeilState
	navigations []string
	navErr      error
}

func newFakePage(scrollHeight, viewport float64) *fakePage {
	m := Metrics{ScrollHeight: scrollHeight, ViewportHeight: viewport}
	return &fakePage{metrics: m, clampAt: m.MaxScroll()}
}

func (p *fakePage) ScrollTo(ctx context.Context, y float64) (float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.scrolls++
	p.y = math.Max(0, math.Min(y, p.clampAt))
	return p.y, nil
}

func (p *fakePage) RenderVeil(ctx context.Context, state VeilState) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.veils = append(p.veils, state)
	return nil
}

func (p *fakePage) Navigate(ctx context.Context, url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.navErr != nil {
		return p.navErr
	}
	p.navigations = append(p.navigations, url)
	return nil
}

func (p *fakePage) Metrics(ctx context.Context) (Metrics, error) {
	return p.metrics, nil
}

func (p *fakePage) lastVeil() VeilState {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.veils) == 0 {
		return VeilState{}
	}
	return p.veils[len(p.veils)-1]
}
