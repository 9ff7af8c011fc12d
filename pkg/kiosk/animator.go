package kiosk

import (
	"context"
	"fmt"
	"math"
	"time"
)

// ScrollTolerance is how close, in pixels, the page must get to the target
// offset for the animation to finish early. Browsers clamp scrolling at the
// document's real maximum, which may sit just short of the nominal target.
const ScrollTolerance = 2.0

// FrameSource yields display-frame timestamps. NextFrame blocks until the
// next frame and returns its timestamp.
type FrameSource interface {
	NextFrame(ctx context.Context) (time.Duration, error)
}

// Scroller moves the page's vertical scroll offset.
type Scroller interface {
	// ScrollTo scrolls to y and returns the offset the page actually reached
	ScrollTo(ctx context.Context, y float64) (float64, error)
}

// ScrollAnimation is one linear scroll from one offset to another. It is
// driven by Tick/Settle calls, one pair per frame, and holds no reference to
// a page or a timer.
type ScrollAnimation struct {
	from     float64
	to       float64
	duration time.Duration
	elapsed  Elapsed
	fraction float64
}

// NewScrollAnimation creates an animation over duration.
func NewScrollAnimation(from, to float64, duration time.Duration) *ScrollAnimation {
	return &ScrollAnimation{
		from:     from,
		to:       to,
		duration: duration,
	}
}

// Tick advances the animation to the frame at now. It returns the offset to
// apply and true, or false while paused, in which case nothing should be
// applied and the next frame should still be requested.
func (a *ScrollAnimation) Tick(now time.Duration, paused bool) (float64, bool) {
	effective := a.elapsed.Observe(now, paused)
	if paused {
		return 0, false
	}

	duration := max(a.duration, time.Millisecond)
	a.fraction = math.Min(1, float64(effective)/float64(duration))
	return a.from + (a.to-a.from)*a.fraction, true
}

// Settle reports whether the animation is complete, given the offset the
// page reached after the last applied Tick.
func (a *ScrollAnimation) Settle(actual float64) bool {
	return a.fraction >= 1 || math.Abs(actual-a.to) < ScrollTolerance
}

// Fraction returns the completed fraction as of the last unpaused Tick.
func (a *ScrollAnimation) Fraction() float64 {
	return a.fraction
}

// Animate scrolls from one offset to another over duration, once per frame,
// discounting any time spent paused. It returns when the animation settles
// or ctx is done.
func Animate(ctx context.Context, frames FrameSource, scroller Scroller, pause PauseState, from, to float64, duration time.Duration) error {
	anim := NewScrollAnimation(from, to, duration)

	for {
		now, err := frames.NextFrame(ctx)
		if err != nil {
			return fmt.Errorf("frame wait failed: %w", err)
		}

		offset, apply := anim.Tick(now, pause.IsPaused())
		if !apply {
			continue
		}

		actual, err := scroller.ScrollTo(ctx, offset)
		if err != nil {
			return fmt.Errorf("scroll failed: %w", err)
		}

		if anim.Settle(actual) {
			return nil
		}
	}
}
