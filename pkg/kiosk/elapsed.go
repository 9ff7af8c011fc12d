package kiosk

import "time"

// Elapsed measures effective animation time over a stream of frame
// timestamps: wall time since the first observation minus every interval
// during which the pause flag was observed set.
//
// The zero value is ready to use. Timestamps share one arbitrary origin
// (for a browser, the page's performance.now()).
type Elapsed struct {
	started     bool
	start       time.Duration
	inPause     bool
	pauseStart  time.Duration
	pausedTotal time.Duration
}

// Observe records a frame at now with the given pause flag and returns the
// effective elapsed time. The result never decreases, and stays frozen for
// as long as paused is true.
func (e *Elapsed) Observe(now time.Duration, paused bool) time.Duration {
	if !e.started {
		e.started = true
		e.start = now
	}

	switch {
	case paused && !e.inPause:
		e.inPause = true
		e.pauseStart = now
	case !paused && e.inPause:
		e.inPause = false
		e.pausedTotal += now - e.pauseStart
	}

	effective := now - e.start - e.pausedTotal
	if e.inPause {
		effective -= now - e.pauseStart
	}
	return max(0, effective)
}
