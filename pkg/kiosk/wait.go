package kiosk

import (
	"context"
	"time"
)

// PollInterval bounds how long a pause-aware wait takes to notice a resume.
const PollInterval = 150 * time.Millisecond

// PauseWait blocks for d of unpaused time. While paused the remaining time
// is frozen and the flag is re-checked every PollInterval.
func PauseWait(ctx context.Context, clock Clock, pause PauseState, d time.Duration) error {
	remaining := d
	for remaining > 0 {
		if pause.IsPaused() {
			if err := clock.Sleep(ctx, PollInterval); err != nil {
				return err
			}
			continue
		}

		step := min(PollInterval, remaining)
		if err := clock.Sleep(ctx, step); err != nil {
			return err
		}
		remaining -= step
	}
	return ctx.Err()
}
