package kiosk

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Settings keys as stored in the persisted settings object.
const (
	SettingSpeed       = "speed"
	SettingDwell       = "dwell"
	SettingTopPause    = "toppause"
	SettingBottomPause = "bottompause"
	SettingMinScroll   = "minscroll"
	SettingFade        = "fadems"
	SettingFadeHold    = "fadeholdms"
	SettingTransition  = "transition"
	SettingCacheBust   = "cachebust"
)

// Default values
const (
	DefaultSpeed      = 80.0 // px/s
	DefaultDwellMs    = 10000.0
	DefaultTopPauseMs = 700.0
	DefaultBottomMs   = 700.0
	DefaultMinScroll  = 80.0 // px
	DefaultFadeMs     = 350.0
	DefaultFadeHoldMs = 60.0
	DefaultTransition = 1200.0
	DefaultCacheBust  = true
	MinSpeed          = 10.0
	MaxFadeHold       = 250 * time.Millisecond
)

// Settings is the resolved, immutable set of playback knobs for one load.
type Settings struct {
	Speed       float64 // px/s as configured; ScrollDuration floors it at MinSpeed
	Dwell       time.Duration
	TopPause    time.Duration
	BottomPause time.Duration
	MinScroll   float64 // px
	Fade        time.Duration
	FadeHold    time.Duration
	Transition  time.Duration
	CacheBust   bool
}

// DefaultSettings returns the settings used when nothing is persisted.
func DefaultSettings() Settings {
	return ResolveSettings(nil)
}

// ResolveSettings merges a raw settings object with the defaults. Numeric
// fields take the parsed value if it is a finite number and the default
// otherwise; CacheBust is true unless the value is exactly false.
// It never fails.
func ResolveSettings(raw map[string]any) Settings {
	cacheBust := DefaultCacheBust
	if v, ok := raw[SettingCacheBust].(bool); ok && !v {
		cacheBust = false
	}

	return Settings{
		Speed:       number(raw[SettingSpeed], DefaultSpeed),
		Dwell:       millis(number(raw[SettingDwell], DefaultDwellMs)),
		TopPause:    millis(number(raw[SettingTopPause], DefaultTopPauseMs)),
		BottomPause: millis(number(raw[SettingBottomPause], DefaultBottomMs)),
		MinScroll:   number(raw[SettingMinScroll], DefaultMinScroll),
		Fade:        millis(number(raw[SettingFade], DefaultFadeMs)),
		FadeHold:    millis(number(raw[SettingFadeHold], DefaultFadeHoldMs)),
		Transition:  millis(number(raw[SettingTransition], DefaultTransition)),
		CacheBust:   cacheBust,
	}
}

// ScrollDuration is the time to scroll maxScroll pixels at the configured
// speed.
func (s Settings) ScrollDuration(maxScroll float64) time.Duration {
	speed := math.Max(MinSpeed, s.Speed)
	return time.Duration(maxScroll / speed * float64(time.Second))
}

// Scrollable reports whether a page with the given maximum scroll offset is
// scrolled rather than dwelt on. A page exactly at the threshold dwells.
func (s Settings) Scrollable(maxScroll float64) bool {
	return maxScroll > s.MinScroll
}

// NavigateHold is the settle time between the veil closing and navigation.
// Background timers longer than this are throttled by some platforms.
func (s Settings) NavigateHold() time.Duration {
	return min(s.FadeHold, MaxFadeHold)
}

// Raw renders s back into a settings object, suitable for persisting.
func (s Settings) Raw() map[string]any {
	return map[string]any{
		SettingSpeed:       s.Speed,
		SettingDwell:       s.Dwell.Milliseconds(),
		SettingTopPause:    s.TopPause.Milliseconds(),
		SettingBottomPause: s.BottomPause.Milliseconds(),
		SettingMinScroll:   s.MinScroll,
		SettingFade:        s.Fade.Milliseconds(),
		SettingFadeHold:    s.FadeHold.Milliseconds(),
		SettingTransition:  s.Transition.Milliseconds(),
		SettingCacheBust:   s.CacheBust,
	}
}

func number(v any, fallback float64) float64 {
	var x float64
	switch n := v.(type) {
	case float64:
		x = n
	case float32:
		x = float64(n)
	case int:
		x = float64(n)
	case int64:
		x = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return fallback
		}
		x = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return fallback
		}
		x = f
	default:
		return fallback
	}

	if math.IsNaN(x) || math.IsInf(x, 0) {
		return fallback
	}
	return x
}

// millis converts a millisecond count to a duration; negative counts are
// treated as zero.
func millis(ms float64) time.Duration {
	if ms <= 0 {
		return 0
	}
	return time.Duration(ms * float64(time.Millisecond))
}
