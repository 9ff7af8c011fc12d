package kiosk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestElapsed_Unpaused(t *testing.T) {
	var e Elapsed
	assert.Equal(t, time.Duration(0), e.Observe(100*time.Millisecond, false))
	assert.Equal(t, 50*time.Millisecond, e.Observe(150*time.Millisecond, false))
	assert.Equal(t, 900*time.Millisecond, e.Observe(time.Second, false))
}

func TestElapsed_FrozenWhilePaused(t *testing.T) {
	var e Elapsed
	e.Observe(0, false)
	assert.Equal(t, 400*time.Millisecond, e.Observe(400*time.Millisecond, false))

	// pause observed at 500ms: the interval 400..500 was unpaused
	assert.Equal(t, 500*time.Millisecond, e.Observe(500*time.Millisecond, true))
	assert.Equal(t, 500*time.Millisecond, e.Observe(900*time.Millisecond, true))
	assert.Equal(t, 500*time.Millisecond, e.Observe(3*time.Second, true))

	// resumed at 3.5s: 3s of pause are discounted
	assert.Equal(t, 500*time.Millisecond, e.Observe(3500*time.Millisecond, false))
	assert.Equal(t, time.Second, e.Observe(4*time.Second, false))
}

func TestElapsed_MultiplePauses(t *testing.T) {
	var e Elapsed
	e.Observe(0, false)
	e.Observe(100*time.Millisecond, true)
	e.Observe(300*time.Millisecond, false)
	e.Observe(400*time.Millisecond, true)
	got := e.Observe(1400*time.Millisecond, false)

	assert.Equal(t, 200*time.Millisecond, got)
}

func TestElapsed_NeverDecreases(t *testing.T) {
	var e Elapsed
	var last time.Duration
	for i := 0; i < 200; i++ {
		now := time.Duration(i) * 16 * time.Millisecond
		paused := (i/25)%2 == 1
		got := e.Observe(now, paused)
		assert.GreaterOrEqual(t, got, last)
		last = got
	}
}
