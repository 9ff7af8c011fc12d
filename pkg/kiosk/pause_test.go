package kiosk

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPause_Toggle(t *testing.T) {
	p := NewPause()
	assert.False(t, p.IsPaused())

	assert.True(t, p.Toggle())
	assert.True(t, p.IsPaused())
	assert.False(t, p.Toggle())
	assert.False(t, p.IsPaused())
}

func TestPause_Observers(t *testing.T) {
	p := NewPause()
	var seen []bool
	p.OnChange(func(paused bool) { seen = append(seen, paused) })

	p.Toggle()
	p.Set(true) // no change
	p.Set(false)
	p.Toggle()

	assert.Equal(t, []bool{true, false, true}, seen)
}

func TestPause_ObserverMayReadFlag(t *testing.T) {
	p := NewPause()
	var got bool
	p.OnChange(func(bool) { got = p.IsPaused() })

	p.Toggle()
	assert.True(t, got)
}

func TestPause_ConcurrentToggles(t *testing.T) {
	p := NewPause()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Toggle()
		}()
	}
	wg.Wait()

	assert.False(t, p.IsPaused(), "an even number of toggles cancels out")
}
