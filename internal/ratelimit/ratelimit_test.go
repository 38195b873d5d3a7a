package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowAllowsUpToMax(t *testing.T) {
	w := NewWindow(3, 10*time.Second)

	assert.True(t, w.Allow(1))
	assert.True(t, w.Allow(1))
	assert.True(t, w.Allow(1))
	assert.False(t, w.Allow(1))
}

func TestWindowResetsAfterInterval(t *testing.T) {
	w := NewWindow(2, 10*time.Second)

	now := time.Now()
	w.SetClock(func() time.Time { return now })

	assert.True(t, w.Allow(1))
	assert.True(t, w.Allow(1))
	assert.False(t, w.Allow(1))

	// Advance just short of the window boundary: still blocked.
	now = now.Add(9 * time.Second)
	assert.False(t, w.Allow(1))

	now = now.Add(time.Second)
	assert.True(t, w.Allow(1))
}

func TestWindowPerUserBuckets(t *testing.T) {
	w := NewWindow(1, time.Minute)

	assert.True(t, w.Allow(1))
	assert.False(t, w.Allow(1))
	assert.True(t, w.Allow(2))
}
