package watcher

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(40*time.Millisecond, func() { fired.Add(1) })

	for i := 0; i < 10; i++ {
		d.Trigger()
		time.Sleep(5 * time.Millisecond)
	}

	_, pending := d.Pending()
	assert.True(t, pending)
	assert.Equal(t, int32(0), fired.Load())

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())

	_, pending = d.Pending()
	assert.False(t, pending)
}

func TestDebouncerTriggerMovesDeadline(t *testing.T) {
	d := NewDebouncer(time.Hour, func() {})
	defer d.Stop()

	d.Trigger()
	first, _ := d.Pending()
	time.Sleep(2 * time.Millisecond)
	d.Trigger()
	second, pending := d.Pending()

	assert.True(t, pending)
	assert.True(t, second.After(first))
}

func TestDebouncerStopDropsPendingFire(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(20*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Stop()
	time.Sleep(60 * time.Millisecond)

	assert.Equal(t, int32(0), fired.Load())
	_, pending := d.Pending()
	assert.False(t, pending)
}

func TestDebouncerFiresAgainAfterIdle(t *testing.T) {
	var fired atomic.Int32
	d := NewDebouncer(10*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
	d.Trigger()
	assert.Eventually(t, func() bool { return fired.Load() == 2 }, time.Second, 5*time.Millisecond)
}
