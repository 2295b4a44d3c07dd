package watch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var fired atomic.Int32
	d := NewDebouncer(clock, 300*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	clock.Advance(200 * time.Millisecond)
	d.Trigger()
	clock.Advance(200 * time.Millisecond)
	d.Trigger()
	clock.Advance(299 * time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	clock.Advance(time.Millisecond)
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestDebouncer_StopCancelsPending(t *testing.T) {
	clock := clockwork.NewFakeClock()
	var fired atomic.Int32
	d := NewDebouncer(clock, 100*time.Millisecond, func() { fired.Add(1) })

	d.Trigger()
	d.Stop()
	d.Trigger()
	clock.Advance(time.Second)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
