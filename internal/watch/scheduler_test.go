package watch

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_PeriodicRebuild(t *testing.T) {
	s, err := NewScheduler(nil)
	require.NoError(t, err)

	var calls atomic.Int32
	var lastTrigger atomic.Value
	id, err := s.SchedulePeriodicRebuild(50*time.Millisecond, func(trigger string) {
		lastTrigger.Store(trigger)
		calls.Add(1)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	s.Start()
	defer func() { require.NoError(t, s.Stop()) }()

	assert.Eventually(t, func() bool { return calls.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, TriggerInterval, lastTrigger.Load())
}

func TestScheduler_RejectsZeroInterval(t *testing.T) {
	s, err := NewScheduler(nil)
	require.NoError(t, err)
	_, err = s.SchedulePeriodicRebuild(0, func(string) {})
	assert.Error(t, err)
}
