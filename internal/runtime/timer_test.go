package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimer_FiresAfterFullPeriod(t *testing.T) {
	t.Parallel()

	clock := NewManualClock(time.Unix(0, 0))
	l := NewLoop(clock)
	fired := 0
	tm := l.NewTimer(20*time.Second, func() { fired++ })
	tm.Restart()

	clock.Advance(19 * time.Second)
	l.RunPending()
	require.Zero(t, fired)
	require.True(t, tm.Armed())

	clock.Advance(time.Second)
	l.RunPending()
	require.Equal(t, 1, fired)
	require.False(t, tm.Armed())
}

func TestTimer_RestartDiscardsRemainingTime(t *testing.T) {
	t.Parallel()

	clock := NewManualClock(time.Unix(0, 0))
	l := NewLoop(clock)
	fired := 0
	tm := l.NewTimer(20*time.Second, func() { fired++ })
	tm.Restart()

	clock.Advance(10 * time.Second)
	tm.Restart()
	clock.Advance(10 * time.Second)
	l.RunPending()
	require.Zero(t, fired, "restarted period must not complete early")

	clock.Advance(10 * time.Second)
	l.RunPending()
	require.Equal(t, 1, fired)
	require.Equal(t, 0, clock.Pending())
}

func TestTimer_StaleExpirationIgnored(t *testing.T) {
	t.Parallel()

	clock := NewManualClock(time.Unix(0, 0))
	l := NewLoop(clock)
	fired := 0
	tm := l.NewTimer(time.Second, func() { fired++ })
	tm.Restart()

	// The expiration is queued but not yet consumed when the timer restarts.
	clock.Advance(time.Second)
	tm.Restart()
	l.RunPending()
	require.Zero(t, fired)

	clock.Advance(time.Second)
	l.RunPending()
	require.Equal(t, 1, fired)
}

func TestTimer_Stop(t *testing.T) {
	t.Parallel()

	clock := NewManualClock(time.Unix(0, 0))
	l := NewLoop(clock)
	fired := 0
	tm := l.NewTimer(time.Second, func() { fired++ })
	tm.Restart()
	tm.Stop()

	clock.Advance(5 * time.Second)
	l.RunPending()
	require.Zero(t, fired)
	require.False(t, tm.Armed())
}

func TestTimer_SelfRearming(t *testing.T) {
	t.Parallel()

	clock := NewManualClock(time.Unix(0, 0))
	l := NewLoop(clock)
	fired := 0
	var tm *Timer
	tm = l.NewTimer(5*time.Second, func() {
		fired++
		tm.Restart()
	})
	tm.Restart()

	for i := 0; i < 3; i++ {
		clock.Advance(5 * time.Second)
		l.RunPending()
	}
	require.Equal(t, 3, fired)
	require.True(t, tm.Armed())
}
