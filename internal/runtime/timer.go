package runtime

import "time"

// Timer is a restartable one-shot timer whose callback runs on the loop.
//
// Restart discards whatever is left of the current period and begins a new
// one of the same length. An expiration that was already queued when Restart
// or Stop ran is ignored. Timer methods must be called from loop tasks.
type Timer struct {
	loop   *Loop
	period time.Duration
	fn     func()

	gen  uint64
	stop func() bool
}

// NewTimer creates an unarmed timer; call Restart to arm it.
func (l *Loop) NewTimer(period time.Duration, fn func()) *Timer {
	return &Timer{loop: l, period: period, fn: fn}
}

// Period returns the timer period.
func (t *Timer) Period() time.Duration { return t.period }

// Restart arms the timer for a fresh full period.
func (t *Timer) Restart() {
	t.Stop()
	gen := t.gen
	t.stop = t.loop.clock.AfterFunc(t.period, func() {
		t.loop.Post(func() {
			if t.gen != gen {
				return
			}
			t.stop = nil
			t.fn()
		})
	})
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.gen++
	if t.stop != nil {
		t.stop()
		t.stop = nil
	}
}

// Armed reports whether a period is running.
func (t *Timer) Armed() bool { return t.stop != nil }
