package runtime

import (
	"context"
	"errors"
	"sync"
)

// ErrStopped is returned by Call once the loop has exited.
var ErrStopped = errors.New("runtime: loop stopped")

// Loop executes posted tasks sequentially on one goroutine.
// The queue is unbounded and FIFO: Post never blocks and never drops.
type Loop struct {
	clock Clock

	mu    sync.Mutex
	queue []func()
	wake  chan struct{}

	done     chan struct{}
	doneOnce sync.Once
}

// NewLoop creates a loop whose timers use clock (RealClock when nil).
func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = RealClock{}
	}
	return &Loop{
		clock: clock,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Clock returns the loop clock.
func (l *Loop) Clock() Clock { return l.clock }

// Post appends fn to the queue. Safe from any goroutine.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Call posts fn and waits until it has run on the loop.
// When ctx ends first Call returns ctx.Err(), but fn is not withdrawn:
// it stays queued and still runs. It must not be called from a loop task.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue until ctx is canceled.
func (l *Loop) Run(ctx context.Context) {
	defer l.doneOnce.Do(func() { close(l.done) })
	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			return
		case <-l.wake:
		}
	}
}

// RunPending executes queued tasks on the calling goroutine until the queue is
// empty, including tasks posted by the tasks themselves. Returns how many ran.
// Tests use it to act as the loop goroutine.
func (l *Loop) RunPending() int {
	n := 0
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return n
		}
		fn := l.queue[0]
		l.queue[0] = nil
		l.queue = l.queue[1:]
		l.mu.Unlock()

		fn()
		n++
	}
}
