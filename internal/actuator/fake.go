package actuator

import (
	"sync"

	"room_climate/internal/models"
)

// Call is one recorded driver invocation.
type Call struct {
	System models.System
	On     bool
}

// Fake records driver calls for test assertions.
type Fake struct {
	mu    sync.Mutex
	Calls []Call
}

func NewFake() *Fake { return &Fake{} }

func (f *Fake) Activate(s models.System) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{System: s, On: true})
}

func (f *Fake) Deactivate(s models.System) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, Call{System: s, On: false})
}

// IsOn replays the recorded calls and returns the final state of s.
func (f *Fake) IsOn(s models.System) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	on := false
	for _, c := range f.Calls {
		if c.System == s {
			on = c.On
		}
	}
	return on
}

// Reset forgets all recorded calls.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = nil
}
