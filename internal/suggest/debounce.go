package suggest

import (
	"sync"

	"github.com/google/uuid"
)

// Debouncer collapses bursts of triggers into the latest one. Each Arm
// invalidates every earlier token, so a timer that fires for a superseded
// token can tell it lost the race and do nothing.
//
// The TUI arms it on every description keystroke and schedules a tick
// carrying the token; only the tick whose token is still current sends the
// request.
type Debouncer struct {
	mu      sync.Mutex
	current uuid.UUID
}

// Arm starts a new debounce window and returns its token.
func (d *Debouncer) Arm() uuid.UUID {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = uuid.New()
	return d.current
}

// Current reports whether the token still owns the window.
func (d *Debouncer) Current(token uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return token != uuid.Nil && token == d.current
}

// Cancel invalidates the window without starting a new one.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.current = uuid.Nil
}
