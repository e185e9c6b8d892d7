package rundown

import "sync"

// event is a simple manual reset event. Once set, every current and future
// wait returns immediately until it is reset.
type event struct {
	mu  sync.Mutex
	ch  chan struct{}
	set bool
}

func newEvent() *event {
	return &event{ch: make(chan struct{})}
}

// Set marks the event and wakes all waiters. Setting an already set event
// does nothing.
func (e *event) Set() {
	e.mu.Lock()
	if !e.set {
		e.set = true
		close(e.ch)
	}
	e.mu.Unlock()
}

// Reset returns the event to the unset state so it can be waited on again.
func (e *event) Reset() {
	e.mu.Lock()
	if e.set {
		e.set = false
		e.ch = make(chan struct{})
	}
	e.mu.Unlock()
}

// Wait blocks until the event is set.
func (e *event) Wait() {
	e.mu.Lock()
	ch := e.ch
	e.mu.Unlock()
	<-ch
}

// IsSet reports if the event is currently set.
func (e *event) IsSet() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.set
}
