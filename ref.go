package rundown

import (
	"fmt"
	"unsafe"

	"go.uber.org/atomic"
)

const cacheLine = 64 // typical size of a cache line

// Ref provides run-down protection for some shared resource. Any number of
// goroutines may TryAcquire it concurrently to use the resource, and a single
// owning goroutine may WaitForRundown to stop new acquisitions and wait for
// the outstanding ones to be released before tearing the resource down or
// re-initializing it. The zero value is safe to use.
//
// A Ref must not be copied after first use.
type Ref struct {
	// state holds the active count and the draining flag. It is padded to a
	// cache line since every acquire and release contends on it.
	state atomic.Uint64
	_     [cacheLine - unsafe.Sizeof(atomic.Uint64{})]byte

	// ev is allocated by the first WaitForRundown that has to block and is
	// reused after that.
	ev atomic.Pointer[event]
}

// New returns a Ref ready for use.
func New() *Ref { return new(Ref) }

// TryAcquire attempts to acquire run-down protection. On success the returned
// Guard must be Released once the protected work is done. It never blocks: if
// a run down has started it returns ErrRundownInProgress immediately. It is
// safe to be called concurrently.
func (r *Ref) TryAcquire() (*Guard, error) {
	if err := r.acquire(); err != nil {
		return nil, err
	}
	return &Guard{ref: r}, nil
}

// Do runs fn while holding run-down protection. The protection is released
// when fn returns or panics. If a run down has started, fn is not called and
// ErrRundownInProgress is returned. Unlike TryAcquire, it does not allocate.
func (r *Ref) Do(fn func()) error {
	if err := r.acquire(); err != nil {
		return err
	}
	defer r.release()
	fn()
	return nil
}

// acquire adds one unit of protection unless the Ref is draining.
func (r *Ref) acquire() error {
	for {
		bits := r.state.Load()
		cur := decodeState(bits)
		if cur.draining {
			return ErrRundownInProgress
		}
		if r.state.CompareAndSwap(bits, cur.withIncrement()) {
			return nil
		}
	}
}

// release drops one unit of protection, waking the goroutine in
// WaitForRundown if it was the last one.
func (r *Ref) release() {
	var next state
	for {
		bits := r.state.Load()
		nbits := decodeState(bits).withDecrement()
		if r.state.CompareAndSwap(bits, nbits) {
			next = decodeState(nbits)
			break
		}
	}

	// WaitForRundown allocates the event before it commits the draining flag
	// while the count is nonzero, so it must exist here.
	if next.count == 0 && next.draining {
		r.ev.Load().Set()
	}
}

// WaitForRundown marks the Ref as draining so that no new protection can be
// acquired, and blocks until all outstanding Guards are released.
//
// It must only be called by one goroutine at a time, but it is idempotent:
// calling it again after a completed run down returns immediately.
func (r *Ref) WaitForRundown() {
	var cur state
	for {
		bits := r.state.Load()
		cur = decodeState(bits)

		// someone has to be woken up by the last release, so make sure there
		// is something to signal before anyone can observe the flag.
		if cur.count != 0 {
			r.loadOrCreateEvent()
		}

		if r.state.CompareAndSwap(bits, cur.withDraining()) {
			break
		}
	}

	if cur.count != 0 {
		r.ev.Load().Wait()
	}
}

// ReInit makes a fully run down Ref usable again. It panics if
// WaitForRundown has not completed or if protection is still held.
//
// New protection can be acquired as soon as ReInit begins to return, so the
// resource must be re-initialized before calling it.
func (r *Ref) ReInit() {
	cur := decodeState(r.state.Load())
	if !cur.draining || cur.count != 0 {
		fatal(ErrNotRundown, cur)
	}

	if ev := r.ev.Load(); ev != nil {
		ev.Reset()
	}

	r.state.Store(state{}.encode())
}

// Draining reports if a run down has started and the Ref has not been
// re-initialized since.
func (r *Ref) Draining() bool {
	return decodeState(r.state.Load()).draining
}

// String returns a snapshot of the Ref's state.
func (r *Ref) String() string {
	cur := decodeState(r.state.Load())
	return fmt.Sprintf("Ref(active=%d, draining=%t)", cur.count, cur.draining)
}

// loadOrCreateEvent returns the event, allocating it if needed. Racing
// callers all observe the same instance.
func (r *Ref) loadOrCreateEvent() *event {
	if ev := r.ev.Load(); ev != nil {
		return ev
	}
	ev := newEvent()
	if r.ev.CompareAndSwap(nil, ev) {
		return ev
	}
	return r.ev.Load()
}
