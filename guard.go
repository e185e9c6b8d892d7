package rundown

import "go.uber.org/atomic"

// Guard represents run-down protection acquired from a Ref. It keeps the Ref
// from completing a run down until it is Released. Guards are only created by
// Ref.TryAcquire.
type Guard struct {
	ref      *Ref
	released atomic.Bool
}

// Release gives the protection back to the Ref. Only the first call has any
// effect, so it is safe to both defer it and call it early.
func (g *Guard) Release() {
	if g.released.CompareAndSwap(false, true) {
		g.ref.release()
	}
}
