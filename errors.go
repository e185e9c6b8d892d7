package rundown

import "github.com/juju/errors"

// ErrRundownInProgress is returned by TryAcquire and Do when the Ref is being
// run down (or has been run down and not yet re-initialized).
const ErrRundownInProgress = errors.ConstError("rundown in progress")

// The following errors are never returned. They are wrapped into the values
// passed to panic when a caller breaks the acquire/release contract, so a
// recovered value can be matched with errors.Is.
const (
	// ErrOverflow means the active count would no longer fit in the state
	// word. It is almost always caused by leaked guards.
	ErrOverflow = errors.ConstError("rundown: active count overflow")

	// ErrUnderflow means a release happened with no outstanding acquisition.
	ErrUnderflow = errors.ConstError("rundown: active count underflow")

	// ErrNotRundown means ReInit was called before a run down completed.
	ErrNotRundown = errors.ConstError("rundown: re-init before rundown complete")
)

// fatal panics with err annotated by the state the caller observed.
func fatal(err error, s state) {
	panic(errors.Annotatef(err, "active=%d draining=%t", s.count, s.draining))
}
