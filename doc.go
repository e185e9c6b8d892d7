// package rundown provides run-down protection for shared resources.
//
// Consider the case where many goroutines use some resource, like a driver or a
// connection pool, that occasionally has to be torn down or rebuilt. Using a
// sync.RWMutex for this makes every user block while the owner holds the write
// lock, and makes the owner wait behind every user for each of its critical
// sections:
//
//	var (
//		mu   sync.RWMutex
//		pool *Pool
//	)
//
//	func Use() {
//		mu.RLock()
//		defer mu.RUnlock()
//		pool.Use()
//	}
//
// Run-down protection never makes users wait. A user either acquires protection
// immediately, or is told that the resource is going away and takes some other
// path. The owner stops new acquisitions and waits only for the ones that are
// already in flight:
//
//	var (
//		ref  rundown.Ref
//		pool *Pool
//	)
//
//	func Use() error {
//		guard, err := ref.TryAcquire()
//		if err != nil {
//			return err // rundown.ErrRundownInProgress
//		}
//		defer guard.Release()
//		pool.Use()
//		return nil
//	}
//
//	func Rebuild() {
//		ref.WaitForRundown()
//		pool.Close()
//		pool = NewPool()
//		ref.ReInit()
//	}
//
// Acquiring and releasing protection never blocks and touches the shared state
// with a single compare and swap in the common case. TryAcquire allocates the
// Guard it returns; Do runs a function under protection without allocating.
// WaitForRundown only allocates something to block on if there is outstanding
// protection at the moment it starts the run down.
//
// Only the first Release of a Guard has any effect, so a deferred Release may be
// combined with an early one. This also means a duplicated Release is not
// reported: keep each Guard with the code that acquired it rather than relying
// on the package to catch leaked or doubled releases.
//
// WaitForRundown and ReInit must be called by one goroutine at a time. The
// package does not serialize concurrent owners.
package rundown
