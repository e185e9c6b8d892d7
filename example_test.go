package rundown_test

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/juju/errors"
	"github.com/zeebo/rundown"
)

func Example() {
	var (
		ref   rundown.Ref
		mu    sync.Mutex
		table = map[string]int{"a": 1}
	)

	lookup := func(key string) (v int, err error) {
		err = ref.Do(func() {
			mu.Lock()
			v = table[key]
			mu.Unlock()
		})
		return v, err
	}

	v, err := lookup("a")
	fmt.Println(v, err)

	// hold protection while the table is being rebuilt.
	guard, _ := ref.TryAcquire()
	done := make(chan struct{})
	go func() {
		ref.WaitForRundown()
		close(done)
	}()
	for !ref.Draining() {
		runtime.Gosched()
	}

	_, err = lookup("a")
	fmt.Println(errors.Is(err, rundown.ErrRundownInProgress))

	guard.Release()
	<-done
	fmt.Println(ref.String())

	table = map[string]int{"a": 2}
	ref.ReInit()

	v, err = lookup("a")
	fmt.Println(v, err)

	// Output:
	// 1 <nil>
	// true
	// Ref(active=0, draining=true)
	// 2 <nil>
}
