package dist

import (
	"sync"
	"time"
)

// debouncer coalesces bursts of work per key. Editors and installers
// touch a file several times in quick succession; we only want the
// final state.
type debouncer struct {
	mu      sync.Mutex
	wait    time.Duration
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(wait time.Duration) *debouncer {
	return &debouncer{
		wait:   wait,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules fn to run after the wait period, resetting any pending
// timer for the same key. Calls after stopAndWait are dropped.
func (d *debouncer) add(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if t, ok := d.timers[key]; ok {
		if t.Stop() {
			d.wg.Done()
		}
	}
	d.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(d.wait, func() {
		defer d.wg.Done()
		d.mu.Lock()
		// Only remove our own map entry. A concurrent add may have
		// already replaced it while this callback waited for the lock,
		// and the successor must stay cancellable.
		if d.timers[key] == timer {
			delete(d.timers, key)
		}
		d.mu.Unlock()
		fn()
	})
	d.timers[key] = timer
}

// stopAndWait stops accepting new work and waits for in-flight timers
// to finish, up to the timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
