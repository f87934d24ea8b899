package happyeyeballs

import (
	"context"
	"sync"
	"time"
)

// signal is a manually-reset, one-shot edge signal (spec §3 "completion
// signal", §9 "Manually-reset one-shot edge signals"): it is set at most
// once, and every waiter observes that single transition. It is built on
// sync.Once plus a closed channel, the same broadcast-to-many-waiters idiom
// the teacher's lifecycleCoordinator uses for its closeCh field, rather than
// on a platform condition variable.
type signal struct {
	once sync.Once
	ch   chan struct{}
}

func newSignal() *signal {
	return &signal{ch: make(chan struct{})}
}

// set signals the event. Safe to call more than once or concurrently; only
// the first call has any effect, matching invariant 2 in spec §3.
func (s *signal) set() {
	s.once.Do(func() { close(s.ch) })
}

// isSet reports whether the event has been signalled, without blocking.
// This is the "try" primitive from spec §9.
func (s *signal) isSet() bool {
	select {
	case <-s.ch:
		return true
	default:
		return false
	}
}

// wait blocks until the event is signalled or ctx is done, returning
// ctx.Err() in the latter case.
func (s *signal) wait(ctx context.Context) error {
	select {
	case <-s.ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// waitTimeout blocks up to d for the event to be signalled. It reports
// whether the event fired (as opposed to the timeout elapsing) — the Go
// analogue of os_event_timedwait's 0-vs-ETIMEDOUT return.
func (s *signal) waitTimeout(d time.Duration) (fired bool) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-s.ch:
		return true
	case <-timer.C:
		return false
	}
}

// done exposes the underlying channel for use in select statements
// alongside other signals, e.g. in the dispatcher's stagger wait.
func (s *signal) done() <-chan struct{} { return s.ch }
