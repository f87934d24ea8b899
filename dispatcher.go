package happyeyeballs

import (
	"context"
	"net/netip"
	"time"
)

// dispatchLoop launches up to MaxAttempts candidates against the resolved,
// interleaved address list, staggered by StaggerDelay (spec §4.4 "Dispatch
// Loop"). It returns as soon as a winner is signalled, the context is
// cancelled, every eligible address has been launched, or the same-family
// stop rule below fires; it never itself returns a "no winner" error — that
// determination happens back in Connect, once every launched candidate has
// had a chance to finish.
//
// The same-family stop rule (spec §4.4 step 5; the original's prev_family
// check in happy_eyeballs_connect) halts the loop the moment the next
// address would share an address family with the one most recently
// launched: racing several attempts against one family doesn't hide
// dual-stack slowness, which is the entire point of RFC 6555, so a list
// that is all one family launches exactly one candidate and lets it run
// alone.
func (c *Controller) dispatchLoop(ctx context.Context) error {
	if len(c.addrs) == 0 {
		return ErrNoAddresses
	}

	attempts := c.cfg.MaxAttempts
	if attempts > len(c.addrs) {
		attempts = len(c.addrs)
	}

	for i := 0; i < attempts; i++ {
		if i > 0 {
			if sameFamily(c.addrs[i-1], c.addrs[i]) {
				break
			}

			timer := time.NewTimer(c.cfg.StaggerDelay)
			select {
			case <-c.completed.done():
				timer.Stop()
				return nil
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}
		}

		if c.completed.isSet() {
			return nil
		}

		c.launchCandidate(ctx, i)
	}

	return nil
}

// sameFamily reports whether a and b are both IPv4 (or IPv4-in-IPv6) or
// both IPv6, the same binary family classification resolve.Interleave uses
// when deciding where to splice addresses.
func sameFamily(a, b netip.AddrPort) bool {
	aIs4 := a.Addr().Is4() || a.Addr().Is4In6()
	bIs4 := b.Addr().Is4() || b.Addr().Is4In6()
	return aIs4 == bIs4
}

// launchCandidate starts candidate i's worker goroutine (spec §4.5
// "Launching a Candidate"). The candidate's own context is derived from the
// race's parent context so either caller cancellation or teardown can
// interrupt a blocking dial without affecting its siblings.
func (c *Controller) launchCandidate(parent context.Context, index int) {
	addr := c.addrs[index]
	cctx, cancel := context.WithCancel(parent)
	cand := newCandidate(index, addr, cancel)

	c.candidateMu.Lock()
	c.candidates = append(c.candidates, cand)
	c.candidateMu.Unlock()

	c.metrics.candidatesLaunched.Add(1)

	args := c.argPool.Get().(*candidateArgs)
	args.ctx = cctx
	args.cand = cand

	c.inflight.Add(1)
	go c.runWorker(args)
}
