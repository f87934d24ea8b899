package happyeyeballs

import (
	"context"
	"net"
	"net/netip"
)

// candidate represents one in-flight connection attempt (spec §3
// "Candidate"). It is created by the dispatcher (§4.5) when launching an
// attempt, mutated only by its own worker goroutine and by teardown, and
// destroyed only by the teardown worker once that goroutine has exited.
type candidate struct {
	index int           // attempt ordinal, used only for error tagging/metrics
	addr  netip.AddrPort // target address for this attempt

	conn net.Conn // non-nil only if this candidate's connect succeeded
	err  error    // this candidate's own error, nil if none occurred

	completed *signal // set exactly once when this worker finishes, win or lose

	cancel context.CancelFunc // interrupts a blocking dial; spec §4.2 cancellation semantics
}

func newCandidate(index int, addr netip.AddrPort, cancel context.CancelFunc) *candidate {
	return &candidate{
		index:     index,
		addr:      addr,
		completed: newSignal(),
		cancel:    cancel,
	}
}

// isWinner reports whether this candidate holds the winning connection.
// Only meaningful to read after completed is set.
func (c *candidate) isWinner() bool { return c.conn != nil }
