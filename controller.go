package happyeyeballs

import (
	"context"
	"net"
	"net/netip"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ygrebnov/happyeyeballs/pool"
	"github.com/ygrebnov/happyeyeballs/resolve"
)

// Controller is the race controller (spec §3 "Race Controller"): it owns the
// candidate set, the winner slot, the completion signal, and all shared
// mutable state for one race. A Controller races exactly once; create a new
// one for each connection attempt (spec §1 non-goals: "no retry after a
// fully failed race").
type Controller struct {
	cfg     Config
	metrics *raceMetrics

	addrs []netip.AddrPort // resolved, interleaved; immutable after resolution

	argPool pool.Pool // recycles *candidateArgs bundles (spec §4.5 step 3)

	candidateMu sync.Mutex // serializes mutation/iteration of candidates
	candidates  []*candidate

	winnerMu   sync.Mutex // serializes the winner-claim critical region
	winnerConn net.Conn
	winnerAddr netip.AddrPort

	err error // set only when there is no winner (spec invariant 6)

	completed *signal // fires once, on a winner or on terminal failure

	isStarting atomic.Bool // true while the dispatcher is still launching

	inflight sync.WaitGroup // tracks outstanding candidate goroutines

	nameResolutionDur time.Duration
	connectStart      time.Time
	connectEnd        time.Time

	closeOnce    sync.Once
	closed       atomic.Bool
	teardownDone chan struct{}
}

func newController(cfg Config) *Controller {
	return &Controller{
		cfg:          cfg,
		metrics:      newRaceMetrics(cfg.Metrics),
		completed:    newSignal(),
		argPool:      pool.NewDynamic(func() interface{} { return new(candidateArgs) }),
		teardownDone: make(chan struct{}),
	}
}

// SetBindAddr sets or clears (pass nil) the local address hint used to bind
// every candidate's socket and to steer resolution toward one address
// family (spec §6 set_bind_addr). It must be called before Connect.
func (c *Controller) SetBindAddr(addr net.IP) error {
	if c == nil {
		return ErrInvalidArgument
	}
	c.cfg.BindAddr = addr
	d := &net.Dialer{}
	if addr != nil {
		d.LocalAddr = &net.TCPAddr{IP: addr}
	}
	c.cfg.dialer = d.DialContext
	return nil
}

// Connect resolves hostname and races staggered connection attempts to its
// addresses on port (spec §4.4). It returns nil if a winner was selected
// before the loop exited, ErrInProgress if candidates are still racing, or
// a non-nil error wrapping the coalesced failure otherwise.
func (c *Controller) Connect(ctx context.Context, hostname string, port int) error {
	if c == nil || hostname == "" || port <= 0 || port > 65535 {
		return ErrInvalidArgument
	}
	if c.closed.Load() {
		return ErrClosed
	}

	if err := sanityCheck(ctx); err != nil {
		c.err = err
		return err
	}

	hint := resolve.FamilyHintFromBindAddr(c.cfg.BindAddr)
	res, err := c.cfg.resolve(ctx, hostname, port, hint)
	c.nameResolutionDur = res.Elapsed
	c.metrics.resolutionSeconds.Record(res.Elapsed.Seconds())
	if err != nil {
		c.err = err
		return err
	}
	c.addrs = res.Addrs

	c.connectStart = time.Now()
	c.isStarting.Store(true)

	if err := c.dispatchLoop(ctx); err != nil {
		c.isStarting.Store(false)
		c.err = err
		return err
	}

	c.isStarting.Store(false)

	if c.tryLocked() == ErrInProgress {
		c.candidateMu.Lock()
		active := 0
		for _, cand := range c.candidates {
			if !cand.completed.isSet() {
				active++
			}
		}
		c.candidateMu.Unlock()

		if active == 0 && c.coalesceErrors() {
			c.metrics.outcomeFailed.Add(1)
			c.signalEnd()
		}
	}

	return c.tryLocked()
}

// Try reports the race's current state without blocking: nil if a winner is
// ready, ErrInProgress while candidates are still racing, or the recorded
// error otherwise.
func (c *Controller) Try() error {
	if c == nil {
		return ErrInvalidArgument
	}
	return c.tryLocked()
}

// tryLocked implements Try's logic; named for symmetry with the C source's
// happy_eyeballs_try, which also checks context->error before the event
// status so a recorded error always wins over a bare "still running" read.
func (c *Controller) tryLocked() error {
	if c.err != nil {
		return c.err
	}
	if !c.completed.isSet() {
		return ErrInProgress
	}
	return nil
}

// TimedWait blocks up to d for the race to complete, returning nil,
// ErrTimeout, or the recorded error.
func (c *Controller) TimedWait(d time.Duration) error {
	if c == nil {
		return ErrInvalidArgument
	}
	if c.completed.waitTimeout(d) {
		return c.tryLocked()
	}
	if c.err != nil {
		return c.err
	}
	return ErrTimeout
}

// TimedWaitDefault is TimedWait with the configured default Timeout (25s
// unless overridden by WithTimeout).
func (c *Controller) TimedWaitDefault() error {
	return c.TimedWait(c.cfg.Timeout)
}

// Conn returns the winning connection. Only valid once Try/TimedWait has
// returned nil. Ownership transfers to the caller: Close never touches it.
func (c *Controller) Conn() net.Conn {
	c.winnerMu.Lock()
	defer c.winnerMu.Unlock()
	return c.winnerConn
}

// RemoteAddr returns the winning candidate's remote address, and whether a
// winner has been chosen.
func (c *Controller) RemoteAddr() (netip.AddrPort, bool) {
	c.winnerMu.Lock()
	defer c.winnerMu.Unlock()
	if c.winnerConn == nil {
		return netip.AddrPort{}, false
	}
	return c.winnerAddr, true
}

// ErrorCode returns the normalized code for the last recorded error, or
// CodeNone if there is none.
func (c *Controller) ErrorCode() Code {
	return codeOf(c.err)
}

// ErrorMessage returns a human-readable description of the last recorded
// error, or "" if there is none.
func (c *Controller) ErrorMessage() string {
	if c.err == nil {
		return ""
	}
	return c.err.Error()
}

// NameResolutionTime returns how long address resolution took.
func (c *Controller) NameResolutionTime() time.Duration { return c.nameResolutionDur }

// GetNameResolutionTimeNS is the nanosecond accessor named in spec §6.
func (c *Controller) GetNameResolutionTimeNS() int64 { return c.nameResolutionDur.Nanoseconds() }

// ConnectionTime returns the elapsed time from launch to completion, or 0 if
// the race has not completed.
func (c *Controller) ConnectionTime() time.Duration {
	if c.connectEnd.Before(c.connectStart) || c.connectEnd.IsZero() {
		return 0
	}
	return c.connectEnd.Sub(c.connectStart)
}

// GetConnectionTimeNS is the nanosecond accessor named in spec §6.
func (c *Controller) GetConnectionTimeNS() int64 { return c.ConnectionTime().Nanoseconds() }

// signalEnd sets the completion signal and stamps connectEnd, mirroring the
// C source's signal_end: the timestamp is only meaningful the first time the
// signal fires, so it is guarded by the same check.
func (c *Controller) signalEnd() {
	if c.completed.isSet() {
		return
	}
	c.connectEnd = time.Now()
	c.metrics.connectSeconds.Record(c.connectEnd.Sub(c.connectStart).Seconds())
	c.completed.set()
}

// candidateArgs is the per-launch argument bundle (spec §4.5 step 3),
// recycled through argPool the way the teacher's dispatcher recycles
// *worker[R]) values through its own pool.
type candidateArgs struct {
	ctx  context.Context
	cand *candidate
}
