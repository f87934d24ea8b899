package happyeyeballs

import "net"

// runWorker is the body of a candidate's goroutine (spec §4.2 "Candidate
// Worker"). It dials addr, then claims the win or records the failure, and
// finally signals completion. It never touches c.addrs or the dispatcher's
// launch state: those belong exclusively to dispatchLoop.
func (c *Controller) runWorker(args *candidateArgs) {
	ctx, cand := args.ctx, args.cand
	defer c.inflight.Done()
	defer cand.completed.set()
	defer c.argPool.Put(args)

	c.metrics.candidatesInflight.Add(1)
	defer c.metrics.candidatesInflight.Add(-1)

	conn, err := c.cfg.dialer(ctx, "tcp", cand.addr.String())
	if err != nil {
		c.onCandidateFailure(cand, newCandidateError(err, cand.addr, cand.index))
		return
	}

	c.onCandidateSuccess(cand, conn)
}

// onCandidateSuccess attempts to claim cand as the winner (spec §4.2 "winner
// selection"). Only the first candidate to reach this point under winnerMu
// wins; every later arrival closes its own redundant connection immediately,
// the same "first across the line keeps it, everyone else hangs up" rule the
// C source's happy_connect_worker enforces via winner_mutex.
func (c *Controller) onCandidateSuccess(cand *candidate, conn net.Conn) {
	c.winnerMu.Lock()
	won := c.winnerConn == nil
	if won {
		c.winnerConn = conn
		c.winnerAddr = cand.addr
		cand.conn = conn
	}
	c.winnerMu.Unlock()

	if !won {
		_ = conn.Close()
		return
	}

	c.metrics.outcomeWon.Add(1)
	c.signalEnd()
}

// onCandidateFailure records cand's error and, if cand was the last
// candidate still racing, coalesces every candidate's error into the
// controller-level failure and ends the race (spec §4.3).
func (c *Controller) onCandidateFailure(cand *candidate, err error) {
	cand.err = err

	c.winnerMu.Lock()
	// Mark cand finished before the last-candidate check below, so that
	// allCandidatesDone counts it; runWorker's deferred set is then a no-op.
	cand.completed.set()
	alreadyWon := c.winnerConn != nil
	alreadyFailed := c.err != nil
	c.winnerMu.Unlock()

	if alreadyWon || alreadyFailed {
		return
	}

	// Reading isStarting while still holding winnerMu would require
	// restructuring the lock above; instead this mirrors the C source's
	// own ordering, which samples is_starting only after releasing
	// winner_mutex, accepting the same narrow race it does: a candidate
	// that finishes between the dispatcher's last launch and its
	// is_starting flip may coalesce early, leaving one goroutine still
	// running whose outcome is simply discarded by teardown.
	if c.isStarting.Load() {
		return
	}

	if c.allCandidatesDone() && c.coalesceErrors() {
		c.metrics.outcomeFailed.Add(1)
		c.signalEnd()
	}
}

// allCandidatesDone reports whether every launched candidate has finished.
func (c *Controller) allCandidatesDone() bool {
	c.candidateMu.Lock()
	defer c.candidateMu.Unlock()
	for _, cand := range c.candidates {
		if !cand.completed.isSet() {
			return false
		}
	}
	return true
}
