package happyeyeballs

// Close ends the race and releases every non-winning candidate's resources.
// It is idempotent and returns immediately: the actual cancellation, join,
// and socket cleanup run on a detached goroutine (spec §4.6 "Teardown
// Worker"), the same non-blocking shutdown shape as the teacher's
// lifecycleCoordinator.Close(), so a caller holding the winning connection
// never waits on its losing siblings to unwind.
func (c *Controller) Close() error {
	if c == nil {
		return ErrInvalidArgument
	}
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		go c.teardown()
	})
	return nil
}

// teardown cancels every candidate's dial, waits for every worker goroutine
// to exit, then closes every connection except the winner's — which now
// belongs to the caller, per Conn's contract.
func (c *Controller) teardown() {
	defer close(c.teardownDone)

	c.candidateMu.Lock()
	cands := append([]*candidate(nil), c.candidates...)
	c.candidateMu.Unlock()

	for _, cand := range cands {
		cand.cancel()
	}

	c.inflight.Wait()

	c.winnerMu.Lock()
	winner := c.winnerConn
	c.winnerMu.Unlock()

	for _, cand := range cands {
		if cand.conn != nil && cand.conn != winner {
			_ = cand.conn.Close()
		}
	}
}

// Done returns a channel closed once teardown has fully unwound every
// losing candidate. Production callers never need it; tests use it to
// observe teardown completion deterministically instead of sleeping.
func (c *Controller) Done() <-chan struct{} {
	return c.teardownDone
}
