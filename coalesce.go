package happyeyeballs

// coalesceErrors picks the single most representative failure across every
// candidate and records it on the controller (spec §4.3 "Error Coalescing").
// It mirrors the C source's coalesce_errors: the most frequently occurring
// error wins, and the first one observed (in launch order) breaks ties,
// rather than e.g. the last error to arrive, which would make the reported
// failure depend on goroutine scheduling.
//
// Callers must already hold no locks that candidateMu or winnerMu would
// deadlock against; coalesceErrors takes candidateMu itself and assumes the
// caller has already confirmed every candidate has finished and that no
// winner or error has been recorded yet.
func (c *Controller) coalesceErrors() bool {
	c.candidateMu.Lock()
	defer c.candidateMu.Unlock()

	c.winnerMu.Lock()
	alreadyDecided := c.winnerConn != nil || c.err != nil
	c.winnerMu.Unlock()
	if alreadyDecided {
		return false
	}

	if len(c.candidates) == 0 {
		c.err = ErrNoAddresses
		return true
	}

	counts := make(map[string]int, len(c.candidates))
	firstSeen := make(map[string]int, len(c.candidates))
	var order []string

	for i, cand := range c.candidates {
		if cand.err == nil {
			continue
		}
		key := cand.err.Error()
		if _, ok := firstSeen[key]; !ok {
			firstSeen[key] = i
			order = append(order, key)
		}
		counts[key]++
	}

	if len(order) == 0 {
		// Every launched candidate finished without recording an error. A
		// candidate does that only by connecting, and a connection leaves a
		// winner, which is checked above; treat it as no usable address.
		c.err = ErrNoAddresses
		return true
	}

	best := order[0]
	for _, key := range order[1:] {
		if counts[key] > counts[best] || (counts[key] == counts[best] && firstSeen[key] < firstSeen[best]) {
			best = key
		}
	}

	for _, cand := range c.candidates {
		if cand.err != nil && cand.err.Error() == best {
			c.err = cand.err
			return true
		}
	}

	c.err = ErrNoAddresses
	return true
}
