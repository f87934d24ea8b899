// Package happyeyeballs implements a Happy Eyeballs v1 (RFC 6555) connection
// racer: it resolves a hostname to an interleaved list of IPv4 and IPv6
// addresses, then races staggered concurrent TCP connection attempts so the
// first successful socket wins and the rest are torn down asynchronously.
//
// Constructors
//   - New(opts ...Option): the only constructor. A Controller is created
//     unstarted; call Connect to resolve and race.
//
// Lifecycle
//
//	c, err := happyeyeballs.New()
//	if err != nil { ... }
//	defer c.Close()
//
//	switch err := c.Connect(ctx, "example.com", 443); err {
//	case nil:
//		conn := c.Conn() // winner, now owned by the caller
//	case happyeyeballs.ErrInProgress:
//		err = c.TimedWaitDefault()
//	default:
//		// err wraps the coalesced candidate error; see c.ErrorCode()/c.ErrorMessage()
//	}
//
// Close schedules asynchronous teardown of any losing candidates and must be
// called; calls after the first are no-ops. The winner's Conn, if any, must be retrieved before
// calling Close, since Close never touches it but the Controller itself is
// not usable afterward.
//
// Defaults
// Unless overridden via Option, the following apply to a newly created
// Controller:
//   - StaggerDelay: 200ms
//   - MaxAttempts: 6
//   - Timeout (used only by TimedWaitDefault): 25s
//   - Metrics: a no-op provider
//
// Scope
// This package races TCP connection establishment only: no retry once a
// race concludes, no UDP/SCTP/TCP Fast Open, no TLS, and none of the RFC
// 8305 (Happy Eyeballs v2) refinements such as DNS racing or per-destination
// caching. Process-wide logging is intentionally not a dependency of this
// package.
package happyeyeballs
