//go:build windows

package happyeyeballs

import (
	"context"
	"net"
)

// sanityCheck runs a loopback self-connect before the first candidate is
// launched (spec §7 "Platform Sanity Check"). Some Windows security
// software (originally observed with Comodo's sandbox) intercepts sockets in
// a way that makes every real connection attempt fail identically; probing
// loopback first turns that into one clear, immediate ErrSandbox instead of
// MaxAttempts worth of confusing per-candidate failures.
func sanityCheck(ctx context.Context) error {
	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return nil
	}
	defer ln.Close()

	accepted := make(chan struct{})
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			conn.Close()
		}
		close(accepted)
	}()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp4", ln.Addr().String())
	if err != nil {
		return ErrSandbox
	}
	conn.Close()
	<-accepted

	return nil
}
