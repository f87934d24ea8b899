package happyeyeballs

import (
	"context"
	"errors"
	"net"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/happyeyeballs/resolve"
)

func fakeResolver(addrs ...string) ResolveFunc {
	var parsed []netip.AddrPort
	for _, a := range addrs {
		parsed = append(parsed, netip.MustParseAddrPort(a))
	}
	return func(_ context.Context, _ string, _ int, _ resolve.Family) (resolve.Result, error) {
		return resolve.Result{Addrs: parsed, Elapsed: time.Millisecond}, nil
	}
}

// connectAndWait mirrors the switch statement documented in doc.go: it
// treats ErrInProgress from Connect as expected and blocks for the real
// outcome instead of racing candidate goroutines still settling.
func connectAndWait(t *testing.T, c *Controller, host string, port int) error {
	t.Helper()
	err := c.Connect(context.Background(), host, port)
	if errors.Is(err, ErrInProgress) {
		err = c.TimedWait(time.Second)
	}
	return err
}

func TestConnect_FirstDialerWins(t *testing.T) {
	c, err := New(
		WithStaggerDelay(5*time.Millisecond),
		WithMaxAttempts(2),
		WithResolver(fakeResolver("192.0.2.1:80", "192.0.2.2:80")),
		WithDialer(func(_ context.Context, _, address string) (net.Conn, error) {
			if address == "192.0.2.1:80" {
				client, _ := net.Pipe()
				return client, nil
			}
			return nil, errors.New("connection refused")
		}),
	)
	require.NoError(t, err)
	defer c.Close()

	err = connectAndWait(t, c, "example.com", 80)
	require.NoError(t, err)

	require.NotNil(t, c.Conn())
	addr, ok := c.RemoteAddr()
	require.True(t, ok)
	require.Equal(t, "192.0.2.1:80", addr.String())
	require.Equal(t, CodeNone, c.ErrorCode())
}

func TestConnect_AllCandidatesFail(t *testing.T) {
	refused := errors.New("connection refused")

	c, err := New(
		WithStaggerDelay(5*time.Millisecond),
		WithMaxAttempts(3),
		// Alternating families so all three candidates are actually
		// eligible to launch; three addresses of one family would stop
		// after the first under the same-family stop rule (spec §4.4).
		WithResolver(fakeResolver("192.0.2.1:80", "[2001:db8::2]:80", "192.0.2.3:80")),
		WithDialer(func(_ context.Context, _, _ string) (net.Conn, error) {
			return nil, refused
		}),
	)
	require.NoError(t, err)
	defer c.Close()

	err = connectAndWait(t, c, "example.com", 80)
	require.Error(t, err)
	require.Nil(t, c.Conn())
	require.Contains(t, c.ErrorMessage(), "connection refused")
}

func TestConnect_SameFamilyStopsAfterFirstCandidate(t *testing.T) {
	var launches int32

	c, err := New(
		WithStaggerDelay(time.Millisecond),
		WithMaxAttempts(4),
		WithResolver(fakeResolver("192.0.2.1:80", "192.0.2.2:80", "192.0.2.3:80")),
		WithDialer(func(_ context.Context, _, _ string) (net.Conn, error) {
			atomic.AddInt32(&launches, 1)
			return nil, errors.New("connection refused")
		}),
	)
	require.NoError(t, err)
	defer c.Close()

	err = connectAndWait(t, c, "example.com", 80)
	require.Error(t, err)
	require.EqualValues(t, 1, atomic.LoadInt32(&launches))
}

func TestConnect_NoAddressesResolved(t *testing.T) {
	c, err := New(
		WithResolver(func(_ context.Context, _ string, _ int, _ resolve.Family) (resolve.Result, error) {
			return resolve.Result{}, nil
		}),
	)
	require.NoError(t, err)
	defer c.Close()

	err = c.Connect(context.Background(), "example.com", 80)
	require.ErrorIs(t, err, ErrNoAddresses)
}

func TestConnect_RejectsInvalidArguments(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	defer c.Close()

	require.ErrorIs(t, c.Connect(context.Background(), "", 80), ErrInvalidArgument)
	require.ErrorIs(t, c.Connect(context.Background(), "example.com", 0), ErrInvalidArgument)
}

func TestClose_IsIdempotentAndTearsDownLosers(t *testing.T) {
	losingClosed := make(chan struct{}, 1)

	c, err := New(
		// A 1ms stagger against a 20ms winner delay guarantees the losing
		// candidate is launched well before the winner completes, so this
		// test never races the dispatch loop's own completion check.
		WithStaggerDelay(time.Millisecond),
		WithMaxAttempts(2),
		// Alternating families so the second address is still eligible to
		// launch under the same-family stop rule (spec §4.4).
		WithResolver(fakeResolver("192.0.2.1:80", "[2001:db8::2]:80")),
		WithDialer(func(ctx context.Context, _, address string) (net.Conn, error) {
			if address == "192.0.2.1:80" {
				time.Sleep(20 * time.Millisecond)
				client, _ := net.Pipe()
				return client, nil
			}
			<-ctx.Done()
			losingClosed <- struct{}{}
			return nil, ctx.Err()
		}),
	)
	require.NoError(t, err)

	require.NoError(t, connectAndWait(t, c, "example.com", 80))

	require.NoError(t, c.Close())
	require.NoError(t, c.Close()) // second call must be a no-op, not a panic

	select {
	case <-c.Done():
	case <-time.After(time.Second):
		t.Fatalf("teardown did not complete")
	}

	select {
	case <-losingClosed:
	case <-time.After(time.Second):
		t.Fatalf("losing candidate's context was never cancelled")
	}
}

func TestTry_ReportsInProgressThenResult(t *testing.T) {
	release := make(chan struct{})

	c, err := New(
		WithStaggerDelay(5*time.Millisecond),
		WithMaxAttempts(1),
		WithResolver(fakeResolver("192.0.2.1:80")),
		WithDialer(func(ctx context.Context, _, _ string) (net.Conn, error) {
			select {
			case <-release:
				client, _ := net.Pipe()
				return client, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}),
	)
	require.NoError(t, err)
	defer c.Close()

	done := make(chan error, 1)
	go func() { done <- c.Connect(context.Background(), "example.com", 80) }()

	time.Sleep(10 * time.Millisecond)
	require.ErrorIs(t, c.Try(), ErrInProgress)

	// Connect does not wait on the last launched candidate, so it has
	// already returned ErrInProgress; the result arrives via TimedWait.
	require.ErrorIs(t, <-done, ErrInProgress)

	close(release)
	require.NoError(t, c.TimedWait(time.Second))
	require.NoError(t, c.Try())
}
