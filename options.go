package happyeyeballs

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/ygrebnov/happyeyeballs/metrics"
	"github.com/ygrebnov/happyeyeballs/resolve"
)

// DialFunc matches net.Dialer.DialContext's signature. Tests substitute a
// fake to race connection attempts without opening real sockets, the same
// way the Jigsaw-Code HappyEyeballsStreamDialer lets callers override
// LookupIPv4/LookupIPv6 for tests instead of hitting a live resolver.
type DialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// ResolveFunc matches (*resolve.Builder).Build's signature; see DialFunc.
type ResolveFunc func(ctx context.Context, host string, port int, hint resolve.Family) (resolve.Result, error)

// Option configures a Controller. Use New(opts...) to construct one.
type Option func(*Config)

// WithBindAddr hints which local address to bind candidate sockets to, and
// steers resolution toward that address family (spec §4.1 step 1, §6
// set_bind_addr). Passing nil clears a previously set hint.
func WithBindAddr(addr net.IP) Option {
	return func(cfg *Config) { cfg.BindAddr = addr }
}

// WithStaggerDelay overrides the default 200ms gap between candidate
// launches.
func WithStaggerDelay(d time.Duration) Option {
	return func(cfg *Config) { cfg.StaggerDelay = d }
}

// WithMaxAttempts overrides the default cap of 6 candidates per race.
func WithMaxAttempts(n int) Option {
	return func(cfg *Config) { cfg.MaxAttempts = n }
}

// WithTimeout overrides the default 25s deadline used by TimedWaitDefault.
func WithTimeout(d time.Duration) Option {
	return func(cfg *Config) { cfg.Timeout = d }
}

// WithMetrics attaches a metrics.Provider to record candidate and race
// instruments. Default: metrics.NewNoopProvider().
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *Config) { cfg.Metrics = p }
}

// WithDialer overrides the function used to establish each candidate
// connection. Intended for tests; production callers should leave this
// unset to get a net.Dialer honoring WithBindAddr.
func WithDialer(d DialFunc) Option {
	return func(cfg *Config) { cfg.dialer = dialFunc(d) }
}

// WithResolver overrides the function used to resolve and interleave
// addresses. Intended for tests; production callers should leave this unset
// to get resolve.NewBuilder().
func WithResolver(r ResolveFunc) Option {
	return func(cfg *Config) { cfg.resolve = resolveFunc(r) }
}

// New creates a Controller. It is not started: call Connect to resolve and
// race. New mirrors the teacher's NewOptions in spirit but, since this
// package has exactly one constructor shape (there is no legacy Config-based
// New to stay backward compatible with), it is the only entry point.
func New(opts ...Option) (*Controller, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			panic("nil happyeyeballs option")
		}
		opt(&cfg)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("happyeyeballs: invalid config: %w", err)
	}

	if cfg.dialer == nil {
		d := &net.Dialer{}
		if cfg.BindAddr != nil {
			d.LocalAddr = &net.TCPAddr{IP: cfg.BindAddr}
		}
		cfg.dialer = d.DialContext
	}
	if cfg.resolve == nil {
		cfg.resolve = resolve.NewBuilder().Build
	}

	return newController(cfg), nil
}
