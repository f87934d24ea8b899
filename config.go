package happyeyeballs

import (
	"context"
	"net"
	"time"

	"github.com/ygrebnov/happyeyeballs/metrics"
	"github.com/ygrebnov/happyeyeballs/resolve"
)

// dialFunc and resolveFunc are the unexported forms of DialFunc/ResolveFunc
// (options.go) stored on Config once an Option has converted them.
type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

type resolveFunc func(ctx context.Context, host string, port int, hint resolve.Family) (resolve.Result, error)

// Config holds Controller configuration. No exported function accepts a
// Config: a Controller is configured only through the functional Option
// surface in options.go, which New applies to defaultConfig().
type Config struct {
	// StaggerDelay is the fixed gap between successive candidate launches.
	// Default: 200ms.
	StaggerDelay time.Duration

	// MaxAttempts bounds how many candidates a single Connect call may
	// launch. Default: 6.
	MaxAttempts int

	// Timeout is the deadline TimedWaitDefault waits for. Default: 25s.
	Timeout time.Duration

	// BindAddr, if set, hints which local address to bind each candidate's
	// socket to, and steers address resolution toward that address family.
	// Default: nil (no hint, dual-stack resolution).
	BindAddr net.IP

	// Metrics receives counters and histograms for candidate launches and
	// race outcomes. Default: metrics.NewNoopProvider().
	Metrics metrics.Provider

	// dialer and resolve are test seams; see options.go's WithDialer and
	// WithResolver. Left unexported: they are not part of the public Config
	// surface, only reachable via functional options, mirroring how the
	// teacher keeps its pool-selection knob option-only.
	dialer  dialFunc
	resolve resolveFunc
}

// defaultConfig centralizes default values for Config. Applied by New before
// any Option runs.
func defaultConfig() Config {
	return Config{
		StaggerDelay: 200 * time.Millisecond,
		MaxAttempts:  6,
		Timeout:      25 * time.Second,
		Metrics:      metrics.NewNoopProvider(),
	}
}

// validateConfig performs lightweight invariant checks before a Controller
// is created.
func validateConfig(cfg *Config) error {
	if cfg.StaggerDelay <= 0 {
		return errInvalid("StaggerDelay must be positive")
	}
	if cfg.MaxAttempts <= 0 {
		return errInvalid("MaxAttempts must be positive")
	}
	if cfg.Timeout <= 0 {
		return errInvalid("Timeout must be positive")
	}
	return nil
}

func errInvalid(msg string) error {
	return &invalidConfigError{msg: msg}
}

type invalidConfigError struct{ msg string }

func (e *invalidConfigError) Error() string { return Namespace + ": invalid config: " + e.msg }
