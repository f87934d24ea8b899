package happyeyeballs

import (
	"errors"
	"syscall"
)

// Namespace prefixes every sentinel error this package defines.
const Namespace = "happyeyeballs"

var (
	// ErrInvalidArgument is returned when a required input is missing, or the
	// port is zero.
	ErrInvalidArgument = errors.New(Namespace + ": invalid argument")

	// ErrInProgress is returned by Try (and by Connect when the stagger loop
	// exits without a winner) while candidates are still racing. It is the
	// Go analogue of the spec's EAGAIN.
	ErrInProgress = errors.New(Namespace + ": race still in progress")

	// ErrTimeout is returned by TimedWait/TimedWaitDefault when the deadline
	// elapses before the race completes.
	ErrTimeout = errors.New(Namespace + ": timed out waiting for race completion")

	// ErrNoAddresses is returned when name resolution succeeds but yields no
	// usable addresses.
	ErrNoAddresses = errors.New(Namespace + ": resolver returned no addresses")

	// ErrClosed is returned by operations attempted on a Controller after
	// Close has been called.
	ErrClosed = errors.New(Namespace + ": controller is closed")

	// ErrSandbox is returned by the platform sanity check (§7); see
	// sanity_check_windows.go.
	ErrSandbox = errors.New(Namespace + ": connection test failed, check your security software")
)

// Code normalizes an error raised anywhere in a race (resolver, socket
// creation, bind, connect, or an internal failure) to a single signed
// integer, mirroring the C source's taxonomy of POSIX/Winsock/pthread error
// surfaces (spec §9 "Error surface from heterogeneous sources").
type Code int

// Well-known codes for library-defined (non-OS) conditions. OS-derived
// conditions surface via ErrorCode as the negated value of the
// syscall.Errno carried on the underlying error.
const (
	CodeNone            Code = 0
	CodeInvalidArgument Code = -1
	CodeNoAddresses     Code = -2
	CodeSandboxDetected Code = -3
)

// codeOf normalizes err to a Code. A wrapped syscall.Errno surfaces as its
// own negated value (mirroring errno's sign convention from the C source);
// everything else maps to one of the well-known codes above, or CodeNone.
func codeOf(err error) Code {
	if err == nil {
		return CodeNone
	}
	switch {
	case errors.Is(err, ErrInvalidArgument):
		return CodeInvalidArgument
	case errors.Is(err, ErrNoAddresses):
		return CodeNoAddresses
	case errors.Is(err, ErrSandbox):
		return CodeSandboxDetected
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return Code(-int(errno))
	}
	return CodeNone
}
