package happyeyeballs

import (
	"errors"
	"fmt"
	"net/netip"
)

// CandidateError tags an underlying dial error with the address and attempt
// index that produced it, letting a caller that unwraps the coalesced error
// (see coalesce.go) identify which candidate it came from. This mirrors the
// teacher's TaskMetaError (error_tagging.go), which tags a task error with
// its id/index; here the correlating data is a candidate's address and
// ordinal instead of a task identifier.
type CandidateError struct {
	err   error
	addr  netip.AddrPort
	index int
}

func newCandidateError(err error, addr netip.AddrPort, index int) error {
	if err == nil {
		return nil
	}
	return &CandidateError{err: err, addr: addr, index: index}
}

func (e *CandidateError) Error() string { return e.err.Error() }
func (e *CandidateError) Unwrap() error { return e.err }

// Addr returns the address this candidate attempted to connect to.
func (e *CandidateError) Addr() netip.AddrPort { return e.addr }

// Index returns the candidate's launch ordinal (0-based).
func (e *CandidateError) Index() int { return e.index }

func (e *CandidateError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "candidate(index=%d,addr=%s): %+v", e.index, e.addr, e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractCandidateAddr returns the address attached to err, if any.
func ExtractCandidateAddr(err error) (netip.AddrPort, bool) {
	var ce *CandidateError
	if errors.As(err, &ce) {
		return ce.Addr(), true
	}
	return netip.AddrPort{}, false
}
