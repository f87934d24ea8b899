// Package resolve implements the Address List Builder (spec §4.1): it turns
// a (hostname, port) pair into an ordered list of candidate addresses with
// IPv4 and IPv6 entries interleaved, so a staggered dual-stack race covers
// both families quickly even when the resolver returns them clumped
// together.
package resolve

import (
	"context"
	"net"
	"net/netip"
	"strconv"
	"time"
)

// Family is an address family hint, derived from the caller's bind-address
// hint (spec §4.1 step 1: "force IPv4 ... force IPv6 ... else unspecified").
type Family int

const (
	FamilyUnspecified Family = iota
	FamilyIPv4
	FamilyIPv6
)

func (f Family) network() string {
	switch f {
	case FamilyIPv4:
		return "ip4"
	case FamilyIPv6:
		return "ip6"
	default:
		return "ip"
	}
}

// Result is the outcome of a Build call: the interleaved address list and
// the wall-clock time the resolver call took.
type Result struct {
	Addrs   []netip.AddrPort
	Elapsed time.Duration
}

// LookupFunc matches the one primitive this package depends on from the
// standard library resolver: (*net.Resolver).LookupNetIP. Exposed as a type
// so callers and tests can substitute a fake resolver without a network.
type LookupFunc func(ctx context.Context, network, host string) ([]netip.Addr, error)

// Builder resolves a hostname to an interleaved address list.
type Builder struct {
	Lookup LookupFunc
}

// NewBuilder returns a Builder backed by net.DefaultResolver.
func NewBuilder() *Builder {
	return &Builder{Lookup: net.DefaultResolver.LookupNetIP}
}

// Build resolves host for port, using familyHint to narrow the resolver
// query, and returns the interleaved address list plus the elapsed
// resolution time (spec §4.1 steps 1-2).
func (b *Builder) Build(ctx context.Context, host string, port int, familyHint Family) (Result, error) {
	lookup := b.Lookup
	if lookup == nil {
		lookup = net.DefaultResolver.LookupNetIP
	}

	start := time.Now()
	addrs, err := lookup(ctx, familyHint.network(), host)
	elapsed := time.Since(start)
	if err != nil {
		return Result{Elapsed: elapsed}, err
	}
	if len(addrs) == 0 {
		return Result{Elapsed: elapsed}, &net.DNSError{Err: "no addresses found", Name: host}
	}

	ports := make([]netip.AddrPort, len(addrs))
	for i, a := range addrs {
		ports[i] = netip.AddrPortFrom(a, uint16(port))
	}

	return Result{Addrs: Interleave(ports), Elapsed: elapsed}, nil
}

// Interleave reorders addr so that IPv4 and IPv6 entries alternate where
// possible (spec §4.1 step 3). It walks the list with two cursors (prev,
// cur); whenever they share a racing family (v4 or v6), it searches forward
// from cur for the first address of the other family and splices it in
// directly after prev. Addresses of families other than v4/v6 are left
// untouched. The walk stops permanently the first time no opposite-family
// address can be found ahead of the cursor — this matches the original
// linked-list splice, which abandons interleaving rather than continuing to
// search past a family run it can't balance.
//
// Interleave mutates and returns its argument; callers that need the
// original order preserved should copy first.
func Interleave(addrs []netip.AddrPort) []netip.AddrPort {
	i := 0
	for i+1 < len(addrs) {
		prevIs4, prevIs6 := familyOf(addrs[i])
		curIs4, curIs6 := familyOf(addrs[i+1])

		sameRacingFamily := (prevIs4 && curIs4) || (prevIs6 && curIs6)
		if !sameRacingFamily {
			i++
			continue
		}

		wantIPv6 := prevIs4 // opposite of prev's family
		j := -1
		for k := i + 2; k < len(addrs); k++ {
			is4, is6 := familyOf(addrs[k])
			if (wantIPv6 && is6) || (!wantIPv6 && is4) {
				j = k
				break
			}
		}
		if j == -1 {
			// No opposite-family address left ahead; stop interleaving
			// entirely, as the original does.
			break
		}

		addrs = spliceAfter(addrs, i, j)
		i += 2
	}
	return addrs
}

// spliceAfter removes the element at index j and reinserts it at index i+1,
// leaving everything else in relative order. Precondition: i+1 < j < len(s).
func spliceAfter(s []netip.AddrPort, i, j int) []netip.AddrPort {
	item := s[j]
	copy(s[j:], s[j+1:])
	s = s[:len(s)-1]

	s = append(s, netip.AddrPort{})
	copy(s[i+2:], s[i+1:])
	s[i+1] = item
	return s
}

func familyOf(ap netip.AddrPort) (is4, is6 bool) {
	a := ap.Addr()
	switch {
	case a.Is4() || a.Is4In6():
		return true, false
	case a.Is6():
		return false, true
	default:
		return false, false
	}
}

// FamilyHintFromBindAddr mirrors spec §4.1 step 1: an IPv4 bind hint forces
// an IPv4-only lookup, an IPv6 bind hint forces IPv6-only, and no hint
// leaves the lookup unspecified (dual-stack).
func FamilyHintFromBindAddr(bind net.IP) Family {
	if bind == nil {
		return FamilyUnspecified
	}
	if v4 := bind.To4(); v4 != nil {
		return FamilyIPv4
	}
	return FamilyIPv6
}

// JoinHostPort is a small convenience that builds a "host:port" dial target
// from an interleaved AddrPort.
func JoinHostPort(ap netip.AddrPort) string {
	return net.JoinHostPort(ap.Addr().String(), strconv.Itoa(int(ap.Port())))
}
