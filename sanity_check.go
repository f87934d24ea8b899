//go:build !windows

package happyeyeballs

import "context"

// sanityCheck is a platform hook run once at the start of Connect (spec §7
// "Platform Sanity Check"). On most platforms there is nothing to check; the
// Windows build (sanity_check_windows.go) guards against security software that silently breaks
// loopback connections before any candidate is launched.
func sanityCheck(_ context.Context) error {
	return nil
}
