package happyeyeballs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_AppliesOptions(t *testing.T) {
	c, err := New(
		WithStaggerDelay(10*time.Millisecond),
		WithMaxAttempts(3),
		WithTimeout(time.Second),
	)
	require.NoError(t, err)
	require.Equal(t, 10*time.Millisecond, c.cfg.StaggerDelay)
	require.Equal(t, 3, c.cfg.MaxAttempts)
	require.Equal(t, time.Second, c.cfg.Timeout)
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	_, err := New(WithMaxAttempts(0))
	require.Error(t, err)
}

func TestNew_PanicsOnNilOption(t *testing.T) {
	require.Panics(t, func() {
		_, _ = New(nil)
	})
}

func TestNew_DefaultsDialerAndResolver(t *testing.T) {
	c, err := New()
	require.NoError(t, err)
	require.NotNil(t, c.cfg.dialer)
	require.NotNil(t, c.cfg.resolve)
}
